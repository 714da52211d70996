// ABOUTME: Canonical re-emission of a parsed Document through the writer.
// ABOUTME: Replays graph attributes, defaults, and the trace in occurrence order; subgraph nesting is flattened.
package dot

// Format re-emits a parsed document as canonical writer output: graph-level
// attribute statements first, then node and edge defaults, then every trace
// element in occurrence order with its indexed attributes. Aliases are
// preserved through the reserved alias attribute. Subgraph structure is
// flattened into the top-level block; scoped defaults keep their own
// synthetic keys in the index but are not re-emitted.
func Format(doc *Document) (string, error) {
	w := NewWriter(doc.Name)

	if attrs, ok := doc.Index.Get(NameKey(doc.Name)); ok {
		for _, a := range attrs {
			w.Attribute(a.Key, a.Value)
		}
	}
	if attrs := doc.NodeDefaults(doc.Name); len(attrs) > 0 {
		w.Global(KindNode, attrs)
	}
	if attrs := doc.EdgeDefaults(doc.Name); len(attrs) > 0 {
		w.Global(KindEdge, attrs)
	}

	// Attributes are emitted on the first occurrence of each element only,
	// so formatting is stable under repeated parse/format cycles.
	emittedVertex := make(map[int]bool)
	emittedEdge := make(map[Pair]bool)

	for _, el := range doc.Trace {
		switch el.Kind {
		case ElemVertex:
			if emittedVertex[el.Tail] {
				w.Node(el.Tail, aliasOnly(doc, el.Tail))
			} else {
				emittedVertex[el.Tail] = true
				w.Node(el.Tail, doc.Index)
			}
		case ElemEdge:
			if emittedEdge[el.Pair()] {
				w.Edge(el.Tail, el.Head, indexAliasesOnly(doc))
			} else {
				emittedEdge[el.Pair()] = true
				w.Edge(el.Tail, el.Head, doc.Index)
			}
		}
	}

	return w.End()
}

// aliasOnly returns an attribute source carrying just the vertex's alias
// entry, if it has one, so a restated vertex renders its token without
// repeating its attributes.
func aliasOnly(doc *Document, id int) AttrSource {
	if v, ok := doc.VertexAttrs(id).Get(AliasKey); ok {
		return AttrList{{Key: AliasKey, Value: v}}
	}
	return nil
}

// indexAliasesOnly returns an index holding only alias entries, used to
// resolve endpoint tokens of a repeated edge without re-emitting its
// attribute list.
func indexAliasesOnly(doc *Document) *Index {
	out := NewIndex()
	for _, k := range doc.Index.Keys() {
		list, _ := doc.Index.Get(k)
		if v, ok := list.Get(AliasKey); ok {
			out.Set(k, AttrList{{Key: AliasKey, Value: v}})
		}
	}
	return out
}
