// ABOUTME: Shared data model for DOT documents: trace elements, ordered attribute lists, and the attribute index.
// ABOUTME: Defines Pair, Element, Attr, AttrList, Key, Index, AliasTable, and the parse-result Document.
package dot

import (
	"fmt"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// AliasKey is the reserved attribute key that links a synthesized vertex id
// back to the textual identifier it stands for. The reader records it on the
// first occurrence of an alias; the writer strips it from an attribute list
// and uses its value as the rendered token.
const AliasKey = "alias"

// Pair is a directed edge between two vertex ids, tail to head.
type Pair struct {
	Tail int
	Head int
}

// String returns the pair in "tail->head" form.
func (p Pair) String() string {
	return strconv.Itoa(p.Tail) + "->" + strconv.Itoa(p.Head)
}

// ElementKind discriminates trace elements.
type ElementKind int

const (
	ElemVertex ElementKind = iota
	ElemEdge
)

// Element is one entry in a document's trace: a standalone vertex or a
// directed edge pair. The trace is a log, not a set; the same vertex or pair
// appears once per statement that mentions it.
type Element struct {
	Kind ElementKind
	Tail int // vertex id for ElemVertex, edge tail for ElemEdge
	Head int // edge head for ElemEdge, zero otherwise
}

// VertexElement returns a trace element for a standalone vertex.
func VertexElement(id int) Element {
	return Element{Kind: ElemVertex, Tail: id}
}

// EdgeElement returns a trace element for a directed edge.
func EdgeElement(tail, head int) Element {
	return Element{Kind: ElemEdge, Tail: tail, Head: head}
}

// Pair returns the edge pair of an ElemEdge element.
func (e Element) Pair() Pair {
	return Pair{Tail: e.Tail, Head: e.Head}
}

// Attr is a single key/value attribute.
type Attr struct {
	Key   string
	Value Value
}

// AttrList is an ordered attribute list. Keys need not be unique; declaration
// order is preserved and duplicate keys are never merged.
type AttrList []Attr

// Get returns the value of the first attribute with the given key.
func (l AttrList) Get(key string) (Value, bool) {
	for _, a := range l {
		if a.Key == key {
			return a.Value, true
		}
	}
	return nil, false
}

// keyKind discriminates index keys.
type keyKind int

const (
	keyVertex keyKind = iota
	keyEdge
	keyName
)

// Key addresses one attribute list in an Index. The key domain is the union
// of vertex ids, edge pairs, and scope/alias names, including the synthetic
// "<scope>_node" and "<scope>_edge" default keys.
type Key struct {
	kind keyKind
	id   int
	pair Pair
	name string
}

// VertexKey returns the index key for a vertex id.
func VertexKey(id int) Key {
	return Key{kind: keyVertex, id: id}
}

// EdgeKey returns the index key for an edge pair.
func EdgeKey(tail, head int) Key {
	return Key{kind: keyEdge, pair: Pair{Tail: tail, Head: head}}
}

// NameKey returns the index key for a scope or alias name.
func NameKey(name string) Key {
	return Key{kind: keyName, name: name}
}

// String returns a human-readable form of the key: "3", "1->2", or the name.
func (k Key) String() string {
	switch k.kind {
	case keyVertex:
		return strconv.Itoa(k.id)
	case keyEdge:
		return k.pair.String()
	default:
		return k.name
	}
}

// Index maps keys to attribute lists. Keys iterate in first-insertion order,
// and the lists themselves preserve declaration order, so the index as a
// whole reflects the order attributes appeared in the source.
type Index struct {
	m *orderedmap.OrderedMap[Key, AttrList]
}

// NewIndex returns an empty attribute index.
func NewIndex() *Index {
	return &Index{m: orderedmap.New[Key, AttrList]()}
}

// Get returns the attribute list stored under k.
func (x *Index) Get(k Key) (AttrList, bool) {
	return x.m.Get(k)
}

// Append appends attrs to the list under k, creating the entry if absent.
// Appending nothing still creates an (empty) entry for k.
func (x *Index) Append(k Key, attrs ...Attr) {
	list, _ := x.m.Get(k)
	x.m.Set(k, append(list, attrs...))
}

// Set replaces the list under k.
func (x *Index) Set(k Key, attrs AttrList) {
	x.m.Set(k, attrs)
}

// Len returns the number of keys in the index.
func (x *Index) Len() int {
	return x.m.Len()
}

// Keys returns all keys in first-insertion order.
func (x *Index) Keys() []Key {
	keys := make([]Key, 0, x.m.Len())
	for pair := x.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// AliasTable assigns synthetic positive integer ids to textual identifiers.
// First appearance wins; the mapping is one-to-one for the session and never
// hands out an id already claimed by an explicit numeric identifier.
type AliasTable struct {
	ids  map[string]int
	used map[int]bool
	next int
}

// NewAliasTable returns an empty alias table.
func NewAliasTable() *AliasTable {
	return &AliasTable{
		ids:  make(map[string]int),
		used: make(map[int]bool),
		next: 1,
	}
}

// Claim marks an explicit numeric vertex id as used so it is never handed out
// as a synthetic alias id.
func (t *AliasTable) Claim(id int) {
	t.used[id] = true
}

// Resolve returns the id for name, assigning the next unused positive integer
// on first appearance. fresh reports whether the assignment happened now.
func (t *AliasTable) Resolve(name string) (id int, fresh bool) {
	if id, ok := t.ids[name]; ok {
		return id, false
	}
	for t.used[t.next] {
		t.next++
	}
	id = t.next
	t.next++
	t.used[id] = true
	t.ids[name] = id
	return id, true
}

// Lookup returns the id assigned to name, if any.
func (t *AliasTable) Lookup(name string) (int, bool) {
	id, ok := t.ids[name]
	return id, ok
}

// Names returns a copy of the name-to-id mapping.
func (t *AliasTable) Names() map[string]int {
	out := make(map[string]int, len(t.ids))
	for name, id := range t.ids {
		out[name] = id
	}
	return out
}

// Document is the immutable result of one parse session: the graph name, the
// ordered trace of every vertex and edge statement, the attribute index, and
// the alias assignments made along the way.
type Document struct {
	Name    string
	Trace   []Element
	Index   *Index
	Aliases map[string]int
}

// VertexAttrs returns the attribute list recorded for a vertex id.
func (d *Document) VertexAttrs(id int) AttrList {
	list, _ := d.Index.Get(VertexKey(id))
	return list
}

// EdgeAttrs returns the attribute list recorded for an edge pair.
func (d *Document) EdgeAttrs(tail, head int) AttrList {
	list, _ := d.Index.Get(EdgeKey(tail, head))
	return list
}

// NodeDefaults returns the node-default attributes recorded for scope.
func (d *Document) NodeDefaults(scope string) AttrList {
	list, _ := d.Index.Get(NameKey(scope + "_node"))
	return list
}

// EdgeDefaults returns the edge-default attributes recorded for scope.
func (d *Document) EdgeDefaults(scope string) AttrList {
	list, _ := d.Index.Get(NameKey(scope + "_edge"))
	return list
}

// Vertices returns every distinct vertex id mentioned in the trace, in first
// occurrence order.
func (d *Document) Vertices() []int {
	seen := make(map[int]bool)
	var ids []int
	add := func(id int) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, el := range d.Trace {
		add(el.Tail)
		if el.Kind == ElemEdge {
			add(el.Head)
		}
	}
	return ids
}

// Edges returns every edge pair in the trace, in occurrence order, with
// parallel edges repeated.
func (d *Document) Edges() []Pair {
	var pairs []Pair
	for _, el := range d.Trace {
		if el.Kind == ElemEdge {
			pairs = append(pairs, el.Pair())
		}
	}
	return pairs
}

// String summarizes the document for debugging.
func (d *Document) String() string {
	return fmt.Sprintf("digraph %s: %d trace elements, %d indexed keys", d.Name, len(d.Trace), d.Index.Len())
}
