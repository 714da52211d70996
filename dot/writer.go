// ABOUTME: Fluent DOT writer that builds exactly-formatted digraph text from graph-construction calls.
// ABOUTME: Validates display tokens, resolves aliases from attribute sources, and encodes tagged attribute values.
package dot

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/2389-research/dotkit/internal/textbuf"
)

// DefaultGraphName is the graph name used when NewWriter is given an empty one.
const DefaultGraphName = "mydot"

// GlobalKind selects which default-attributes statement Global emits.
type GlobalKind int

const (
	KindNode GlobalKind = iota
	KindEdge
)

// token returns the DOT keyword for the kind.
func (k GlobalKind) token() string {
	if k == KindEdge {
		return "edge"
	}
	return "node"
}

// suffix returns the synthetic default-key suffix for the kind.
func (k GlobalKind) suffix() string {
	if k == KindEdge {
		return "_edge"
	}
	return "_node"
}

// AttrSource supplies aliases and attribute lists to writer statements.
// A nil source means no alias and no attributes. An Alias forces a display
// token; an AttrList supplies the statement's attributes directly (its
// reserved alias entry, if any, becomes the token); an *Index is consulted
// per element, vertex keys for nodes and endpoint aliases, pair keys for
// edges, and synthetic scope keys for defaults.
type AttrSource interface {
	isAttrSource()
}

// Alias forces a specific rendered token in place of the integer id.
type Alias string

func (Alias) isAttrSource()    {}
func (AttrList) isAttrSource() {}
func (*Index) isAttrSource()   {}

// Writer accumulates DOT statements into an indented buffer. Methods chain;
// the first error sticks and turns every later call into a no-op, surfacing
// from End. A Writer owns its buffer and is not safe for concurrent use:
// concurrent writers must each own an independent instance.
type Writer struct {
	buf    textbuf.Buffer
	scopes []string
	err    error
}

// NewWriter opens a directed graph block with the given name, or
// DefaultGraphName when the name is empty.
func NewWriter(name string) *Writer {
	w := &Writer{}
	if name == "" {
		name = DefaultGraphName
	}
	if !isLegalToken(name) {
		w.err = &IdentifierError{Name: name}
		return w
	}
	w.scopes = append(w.scopes, name)
	w.buf.Line("digraph " + name + " {")
	w.buf.Push()
	return w
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// fail records the first error and returns the writer for chaining.
func (w *Writer) fail(err error) *Writer {
	if w.err == nil {
		w.err = err
	}
	return w
}

// scope returns the innermost open graph or subgraph name.
func (w *Writer) scope() string {
	if len(w.scopes) == 0 {
		return DefaultGraphName
	}
	return w.scopes[len(w.scopes)-1]
}

// OpenSubgraph opens a subgraph block and pushes one indentation level.
// An empty name opens an anonymous subgraph inheriting the parent scope.
func (w *Writer) OpenSubgraph(name string) *Writer {
	if w.err != nil {
		return w
	}
	if name == "" {
		w.scopes = append(w.scopes, w.scope())
		w.buf.Line("subgraph {")
	} else {
		if !isLegalToken(name) {
			return w.fail(&IdentifierError{Name: name})
		}
		w.scopes = append(w.scopes, name)
		w.buf.Line("subgraph " + name + " {")
	}
	w.buf.Push()
	return w
}

// CloseGraph pops one nesting level and emits the closing brace at the
// now-shallower indentation.
func (w *Writer) CloseGraph() *Writer {
	if w.err != nil {
		return w
	}
	w.buf.Pop()
	w.buf.Line("}")
	if len(w.scopes) > 1 {
		w.scopes = w.scopes[:len(w.scopes)-1]
	}
	return w
}

// Global emits a default-attributes statement ("node [...]" / "edge [...]")
// for the current scope. With an *Index source the list is looked up under
// the scope's synthetic default key.
func (w *Writer) Global(kind GlobalKind, src AttrSource) *Writer {
	if w.err != nil {
		return w
	}
	var attrs AttrList
	switch s := src.(type) {
	case nil:
	case AttrList:
		attrs = s
	case *Index:
		attrs, _ = s.Get(NameKey(w.scope() + kind.suffix()))
	case Alias:
		// An alias has no meaning for a defaults statement.
	}
	w.buf.Line(kind.token() + renderAttrs(attrs) + ";")
	return w
}

// Node emits one node statement: the resolved display token, its attribute
// list if any, and the closing semicolon, on its own line.
func (w *Writer) Node(id int, src AttrSource) *Writer {
	if w.err != nil {
		return w
	}
	tok, attrs, err := resolveToken(id, src)
	if err != nil {
		return w.fail(err)
	}
	w.buf.Line(tok + renderAttrs(attrs) + ";")
	return w
}

// Nodes emits a compact one-line list of node statements. Attributes are not
// rendered; only alias resolution applies.
func (w *Writer) Nodes(ids []int, src AttrSource) *Writer {
	if w.err != nil {
		return w
	}
	toks := make([]string, len(ids))
	for i, id := range ids {
		tok, _, err := resolveToken(id, src)
		if err != nil {
			return w.fail(err)
		}
		toks[i] = tok
	}
	w.buf.Line(strings.Join(toks, "; ") + ";")
	return w
}

// Edge emits one edge statement. An AttrList source is used as the edge's
// attributes directly; an *Index source is consulted under the pair's key
// (defaulting to empty) and also resolves both endpoints' aliases.
func (w *Writer) Edge(tail, head int, src AttrSource) *Writer {
	if w.err != nil {
		return w
	}

	tailTok, err := endpointToken(tail, src)
	if err != nil {
		return w.fail(err)
	}
	headTok, err := endpointToken(head, src)
	if err != nil {
		return w.fail(err)
	}

	var attrs AttrList
	switch s := src.(type) {
	case AttrList:
		attrs = s
	case *Index:
		attrs, _ = s.Get(EdgeKey(tail, head))
	}

	w.buf.Line(tailTok + " -> " + headTok + renderAttrs(attrs) + ";")
	return w
}

// Edges emits a compact one-line sequence of edge statements, one per pair,
// with no attribute rendering.
func (w *Writer) Edges(pairs []Pair, src AttrSource) *Writer {
	if w.err != nil {
		return w
	}
	parts := make([]string, len(pairs))
	for i, pr := range pairs {
		tailTok, err := endpointToken(pr.Tail, src)
		if err != nil {
			return w.fail(err)
		}
		headTok, err := endpointToken(pr.Head, src)
		if err != nil {
			return w.fail(err)
		}
		parts[i] = tailTok + " -> " + headTok
	}
	w.buf.Line(strings.Join(parts, "; ") + ";")
	return w
}

// Chain emits one line chaining at least two ids with arrows.
func (w *Writer) Chain(ids []int, src AttrSource) *Writer {
	if w.err != nil {
		return w
	}
	if len(ids) < 2 {
		return w.fail(fmt.Errorf("chain needs at least two ids, got %d", len(ids)))
	}
	toks := make([]string, len(ids))
	for i, id := range ids {
		tok, err := endpointToken(id, src)
		if err != nil {
			return w.fail(err)
		}
		toks[i] = tok
	}
	w.buf.Line(strings.Join(toks, " -> ") + ";")
	return w
}

// Attribute emits a standalone top-level "key=value;" statement.
func (w *Writer) Attribute(key string, v Value) *Writer {
	if w.err != nil {
		return w
	}
	w.buf.Line(key + "=" + encodeValue(key, v) + ";")
	return w
}

// Rankdir emits a rankdir attribute statement.
func (w *Writer) Rankdir(dir string) *Writer {
	return w.Attribute("rankdir", Literal(dir))
}

// Size emits a size attribute statement from a width/height pair.
func (w *Writer) Size(width, height float64) *Writer {
	return w.Attribute("size", Dim{X: Float(width), Y: Float(height)})
}

// FixedSize emits a fixedsize attribute statement.
func (w *Writer) FixedSize(fixed bool) *Writer {
	return w.Attribute("fixedsize", Bool(fixed))
}

// FontName emits a fontname attribute statement.
func (w *Writer) FontName(name string) *Writer {
	return w.Attribute("fontname", String(name))
}

// End pops the final indentation level, emits the closing brace, and returns
// the accumulated text. After End the writer is spent.
func (w *Writer) End() (string, error) {
	if w.err != nil {
		return "", w.err
	}
	w.buf.Pop()
	w.buf.Line("}")
	return w.buf.String(), nil
}

// WriteFile writes text verbatim to path, creating parent directories as
// needed and overwriting existing content.
func WriteFile(text, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// resolveToken produces the display token and remaining attributes for a
// vertex from its attribute source. The token must be a legal bare
// identifier; a violation is fatal for the statement.
func resolveToken(id int, src AttrSource) (string, AttrList, error) {
	switch s := src.(type) {
	case nil:
		return strconv.Itoa(id), nil, nil

	case Alias:
		tok := string(s)
		if !isLegalToken(tok) {
			return "", nil, &IdentifierError{Name: tok}
		}
		return tok, nil, nil

	case AttrList:
		return tokenFromList(id, s)

	case *Index:
		list, _ := s.Get(VertexKey(id))
		return tokenFromList(id, list)

	default:
		return strconv.Itoa(id), nil, nil
	}
}

// tokenFromList extracts the reserved alias entry from an attribute list,
// returning the display token and the list with that entry removed.
func tokenFromList(id int, list AttrList) (string, AttrList, error) {
	tok := strconv.Itoa(id)
	rest := list
	for i, a := range list {
		if a.Key == AliasKey {
			tok = Text(a.Value)
			rest = make(AttrList, 0, len(list)-1)
			rest = append(rest, list[:i]...)
			rest = append(rest, list[i+1:]...)
			break
		}
	}
	if !isLegalToken(tok) {
		return "", nil, &IdentifierError{Name: tok}
	}
	return tok, rest, nil
}

// endpointToken resolves a display token for an edge endpoint or compact-form
// id. Only an *Index source carries per-vertex aliases; everything else
// renders the integer id.
func endpointToken(id int, src AttrSource) (string, error) {
	if idx, ok := src.(*Index); ok {
		tok, _, err := resolveToken(id, idx)
		return tok, err
	}
	return strconv.Itoa(id), nil
}

// renderAttrs renders an attribute list as " [k1=v1, k2=v2]" in declaration
// order, or nothing at all for an empty list.
func renderAttrs(attrs AttrList) string {
	if len(attrs) == 0 {
		return ""
	}
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = a.Key + "=" + encodeValue(a.Key, a.Value)
	}
	return " [" + strings.Join(parts, ", ") + "]"
}
