// ABOUTME: Tests for the DOT parser: trace ordering, alias synthesis, defaults isolation, and error taxonomy.
// ABOUTME: Covers chains, compact lists, subgraph scoping, attribute order, and unsupported constructs.
package dot

import (
	"errors"
	"testing"
)

func TestParseTraceOrder(t *testing.T) {
	doc, err := Parse(`digraph g {
  1;
  2 [color=red];
  1 -> 2;
  3;
  2 -> 3;
}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	want := []Element{
		VertexElement(1),
		VertexElement(2),
		EdgeElement(1, 2),
		VertexElement(3),
		EdgeElement(2, 3),
	}
	if len(doc.Trace) != len(want) {
		t.Fatalf("trace length = %d, want %d", len(doc.Trace), len(want))
	}
	for i, el := range want {
		if doc.Trace[i] != el {
			t.Errorf("trace[%d] = %+v, want %+v", i, doc.Trace[i], el)
		}
	}
}

func TestParseTraceIsALog(t *testing.T) {
	doc, err := Parse(`digraph g {
  1;
  1 -> 2;
  1;
  1 -> 2;
}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	// The same vertex and edge appear once per statement, no deduplication.
	if len(doc.Trace) != 4 {
		t.Fatalf("trace length = %d, want 4", len(doc.Trace))
	}
	if doc.Trace[0] != doc.Trace[2] || doc.Trace[1] != doc.Trace[3] {
		t.Error("repeated statements should produce identical trace entries")
	}
}

func TestParseChainExpansion(t *testing.T) {
	doc, err := Parse(`digraph g { 1 -> 2 -> 3 -> 4; }`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	want := []Element{
		EdgeElement(1, 2),
		EdgeElement(2, 3),
		EdgeElement(3, 4),
	}
	if len(doc.Trace) != len(want) {
		t.Fatalf("trace length = %d, want %d", len(doc.Trace), len(want))
	}
	for i, el := range want {
		if doc.Trace[i] != el {
			t.Errorf("trace[%d] = %+v, want %+v", i, doc.Trace[i], el)
		}
	}
}

func TestChainAttrsBindToLastPair(t *testing.T) {
	doc, err := Parse(`digraph g { 1 -> 2 -> 3 [color=red]; }`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if attrs := doc.EdgeAttrs(1, 2); len(attrs) != 0 {
		t.Errorf("edge 1->2 attrs = %v, want none", attrs)
	}
	attrs := doc.EdgeAttrs(2, 3)
	if len(attrs) != 1 || attrs[0].Key != "color" || Text(attrs[0].Value) != "red" {
		t.Errorf("edge 2->3 attrs = %v, want [color=red]", attrs)
	}
}

func TestParseCompactList(t *testing.T) {
	doc, err := Parse(`digraph g { 1; 2; 3; }`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := []Element{VertexElement(1), VertexElement(2), VertexElement(3)}
	for i, el := range want {
		if doc.Trace[i] != el {
			t.Errorf("trace[%d] = %+v, want %+v", i, doc.Trace[i], el)
		}
	}
}

func TestDefaultScopeIsolation(t *testing.T) {
	doc, err := Parse(`digraph G {
  node [fontname="Helvetica"];
  edge [style="dashed"];
  1;
  1 -> 2;
}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	nodeDefaults := doc.NodeDefaults("G")
	if len(nodeDefaults) != 1 || nodeDefaults[0].Key != "fontname" || Text(nodeDefaults[0].Value) != "Helvetica" {
		t.Errorf("G_node defaults = %v, want [fontname=Helvetica]", nodeDefaults)
	}

	edgeDefaults := doc.EdgeDefaults("G")
	if len(edgeDefaults) != 1 || edgeDefaults[0].Key != "style" || Text(edgeDefaults[0].Value) != "dashed" {
		t.Errorf("G_edge defaults = %v, want [style=dashed]", edgeDefaults)
	}

	// Defaults must never leak into individual element lists.
	if attrs := doc.VertexAttrs(1); len(attrs) != 0 {
		t.Errorf("vertex 1 attrs = %v, want none", attrs)
	}
	if attrs := doc.EdgeAttrs(1, 2); len(attrs) != 0 {
		t.Errorf("edge 1->2 attrs = %v, want none", attrs)
	}
}

func TestTopLevelAttributeStatement(t *testing.T) {
	doc, err := Parse(`digraph G {
  rankdir=LR;
  fontname="Courier";
}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	attrs, ok := doc.Index.Get(NameKey("G"))
	if !ok {
		t.Fatal("no attribute list under graph name key")
	}
	if len(attrs) != 2 {
		t.Fatalf("graph attrs length = %d, want 2", len(attrs))
	}
	if attrs[0].Key != "rankdir" || Text(attrs[0].Value) != "LR" {
		t.Errorf("attrs[0] = %v, want rankdir=LR", attrs[0])
	}
	if attrs[1].Key != "fontname" || Text(attrs[1].Value) != "Courier" {
		t.Errorf("attrs[1] = %v, want fontname=Courier", attrs[1])
	}
	if len(doc.Trace) != 0 {
		t.Errorf("attribute statements should not produce trace entries, got %d", len(doc.Trace))
	}
}

func TestAttributeOrderAndDuplicates(t *testing.T) {
	doc, err := Parse(`digraph g { 1 [b=2, a=1, b=3]; }`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	attrs := doc.VertexAttrs(1)
	wantKeys := []string{"b", "a", "b"}
	wantVals := []string{"2", "1", "3"}
	if len(attrs) != 3 {
		t.Fatalf("attrs length = %d, want 3 (duplicates kept)", len(attrs))
	}
	for i := range attrs {
		if attrs[i].Key != wantKeys[i] || Text(attrs[i].Value) != wantVals[i] {
			t.Errorf("attrs[%d] = %s=%s, want %s=%s", i, attrs[i].Key, Text(attrs[i].Value), wantKeys[i], wantVals[i])
		}
	}
}

func TestValuelessAttrKeyKeptAsTrue(t *testing.T) {
	doc, err := Parse(`digraph g { 1 [constraint, color=red]; }`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	attrs := doc.VertexAttrs(1)
	if len(attrs) != 2 {
		t.Fatalf("attrs length = %d, want 2", len(attrs))
	}
	if attrs[0].Key != "constraint" || Text(attrs[0].Value) != "true" {
		t.Errorf("attrs[0] = %v, want constraint=true", attrs[0])
	}
}

func TestAliasSynthesis(t *testing.T) {
	doc, err := Parse(`digraph g {
  web;
  db;
  web -> db;
}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if doc.Aliases["web"] != 1 || doc.Aliases["db"] != 2 {
		t.Fatalf("aliases = %v, want web=1 db=2", doc.Aliases)
	}

	want := []Element{VertexElement(1), VertexElement(2), EdgeElement(1, 2)}
	for i, el := range want {
		if doc.Trace[i] != el {
			t.Errorf("trace[%d] = %+v, want %+v", i, doc.Trace[i], el)
		}
	}

	// The alias survives as a reserved attribute on the synthesized id.
	v, ok := doc.VertexAttrs(1).Get(AliasKey)
	if !ok || Text(v) != "web" {
		t.Errorf("vertex 1 alias = %v, want \"web\"", v)
	}
}

func TestAliasSkipsClaimedNumericIDs(t *testing.T) {
	doc, err := Parse(`digraph g { 5; fiver; }`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	// 1 through 4 are free, but the counter must never collide with 5.
	if doc.Aliases["fiver"] != 1 {
		t.Errorf("fiver id = %d, want 1", doc.Aliases["fiver"])
	}

	doc, err = Parse(`digraph g { 1; 2; three; }`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if doc.Aliases["three"] != 3 {
		t.Errorf("three id = %d, want 3", doc.Aliases["three"])
	}
}

func TestQuotedIdentifierBecomesAlias(t *testing.T) {
	doc, err := Parse(`digraph g { "load balancer" -> "app server"; }`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if doc.Aliases["load balancer"] != 1 || doc.Aliases["app server"] != 2 {
		t.Errorf("aliases = %v, want load balancer=1 app server=2", doc.Aliases)
	}
}

func TestSubgraphScopedDefaults(t *testing.T) {
	doc, err := Parse(`digraph G {
  1;
  subgraph cluster_a {
    node [shape=box];
    label="Cluster A";
    2;
  }
  1 -> 2;
}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	// Subgraph defaults live under the subgraph's own synthetic key.
	defaults := doc.NodeDefaults("cluster_a")
	if len(defaults) != 1 || defaults[0].Key != "shape" {
		t.Errorf("cluster_a node defaults = %v, want [shape=box]", defaults)
	}
	if len(doc.NodeDefaults("G")) != 0 {
		t.Error("subgraph defaults leaked into the parent scope")
	}

	// The subgraph's own attributes key under its name.
	attrs, ok := doc.Index.Get(NameKey("cluster_a"))
	if !ok || len(attrs) != 1 || attrs[0].Key != "label" {
		t.Errorf("cluster_a attrs = %v, want [label=\"Cluster A\"]", attrs)
	}

	// Statements inside fold into the same trace.
	want := []Element{VertexElement(1), VertexElement(2), EdgeElement(1, 2)}
	for i, el := range want {
		if doc.Trace[i] != el {
			t.Errorf("trace[%d] = %+v, want %+v", i, doc.Trace[i], el)
		}
	}
}

func TestAnonymousSubgraphInheritsScope(t *testing.T) {
	doc, err := Parse(`digraph G {
  subgraph {
    node [shape=circle];
  }
}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if defaults := doc.NodeDefaults("G"); len(defaults) != 1 {
		t.Errorf("G node defaults = %v, want the anonymous subgraph's [shape=circle]", defaults)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		as    any
	}{
		{"strict modifier", `strict digraph g {}`, new(*UnsupportedError)},
		{"undirected edge", `digraph g { 1 -- 2; }`, new(*UnsupportedError)},
		{"port", `digraph g { 1:n -> 2; }`, new(*UnsupportedError)},
		{"multiple graphs", "digraph a {}\ndigraph b {}", new(*UnsupportedError)},
		{"missing brace", `digraph g 1;`, new(*SyntaxError)},
		{"missing name", `digraph { 1; }`, new(*SyntaxError)},
		{"unterminated block", `digraph g { 1;`, new(*SyntaxError)},
		{"bad value", `digraph g { 1 [color=]; }`, new(*SyntaxError)},
		{"fractional id", `digraph g { 1.5; }`, new(*SyntaxError)},
		{"negative id", `digraph g { -3; }`, new(*SyntaxError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			switch target := tt.as.(type) {
			case **UnsupportedError:
				if !errors.As(err, target) {
					t.Errorf("error = %v (%T), want *UnsupportedError", err, err)
				}
			case **SyntaxError:
				if !errors.As(err, target) {
					t.Errorf("error = %v (%T), want *SyntaxError", err, err)
				}
			}
		})
	}
}

func TestSyntaxErrorCarriesPosition(t *testing.T) {
	_, err := Parse("digraph g {\n  1 [color=];\n}")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("error = %v (%T), want *SyntaxError", err, err)
	}
	if syntaxErr.Line != 2 {
		t.Errorf("error line = %d, want 2", syntaxErr.Line)
	}
}

func TestGraphKeywordHeader(t *testing.T) {
	doc, err := Parse(`graph g { 1 -> 2; }`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if doc.Name != "g" {
		t.Errorf("name = %q, want g", doc.Name)
	}
}

func TestVertexRestatementAppendsAttrs(t *testing.T) {
	doc, err := Parse(`digraph g {
  1 [color=red];
  1 [shape=box];
}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	attrs := doc.VertexAttrs(1)
	if len(attrs) != 2 {
		t.Fatalf("attrs length = %d, want 2", len(attrs))
	}
	if attrs[0].Key != "color" || attrs[1].Key != "shape" {
		t.Errorf("attrs = %v, want color then shape", attrs)
	}
}
