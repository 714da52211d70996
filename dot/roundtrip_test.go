// ABOUTME: Round-trip tests: parse, format, reparse, and compare the resulting documents.
// ABOUTME: Pins trace ordering, attribute order, alias stability, and Format idempotence across cycles.
package dot

import (
	"reflect"
	"testing"
)

const roundTripInput = `digraph pipeline {
  rankdir=LR;
  node [penwidth=1];
  edge [style=solid];
  start [label="start here", shape=box];
  start -> work;
  work -> work [label="retry"];
  work -> done;
  9 -> done;
  start -> done -> 9;
}`

func TestRoundTripPreservesTrace(t *testing.T) {
	first, err := Parse(roundTripInput)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	text, err := Format(first)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	second, err := Parse(text)
	if err != nil {
		t.Fatalf("reparse of %q: %v", text, err)
	}

	if !reflect.DeepEqual(second.Trace, first.Trace) {
		t.Errorf("trace changed across round trip\nfirst:  %v\nsecond: %v", first.Trace, second.Trace)
	}
}

func TestRoundTripPreservesIndex(t *testing.T) {
	first, err := Parse(roundTripInput)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	text, err := Format(first)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	second, err := Parse(text)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	for _, k := range first.Index.Keys() {
		wantList, _ := first.Index.Get(k)
		gotList, ok := second.Index.Get(k)
		if !ok {
			t.Errorf("key %v missing after round trip", k)
			continue
		}
		if !reflect.DeepEqual(gotList, wantList) {
			t.Errorf("attrs for %v changed\nfirst:  %v\nsecond: %v", k, wantList, gotList)
		}
	}
}

func TestRoundTripAliasesStable(t *testing.T) {
	first, err := Parse(roundTripInput)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	text, err := Format(first)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	second, err := Parse(text)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	if !reflect.DeepEqual(second.Aliases, first.Aliases) {
		t.Errorf("aliases changed\nfirst:  %v\nsecond: %v", first.Aliases, second.Aliases)
	}
}

func TestFormatIsStableAfterOneCycle(t *testing.T) {
	first, err := Parse(roundTripInput)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	once, err := Format(first)
	if err != nil {
		t.Fatalf("first format: %v", err)
	}
	reparsed, err := Parse(once)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	twice, err := Format(reparsed)
	if err != nil {
		t.Fatalf("second format: %v", err)
	}

	if once != twice {
		t.Errorf("format not stable\nonce:\n%s\ntwice:\n%s", once, twice)
	}
}

func TestRoundTripKeepsDuplicateAttrs(t *testing.T) {
	input := `digraph g {
  1 [color=red, color=blue, color=red];
}`
	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	text, err := Format(doc)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	again, err := Parse(text)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	attrs := again.VertexAttrs(1)
	var colors []string
	for _, a := range attrs {
		if a.Key == "color" {
			colors = append(colors, Text(a.Value))
		}
	}
	want := []string{"red", "blue", "red"}
	if !reflect.DeepEqual(colors, want) {
		t.Errorf("colors = %v, want %v", colors, want)
	}
}

func TestRoundTripRepeatedEdgesStayRepeated(t *testing.T) {
	input := `digraph g {
  1 -> 2;
  1 -> 2;
  1 -> 2;
}`
	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	text, err := Format(doc)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	again, err := Parse(text)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	if len(again.Edges()) != 3 {
		t.Errorf("got %d edges after round trip, want 3", len(again.Edges()))
	}
}
