// ABOUTME: Structural lint rules for parsed DOT documents, adapted to the trace/index model.
// ABOUTME: Provides a single Lint(doc) function running all checks and returning diagnostics.
package validator

import (
	"fmt"

	"github.com/2389-research/dotkit/dot"
)

// Severity levels for diagnostics.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Diagnostic represents a lint finding associated with a vertex, an edge, or
// the graph as a whole.
type Diagnostic struct {
	Severity string // "error", "warning", "info"
	Message  string
	Vertex   int      // vertex id when the finding concerns one vertex, zero otherwise
	Pair     dot.Pair // edge pair when the finding concerns one edge
	Rule     string
}

// validRankdirs is the set of valid rankdir attribute values.
var validRankdirs = map[string]bool{
	"LR": true,
	"TB": true,
	"RL": true,
	"BT": true,
}

// Lint runs all lint rules on the document and returns any diagnostics found.
func Lint(doc *dot.Document) []Diagnostic {
	var diags []Diagnostic

	diags = append(diags, checkEmpty(doc)...)
	diags = append(diags, checkRankdir(doc)...)
	diags = append(diags, checkSelfLoops(doc)...)
	diags = append(diags, checkParallelEdges(doc)...)
	diags = append(diags, checkOrphans(doc)...)

	return diags
}

// checkEmpty warns when the graph declares no vertices or edges at all.
func checkEmpty(doc *dot.Document) []Diagnostic {
	if len(doc.Trace) > 0 {
		return nil
	}
	return []Diagnostic{{
		Severity: SeverityWarning,
		Message:  "graph has no vertex or edge statements",
		Rule:     "empty-graph",
	}}
}

// checkRankdir flags a rankdir graph attribute outside LR, TB, RL, BT.
func checkRankdir(doc *dot.Document) []Diagnostic {
	attrs, ok := doc.Index.Get(dot.NameKey(doc.Name))
	if !ok {
		return nil
	}

	var diags []Diagnostic
	for _, a := range attrs {
		if a.Key != "rankdir" {
			continue
		}
		if val := dot.Text(a.Value); !validRankdirs[val] {
			diags = append(diags, Diagnostic{
				Severity: SeverityError,
				Message:  fmt.Sprintf("invalid rankdir %q: must be one of LR, TB, RL, BT", val),
				Rule:     "rankdir",
			})
		}
	}
	return diags
}

// checkSelfLoops warns about edges whose tail and head are the same vertex.
func checkSelfLoops(doc *dot.Document) []Diagnostic {
	var diags []Diagnostic
	for _, pr := range doc.Edges() {
		if pr.Tail == pr.Head {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("vertex %d has a self-loop", pr.Tail),
				Vertex:   pr.Tail,
				Pair:     pr,
				Rule:     "self-loop",
			})
		}
	}
	return diags
}

// checkParallelEdges reports pairs that appear more than once in the trace.
func checkParallelEdges(doc *dot.Document) []Diagnostic {
	counts := make(map[dot.Pair]int)
	for _, pr := range doc.Edges() {
		counts[pr]++
	}

	var diags []Diagnostic
	seen := make(map[dot.Pair]bool)
	for _, pr := range doc.Edges() {
		if counts[pr] > 1 && !seen[pr] {
			seen[pr] = true
			diags = append(diags, Diagnostic{
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("edge %s appears %d times", pr, counts[pr]),
				Pair:     pr,
				Rule:     "parallel-edge",
			})
		}
	}
	return diags
}

// checkOrphans reports vertices that never participate in an edge.
func checkOrphans(doc *dot.Document) []Diagnostic {
	connected := make(map[int]bool)
	for _, pr := range doc.Edges() {
		connected[pr.Tail] = true
		connected[pr.Head] = true
	}

	var diags []Diagnostic
	for _, id := range doc.Vertices() {
		if !connected[id] {
			diags = append(diags, Diagnostic{
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("vertex %d has no edges", id),
				Vertex:   id,
				Rule:     "orphan-vertex",
			})
		}
	}
	return diags
}
