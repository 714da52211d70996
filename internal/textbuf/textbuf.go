// ABOUTME: Line buffer with nesting-aware indentation used by the DOT writer.
// ABOUTME: Push and pop move the depth by one level; each line is prefixed at the depth current when added.
package textbuf

import (
	"fmt"
	"strings"
)

// indentUnit is the per-level indentation: two spaces.
const indentUnit = "  "

// Buffer accumulates lines of text, prefixing each with the indentation for
// the nesting depth in effect when the line was added. The zero value is
// ready to use at depth zero.
type Buffer struct {
	depth int
	b     strings.Builder
}

// Push increases the nesting depth by one level.
func (t *Buffer) Push() {
	t.depth++
}

// Pop decreases the nesting depth by one level, stopping at zero.
func (t *Buffer) Pop() {
	if t.depth > 0 {
		t.depth--
	}
}

// Depth returns the current nesting depth.
func (t *Buffer) Depth() int {
	return t.depth
}

// Line appends s as one line at the current depth, terminated with a newline.
func (t *Buffer) Line(s string) {
	for i := 0; i < t.depth; i++ {
		t.b.WriteString(indentUnit)
	}
	t.b.WriteString(s)
	t.b.WriteByte('\n')
}

// Linef appends a formatted line at the current depth.
func (t *Buffer) Linef(format string, args ...any) {
	t.Line(fmt.Sprintf(format, args...))
}

// String returns the accumulated text.
func (t *Buffer) String() string {
	return t.b.String()
}
