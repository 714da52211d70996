// ABOUTME: Typed error taxonomy for the dot package: identifier, missing-source, syntax, and unsupported-construct failures.
// ABOUTME: Every failure is terminal for the call that produced it; nothing is retried internally.
package dot

import (
	"fmt"
	"io/fs"
)

// IdentifierError reports a display token that is not a legal bare DOT
// identifier. It aborts the writer statement that produced it.
type IdentifierError struct {
	Name string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q", e.Name)
}

// SourceNotFoundError reports that the requested input path does not exist.
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source not found: %s", e.Path)
}

// Unwrap lets errors.Is match fs.ErrNotExist.
func (e *SourceNotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// SyntaxError reports malformed DOT text with the position of the offending
// token and a description of what was expected versus found.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, col %d: %s", e.Line, e.Col, e.Msg)
}

// UnsupportedError reports a DOT construct outside the supported grammar
// subset, such as HTML labels, ports, or undirected edges.
type UnsupportedError struct {
	Construct string
	Line      int
	Col       int
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported construct at line %d, col %d: %s", e.Line, e.Col, e.Construct)
}
