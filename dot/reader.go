// ABOUTME: File-backed entry point for the DOT reader.
// ABOUTME: Maps a missing input path to a typed SourceNotFoundError before parsing begins.
package dot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ParseFile reads the file at path and parses it as DOT text. A missing path
// fails with a SourceNotFoundError carrying the requested path, never with a
// syntax error.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(string(data))
}
