// ABOUTME: Renders DOT text to SVG/PNG by piping it to the external graphviz dot command.
// ABOUTME: Surfaces a distinct renderer-not-installed error and a RenderFile helper that writes output beside the input.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/2389-research/dotkit/dot"
)

// ErrNotInstalled is the distinct condition reported when the graphviz dot
// command is not present on the execution environment. Match with errors.Is.
var ErrNotInstalled = errors.New("graphviz dot command not found")

// Source renders raw DOT text to the given format. For "dot" the input text
// is returned as-is; "svg" and "png" shell out to the graphviz dot command.
func Source(ctx context.Context, dotText string, format string) ([]byte, error) {
	if dotText == "" {
		return nil, fmt.Errorf("cannot render empty DOT text")
	}

	switch format {
	case "dot":
		return []byte(dotText), nil
	case "svg", "png":
		return renderWithGraphviz(ctx, dotText, format)
	default:
		return nil, fmt.Errorf("unsupported format %q: supported formats are dot, svg, png", format)
	}
}

// File renders the DOT file at path to the given format, writes the result
// next to the input with the format as its extension, and returns the output
// path. A missing input fails with dot.SourceNotFoundError.
func File(ctx context.Context, path string, format string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &dot.SourceNotFoundError{Path: path}
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	out, err := Source(ctx, string(data), format)
	if err != nil {
		return "", err
	}

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + "." + format
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}
	return outPath, nil
}

// Available reports whether the graphviz dot command is installed and reachable.
func Available() bool {
	_, err := exec.LookPath("dot")
	return err == nil
}

// renderWithGraphviz pipes DOT text to the graphviz dot command and returns
// the rendered output.
func renderWithGraphviz(ctx context.Context, dotText string, format string) ([]byte, error) {
	if !Available() {
		return nil, fmt.Errorf("%w: install graphviz to render %s output", ErrNotInstalled, format)
	}

	cmd := exec.CommandContext(ctx, "dot", "-T"+format)
	cmd.Stdin = strings.NewReader(dotText)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("graphviz dot command failed: %w: %s", err, stderr.String())
	}

	return stdout.Bytes(), nil
}
