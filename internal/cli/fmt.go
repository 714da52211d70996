// ABOUTME: The dotkit fmt command: parse a DOT file and re-emit it in canonical writer format.
// ABOUTME: Prints to stdout by default; -w rewrites the file in place.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2389-research/dotkit/dot"
)

// newFmtCmd creates the fmt command.
func newFmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file.dot>",
		Short: "Reformat a DOT file into canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			path := args[0]

			doc, err := dot.ParseFile(path)
			if err != nil {
				return err
			}
			logger.Debug("parsed", "file", path, "trace", len(doc.Trace), "keys", doc.Index.Len())

			text, err := dot.Format(doc)
			if err != nil {
				return err
			}

			if write {
				if err := dot.WriteFile(text, path); err != nil {
					return err
				}
				logger.Info("rewrote", "file", path)
				return nil
			}

			fmt.Fprint(os.Stdout, text)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place instead of printing")
	return cmd
}
