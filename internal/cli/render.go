// ABOUTME: The dotkit render command: render a DOT file to svg/png/dot via the graphviz binary.
// ABOUTME: The output path defaults to the input with the format extension; -o overrides it.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/2389-research/dotkit/render"
)

// newRenderCmd creates the render command.
func newRenderCmd() *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "render <file.dot>",
		Short: "Render a DOT file to an image via graphviz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			path := args[0]

			if format == "" {
				cfg, err := loadSettings()
				if err != nil {
					return err
				}
				format = cfg.Format
			}

			if output == "" {
				outPath, err := render.File(cmd.Context(), path, format)
				if err != nil {
					return describeRenderErr(err)
				}
				logger.Info("rendered", "file", path, "output", outPath)
				return nil
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			out, err := render.Source(cmd.Context(), string(data), format)
			if err != nil {
				return describeRenderErr(err)
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return err
			}
			logger.Info("rendered", "file", path, "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: svg, png, or dot (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: input path with format extension)")
	return cmd
}

// describeRenderErr adds an install hint for the renderer-not-installed case.
func describeRenderErr(err error) error {
	if errors.Is(err, render.ErrNotInstalled) {
		return errors.New("graphviz is not installed; install it and ensure the dot command is on PATH")
	}
	return err
}
