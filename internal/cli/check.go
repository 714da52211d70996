// ABOUTME: The dotkit check command: parse a DOT file and report structural lint diagnostics.
// ABOUTME: Severity labels are styled with lipgloss; error-severity findings fail the command.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/2389-research/dotkit/dot"
	"github.com/2389-research/dotkit/dot/validator"
)

// Severity label styles for check output.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// newCheckCmd creates the check command.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.dot>",
		Short: "Lint a DOT file for structural problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			path := args[0]

			doc, err := dot.ParseFile(path)
			if err != nil {
				return err
			}

			diags := validator.Lint(doc)
			logger.Debug("linted", "file", path, "findings", len(diags))

			errCount := 0
			for _, d := range diags {
				if d.Severity == validator.SeverityError {
					errCount++
				}
				fmt.Fprintf(os.Stdout, "%s %s (%s)\n", styleSeverity(d.Severity), d.Message, d.Rule)
			}

			if errCount > 0 {
				return fmt.Errorf("%d error finding(s) in %s", errCount, path)
			}
			if len(diags) == 0 {
				logger.Info("clean", "file", path)
			}
			return nil
		},
	}
}

// styleSeverity renders a severity label with its color.
func styleSeverity(severity string) string {
	switch severity {
	case validator.SeverityError:
		return styleError.Render("error:")
	case validator.SeverityWarning:
		return styleWarning.Render("warning:")
	default:
		return styleInfo.Render("info:")
	}
}
