package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/swatch/internal/ui/style"
	"go.trai.ch/zerr"
)

func (c *CLI) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [files...]",
		Short: "Check theme files for errors",
		Long: "Loads and validates every given file, glob or directory concurrently.\n" +
			"Without arguments the --config file, or the embedded theme, is validated.",
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := args
			if len(patterns) == 0 && c.config != "" {
				patterns = []string{c.config}
			}

			root, err := os.Getwd()
			if err != nil {
				return zerr.Wrap(err, "failed to get working directory")
			}

			results, err := c.app.Validate(cmd.Context(), patterns, root)

			out := cmd.OutOrStdout()
			r := c.renderer(out)
			ok := r.NewStyle().Foreground(style.Green)
			bad := r.NewStyle().Foreground(style.Red)
			muted := r.NewStyle().Foreground(style.Slate)

			for _, res := range results {
				if res.Err != nil {
					_, _ = fmt.Fprintf(out, "%s %s\n", bad.Render(style.Cross), res.Path)
					continue
				}
				detail := fmt.Sprintf("(%d components, %s)", res.Components, res.Fingerprint)
				_, _ = fmt.Fprintf(out, "%s %s %s\n", ok.Render(style.Check), res.Path, muted.Render(detail))
			}
			return err
		},
	}
}
