package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/swatch/internal/core/domain"
	"go.trai.ch/swatch/internal/ui/style"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload the --config file whenever it changes",
		Long: "Keeps the theme loaded and reloads it on every change to the file.\n" +
			"A broken edit is reported and the previous theme stays in effect.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			ok := c.renderer(out).NewStyle().Foreground(style.Green)

			return c.app.Watch(cmd.Context(), c.config, func(theme *domain.Theme) {
				src := theme.Source()
				_, _ = fmt.Fprintf(out, "%s %s %s (%d components)\n",
					ok.Render(style.Check), src.Path, src.Fingerprint, len(theme.ComponentNames()))
			})
		},
	}
}
