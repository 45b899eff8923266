package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/swatch/internal/app"
	"go.trai.ch/swatch/internal/ui/style"
)

func (c *CLI) newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every component override with its default resolution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Dump(cmd.Context(), c.config)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderReport(out, c.renderer(out), report)
			return nil
		},
	}
}

func renderReport(w io.Writer, r *lipgloss.Renderer, report *app.Report) {
	title := r.NewStyle().Bold(true).Foreground(style.Iris)
	slot := r.NewStyle().Foreground(style.Green)
	muted := r.NewStyle().Foreground(style.Slate)

	_, _ = fmt.Fprintf(w, "%s %s\n", muted.Render("source:"), report.Source.Path)
	_, _ = fmt.Fprintf(w, "%s %s\n", muted.Render("fingerprint:"), report.Source.Fingerprint)
	for _, name := range slices.Sorted(maps.Keys(report.Colors)) {
		_, _ = fmt.Fprintf(w, "%s %s=%s\n", muted.Render("color:"), name, report.Colors[name])
	}

	for _, comp := range report.Components {
		_, _ = fmt.Fprintln(w)

		header := title.Render(comp.Name)
		if len(comp.Defaults) > 0 {
			header += " " + muted.Render("["+comp.Defaults.String()+"]")
		}
		_, _ = fmt.Fprintln(w, header)

		for _, s := range comp.Slots {
			classes := s.Classes.String()
			if classes == "" {
				classes = muted.Render("(none)")
			}
			_, _ = fmt.Fprintf(w, "  %s %s\n", slot.Render(s.Name+":"), classes)
		}
		if comp.Rules > 0 {
			_, _ = fmt.Fprintf(w, "  %s\n", muted.Render(fmt.Sprintf("%d compound rule(s)", comp.Rules)))
		}
	}
}
