package commands

import (
	"bytes"
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.trai.ch/swatch/internal/app"
	"go.trai.ch/swatch/internal/core/domain"
	"go.trai.ch/swatch/internal/tui"
	"golang.org/x/sync/errgroup"
)

// outputLogger is implemented by loggers whose destination can be moved.
type outputLogger interface {
	SetOutput(w io.Writer)
}

func (c *CLI) newBrowseCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Explore the theme's components interactively",
		Long: "Opens a terminal browser listing every component and its default resolution.\n" +
			"With --watch the --config file is reloaded on change while browsing.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			report, err := c.app.Dump(ctx, c.config)
			if err != nil {
				return err
			}

			// Log lines would tear the screen; hold them until the browser exits.
			var held bytes.Buffer
			if l, ok := c.logger.(outputLogger); ok {
				l.SetOutput(&held)
				defer func() {
					l.SetOutput(cmd.ErrOrStderr())
					_, _ = held.WriteTo(cmd.ErrOrStderr())
				}()
			}

			g, gctx := errgroup.WithContext(ctx)
			var updates chan *app.Report
			if watch {
				updates = make(chan *app.Report)
				g.Go(func() error {
					defer close(updates)
					return c.app.Watch(gctx, c.config, func(theme *domain.Theme) {
						select {
						case updates <- app.NewReport(theme):
						case <-gctx.Done():
						}
					})
				})
			}

			opts := append([]tea.ProgramOption{
				tea.WithContext(gctx),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			}, c.teaOptions...)

			_, runErr := tea.NewProgram(tui.NewModel(report, updates), opts...).Run()
			cancel()

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			if errors.Is(runErr, tea.ErrProgramKilled) {
				return nil
			}
			return runErr
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the --config file on change while browsing")

	return cmd
}
