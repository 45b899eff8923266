// Package commands implements the CLI commands for swatch.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.trai.ch/swatch/internal/adapters/detector"
	"go.trai.ch/swatch/internal/app"
	"go.trai.ch/swatch/internal/build"
	"go.trai.ch/swatch/internal/core/domain"
	"go.trai.ch/swatch/internal/core/ports"
	"go.trai.ch/swatch/internal/ui/output"
)

// Application is the part of the application layer the CLI drives.
type Application interface {
	Validate(ctx context.Context, patterns []string, root string) ([]app.ValidationResult, error)
	Resolve(ctx context.Context, req app.ResolveRequest) (domain.Resolution, bool, error)
	Dump(ctx context.Context, config string) (*app.Report, error)
	Watch(ctx context.Context, config string, onChange func(*domain.Theme)) error
	EnableTracing() func(context.Context) error
}

// jsonLogger is implemented by loggers that can switch to JSON output.
type jsonLogger interface {
	SetJSON(enable bool)
}

// CLI represents the command line interface for swatch.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command

	config   string
	output   string
	logJSON  bool
	trace    bool
	shutdown func(context.Context) error

	teaOptions []tea.ProgramOption
}

// New creates a new CLI instance with the given app.
func New(a Application, logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "swatch",
		Short:         "Validate, inspect and resolve UI theme overrides",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  logger,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.config, "config", "c", "", "Theme file to use (default: the embedded application theme)")
	flags.StringVar(&c.output, "output", "auto", "Output style: auto, pretty or plain")
	flags.BoolVar(&c.logJSON, "log-json", false, "Write log messages as JSON")
	flags.BoolVar(&c.trace, "trace", false, "Log a line for every traced operation")

	rootCmd.PersistentPreRunE = c.before
	rootCmd.PersistentPostRunE = c.after

	rootCmd.AddCommand(c.newValidateCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newDumpCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newBrowseCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) before(_ *cobra.Command, _ []string) error {
	if l, ok := c.logger.(jsonLogger); ok && c.logJSON {
		l.SetJSON(true)
	}
	if c.trace {
		c.shutdown = c.app.EnableTracing()
	}
	return nil
}

func (c *CLI) after(cmd *cobra.Command, _ []string) error {
	if c.shutdown == nil {
		return nil
	}
	return c.shutdown(cmd.Context())
}

// renderer returns a lipgloss renderer for w honoring --output.
func (c *CLI) renderer(w io.Writer) *lipgloss.Renderer {
	r := output.Renderer(w)
	mode := detector.ResolveMode(detector.DetectEnvironment(stdoutFile(w)), c.output)
	if mode == detector.ModePlain {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

func stdoutFile(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// WithTeaOptions adds options to the Bubble Tea program started by browse. Used for testing.
func (c *CLI) WithTeaOptions(opts ...tea.ProgramOption) {
	c.teaOptions = append(c.teaOptions, opts...)
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
