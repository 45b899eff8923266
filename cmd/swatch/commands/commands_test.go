package commands_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/swatch/cmd/swatch/commands"
	"go.trai.ch/swatch/internal/app"
	"go.trai.ch/swatch/internal/build"
	"go.trai.ch/swatch/internal/core/domain"
	"go.trai.ch/swatch/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fakeApp struct {
	validateFunc func(ctx context.Context, patterns []string, root string) ([]app.ValidationResult, error)
	resolveFunc  func(ctx context.Context, req app.ResolveRequest) (domain.Resolution, bool, error)
	dumpFunc     func(ctx context.Context, config string) (*app.Report, error)
	watchFunc    func(ctx context.Context, config string, onChange func(*domain.Theme)) error
	traced       bool
	shutdown     bool
}

func (f *fakeApp) Validate(ctx context.Context, patterns []string, root string) ([]app.ValidationResult, error) {
	return f.validateFunc(ctx, patterns, root)
}

func (f *fakeApp) Resolve(ctx context.Context, req app.ResolveRequest) (domain.Resolution, bool, error) {
	return f.resolveFunc(ctx, req)
}

func (f *fakeApp) Dump(ctx context.Context, config string) (*app.Report, error) {
	return f.dumpFunc(ctx, config)
}

func (f *fakeApp) Watch(ctx context.Context, config string, onChange func(*domain.Theme)) error {
	return f.watchFunc(ctx, config, onChange)
}

func (f *fakeApp) EnableTracing() func(context.Context) error {
	f.traced = true
	return func(context.Context) error {
		f.shutdown = true
		return nil
	}
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	ctrl := gomock.NewController(t)
	cli := commands.New(a, mocks.NewMockLogger(ctrl))
	out := &bytes.Buffer{}
	cli.SetOutput(out, out)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_Resolve(t *testing.T) {
	var captured app.ResolveRequest
	fake := &fakeApp{
		resolveFunc: func(_ context.Context, req app.ResolveRequest) (domain.Resolution, bool, error) {
			captured = req
			return domain.Resolution{Classes: domain.ClassList{"after:bg-blue-300"}}, true, nil
		},
	}

	out, err := execute(t, fake, "resolve", "table", "thead", "--set", "loading", "-s", "loadingColor=primary", "-c", "theme.yaml")
	require.NoError(t, err)

	assert.Equal(t, "after:bg-blue-300\n", out)
	assert.Equal(t, app.ResolveRequest{
		Config:      "theme.yaml",
		Component:   "table",
		Slot:        "thead",
		Assignments: []string{"loading", "loadingColor=primary"},
	}, captured)
}

func TestCommands_Resolve_DefaultSlot(t *testing.T) {
	var captured app.ResolveRequest
	fake := &fakeApp{
		resolveFunc: func(_ context.Context, req app.ResolveRequest) (domain.Resolution, bool, error) {
			captured = req
			return domain.Resolution{Classes: domain.ClassList{}}, false, nil
		},
	}

	out, err := execute(t, fake, "resolve", "badge")
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
	assert.Empty(t, captured.Slot)
	assert.Empty(t, captured.Config)
}

func TestCommands_Resolve_RequiresComponent(t *testing.T) {
	_, err := execute(t, &fakeApp{}, "resolve")
	require.Error(t, err)
}

func TestCommands_Validate(t *testing.T) {
	var capturedPatterns []string
	fake := &fakeApp{
		validateFunc: func(_ context.Context, patterns []string, _ string) ([]app.ValidationResult, error) {
			capturedPatterns = patterns
			return []app.ValidationResult{
				{Path: "/repo/a.yaml", Components: 8, Fingerprint: "0123456789abcdef"},
				{Path: "/repo/b.yaml", Err: domain.ErrDuplicateComponent},
			}, zerr.Wrap(domain.ErrDuplicateComponent, domain.ErrValidationFailed.Error())
		},
	}

	out, err := execute(t, fake, "validate", "--output", "plain", "a.yaml", "b.yaml")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrValidationFailed.Error())
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, capturedPatterns)

	g := goldie.New(t)
	g.Assert(t, "validate_plain", []byte(out))
}

func TestCommands_Validate_UsesConfigFlag(t *testing.T) {
	var capturedPatterns []string
	fake := &fakeApp{
		validateFunc: func(_ context.Context, patterns []string, _ string) ([]app.ValidationResult, error) {
			capturedPatterns = patterns
			return nil, nil
		},
	}

	_, err := execute(t, fake, "validate", "--config", "theme.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"theme.yaml"}, capturedPatterns)

	_, err = execute(t, fake, "validate")
	require.NoError(t, err)
	assert.Empty(t, capturedPatterns)
}

func TestCommands_Dump(t *testing.T) {
	fake := &fakeApp{
		dumpFunc: func(_ context.Context, config string) (*app.Report, error) {
			assert.Equal(t, "app.config.yaml", config)
			return &app.Report{
				Source: domain.Source{Path: "app.config.yaml", Fingerprint: "0123456789abcdef"},
				Colors: map[string]string{"primary": "orange"},
				Components: []app.ComponentReport{
					{Name: "card", Slots: []app.SlotReport{{Name: "root", Classes: domain.ClassList{"rounded-[16px]"}}}},
					{
						Name:     "input",
						Defaults: domain.VariantState{"size": "xl"},
						Axes:     []string{"size"},
						Slots:    []app.SlotReport{{Name: "root", Classes: domain.ClassList{"w-full"}}},
					},
					{
						Name:  "table",
						Rules: 1,
						Slots: []app.SlotReport{
							{Name: "td", Classes: domain.ClassList{"!whitespace-normal"}},
							{Name: "thead", Classes: domain.ClassList{}},
						},
					},
				},
			}, nil
		},
	}

	out, err := execute(t, fake, "dump", "--output", "plain", "-c", "app.config.yaml")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "dump_plain", []byte(out))
}

func TestCommands_Watch(t *testing.T) {
	theme, err := domain.NewTheme(domain.Source{Path: "app.config.yaml", Fingerprint: "0123456789abcdef"}, nil, nil)
	require.NoError(t, err)

	fake := &fakeApp{
		watchFunc: func(_ context.Context, config string, onChange func(*domain.Theme)) error {
			assert.Equal(t, "app.config.yaml", config)
			onChange(theme)
			return nil
		},
	}

	out, err := execute(t, fake, "watch", "--output", "plain", "--config", "app.config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "✓ app.config.yaml 0123456789abcdef (0 components)\n", out)
}

func TestCommands_Trace(t *testing.T) {
	fake := &fakeApp{}

	_, err := execute(t, fake, "--trace", "version")
	require.NoError(t, err)
	assert.True(t, fake.traced)
	assert.True(t, fake.shutdown)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &fakeApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "swatch version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)
}

func TestCommands_Browse(t *testing.T) {
	dumped := false
	fake := &fakeApp{
		dumpFunc: func(_ context.Context, config string) (*app.Report, error) {
			dumped = true
			assert.Equal(t, "theme.yaml", config)
			return &app.Report{
				Source:     domain.Source{Path: "theme.yaml", Fingerprint: "0123456789abcdef"},
				Components: []app.ComponentReport{{Name: "card"}},
			}, nil
		},
		watchFunc: func(context.Context, string, func(*domain.Theme)) error {
			t.Error("browse without --watch must not watch")
			return nil
		},
	}

	ctrl := gomock.NewController(t)
	cli := commands.New(fake, mocks.NewMockLogger(ctrl))
	cli.WithTeaOptions(tea.WithInput(strings.NewReader("q")), tea.WithOutput(io.Discard))
	cli.SetOutput(io.Discard, io.Discard)
	cli.SetArgs([]string{"browse", "-c", "theme.yaml"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, dumped)
}

func TestCommands_Browse_Watch(t *testing.T) {
	watched := make(chan struct{})
	fake := &fakeApp{
		dumpFunc: func(context.Context, string) (*app.Report, error) {
			return &app.Report{Components: []app.ComponentReport{{Name: "card"}}}, nil
		},
		watchFunc: func(ctx context.Context, config string, _ func(*domain.Theme)) error {
			assert.Equal(t, "theme.yaml", config)
			close(watched)
			<-ctx.Done()
			return nil
		},
	}

	ctrl := gomock.NewController(t)
	cli := commands.New(fake, mocks.NewMockLogger(ctrl))
	cli.WithTeaOptions(tea.WithInput(&waitReader{wait: watched, data: "q"}), tea.WithOutput(io.Discard))
	cli.SetOutput(io.Discard, io.Discard)
	cli.SetArgs([]string{"browse", "--watch", "-c", "theme.yaml"})

	require.NoError(t, cli.Execute(context.Background()))
}

func TestCommands_Browse_DumpError(t *testing.T) {
	fake := &fakeApp{
		dumpFunc: func(context.Context, string) (*app.Report, error) {
			return nil, domain.ErrThemeInvalid
		},
	}

	_, err := execute(t, fake, "browse")
	assert.ErrorContains(t, err, domain.ErrThemeInvalid.Error())
}

// waitReader yields data only after wait is closed.
type waitReader struct {
	wait <-chan struct{}
	data string
	done bool
}

func (r *waitReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	<-r.wait
	r.done = true
	return copy(p, r.data), nil
}
