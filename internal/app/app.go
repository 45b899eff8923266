// Package app implements the application layer for swatch.
package app

import (
	"context"
	"runtime"
	"slices"
	"time"

	"github.com/maruel/natural"
	"go.trai.ch/swatch/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/swatch/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/swatch/internal/core/domain"
	"go.trai.ch/swatch/internal/core/ports"
	"go.trai.ch/swatch/internal/engine/themestore"
	"go.trai.ch/zerr"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader   ports.ConfigLoader
	resolver ports.PathResolver
	store    *themestore.Store
	watcher  ports.Watcher
	logger   ports.Logger
	debounce time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	resolver ports.PathResolver,
	store *themestore.Store,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		loader:   loader,
		resolver: resolver,
		store:    store,
		watcher:  w,
		logger:   log,
		debounce: watcher.DefaultDebounceWindow,
	}
}

// WithDebounceWindow sets how long Watch waits for file events to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounce = d
	return a
}

// EnableTracing reports every span through the logger until the returned
// function is called.
func (a *App) EnableTracing() func(context.Context) error {
	return telemetry.Install(telemetry.NewLogBridge(a.logger))
}

// ValidationResult is the outcome of validating one theme file.
type ValidationResult struct {
	Path        string
	Fingerprint string
	Components  int
	Err         error
}

// Validate loads every theme matched by patterns, relative to root, concurrently.
// No patterns validates the embedded theme. Results are ordered by path; the
// returned error aggregates every failure.
func (a *App) Validate(ctx context.Context, patterns []string, root string) ([]ValidationResult, error) {
	paths := []string{""}
	if len(patterns) > 0 {
		var err error
		paths, err = a.resolver.ResolvePaths(patterns, root)
		if err != nil {
			return nil, err
		}
	}

	results := make([]ValidationResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.validateOne(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var errs error
	for _, r := range results {
		errs = multierr.Append(errs, r.Err)
	}
	if errs != nil {
		return results, zerr.Wrap(errs, domain.ErrValidationFailed.Error())
	}
	return results, nil
}

func (a *App) validateOne(path string) ValidationResult {
	result := ValidationResult{Path: path}
	if path == "" {
		result.Path = domain.BuiltinSource
	}

	theme, err := a.loader.Load(path)
	if err != nil {
		result.Err = err
		return result
	}
	result.Fingerprint = theme.Source().Fingerprint
	result.Components = len(theme.ComponentNames())
	return result
}

// ResolveRequest selects one slot of one component instance.
type ResolveRequest struct {
	// Config is the theme file; empty selects the embedded theme.
	Config    string
	Component string
	Slot      string
	// Assignments are "axis=value" strings; a bare axis means "true".
	Assignments []string
}

// Resolve returns the override classes for req. The boolean is false when the
// component has no override and the library defaults apply unchanged.
func (a *App) Resolve(ctx context.Context, req ResolveRequest) (domain.Resolution, bool, error) {
	state, err := domain.ParseAssignments(req.Assignments)
	if err != nil {
		return domain.Resolution{}, false, err
	}

	if _, err := a.store.Load(ctx, req.Config); err != nil {
		return domain.Resolution{}, false, err
	}

	res, ok := a.store.Resolve(req.Component, req.Slot, state)
	if !ok {
		a.logger.Warn("component '" + req.Component + "' has no override, library defaults apply")
	}
	return res, ok, nil
}

// SlotReport is the default resolution of one slot.
type SlotReport struct {
	Name    string
	Classes domain.ClassList
}

// ComponentReport summarizes one component's overrides.
type ComponentReport struct {
	Name     string
	Defaults domain.VariantState
	Axes     []string
	Rules    int
	Slots    []SlotReport
}

// Report summarizes a whole theme.
type Report struct {
	Source     domain.Source
	Colors     map[string]string
	Components []ComponentReport
}

// Dump loads the theme at config and summarizes it with NewReport.
func (a *App) Dump(ctx context.Context, config string) (*Report, error) {
	theme, err := a.store.Load(ctx, config)
	if err != nil {
		return nil, err
	}
	return NewReport(theme), nil
}

// NewReport resolves every slot each component touches with no variant state
// set. Components and slots are in natural order.
func NewReport(theme *domain.Theme) *Report {
	names := theme.ComponentNames()
	slices.SortFunc(names, compareNatural)

	report := &Report{
		Source:     theme.Source(),
		Colors:     theme.Colors(),
		Components: make([]ComponentReport, 0, len(names)),
	}
	for _, name := range names {
		c, _ := theme.Component(name)

		slots := c.Targets()
		slices.SortFunc(slots, compareNatural)

		cr := ComponentReport{
			Name:     name,
			Defaults: c.DefaultVariants(),
			Axes:     c.Axes(),
			Rules:    len(c.CompoundRules()),
			Slots:    make([]SlotReport, 0, len(slots)),
		}
		for _, slot := range slots {
			cr.Slots = append(cr.Slots, SlotReport{Name: slot, Classes: c.Resolve(slot, nil).Classes})
		}
		report.Components = append(report.Components, cr)
	}
	return report
}

func compareNatural(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	default:
		return 0
	}
}

// Watch loads the theme at config and reloads it whenever the file changes,
// until ctx is done. onChange is called with every theme that replaced the
// previous one. A broken edit is logged and the previous theme is kept.
func (a *App) Watch(ctx context.Context, config string, onChange func(*domain.Theme)) error {
	if config == "" {
		return domain.ErrWatchBuiltin
	}

	if _, err := a.store.Load(ctx, config); err != nil {
		return err
	}

	if err := a.watcher.Start(ctx, config); err != nil {
		return err
	}
	a.logger.Info("watching " + config)

	debouncer := watcher.NewDebouncer(a.debounce, func([]string) {
		if ctx.Err() != nil {
			return
		}
		changed, err := a.store.Reload(ctx)
		if err != nil || !changed {
			return
		}
		if onChange != nil {
			onChange(a.store.Current())
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
		if ctx.Err() == nil {
			return domain.ErrWatcherStopped
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return a.watcher.Stop()
	})

	return g.Wait()
}
