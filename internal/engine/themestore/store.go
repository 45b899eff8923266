// Package themestore holds the current theme and swaps it on reload.
package themestore

import (
	"context"
	"sync"
	"sync/atomic"

	"go.trai.ch/swatch/internal/core/domain"
	"go.trai.ch/swatch/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store publishes the current theme to any number of readers.
// Readers never lock; loads and reloads are serialized.
type Store struct {
	loader ports.ConfigLoader
	tracer ports.Tracer
	logger ports.Logger

	mu      sync.Mutex
	path    string
	loaded  bool
	current atomic.Pointer[domain.Theme]
}

// New creates an empty Store.
func New(loader ports.ConfigLoader, tracer ports.Tracer, logger ports.Logger) *Store {
	return &Store{
		loader: loader,
		tracer: tracer,
		logger: logger,
	}
}

// Load loads the theme at path the first time it is called and returns the
// loaded theme afterwards. An empty path selects the embedded application theme.
// A failed first load leaves the store empty so Load may be retried.
func (s *Store) Load(ctx context.Context, path string) (*domain.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		if path != s.path {
			err := zerr.With(domain.ErrSourceMismatch, "loaded", sourceName(s.path))
			return nil, zerr.With(err, "requested", sourceName(path))
		}
		return s.current.Load(), nil
	}

	_, span := s.tracer.Start(ctx, "theme.load")
	defer span.End()
	span.SetAttribute("path", sourceName(path))

	theme, err := s.loader.Load(path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("fingerprint", theme.Source().Fingerprint)
	span.SetAttribute("components", len(theme.ComponentNames()))

	s.path = path
	s.loaded = true
	s.current.Store(theme)
	return theme, nil
}

// Current returns the current theme, or nil before the first successful Load.
func (s *Store) Current() *domain.Theme {
	return s.current.Load()
}

// Path returns the path the store is bound to. It is empty for the embedded theme.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Resolve resolves against the current theme. Before a theme is loaded every
// component is treated as having no override.
func (s *Store) Resolve(component, slot string, state domain.VariantState) (domain.Resolution, bool) {
	theme := s.current.Load()
	if theme == nil {
		empty, _ := domain.NewTheme(domain.Source{}, nil, nil)
		return empty.Resolve(component, slot, state)
	}
	return theme.Resolve(component, slot, state)
}

// Reload reads the bound source again and swaps in the new theme. It reports
// whether the theme changed. On failure the previous theme stays current and
// the error is logged and returned.
func (s *Store) Reload(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return false, domain.ErrThemeNotLoaded
	}

	_, span := s.tracer.Start(ctx, "theme.reload")
	defer span.End()
	span.SetAttribute("path", sourceName(s.path))

	theme, err := s.loader.Load(s.path)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrReloadFailed.Error()), "path", sourceName(s.path))
		span.RecordError(err)
		s.logger.Error(err)
		return false, err
	}

	previous := s.current.Load()
	if previous.Source().Fingerprint == theme.Source().Fingerprint {
		span.SetAttribute("changed", false)
		return false, nil
	}

	span.SetAttribute("changed", true)
	span.SetAttribute("fingerprint", theme.Source().Fingerprint)
	s.current.Store(theme)
	s.logger.Info("reloaded theme " + sourceName(s.path))
	return true, nil
}

func sourceName(path string) string {
	if path == "" {
		return domain.BuiltinSource
	}
	return path
}
