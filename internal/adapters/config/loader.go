// Package config loads theme documents into the domain model.
package config

import (
	"github.com/tidwall/jsonc"
	"go.trai.ch/swatch/internal/core/domain"
	"go.trai.ch/swatch/internal/core/ports"
	"go.trai.ch/zerr"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader reads, decodes and validates theme documents.
type Loader struct {
	Logger ports.Logger
	Hasher ports.Hasher
	FS     FileSystem
}

// NewLoader creates a Loader that reads from the local filesystem.
func NewLoader(logger ports.Logger, hasher ports.Hasher) *Loader {
	return &Loader{
		Logger: logger,
		Hasher: hasher,
		FS:     NewOSFS(),
	}
}

// Load reads the theme at path. An empty path loads the embedded application theme.
func (l *Loader) Load(path string) (*domain.Theme, error) {
	if path == "" {
		return l.Parse(domain.BuiltinSource, FormatYAML, builtin)
	}

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := l.FS.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	theme, err := l.Parse(path, format, data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return theme, nil
}

// Parse decodes data in the given format. name is recorded as the theme source.
func (l *Loader) Parse(name string, format Format, data []byte) (*domain.Theme, error) {
	if format == FormatJSON || format == FormatJSONC {
		data = jsonc.ToJSON(data)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	doc, err := decodeDocument(&root)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrThemeInvalid.Error())
	}

	components := make([]*domain.Component, 0, len(doc.components))
	var errs error
	for _, dto := range doc.components {
		c, err := domain.NewComponent(dto.name, dto.def)
		if err != nil {
			for _, e := range multierr.Errors(err) {
				errs = multierr.Append(errs, zerr.With(e, "line", dto.line))
			}
			continue
		}
		if isEmpty(dto.def) {
			l.Logger.Warn("component '" + dto.name + "' declares no overrides")
		}
		components = append(components, c)
	}
	if errs != nil {
		return nil, zerr.Wrap(errs, domain.ErrThemeInvalid.Error())
	}

	source := domain.Source{Path: name, Fingerprint: l.Hasher.Fingerprint(data)}
	theme, err := domain.NewTheme(source, doc.colors, components)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrThemeInvalid.Error())
	}
	return theme, nil
}

func isEmpty(def domain.ComponentDef) bool {
	return len(def.Slots) == 0 &&
		len(def.DefaultVariants) == 0 &&
		len(def.Variants) == 0 &&
		len(def.CompoundVariants) == 0
}
