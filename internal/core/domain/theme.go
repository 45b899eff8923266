// Package domain contains the theme model and the rules that resolve it into class lists.
package domain

import (
	"maps"
	"slices"

	"go.trai.ch/zerr"
	"go.uber.org/multierr"
)

// Source describes where a theme was loaded from.
type Source struct {
	// Path is the file the theme was read from, or a descriptive name for embedded themes.
	Path string
	// Fingerprint is a content digest of the normalized document.
	Fingerprint string
}

// Theme is the immutable set of component overrides for an application.
// Any number of goroutines may read it concurrently.
type Theme struct {
	colors     map[string]string
	components map[string]*Component
	order      []string
	source     Source
}

// NewTheme builds a theme from components in declaration order.
// Two components with the same name are rejected; the later one never replaces the earlier one.
func NewTheme(source Source, colors map[string]string, components []*Component) (*Theme, error) {
	t := &Theme{
		colors:     maps.Clone(colors),
		components: make(map[string]*Component, len(components)),
		source:     source,
	}
	if t.colors == nil {
		t.colors = map[string]string{}
	}

	var errs error
	for _, c := range components {
		if _, exists := t.components[c.name]; exists {
			errs = multierr.Append(errs, zerr.With(ErrDuplicateComponent, "component", c.name))
			continue
		}
		t.components[c.name] = c
		t.order = append(t.order, c.name)
	}
	if errs != nil {
		return nil, errs
	}
	return t, nil
}

// Source returns where the theme came from.
func (t *Theme) Source() Source {
	return t.source
}

// Colors returns a copy of the semantic color mapping.
func (t *Theme) Colors() map[string]string {
	return maps.Clone(t.colors)
}

// ComponentNames returns the component names in declaration order.
func (t *Theme) ComponentNames() []string {
	return slices.Clone(t.order)
}

// Component returns the overrides for name.
func (t *Theme) Component(name string) (*Component, bool) {
	c, ok := t.components[name]
	return c, ok
}

// Lookup is the strict form of Component for callers that want an error.
func (t *Theme) Lookup(name string) (*Component, error) {
	c, ok := t.components[name]
	if !ok {
		return nil, zerr.With(ErrComponentNotFound, "component", name)
	}
	return c, nil
}

// Resolve returns the override classes for a slot of a component instance.
// A component without overrides yields an empty resolution and false; the
// caller keeps the component library's built-in styling in that case.
func (t *Theme) Resolve(component, slot string, state VariantState) (Resolution, bool) {
	c, ok := t.components[component]
	if !ok {
		if slot == "" {
			slot = BaseSlot
		}
		return Resolution{
			Component: component,
			Slot:      slot,
			Classes:   ClassList{},
			Variants:  state.Clone(),
		}, false
	}
	return c.Resolve(slot, state), true
}
