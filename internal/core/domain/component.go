package domain

import (
	"slices"
	"strconv"

	"go.trai.ch/zerr"
	"go.uber.org/multierr"
)

// BaseSlot is the slot that receives classes when no slot is named.
const BaseSlot = "base"

// Slot is a named sub-surface of a component and its base classes.
type Slot struct {
	Name    string
	Classes ClassList
}

// Default is the value assumed for an axis the caller leaves unset.
type Default struct {
	Axis  string
	Value string
}

// ComponentDef is the raw, ordered definition of a component's overrides.
type ComponentDef struct {
	Slots            []Slot
	DefaultVariants  []Default
	Variants         []Variant
	CompoundVariants []CompoundRule
}

// Component holds the validated overrides of one UI component.
// It is never modified after NewComponent returns.
type Component struct {
	name      string
	slots     map[string]ClassList
	slotOrder []string
	defaults  VariantState
	variants  []Variant
	compound  []CompoundRule
}

// NewComponent validates def and builds an immutable Component.
// All problems are reported together.
func NewComponent(name string, def ComponentDef) (*Component, error) {
	c := &Component{
		name:     name,
		slots:    make(map[string]ClassList, len(def.Slots)),
		defaults: make(VariantState, len(def.DefaultVariants)),
	}

	var errs error
	for _, s := range def.Slots {
		if _, exists := c.slots[s.Name]; exists {
			errs = multierr.Append(errs, zerr.With(zerr.With(ErrDuplicateSlot, "component", name), "slot", s.Name))
			continue
		}
		c.slots[s.Name] = s.Classes.Clone()
		c.slotOrder = append(c.slotOrder, s.Name)
	}

	for _, d := range def.DefaultVariants {
		if _, exists := c.defaults[d.Axis]; exists {
			errs = multierr.Append(errs, zerr.With(zerr.With(ErrDuplicateVariant, "component", name), "axis", d.Axis))
			continue
		}
		c.defaults[d.Axis] = d.Value
	}

	axes := make(map[string]struct{}, len(def.Variants))
	for _, v := range def.Variants {
		if _, exists := axes[v.Axis]; exists {
			errs = multierr.Append(errs, zerr.With(zerr.With(ErrDuplicateVariant, "component", name), "axis", v.Axis))
			continue
		}
		axes[v.Axis] = struct{}{}

		values := make(map[string]struct{}, len(v.Values))
		copied := Variant{Axis: v.Axis, Values: make([]VariantValue, 0, len(v.Values))}
		for _, vv := range v.Values {
			if _, exists := values[vv.Value]; exists {
				err := zerr.With(zerr.With(ErrDuplicateVariant, "component", name), "axis", v.Axis)
				errs = multierr.Append(errs, zerr.With(err, "value", vv.Value))
				continue
			}
			values[vv.Value] = struct{}{}
			copied.Values = append(copied.Values, VariantValue{Value: vv.Value, Class: vv.Class.clone()})
		}
		c.variants = append(c.variants, copied)
	}

	for i, r := range def.CompoundVariants {
		if err := validateRule(name, i, r); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		c.compound = append(c.compound, r.clone())
	}

	if errs != nil {
		return nil, errs
	}
	return c, nil
}

func validateRule(component string, index int, r CompoundRule) error {
	if len(r.Conditions) == 0 {
		return zerr.With(zerr.With(ErrRuleMissingCondition, "component", component), "rule", strconv.Itoa(index))
	}
	for axis, values := range r.Conditions {
		if len(values) == 0 {
			err := zerr.With(zerr.With(ErrRuleMissingCondition, "component", component), "rule", strconv.Itoa(index))
			return zerr.With(err, "axis", axis)
		}
	}
	if r.Class == nil {
		return zerr.With(zerr.With(ErrRuleMissingClass, "component", component), "rule", strconv.Itoa(index))
	}
	return nil
}

// Name returns the component name.
func (c *Component) Name() string {
	return c.name
}

// SlotNames returns the declared slots in declaration order.
func (c *Component) SlotNames() []string {
	return slices.Clone(c.slotOrder)
}

// DefaultVariants returns a copy of the declared defaults.
func (c *Component) DefaultVariants() VariantState {
	return c.defaults.Clone()
}

// Axes returns the variant axes in declaration order.
func (c *Component) Axes() []string {
	out := make([]string, 0, len(c.variants))
	for _, v := range c.variants {
		out = append(out, v.Axis)
	}
	return out
}

// CompoundRules returns a copy of the compound rules in declaration order.
func (c *Component) CompoundRules() []CompoundRule {
	out := make([]CompoundRule, 0, len(c.compound))
	for _, r := range c.compound {
		out = append(out, r.clone())
	}
	return out
}

// Targets returns every slot name the component contributes classes to,
// either as a base slot or through a variant or compound payload.
// Declared slots come first, in order, followed by the rest in first-seen order.
func (c *Component) Targets() []string {
	out := slices.Clone(c.slotOrder)
	seen := make(map[string]struct{}, len(out))
	for _, s := range out {
		seen[s] = struct{}{}
	}
	add := func(p Payload) {
		names := make([]string, 0, len(p))
		for slot := range p {
			if _, ok := seen[slot]; !ok {
				names = append(names, slot)
			}
		}
		slices.Sort(names)
		for _, slot := range names {
			seen[slot] = struct{}{}
			out = append(out, slot)
		}
	}
	for _, v := range c.variants {
		for _, vv := range v.Values {
			add(vv.Class)
		}
	}
	for _, r := range c.compound {
		add(r.Class)
	}
	return out
}
