package domain

// Resolution is the outcome of resolving one slot of one component instance.
type Resolution struct {
	Component string
	Slot      string
	// Classes is the merged override class list, in application order.
	Classes ClassList
	// Variants is the effective variant state after defaults were applied.
	Variants VariantState
}

// String returns the classes joined by spaces.
func (r Resolution) String() string {
	return r.Classes.String()
}

// EffectiveVariants overlays state on the component's defaults. An empty
// value counts as unset. A boolean axis that ends up unset selects "false".
func (c *Component) EffectiveVariants(state VariantState) VariantState {
	eff := c.defaults.Clone()
	for axis, value := range state {
		if value == "" {
			continue
		}
		eff[axis] = value
	}
	for _, v := range c.variants {
		if _, set := eff[v.Axis]; !set && v.boolean() {
			eff[v.Axis] = False
		}
	}
	return eff
}

// Resolve folds base classes, variant payloads and matching compound rules
// for slot, in that order, and merges the result so that later classes win.
// An empty slot means BaseSlot.
func (c *Component) Resolve(slot string, state VariantState) Resolution {
	if slot == "" {
		slot = BaseSlot
	}
	eff := c.EffectiveVariants(state)

	layers := make([]ClassList, 0, 1+len(c.variants)+len(c.compound))
	layers = append(layers, c.slots[slot])

	for _, v := range c.variants {
		value, ok := eff[v.Axis]
		if !ok {
			continue
		}
		if p, ok := v.payload(value); ok {
			layers = append(layers, p.For(slot))
		}
	}

	for _, r := range c.compound {
		if r.Matches(eff) {
			layers = append(layers, r.Class.For(slot))
		}
	}

	return Resolution{
		Component: c.name,
		Slot:      slot,
		Classes:   MergeClasses(layers...),
		Variants:  eff,
	}
}
