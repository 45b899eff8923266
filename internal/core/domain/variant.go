package domain

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// True is the variant value selected by a boolean axis that is on.
	True = "true"
	// False is the variant value selected by a boolean axis that is off.
	False = "false"
)

// Bool converts a boolean axis selection to its variant value.
func Bool(b bool) string {
	return strconv.FormatBool(b)
}

// VariantState maps variant axis names to the value selected for a component instance.
type VariantState map[string]string

// Clone returns a copy of s. A nil state clones to an empty one.
func (s VariantState) Clone() VariantState {
	out := make(VariantState, len(s))
	maps.Copy(out, s)
	return out
}

// String renders the state as sorted axis=value pairs.
func (s VariantState) String() string {
	keys := slices.Sorted(maps.Keys(s))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+s[k])
	}
	return strings.Join(parts, " ")
}

// ParseAssignments builds a state from "axis=value" strings.
// A bare axis name selects "true".
func ParseAssignments(assignments []string) (VariantState, error) {
	state := make(VariantState, len(assignments))
	for _, a := range assignments {
		axis, value, found := strings.Cut(a, "=")
		axis = strings.TrimSpace(axis)
		if axis == "" {
			return nil, zerr.With(ErrInvalidAssignment, "assignment", a)
		}
		if !found {
			value = True
		}
		state[axis] = strings.TrimSpace(value)
	}
	return state, nil
}

// VariantValue is one selectable value of a variant axis and the classes it contributes.
type VariantValue struct {
	Value string
	Class Payload
}

// Variant is a named axis with its values in declaration order.
type Variant struct {
	Axis   string
	Values []VariantValue
}

// payload returns the payload for value, if declared.
func (v Variant) payload(value string) (Payload, bool) {
	for _, vv := range v.Values {
		if vv.Value == value {
			return vv.Class, true
		}
	}
	return nil, false
}

// boolean reports whether every declared value is "true" or "false".
func (v Variant) boolean() bool {
	if len(v.Values) == 0 {
		return false
	}
	for _, vv := range v.Values {
		if vv.Value != True && vv.Value != False {
			return false
		}
	}
	return true
}

// CompoundRule applies Class when every condition holds at the same time.
// Each condition lists the values accepted for its axis.
type CompoundRule struct {
	Conditions map[string][]string
	Class      Payload
}

// Matches reports whether state satisfies every condition of the rule.
func (r CompoundRule) Matches(state VariantState) bool {
	for axis, accepted := range r.Conditions {
		got, ok := state[axis]
		if !ok || !slices.Contains(accepted, got) {
			return false
		}
	}
	return true
}

func (r CompoundRule) clone() CompoundRule {
	conds := make(map[string][]string, len(r.Conditions))
	for axis, values := range r.Conditions {
		conds[axis] = slices.Clone(values)
	}
	return CompoundRule{Conditions: conds, Class: r.Class.clone()}
}
