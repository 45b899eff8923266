package domain

import "strings"

// ClassList is an ordered list of utility class tokens.
type ClassList []string

// ParseClasses splits each value on whitespace and returns the tokens in order.
// Empty values contribute nothing.
func ParseClasses(values ...string) ClassList {
	var out ClassList
	for _, v := range values {
		out = append(out, strings.Fields(v)...)
	}
	return out
}

// String joins the tokens with single spaces.
func (c ClassList) String() string {
	return strings.Join(c, " ")
}

// Clone returns a copy that does not share storage with c.
func (c ClassList) Clone() ClassList {
	if c == nil {
		return nil
	}
	out := make(ClassList, len(c))
	copy(out, c)
	return out
}

// Payload maps slot names to the classes a variant value or compound rule contributes.
type Payload map[string]ClassList

// For returns the classes targeting slot.
func (p Payload) For(slot string) ClassList {
	return p[slot]
}

// Empty reports whether the payload carries no classes at all.
func (p Payload) Empty() bool {
	for _, classes := range p {
		if len(classes) > 0 {
			return false
		}
	}
	return true
}

func (p Payload) clone() Payload {
	out := make(Payload, len(p))
	for slot, classes := range p {
		out[slot] = classes.Clone()
	}
	return out
}
