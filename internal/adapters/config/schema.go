package config

import (
	"strconv"

	"go.trai.ch/swatch/internal/core/domain"
	"go.trai.ch/zerr"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Component fields accepted in a theme document.
const (
	fieldBase             = "base"
	fieldSlots            = "slots"
	fieldVariants         = "variants"
	fieldDefaultVariants  = "defaultVariants"
	fieldCompoundVariants = "compoundVariants"

	fieldClass     = "class"
	fieldClassName = "className"
)

// document is the decoded, not yet validated content of a theme file.
type document struct {
	colors     map[string]string
	components []componentDTO
}

// componentDTO is a component definition as it appears in the document.
type componentDTO struct {
	name string
	line int
	def  domain.ComponentDef
}

// pair is one key/value entry of a mapping node.
type pair struct {
	key   *yaml.Node
	value *yaml.Node
}

// pairs returns the entries of a mapping node in document order.
func pairs(n *yaml.Node) []pair {
	out := make([]pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, pair{key: n.Content[i], value: n.Content[i+1]})
	}
	return out
}

// decodeDocument walks the node tree of a theme file. Walking nodes instead
// of unmarshalling into maps keeps declaration order and lets duplicate keys
// be reported instead of silently collapsing.
func decodeDocument(root *yaml.Node) (*document, error) {
	if root.Kind == 0 {
		return nil, zerr.With(domain.ErrInvalidDocument, "reason", "empty document")
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, zerr.With(domain.ErrInvalidDocument, "reason", "empty document")
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, zerr.With(domain.ErrInvalidDocument, "line", root.Line)
	}

	var ui *yaml.Node
	for _, p := range pairs(root) {
		if p.key.Value != domain.UIKey {
			continue
		}
		if ui != nil {
			return nil, zerr.With(zerr.With(domain.ErrDuplicateKey, "key", domain.UIKey), "line", p.key.Line)
		}
		ui = p.value
	}
	if ui == nil {
		return nil, domain.ErrMissingUIRoot
	}
	if ui.Kind != yaml.MappingNode {
		return nil, zerr.With(zerr.With(domain.ErrInvalidDocument, "key", domain.UIKey), "line", ui.Line)
	}

	doc := &document{colors: map[string]string{}}
	seen := make(map[string]int)
	colorsLine := 0
	var errs error
	for _, p := range pairs(ui) {
		name := p.key.Value
		if name == domain.ColorsKey {
			if colorsLine != 0 {
				err := zerr.With(zerr.With(domain.ErrDuplicateKey, "key", domain.ColorsKey), "first_line", colorsLine)
				errs = multierr.Append(errs, zerr.With(err, "line", p.key.Line))
				continue
			}
			colorsLine = p.key.Line
			colors, err := decodeColors(p.value)
			errs = multierr.Append(errs, err)
			doc.colors = colors
			continue
		}
		if first, dup := seen[name]; dup {
			err := zerr.With(zerr.With(domain.ErrDuplicateComponent, "first_line", first), "line", p.key.Line)
			errs = multierr.Append(errs, zerr.With(err, "component", name))
			continue
		}
		seen[name] = p.key.Line

		def, err := decodeComponent(name, p.value)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		doc.components = append(doc.components, componentDTO{name: name, line: p.key.Line, def: def})
	}
	if errs != nil {
		return nil, errs
	}
	return doc, nil
}

func decodeColors(n *yaml.Node) (map[string]string, error) {
	colors := map[string]string{}
	if isNull(n) {
		return colors, nil
	}
	if n.Kind != yaml.MappingNode {
		return colors, zerr.With(zerr.With(domain.ErrInvalidDocument, "key", domain.ColorsKey), "line", n.Line)
	}
	var errs error
	for _, p := range pairs(n) {
		if _, dup := colors[p.key.Value]; dup {
			err := zerr.With(zerr.With(domain.ErrDuplicateKey, "key", p.key.Value), "line", p.key.Line)
			errs = multierr.Append(errs, err)
			continue
		}
		if p.value.Kind != yaml.ScalarNode {
			err := zerr.With(zerr.With(domain.ErrInvalidVariantValue, "color", p.key.Value), "line", p.value.Line)
			errs = multierr.Append(errs, err)
			continue
		}
		colors[p.key.Value] = p.value.Value
	}
	return colors, errs
}

//nolint:cyclop // one branch per component field
func decodeComponent(name string, n *yaml.Node) (domain.ComponentDef, error) {
	var def domain.ComponentDef
	if isNull(n) {
		return def, nil
	}
	if n.Kind != yaml.MappingNode {
		return def, zerr.With(zerr.With(domain.ErrInvalidDocument, "component", name), "line", n.Line)
	}

	var errs error
	for _, p := range pairs(n) {
		var err error
		switch p.key.Value {
		case fieldBase:
			var classes domain.ClassList
			classes, err = decodeClasses(p.value)
			if err == nil {
				def.Slots = append([]domain.Slot{{Name: domain.BaseSlot, Classes: classes}}, def.Slots...)
			}
		case fieldSlots:
			var slots []domain.Slot
			slots, err = decodeSlots(p.value)
			def.Slots = append(def.Slots, slots...)
		case fieldDefaultVariants:
			def.DefaultVariants, err = decodeDefaults(p.value)
		case fieldVariants:
			def.Variants, err = decodeVariants(p.value)
		case fieldCompoundVariants:
			def.CompoundVariants, err = decodeCompound(p.value)
		default:
			err = zerr.With(zerr.With(domain.ErrUnknownField, "field", p.key.Value), "line", p.key.Line)
		}
		if err != nil {
			errs = multierr.Append(errs, withComponent(err, name))
		}
	}
	return def, errs
}

// withComponent tags every error in err with the component name.
func withComponent(err error, name string) error {
	var out error
	for _, e := range multierr.Errors(err) {
		out = multierr.Append(out, zerr.With(e, "component", name))
	}
	return out
}

func decodeClasses(n *yaml.Node) (domain.ClassList, error) {
	switch {
	case isNull(n):
		return domain.ClassList{}, nil
	case n.Kind == yaml.ScalarNode:
		return domain.ParseClasses(n.Value), nil
	case n.Kind == yaml.SequenceNode:
		values := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, zerr.With(domain.ErrInvalidClassList, "line", item.Line)
			}
			values = append(values, item.Value)
		}
		return domain.ParseClasses(values...), nil
	default:
		return nil, zerr.With(domain.ErrInvalidClassList, "line", n.Line)
	}
}

func decodeSlots(n *yaml.Node) ([]domain.Slot, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, zerr.With(zerr.With(domain.ErrInvalidDocument, "field", fieldSlots), "line", n.Line)
	}
	var slots []domain.Slot
	var errs error
	for _, p := range pairs(n) {
		classes, err := decodeClasses(p.value)
		if err != nil {
			errs = multierr.Append(errs, zerr.With(err, "slot", p.key.Value))
			continue
		}
		slots = append(slots, domain.Slot{Name: p.key.Value, Classes: classes})
	}
	return slots, errs
}

func decodeDefaults(n *yaml.Node) ([]domain.Default, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, zerr.With(zerr.With(domain.ErrInvalidDocument, "field", fieldDefaultVariants), "line", n.Line)
	}
	var defaults []domain.Default
	var errs error
	for _, p := range pairs(n) {
		if p.value.Kind != yaml.ScalarNode {
			err := zerr.With(zerr.With(domain.ErrInvalidVariantValue, "axis", p.key.Value), "line", p.value.Line)
			errs = multierr.Append(errs, err)
			continue
		}
		defaults = append(defaults, domain.Default{Axis: p.key.Value, Value: scalarValue(p.value)})
	}
	return defaults, errs
}

func decodeVariants(n *yaml.Node) ([]domain.Variant, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, zerr.With(zerr.With(domain.ErrInvalidDocument, "field", fieldVariants), "line", n.Line)
	}
	var variants []domain.Variant
	var errs error
	for _, axis := range pairs(n) {
		if axis.value.Kind != yaml.MappingNode {
			err := zerr.With(zerr.With(domain.ErrInvalidDocument, "axis", axis.key.Value), "line", axis.value.Line)
			errs = multierr.Append(errs, err)
			continue
		}
		v := domain.Variant{Axis: axis.key.Value}
		for _, value := range pairs(axis.value) {
			payload, err := decodePayload(value.value)
			if err != nil {
				errs = multierr.Append(errs, zerr.With(zerr.With(err, "axis", axis.key.Value), "value", value.key.Value))
				continue
			}
			v.Values = append(v.Values, domain.VariantValue{Value: scalarValue(value.key), Class: payload})
		}
		variants = append(variants, v)
	}
	return variants, errs
}

func decodeCompound(n *yaml.Node) ([]domain.CompoundRule, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, zerr.With(zerr.With(domain.ErrInvalidDocument, "field", fieldCompoundVariants), "line", n.Line)
	}
	rules := make([]domain.CompoundRule, 0, len(n.Content))
	var errs error
	for i, item := range n.Content {
		if item.Kind != yaml.MappingNode {
			errs = multierr.Append(errs, zerr.With(zerr.With(domain.ErrInvalidDocument, "rule", i), "line", item.Line))
			continue
		}
		rule, err := decodeRule(item)
		if err != nil {
			errs = multierr.Append(errs, zerr.With(zerr.With(err, "rule", i), "line", item.Line))
			continue
		}
		rules = append(rules, rule)
	}
	return rules, errs
}

func decodeRule(n *yaml.Node) (domain.CompoundRule, error) {
	rule := domain.CompoundRule{Conditions: map[string][]string{}}
	for _, p := range pairs(n) {
		key := p.key.Value
		if key == fieldClass || key == fieldClassName {
			if rule.Class != nil {
				return rule, zerr.With(domain.ErrDuplicateKey, "key", key)
			}
			if isNull(p.value) {
				continue
			}
			payload, err := decodePayload(p.value)
			if err != nil {
				return rule, err
			}
			rule.Class = payload
			continue
		}
		if _, dup := rule.Conditions[key]; dup {
			return rule, zerr.With(domain.ErrDuplicateKey, "key", key)
		}
		switch p.value.Kind {
		case yaml.ScalarNode:
			rule.Conditions[key] = []string{scalarValue(p.value)}
		case yaml.SequenceNode:
			values := make([]string, 0, len(p.value.Content))
			for _, v := range p.value.Content {
				if v.Kind != yaml.ScalarNode {
					return rule, zerr.With(domain.ErrInvalidVariantValue, "axis", key)
				}
				values = append(values, scalarValue(v))
			}
			rule.Conditions[key] = values
		default:
			return rule, zerr.With(domain.ErrInvalidVariantValue, "axis", key)
		}
	}
	return rule, nil
}

// decodePayload accepts either a class list, which targets the base slot,
// or a mapping from slot name to class list.
func decodePayload(n *yaml.Node) (domain.Payload, error) {
	if n.Kind != yaml.MappingNode {
		classes, err := decodeClasses(n)
		if err != nil {
			return nil, err
		}
		return domain.Payload{domain.BaseSlot: classes}, nil
	}
	payload := make(domain.Payload, len(n.Content)/2)
	for _, p := range pairs(n) {
		if _, dup := payload[p.key.Value]; dup {
			return nil, zerr.With(zerr.With(domain.ErrDuplicateSlot, "slot", p.key.Value), "line", p.key.Line)
		}
		classes, err := decodeClasses(p.value)
		if err != nil {
			return nil, zerr.With(err, "slot", p.key.Value)
		}
		payload[p.key.Value] = classes
	}
	return payload, nil
}

// scalarValue returns the text of a scalar node. Booleans spelled "True" or
// "TRUE" are normalized to "true" and "false".
func scalarValue(n *yaml.Node) string {
	if n.Tag == "!!bool" {
		if b, err := strconv.ParseBool(n.Value); err == nil {
			return strconv.FormatBool(b)
		}
	}
	return n.Value
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
