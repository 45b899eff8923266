package domain

import (
	"regexp"
	"slices"
	"strings"
)

// MergeClasses concatenates the lists and drops every token that is overridden
// by a later token. Two tokens conflict when they carry the same modifiers,
// the same important flag and a utility from the same conflict group. A
// shorthand also overrides the earlier side-specific tokens it covers, so
// "px-4" is dropped by a later "p-2". Tokens whose utility is not recognised,
// or whose custom value has no recognisable type, only conflict with an
// identical token. Survivors keep the position of their last occurrence.
func MergeClasses(lists ...ClassList) ClassList {
	var all ClassList
	for _, l := range lists {
		all = append(all, l...)
	}
	if len(all) == 0 {
		return ClassList{}
	}

	seen := make(map[string]struct{}, len(all))
	out := make(ClassList, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		scope, group := conflictKey(all[i])
		key := scope + group
		if group == "" {
			key = "=" + all[i]
		}
		if _, dup := seen[key]; dup {
			continue
		}
		if group != "" && overridden(seen, scope, group) {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, all[i])
	}
	slices.Reverse(out)
	return out
}

// overridden reports whether a shorthand covering group was already kept
// under the same scope.
func overridden(seen map[string]struct{}, scope, group string) bool {
	for _, shorthand := range coveredBy[group] {
		if _, ok := seen[scope+shorthand]; ok {
			return true
		}
	}
	return false
}

// conflictKey returns the scope (modifiers and important flag) and the
// conflict group of a token. The group is "" when the utility is unknown.
func conflictKey(token string) (string, string) {
	modifiers, base := splitModifiers(token)

	important := false
	if strings.HasPrefix(base, "!") {
		important = true
		base = base[1:]
	} else if strings.HasSuffix(base, "!") {
		important = true
		base = base[:len(base)-1]
	}
	base = strings.TrimPrefix(base, "-")

	var b strings.Builder
	b.WriteString(modifiers)
	b.WriteByte('|')
	if important {
		b.WriteByte('!')
	}
	b.WriteByte('|')
	return b.String(), classify(base)
}

// splitModifiers splits "hover:after:bg-red-500" into "hover:after" and
// "bg-red-500". Colons inside brackets or parentheses are part of the value.
func splitModifiers(token string) (string, string) {
	depth := 0
	last := -1
	for i := 0; i < len(token); i++ {
		switch token[i] {
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				last = i
			}
		}
	}
	if last < 0 {
		return "", token
	}
	return token[:last], token[last+1:]
}

var exactGroups = map[string]string{
	"block": "display", "inline-block": "display", "inline": "display", "flex": "display",
	"inline-flex": "display", "grid": "display", "inline-grid": "display", "hidden": "display",
	"contents": "display", "table": "display", "table-row": "display", "table-cell": "display",
	"flow-root": "display", "list-item": "display",

	"static": "position", "fixed": "position", "absolute": "position", "relative": "position", "sticky": "position",

	"visible": "visibility", "invisible": "visibility", "collapse": "visibility",

	"isolate": "isolation", "isolation-auto": "isolation",

	"rounded": "rounded",
	"border":  "border-w",
	"shadow":  "shadow",
	"ring":    "ring-w",
	"outline": "outline-style",

	"underline": "text-decoration", "overline": "text-decoration",
	"line-through": "text-decoration", "no-underline": "text-decoration",

	"uppercase": "text-transform", "lowercase": "text-transform",
	"capitalize": "text-transform", "normal-case": "text-transform",

	"italic": "font-style", "not-italic": "font-style",

	"truncate": "text-overflow",

	"grow": "grow", "shrink": "shrink",
}

// prefixGroups is ordered so that longer prefixes are tried before shorter ones.
var prefixGroups = []struct {
	prefix string
	group  string
}{
	{"whitespace-", "whitespace"},
	{"space-x-", "space-x"},
	{"space-y-", "space-y"},
	{"gap-x-", "gap-x"},
	{"gap-y-", "gap-y"},
	{"gap-", "gap"},
	{"px-", "px"}, {"py-", "py"}, {"ps-", "ps"}, {"pe-", "pe"},
	{"pt-", "pt"}, {"pr-", "pr"}, {"pb-", "pb"}, {"pl-", "pl"}, {"p-", "p"},
	{"mx-", "mx"}, {"my-", "my"}, {"ms-", "ms"}, {"me-", "me"},
	{"mt-", "mt"}, {"mr-", "mr"}, {"mb-", "mb"}, {"ml-", "ml"}, {"m-", "m"},
	{"min-w-", "min-w"}, {"max-w-", "max-w"}, {"min-h-", "min-h"}, {"max-h-", "max-h"},
	{"size-", "size"}, {"w-", "w"}, {"h-", "h"},
	{"inset-x-", "inset-x"}, {"inset-y-", "inset-y"}, {"inset-", "inset"},
	{"top-", "top"}, {"right-", "right"}, {"bottom-", "bottom"}, {"left-", "left"},
	{"start-", "start"}, {"end-", "end"},
	{"z-", "z"},
	{"opacity-", "opacity"},
	{"order-", "order"},
	{"leading-", "leading"},
	{"tracking-", "tracking"},
	{"cursor-", "cursor"},
	{"overflow-x-", "overflow-x"}, {"overflow-y-", "overflow-y"}, {"overflow-", "overflow"},
	{"justify-items-", "justify-items"}, {"justify-self-", "justify-self"}, {"justify-", "justify-content"},
	{"items-", "align-items"}, {"self-", "align-self"},
	{"grid-cols-", "grid-cols"}, {"grid-rows-", "grid-rows"},
	{"col-span-", "col-span"}, {"row-span-", "row-span"},
	{"basis-", "basis"},
	{"grow-", "grow"}, {"shrink-", "shrink"},
	{"outline-offset-", "outline-offset"},
	{"ring-offset-", "ring-offset"},
	{"line-clamp-", "line-clamp"},
	{"aspect-", "aspect"},
	{"transition-", "transition"},
	{"duration-", "duration"},
	{"ease-", "ease"},
	{"pointer-events-", "pointer-events"},
	{"select-", "select"},
}

// covers lists the narrower groups each shorthand group sets.
var covers = map[string][]string{
	"p":  {"px", "py", "ps", "pe", "pt", "pr", "pb", "pl"},
	"px": {"pr", "pl", "ps", "pe"},
	"py": {"pt", "pb"},
	"m":  {"mx", "my", "ms", "me", "mt", "mr", "mb", "ml"},
	"mx": {"mr", "ml", "ms", "me"},
	"my": {"mt", "mb"},

	"size":     {"w", "h"},
	"gap":      {"gap-x", "gap-y"},
	"overflow": {"overflow-x", "overflow-y"},

	"inset":   {"inset-x", "inset-y", "top", "right", "bottom", "left", "start", "end"},
	"inset-x": {"right", "left", "start", "end"},
	"inset-y": {"top", "bottom"},

	"rounded": {
		"rounded-s", "rounded-e", "rounded-t", "rounded-r", "rounded-b", "rounded-l",
		"rounded-ss", "rounded-se", "rounded-ee", "rounded-es",
		"rounded-tl", "rounded-tr", "rounded-br", "rounded-bl",
	},
	"rounded-s": {"rounded-ss", "rounded-es"},
	"rounded-e": {"rounded-se", "rounded-ee"},
	"rounded-t": {"rounded-tl", "rounded-tr"},
	"rounded-r": {"rounded-tr", "rounded-br"},
	"rounded-b": {"rounded-br", "rounded-bl"},
	"rounded-l": {"rounded-tl", "rounded-bl"},

	"border-w":       sided("border-w-", "x", "y", "t", "r", "b", "l", "s", "e"),
	"border-w-x":     sided("border-w-", "r", "l", "s", "e"),
	"border-w-y":     sided("border-w-", "t", "b"),
	"border-color":   sided("border-color-", "x", "y", "t", "r", "b", "l", "s", "e"),
	"border-color-x": sided("border-color-", "r", "l", "s", "e"),
	"border-color-y": sided("border-color-", "t", "b"),
}

// coveredBy is the inverse of covers.
var coveredBy = func() map[string][]string {
	m := make(map[string][]string)
	for shorthand, groups := range covers {
		for _, g := range groups {
			m[g] = append(m[g], shorthand)
		}
	}
	return m
}()

func sided(prefix string, sides ...string) []string {
	out := make([]string, len(sides))
	for i, s := range sides {
		out[i] = prefix + s
	}
	return out
}

var (
	textSizes     = set("xs", "sm", "base", "lg", "xl", "2xl", "3xl", "4xl", "5xl", "6xl", "7xl", "8xl", "9xl")
	textAligns    = set("left", "center", "right", "justify", "start", "end")
	textWraps     = set("wrap", "nowrap", "balance", "pretty")
	fontWeights   = set("thin", "extralight", "light", "normal", "medium", "semibold", "bold", "extrabold", "black")
	borderStyles  = set("solid", "dashed", "dotted", "double", "hidden", "none")
	borderSides   = set("x", "y", "t", "r", "b", "l", "s", "e")
	roundedSides  = set("s", "e", "t", "r", "b", "l", "ss", "se", "ee", "es", "tl", "tr", "br", "bl")
	shadowSizes   = set("2xs", "xs", "sm", "md", "lg", "xl", "2xl", "none", "inner")
	bgSizes       = set("auto", "cover", "contain")
	bgAttachments = set("fixed", "local", "scroll")
	bgPositions   = set("bottom", "center", "left", "left-bottom", "left-top", "right",
		"right-bottom", "right-top", "top", "bottom-left", "bottom-right", "top-left", "top-right")
	bgRepeats      = set("repeat", "no-repeat", "repeat-x", "repeat-y", "repeat-round", "repeat-space")
	alignContents  = set("normal", "center", "start", "end", "between", "around", "evenly", "baseline", "stretch")
	flexDirections = set("row", "row-reverse", "col", "col-reverse")
	flexWraps      = set("wrap", "wrap-reverse", "nowrap")
)

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

func in(m map[string]struct{}, v string) bool {
	_, ok := m[v]
	return ok
}

// Kinds of custom "[...]" and "(...)" values.
const (
	kindLength = "length"
	kindNumber = "number"
	kindColor  = "color"
	kindImage  = "image"
	kindFamily = "family"
)

var typeHints = map[string]string{
	"length":      kindLength,
	"size":        kindLength,
	"percentage":  kindLength,
	"number":      kindNumber,
	"weight":      kindNumber,
	"color":       kindColor,
	"url":         kindImage,
	"image":       kindImage,
	"family-name": kindFamily,
}

var (
	lengthValue = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)(px|r?em|%|[sdl]?v[hw]|vmin|vmax|ch|ex|lh|pt|pc|cm|mm|in)$`)
	lengthFunc  = regexp.MustCompile(`^(calc|min|max|clamp)\(.*\)$`)
	numberValue = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)$`)
	colorValue  = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|(rgba?|hsla?|hwb|lab|lch|oklab|oklch|color|color-mix)\(.*\))$`)
	imageValue  = regexp.MustCompile(`^(url|image-set|(repeating-)?(linear|radial|conic)-gradient)\(.*\)$`)
)

// arbitrary reports whether v is a custom "[...]" or "(...)" value and, if so,
// which kind of value it holds. The kind is "" when it cannot be told, as for
// a bare CSS variable.
func arbitrary(v string) (string, bool) {
	if len(v) < 2 {
		return "", false
	}
	if !(v[0] == '[' && v[len(v)-1] == ']') && !(v[0] == '(' && v[len(v)-1] == ')') {
		return "", false
	}
	inner := v[1 : len(v)-1]

	if hint, _, found := strings.Cut(inner, ":"); found {
		if kind, ok := typeHints[hint]; ok {
			return kind, true
		}
	}

	switch {
	case strings.HasPrefix(inner, "--"), strings.HasPrefix(inner, "var("):
		return "", true
	case lengthValue.MatchString(inner), lengthFunc.MatchString(inner):
		return kindLength, true
	case numberValue.MatchString(inner):
		return kindNumber, true
	case colorValue.MatchString(inner):
		return kindColor, true
	case imageValue.MatchString(inner):
		return kindImage, true
	}
	return "", true
}

// classify returns the conflict group of a utility, or "" when unknown.
//
//nolint:cyclop,gocyclo // flat lookup table
func classify(utility string) string {
	if g, ok := exactGroups[utility]; ok {
		return g
	}

	switch {
	case strings.HasPrefix(utility, "rounded-"):
		side, _, _ := strings.Cut(utility[len("rounded-"):], "-")
		if in(roundedSides, side) {
			return "rounded-" + side
		}
		return "rounded"
	case strings.HasPrefix(utility, "bg-"):
		return classifyBackground(utility[len("bg-"):])
	case strings.HasPrefix(utility, "text-"):
		v := utility[len("text-"):]
		if kind, ok := arbitrary(v); ok {
			switch kind {
			case kindLength:
				return "text-size"
			case kindColor:
				return "text-color"
			}
			return ""
		}
		switch {
		case in(textSizes, v):
			return "text-size"
		case in(textAligns, v):
			return "text-align"
		case in(textWraps, v):
			return "text-wrap"
		case v == "ellipsis" || v == "clip":
			return "text-overflow"
		}
		return "text-color"
	case strings.HasPrefix(utility, "font-"):
		v := utility[len("font-"):]
		if kind, ok := arbitrary(v); ok {
			switch kind {
			case kindNumber:
				return "font-weight"
			case kindFamily:
				return "font-family"
			}
			return ""
		}
		if in(fontWeights, v) {
			return "font-weight"
		}
		return "font-family"
	case strings.HasPrefix(utility, "border-"):
		return classifyBorder(utility[len("border-"):])
	case strings.HasPrefix(utility, "shadow-"):
		v := utility[len("shadow-"):]
		if kind, ok := arbitrary(v); ok {
			if kind == kindColor {
				return "shadow-color"
			}
			return ""
		}
		if in(shadowSizes, v) {
			return "shadow"
		}
		return "shadow-color"
	case strings.HasPrefix(utility, "ring-") && !strings.HasPrefix(utility, "ring-offset-"):
		v := utility[len("ring-"):]
		if v == "inset" {
			return "ring-inset"
		}
		if kind, ok := arbitrary(v); ok {
			return widthOrColor("ring", kind)
		}
		if isDigits(v) {
			return "ring-w"
		}
		return "ring-color"
	case strings.HasPrefix(utility, "outline-") && !strings.HasPrefix(utility, "outline-offset-"):
		v := utility[len("outline-"):]
		if in(borderStyles, v) {
			return "outline-style"
		}
		if kind, ok := arbitrary(v); ok {
			return widthOrColor("outline", kind)
		}
		if isDigits(v) {
			return "outline-w"
		}
		return "outline-color"
	case strings.HasPrefix(utility, "content-"):
		if in(alignContents, utility[len("content-"):]) {
			return "align-content"
		}
		return "content"
	case strings.HasPrefix(utility, "flex-"):
		v := utility[len("flex-"):]
		if in(flexDirections, v) {
			return "flex-direction"
		}
		if in(flexWraps, v) {
			return "flex-wrap"
		}
		return "flex"
	}

	for _, pg := range prefixGroups {
		if strings.HasPrefix(utility, pg.prefix) {
			return pg.group
		}
	}
	return ""
}

func classifyBackground(v string) string {
	if kind, ok := arbitrary(v); ok {
		switch kind {
		case kindColor:
			return "bg-color"
		case kindImage:
			return "bg-image"
		}
		return ""
	}
	switch {
	case in(bgSizes, v):
		return "bg-size"
	case in(bgAttachments, v):
		return "bg-attachment"
	case in(bgPositions, v):
		return "bg-position"
	case in(bgRepeats, v):
		return "bg-repeat"
	case v == "none" || strings.HasPrefix(v, "linear-") || strings.HasPrefix(v, "gradient-") ||
		strings.HasPrefix(v, "radial") || strings.HasPrefix(v, "conic"):
		return "bg-image"
	case strings.HasPrefix(v, "clip-"):
		return "bg-clip"
	case strings.HasPrefix(v, "origin-"):
		return "bg-origin"
	case strings.HasPrefix(v, "blend-"):
		return "bg-blend"
	}
	return "bg-color"
}

func classifyBorder(v string) string {
	if kind, ok := arbitrary(v); ok {
		return widthOrColor("border", kind)
	}
	if isDigits(v) {
		return "border-w"
	}
	if in(borderStyles, v) {
		return "border-style"
	}
	side, rest, _ := strings.Cut(v, "-")
	if in(borderSides, side) {
		if kind, ok := arbitrary(rest); ok {
			if g := widthOrColor("border", kind); g != "" {
				return g + "-" + side
			}
			return ""
		}
		if rest == "" || isDigits(rest) {
			return "border-w-" + side
		}
		return "border-color-" + side
	}
	return "border-color"
}

// widthOrColor picks between the width and color groups of prefix for a
// custom value, or returns "" when the kind is neither.
func widthOrColor(prefix, kind string) string {
	switch kind {
	case kindLength, kindNumber:
		return prefix + "-w"
	case kindColor:
		return prefix + "-color"
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
