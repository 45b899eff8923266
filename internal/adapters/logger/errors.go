package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/multierr"
)

// zerrError is the part of *zerr.Error the formatter relies on.
type zerrError interface {
	Message() string
	Metadata() map[string]any
}

// ErrorEntry is one level of an error chain prepared for display.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the chain of err. zerr levels contribute their own
// message and metadata; a level with an empty message lends its metadata to the
// next level. A combined multierr error ends the walk with one entry per error.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any

	for current := err; current != nil; {
		if errs := multierr.Errors(current); len(errs) > 1 {
			for _, e := range errs {
				entries = append(entries, flatten(e))
			}
			break
		}

		z, ok := current.(zerrError)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
			break
		}

		meta := z.Metadata()
		if z.Message() == "" {
			if pending == nil {
				pending = map[string]any{}
			}
			maps.Copy(pending, meta)
			current = errors.Unwrap(current)
			continue
		}
		maps.Copy(meta, pending)
		pending = nil

		entries = append(entries, ErrorEntry{Message: z.Message(), Metadata: meta})
		current = errors.Unwrap(current)
	}

	return entries
}

// flatten renders a whole chain as a single entry: messages joined by ": "
// and metadata from every level merged, outer levels winning.
func flatten(err error) ErrorEntry {
	var parts []string
	meta := map[string]any{}

	for current := err; current != nil; {
		z, ok := current.(zerrError)
		if !ok {
			parts = append(parts, current.Error())
			break
		}
		for k, v := range z.Metadata() {
			if _, set := meta[k]; !set {
				meta[k] = v
			}
		}
		if z.Message() != "" {
			parts = append(parts, z.Message())
		}
		current = errors.Unwrap(current)
	}

	if len(meta) == 0 {
		meta = nil
	}
	return ErrorEntry{Message: strings.Join(parts, ": "), Metadata: meta}
}

// formatErrorEntries renders entries as:
//
//	Error: <first>
//	       key: value
//
//	  Caused by:
//	    → <next>
//	      key: value
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		var head, indent string
		if i == 0 {
			head, indent = "Error: ", "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, indent = "    → ", "      "
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
