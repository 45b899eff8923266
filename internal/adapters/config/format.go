package config

import (
	"path/filepath"
	"strings"

	"go.trai.ch/swatch/internal/core/domain"
	"go.trai.ch/zerr"
)

// Format is the syntax of a theme document.
type Format string

const (
	// FormatYAML is a YAML document (.yaml, .yml).
	FormatYAML Format = "yaml"
	// FormatJSON is a plain JSON document (.json).
	FormatJSON Format = "json"
	// FormatJSONC is JSON with comments and trailing commas (.jsonc).
	FormatJSONC Format = "jsonc"
)

// Extensions lists the file extensions recognised as theme documents.
var Extensions = domain.ThemeExtensions

// FormatOf picks the document format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".jsonc":
		return FormatJSONC, nil
	default:
		return "", zerr.With(domain.ErrUnsupportedFormat, "path", path)
	}
}
