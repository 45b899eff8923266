package domain

const (
	// DefaultThemeFile is the theme document looked up when no path is given.
	DefaultThemeFile = "app.config.yaml"

	// BuiltinSource names the application theme compiled into the binary.
	BuiltinSource = "builtin:app.config"

	// UIKey is the top-level key holding the component overrides.
	UIKey = "ui"

	// ColorsKey is the reserved key under UIKey holding semantic colors.
	ColorsKey = "colors"
)

// ThemeExtensions lists the file extensions recognised as theme documents.
var ThemeExtensions = []string{".yaml", ".yml", ".json", ".jsonc"}
