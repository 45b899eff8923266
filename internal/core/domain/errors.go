package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateComponent is returned when a theme document defines the same component twice.
	ErrDuplicateComponent = zerr.New("duplicate component definition")

	// ErrDuplicateSlot is returned when a component defines the same slot twice.
	ErrDuplicateSlot = zerr.New("duplicate slot definition")

	// ErrDuplicateVariant is returned when a variant axis or value is defined twice.
	ErrDuplicateVariant = zerr.New("duplicate variant definition")

	// ErrDuplicateKey is returned when any other mapping in a theme document repeats a key.
	ErrDuplicateKey = zerr.New("duplicate key")

	// ErrRuleMissingCondition is returned when a compound variant rule has no conditions.
	ErrRuleMissingCondition = zerr.New("compound variant rule has no condition")

	// ErrRuleMissingClass is returned when a compound variant rule has no class payload.
	ErrRuleMissingClass = zerr.New("compound variant rule has no class payload")

	// ErrUnknownField is returned when a component definition contains an unsupported field.
	ErrUnknownField = zerr.New("unknown component field")

	// ErrInvalidClassList is returned when a class value is neither a string nor a list of strings.
	ErrInvalidClassList = zerr.New("class value must be a string or a list of strings")

	// ErrInvalidVariantValue is returned when a variant value is not a scalar.
	ErrInvalidVariantValue = zerr.New("variant value must be a scalar")

	// ErrInvalidDocument is returned when a theme document does not have the expected shape.
	ErrInvalidDocument = zerr.New("invalid theme document")

	// ErrMissingUIRoot is returned when a theme document has no top-level ui mapping.
	ErrMissingUIRoot = zerr.New("theme document has no 'ui' section")

	// ErrUnsupportedFormat is returned when a theme file extension is not recognised.
	ErrUnsupportedFormat = zerr.New("unsupported theme file format")

	// ErrPathNotFound is returned when a theme path or pattern matches no file.
	ErrPathNotFound = zerr.New("theme path not found")

	// ErrConfigReadFailed is returned when the theme file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read theme file")

	// ErrConfigParseFailed is returned when the theme file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse theme file")

	// ErrThemeInvalid is returned when a theme document fails validation.
	ErrThemeInvalid = zerr.New("theme configuration is invalid")

	// ErrThemeNotLoaded is returned when the store is queried before a theme was loaded.
	ErrThemeNotLoaded = zerr.New("theme not loaded")

	// ErrSourceMismatch is returned when a loaded store is asked to load a different source.
	ErrSourceMismatch = zerr.New("theme store is bound to a different source")

	// ErrReloadFailed is returned when a reload cannot replace the current theme.
	ErrReloadFailed = zerr.New("failed to reload theme")

	// ErrValidationFailed is returned when at least one of several theme files is invalid.
	ErrValidationFailed = zerr.New("theme validation failed")

	// ErrWatchBuiltin is returned when asked to watch the embedded theme.
	ErrWatchBuiltin = zerr.New("the embedded theme cannot be watched, pass --config")

	// ErrWatcherStopped is returned when the file watcher ends before the context is done.
	ErrWatcherStopped = zerr.New("file watcher stopped unexpectedly")

	// ErrInvalidAssignment is returned when a variant assignment is not in axis=value form.
	ErrInvalidAssignment = zerr.New("invalid variant assignment, expected axis=value")

	// ErrComponentNotFound is returned by strict lookups when a component has no override.
	ErrComponentNotFound = zerr.New("component has no override")
)
