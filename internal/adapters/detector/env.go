// Package detector picks the CLI output mode from the terminal and CI environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how command output is rendered.
type OutputMode int

const (
	// ModeAuto detects the mode from the environment.
	ModeAuto OutputMode = iota
	// ModePretty renders colored, styled output.
	ModePretty
	// ModePlain renders unstyled text suitable for pipes and CI logs.
	ModePlain
)

// String returns the flag value that selects the mode.
func (m OutputMode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModePlain:
		return "plain"
	default:
		return "auto"
	}
}

// IsCI reports whether the CI environment variable is set to a true value.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// DetectEnvironment returns ModePretty when f is a terminal outside CI and ModePlain otherwise.
func DetectEnvironment(f *os.File) OutputMode {
	if f == nil || !term.IsTerminal(int(f.Fd())) || IsCI() {
		return ModePlain
	}
	return ModePretty
}

// ResolveMode applies the user's --output flag to the detected mode.
// Unknown values fall back to the detected mode.
func ResolveMode(detected OutputMode, flag string) OutputMode {
	switch flag {
	case "pretty", "color":
		return ModePretty
	case "plain", "ci":
		return ModePlain
	default:
		return detected
	}
}
