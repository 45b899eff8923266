package config

import _ "embed"

// builtin is the application's own theme, used when no file is given.
//
//go:embed app.config.yaml
var builtin []byte

// Builtin returns a copy of the embedded theme document.
func Builtin() []byte {
	out := make([]byte, len(builtin))
	copy(out, builtin)
	return out
}
