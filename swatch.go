// Package swatch gives host programs the application theme and the query
// they run against it when a component instance resolves its styling.
package swatch

import (
	"sync"

	"go.trai.ch/swatch/internal/adapters/config"
	"go.trai.ch/swatch/internal/adapters/fs"
	"go.trai.ch/swatch/internal/adapters/logger"
	"go.trai.ch/swatch/internal/core/domain"
)

type (
	// Theme is an immutable, validated set of component overrides.
	Theme = domain.Theme
	// Resolution is the outcome of resolving one slot of one component instance.
	Resolution = domain.Resolution
	// VariantState maps variant axes to the values selected for an instance.
	VariantState = domain.VariantState
	// ClassList is an ordered list of utility class tokens.
	ClassList = domain.ClassList
)

var appConfig = sync.OnceValues(func() (*Theme, error) {
	return newLoader().Load("")
})

// AppConfig returns the application theme compiled into the binary.
// It is parsed on first use and shared afterwards.
func AppConfig() (*Theme, error) {
	return appConfig()
}

// Load reads and validates the theme document at path.
func Load(path string) (*Theme, error) {
	return newLoader().Load(path)
}

func newLoader() *config.Loader {
	return config.NewLoader(logger.New(), fs.NewHasher())
}
