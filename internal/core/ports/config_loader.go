package ports

import "go.trai.ch/swatch/internal/core/domain"

// ConfigLoader defines the interface for loading a theme document.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads, validates and builds the theme stored at path.
	// An empty path selects the application theme compiled into the binary.
	Load(path string) (*domain.Theme, error)
}
