// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/swatch/internal/adapters/config"
	_ "go.trai.ch/swatch/internal/adapters/fs"
	_ "go.trai.ch/swatch/internal/adapters/logger"
	_ "go.trai.ch/swatch/internal/adapters/telemetry"
	_ "go.trai.ch/swatch/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/swatch/internal/app"
	_ "go.trai.ch/swatch/internal/engine/themestore"
)
