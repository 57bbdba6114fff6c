// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/darkmagic/internal/adapters/cas"
	_ "go.trai.ch/darkmagic/internal/adapters/config"
	_ "go.trai.ch/darkmagic/internal/adapters/exif"
	_ "go.trai.ch/darkmagic/internal/adapters/fs"
	_ "go.trai.ch/darkmagic/internal/adapters/logger"
	_ "go.trai.ch/darkmagic/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/darkmagic/internal/adapters/tui"
	// Register app and engine nodes.
	_ "go.trai.ch/darkmagic/internal/app"
	_ "go.trai.ch/darkmagic/internal/engine/scheduler"
)
