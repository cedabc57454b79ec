// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/revive/internal/adapters/loader"
	_ "go.trai.ch/revive/internal/adapters/logger"
	_ "go.trai.ch/revive/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/revive/internal/app"
)
