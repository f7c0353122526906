// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/mrmachine/reqs/internal/adapters/config"
	_ "github.com/mrmachine/reqs/internal/adapters/lockio"
	_ "github.com/mrmachine/reqs/internal/adapters/logger"
	_ "github.com/mrmachine/reqs/internal/adapters/pypi"
	_ "github.com/mrmachine/reqs/internal/adapters/reqfile"
	_ "github.com/mrmachine/reqs/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "github.com/mrmachine/reqs/internal/app"
	_ "github.com/mrmachine/reqs/internal/engine/planner"
	_ "github.com/mrmachine/reqs/internal/engine/resolver"
)
