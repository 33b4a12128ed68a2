package cmd

import (
	"github.com/charmbracelet/log"

	"github.com/xolan/tasktime/internal/cli"
	"github.com/xolan/tasktime/internal/logging"
	"github.com/xolan/tasktime/internal/service"
)

// deps is the global dependencies instance used by commands.
// In production, this is cli.DefaultDeps(). Tests can replace it.
var deps = cli.DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *cli.Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = cli.DefaultDeps()
}

// ensureServices builds the logger and services unless they were injected.
// The configured log level applies unless verbose forces debug.
func ensureServices(verbose bool) error {
	if deps.Logger == nil {
		deps.Logger = logging.New(deps.Stderr, "info", verbose)
	}
	if deps.Services != nil {
		return nil
	}

	services, err := service.NewServices(deps.Logger)
	if err != nil {
		return err
	}
	deps.Services = services

	if !verbose {
		if lvl, err := log.ParseLevel(services.Config.Get().LogLevel); err == nil {
			deps.Logger.SetLevel(lvl)
		}
	}
	deps.Logger.Debug("services ready", "config", services.Config.GetPath(), "journal", services.TimeLog.JournalPath())
	return nil
}
