package cli

import (
	"github.com/PiliPili-Team/emby-proxy-cli/internal/executor"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/fsops"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/input"
)

// Dependencies aggregates the CLI's external dependencies for testability
type Dependencies struct {
	// Reader supplies interactive input for prompts
	Reader input.Reader

	// Executor runs system commands for commands that call tools
	// directly (package managers, LookPath checks)
	Executor executor.CommandExecutor

	// NewWriter creates the filesystem writer for a command run
	NewWriter func(dryRun bool) *fsops.Writer
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	Reader:    input.NewStdinReader(),
	Executor:  executor.NewSystemExecutor(),
	NewWriter: fsops.New,
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}
