// Package cron installs crontab entries for the invoking user.
package cron

import (
	"strings"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/errors"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/executor"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/logger"
)

// cmdExecutor is the command executor (can be replaced for testing)
var cmdExecutor executor.CommandExecutor = executor.NewSystemExecutor()

// SetExecutor allows tests to inject a mock executor
func SetExecutor(exec executor.CommandExecutor) {
	cmdExecutor = exec
}

// ResetExecutor resets the executor to the default system executor
func ResetExecutor() {
	cmdExecutor = executor.NewSystemExecutor()
}

// EnsureEntry appends line to the current crontab unless it is already
// present. It returns true when the crontab was modified.
func EnsureEntry(line string) (bool, error) {
	current, err := currentCrontab()
	if err != nil {
		return false, err
	}
	for _, l := range strings.Split(current, "\n") {
		if strings.TrimSpace(l) == strings.TrimSpace(line) {
			logger.Debug("crontab entry already present")
			return false, nil
		}
	}

	updated := current
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += line + "\n"

	if err := cmdExecutor.RunWithInput(updated, "crontab", "-"); err != nil {
		return false, errors.Exec("failed to install crontab", err)
	}
	return true, nil
}

// currentCrontab returns the user's crontab, treating "no crontab" as
// empty. `crontab -l` exits non-zero when no crontab exists yet.
func currentCrontab() (string, error) {
	out, err := cmdExecutor.Execute("crontab", "-l")
	if err != nil {
		if strings.Contains(string(out), "no crontab") {
			return "", nil
		}
		return "", errors.Exec("failed to read crontab", err)
	}
	return string(out), nil
}
