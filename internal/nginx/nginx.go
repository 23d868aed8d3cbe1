// Package nginx validates and reloads nginx through its binary.
package nginx

import (
	"fmt"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/executor"
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

// Test validates the nginx config syntax with `nginx -t`
func Test(bin string) error {
	output, err := cmdExecutor.Execute(bin, "-t")
	if err != nil {
		return fmt.Errorf("nginx config test failed: %s", string(output))
	}
	return nil
}

// Reload reloads nginx to apply changes, preferring systemctl and
// falling back to the binary's own signal handling.
func Reload(bin string) error {
	output, err := cmdExecutor.Execute("systemctl", "reload", "nginx")
	if err != nil {
		output, err = cmdExecutor.Execute(bin, "-s", "reload")
		if err != nil {
			return fmt.Errorf("failed to reload nginx: %s", string(output))
		}
	}
	return nil
}

// TestAndReload runs a config test and, if it passes, reloads nginx.
func TestAndReload(bin string) error {
	if err := Test(bin); err != nil {
		return err
	}
	return Reload(bin)
}
