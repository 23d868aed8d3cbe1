package cli

import (
	"github.com/spf13/cobra"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/acme"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/cron"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/errors"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/logger"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/output"
)

var (
	setupInstallZsh   bool
	setupInstallCron  bool
	setupInstallNginx bool
	setupACMEBin      string
	setupACMEHome     string
	setupDryRun       bool
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Prepare a host: zsh, nginx, acme.sh, and the renewal cron entry",
	Long: `Install the pieces a fresh host needs: zsh and nginx through the
system package manager, acme.sh through its upstream installer, and a
daily certificate-renewal crontab entry.

Each step is skipped when the tool is already present, and individual
steps can be disabled:

  emby-proxy setup --install-zsh=false
  emby-proxy setup --dry-run`,
	RunE: runSetup,
}

func init() {
	f := setupCmd.Flags()
	f.BoolVar(&setupInstallZsh, "install-zsh", true, "Install zsh via the package manager")
	f.BoolVar(&setupInstallCron, "install-cron", true, "Install the acme.sh renewal crontab entry")
	f.BoolVar(&setupInstallNginx, "install-nginx", true, "Install nginx via the package manager")
	f.StringVar(&setupACMEBin, "acme-bin", "", "acme.sh path (env: ACME_BIN)")
	f.StringVar(&setupACMEHome, "acme-home", "", "acme.sh home directory (env: ACME_HOME)")
	f.BoolVar(&setupDryRun, "dry-run", false, "Simulate actions without changes")

	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	r := newResolver()

	acmeBin := r.OptionalPath(setupACMEBin, "ACME_BIN")
	if acmeBin == "" {
		acmeBin = defaultACMEBin
	}
	acmeHome := r.OptionalPath(setupACMEHome, "ACME_HOME")
	if acmeHome == "" {
		acmeHome = defaultACMEHome
	}

	if setupInstallZsh {
		if err := installPackage("zsh"); err != nil {
			return err
		}
	}
	if setupInstallNginx {
		if err := installPackage("nginx"); err != nil {
			return err
		}
	}

	if acme.IsInstalled(acmeBin) {
		logger.Debug("acme.sh already installed at %s", acmeBin)
	} else if setupDryRun {
		output.DryRun("Would install acme.sh from get.acme.sh")
	} else {
		output.Info("Installing acme.sh...")
		if err := acme.Bootstrap(); err != nil {
			return err
		}
	}

	if setupInstallCron {
		line := acme.CronLine(acmeBin, acmeHome)
		if setupDryRun {
			output.DryRun("Would ensure crontab entry: %s", line)
		} else {
			changed, err := cron.EnsureEntry(line)
			if err != nil {
				return err
			}
			if changed {
				output.Success("Renewal crontab entry installed")
			} else {
				output.Info("Renewal crontab entry already present")
			}
		}
	}

	if setupDryRun {
		return nil
	}
	output.Success("Setup complete")
	return nil
}

// installPackage installs a package when its binary is missing,
// through whichever package manager the host has.
func installPackage(name string) error {
	if _, err := deps.Executor.LookPath(name); err == nil {
		logger.Debug("%s already installed", name)
		return nil
	}

	manager, installArgs := detectPackageManager()
	if manager == "" {
		return errors.Validation("no supported package manager found (apt-get, dnf, yum)")
	}

	if setupDryRun {
		output.DryRun("Would install %s via %s", name, manager)
		return nil
	}

	output.Info("Installing %s via %s...", name, manager)
	args := append(installArgs, name)
	if out, err := deps.Executor.Execute(manager, args...); err != nil {
		return errors.Exec("failed to install "+name+": "+string(out), err)
	}
	return nil
}

// detectPackageManager finds the first available package manager and
// its non-interactive install arguments.
func detectPackageManager() (string, []string) {
	candidates := []struct {
		bin  string
		args []string
	}{
		{"apt-get", []string{"install", "-y"}},
		{"dnf", []string{"install", "-y"}},
		{"yum", []string{"install", "-y"}},
	}
	for _, c := range candidates {
		if _, err := deps.Executor.LookPath(c.bin); err == nil {
			return c.bin, c.args
		}
	}
	return "", nil
}
