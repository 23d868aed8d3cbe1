// Package acme wraps the external acme.sh client. Certificate
// cryptography and the Cloudflare DNS-01 exchange are entirely
// acme.sh's job; this package only builds its command lines.
package acme

import (
	"fmt"
	"path/filepath"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/errors"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/executor"
)

// Credentials holds the Cloudflare API credentials passed to acme.sh
// through its documented environment variables.
type Credentials struct {
	Token     string
	AccountID string
	ZoneID    string
}

// Env returns the acme.sh dns_cf environment for these credentials.
func (c Credentials) Env() []string {
	return []string{
		"CF_Token=" + c.Token,
		"CF_Account_ID=" + c.AccountID,
		"CF_Zone_ID=" + c.ZoneID,
	}
}

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

// IsInstalled checks that the acme.sh script is runnable.
func IsInstalled(bin string) bool {
	_, err := cmdExecutor.LookPath(bin)
	return err == nil
}

// CacheDir returns the directory where acme.sh caches material for a
// domain issued with an EC key.
func CacheDir(home, domain string) string {
	return filepath.Join(home, domain+"_ecc")
}

// CertFile returns the full-chain certificate path inside a cache dir.
func CertFile(cacheDir string) string {
	return filepath.Join(cacheDir, "fullchain.cer")
}

// KeyFile returns the private key path inside a cache dir.
func KeyFile(cacheDir, domain string) string {
	return filepath.Join(cacheDir, domain+".key")
}

// Issue runs acme.sh to issue an EC-256 certificate for the domain and
// its wildcard via Cloudflare DNS validation. acme.sh output streams
// to the terminal so the user can follow the DNS challenge.
func Issue(bin string, creds Credentials, domain, wildcardDomain string) error {
	args := []string{
		"--issue",
		"--force",
		"-d", domain,
		"-d", wildcardDomain,
		"--dns", "dns_cf",
		"--keylength", "ec-256",
	}
	if err := cmdExecutor.Run(bin, creds.Env(), args...); err != nil {
		return errors.Exec("certificate issuance failed", err)
	}
	return nil
}

// CronLine returns the daily renewal crontab entry for an acme.sh
// installation.
func CronLine(bin, home string) string {
	return fmt.Sprintf(`0 0 * * * %s --cron --home %s > /dev/null`, bin, home)
}

// Bootstrap installs acme.sh from the upstream install script.
func Bootstrap() error {
	if err := cmdExecutor.Run("sh", nil, "-c", "curl -s https://get.acme.sh | sh"); err != nil {
		return errors.Exec("acme.sh installation failed", err)
	}
	return nil
}
