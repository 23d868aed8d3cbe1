package cli

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/acme"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/errors"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/executor"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/nginx"
)

// resetIssueCertFlags restores issue-cert's flag variables to their
// defaults so cases don't leak state into each other.
func resetIssueCertFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		issueCFToken = ""
		issueCFAccountID = ""
		issueCFZoneID = ""
		issueDomain = ""
		issueWildcard = ""
		issueACMEBin = ""
		issueACMEHome = ""
		issueCertDir = ""
		issueCertDirName = ""
		issueCertOutput = ""
		issueKeyOutput = ""
		issueNginxBin = ""
		issueReloadNginx = true
		issueDryRun = false
	}
	reset()
	t.Cleanup(reset)
}

// setOverrides swaps the --env override map for the test.
func setOverrides(t *testing.T, m map[string]string) {
	t.Helper()
	old := envOverrides
	envOverrides = m
	t.Cleanup(func() {
		envOverrides = old
	})
}

// countFiles counts regular files anywhere on the filesystem.
func countFiles(t *testing.T, fs afero.Fs) int {
	t.Helper()
	count := 0
	err := afero.Walk(fs, "/", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			count++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	return count
}

func issueOverrides() map[string]string {
	return map[string]string{
		"CF_TOKEN":      "tok",
		"CF_ACCOUNT_ID": "acct",
		"CF_ZONE_ID":    "zone",
		"DOMAIN":        "example.com",
		"ACME_BIN":      "/root/.acme.sh/acme.sh",
		"ACME_HOME":     "/root/.acme.sh",
		"CERT_DIR":      "/certs",
		"NGINX_BIN":     "nginx",
	}
}

func TestRunIssueCert(t *testing.T) {
	resetIssueCertFlags(t)
	setOverrides(t, issueOverrides())
	t.Setenv("CERT_OUTPUT_PATH", "")
	t.Setenv("KEY_OUTPUT_PATH", "")
	t.Setenv("WILDCARD_DOMAIN", "")

	b := NewMockDeps()
	installMockDeps(t, b)
	fs := b.Fs()

	// acme.sh leaves the issued material in its cache dir.
	acmeExec := &executor.MockExecutor{
		RunFunc: func(name string, env []string, args ...string) error {
			cache := "/root/.acme.sh/example.com_ecc"
			_ = afero.WriteFile(fs, cache+"/fullchain.cer", []byte("CERT"), 0644)
			_ = afero.WriteFile(fs, cache+"/example.com.key", []byte("KEY"), 0600)
			return nil
		},
	}
	acme.SetExecutor(acmeExec)
	defer acme.ResetExecutor()

	nginxExec := &executor.MockExecutor{}
	nginx.SetExecutor(nginxExec)
	defer nginx.ResetExecutor()

	if err := runIssueCert(nil, nil); err != nil {
		t.Fatalf("runIssueCert() error = %v", err)
	}

	if len(acmeExec.Calls) != 1 {
		t.Fatalf("expected 1 acme.sh call, got %d", len(acmeExec.Calls))
	}
	call := acmeExec.Calls[0]
	if call.Name != "/root/.acme.sh/acme.sh" {
		t.Errorf("expected acme.sh binary, got %s", call.Name)
	}
	wantArgs := []string{
		"--issue", "--force",
		"-d", "example.com",
		"-d", "*.example.com",
		"--dns", "dns_cf",
		"--keylength", "ec-256",
	}
	if !reflect.DeepEqual(call.Args, wantArgs) {
		t.Errorf("acme.sh args = %v, want %v", call.Args, wantArgs)
	}
	wantEnv := []string{"CF_Token=tok", "CF_Account_ID=acct", "CF_Zone_ID=zone"}
	if !reflect.DeepEqual(call.Env, wantEnv) {
		t.Errorf("acme.sh env = %v, want %v", call.Env, wantEnv)
	}

	cert, err := afero.ReadFile(fs, "/certs/example.com.cer")
	if err != nil {
		t.Fatalf("certificate not installed: %v", err)
	}
	if string(cert) != "CERT" {
		t.Errorf("certificate content = %q, want %q", cert, "CERT")
	}
	key, err := afero.ReadFile(fs, "/certs/example.com.key")
	if err != nil {
		t.Fatalf("key not installed: %v", err)
	}
	if string(key) != "KEY" {
		t.Errorf("key content = %q, want %q", key, "KEY")
	}
	info, err := fs.Stat("/certs/example.com.key")
	if err != nil {
		t.Fatalf("stat key failed: %v", err)
	}
	if got := info.Mode().Perm(); got != 0600 {
		t.Errorf("key installed with mode %v, want 0600", got)
	}

	if len(nginxExec.Calls) != 2 {
		t.Fatalf("expected nginx test and reload, got calls %v", nginxExec.Calls)
	}
	if nginxExec.Calls[0].Name != "nginx" || nginxExec.Calls[0].Args[0] != "-t" {
		t.Errorf("expected nginx -t first, got %v", nginxExec.Calls[0])
	}
	if nginxExec.Calls[1].Name != "systemctl" {
		t.Errorf("expected systemctl reload, got %v", nginxExec.Calls[1])
	}
}

func TestRunIssueCertDomainFromPrompt(t *testing.T) {
	resetIssueCertFlags(t)
	overrides := issueOverrides()
	delete(overrides, "DOMAIN")
	setOverrides(t, overrides)
	t.Setenv("DOMAIN", "")
	t.Setenv("WILDCARD_DOMAIN", "")
	t.Setenv("CERT_OUTPUT_PATH", "")
	t.Setenv("KEY_OUTPUT_PATH", "")

	// Domain comes from the prompt, wildcard accepts its default.
	b := NewMockDeps().WithStdinInput("prompted.example.com\n", "\n")
	installMockDeps(t, b)

	acmeExec := &executor.MockExecutor{
		RunFunc: func(name string, env []string, args ...string) error {
			cache := "/root/.acme.sh/prompted.example.com_ecc"
			_ = afero.WriteFile(b.Fs(), cache+"/fullchain.cer", []byte("CERT"), 0644)
			_ = afero.WriteFile(b.Fs(), cache+"/prompted.example.com.key", []byte("KEY"), 0600)
			return nil
		},
	}
	acme.SetExecutor(acmeExec)
	defer acme.ResetExecutor()
	nginx.SetExecutor(&executor.MockExecutor{})
	defer nginx.ResetExecutor()

	if err := runIssueCert(nil, nil); err != nil {
		t.Fatalf("runIssueCert() error = %v", err)
	}

	if len(acmeExec.Calls) != 1 {
		t.Fatalf("expected 1 acme.sh call, got %d", len(acmeExec.Calls))
	}
	args := strings.Join(acmeExec.Calls[0].Args, " ")
	if !strings.Contains(args, "-d prompted.example.com -d *.prompted.example.com") {
		t.Errorf("expected prompted domain in args, got %s", args)
	}
}

func TestRunIssueCertDryRun(t *testing.T) {
	resetIssueCertFlags(t)
	setOverrides(t, issueOverrides())
	t.Setenv("CERT_OUTPUT_PATH", "")
	t.Setenv("KEY_OUTPUT_PATH", "")
	t.Setenv("WILDCARD_DOMAIN", "")
	issueDryRun = true

	b := NewMockDeps()
	installMockDeps(t, b)

	acmeExec := &executor.MockExecutor{}
	acme.SetExecutor(acmeExec)
	defer acme.ResetExecutor()
	nginxExec := &executor.MockExecutor{}
	nginx.SetExecutor(nginxExec)
	defer nginx.ResetExecutor()

	if err := runIssueCert(nil, nil); err != nil {
		t.Fatalf("runIssueCert() error = %v", err)
	}

	if len(acmeExec.Calls) != 0 {
		t.Errorf("dry-run ran acme.sh: %v", acmeExec.Calls)
	}
	if len(nginxExec.Calls) != 0 {
		t.Errorf("dry-run touched nginx: %v", nginxExec.Calls)
	}
	if n := countFiles(t, b.Fs()); n != 0 {
		t.Errorf("dry-run wrote %d files", n)
	}
}

func TestRunIssueCertUnpairedOutputs(t *testing.T) {
	resetIssueCertFlags(t)
	setOverrides(t, issueOverrides())
	t.Setenv("KEY_OUTPUT_PATH", "")
	t.Setenv("WILDCARD_DOMAIN", "")
	issueCertOutput = "/certs/only.cer"

	installMockDeps(t, NewMockDeps())
	acmeExec := &executor.MockExecutor{}
	acme.SetExecutor(acmeExec)
	defer acme.ResetExecutor()

	err := runIssueCert(nil, nil)
	if !errors.Is(err, errors.ErrUnpairedOutputPaths) {
		t.Fatalf("expected ErrUnpairedOutputPaths, got %v", err)
	}
	if len(acmeExec.Calls) != 0 {
		t.Errorf("acme.sh ran despite validation failure: %v", acmeExec.Calls)
	}
}

func TestRunIssueCertInvalidDomain(t *testing.T) {
	resetIssueCertFlags(t)
	overrides := issueOverrides()
	overrides["DOMAIN"] = "bad domain.com"
	setOverrides(t, overrides)

	installMockDeps(t, NewMockDeps())

	err := runIssueCert(nil, nil)
	if err == nil {
		t.Fatal("expected error for invalid domain")
	}
	var cliErr *errors.CLIError
	if !errors.As(err, &cliErr) || cliErr.Code != errors.ErrCodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}
