package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/acme"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/nginx"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/output"
)

var (
	issueCFToken     string
	issueCFAccountID string
	issueCFZoneID    string
	issueDomain      string
	issueWildcard    string
	issueACMEBin     string
	issueACMEHome    string
	issueCertDir     string
	issueCertDirName string
	issueCertOutput  string
	issueKeyOutput   string
	issueNginxBin    string
	issueReloadNginx bool
	issueDryRun      bool
)

var issueCertCmd = &cobra.Command{
	Use:   "issue-cert",
	Short: "Issue a certificate via acme.sh and optionally reload nginx",
	Long: `Issue an EC-256 certificate for a domain and its wildcard using
acme.sh with Cloudflare DNS validation, then install the full chain
and key into the certificate directory.

Cloudflare credentials come from flags, CF_TOKEN/CF_ACCOUNT_ID/
CF_ZONE_ID in the environment, or interactive prompts (the token
prompt does not echo).

Examples:
  emby-proxy issue-cert --domain example.com
  CF_TOKEN=... CF_ACCOUNT_ID=... CF_ZONE_ID=... emby-proxy issue-cert --domain example.com --dry-run`,
	RunE: runIssueCert,
}

func init() {
	f := issueCertCmd.Flags()
	f.StringVar(&issueCFToken, "cf-token", "", "Cloudflare API token (env: CF_TOKEN)")
	f.StringVar(&issueCFAccountID, "cf-account-id", "", "Cloudflare account ID (env: CF_ACCOUNT_ID)")
	f.StringVar(&issueCFZoneID, "cf-zone-id", "", "Cloudflare zone ID (env: CF_ZONE_ID)")
	f.StringVar(&issueDomain, "domain", "", "Primary domain (env: DOMAIN)")
	f.StringVar(&issueWildcard, "wildcard-domain", "", "Wildcard domain, defaults to *.<domain> (env: WILDCARD_DOMAIN)")
	f.StringVar(&issueACMEBin, "acme-bin", "", "acme.sh path (env: ACME_BIN)")
	f.StringVar(&issueACMEHome, "acme-home", "", "acme.sh home directory (env: ACME_HOME)")
	f.StringVar(&issueCertDir, "cert-dir", "", "Certificate directory, absolute path (env: CERT_DIR)")
	f.StringVar(&issueCertDirName, "cert-dir-name", "", "Certificate directory name under /etc/ca-certificates (env: CERT_DIR_NAME)")
	f.StringVar(&issueCertOutput, "cert-output-path", "", "Certificate output path, paired with --key-output-path (env: CERT_OUTPUT_PATH)")
	f.StringVar(&issueKeyOutput, "key-output-path", "", "Key output path, paired with --cert-output-path (env: KEY_OUTPUT_PATH)")
	f.StringVar(&issueNginxBin, "nginx-bin", "", "nginx binary (env: NGINX_BIN)")
	f.BoolVar(&issueReloadNginx, "reload-nginx", true, "Test and reload nginx after issuance")
	f.BoolVar(&issueDryRun, "dry-run", false, "Simulate actions without changes")

	rootCmd.AddCommand(issueCertCmd)
}

func runIssueCert(cmd *cobra.Command, args []string) error {
	r := newResolver()

	creds := acme.Credentials{}
	var err error
	if creds.Token, err = r.Value(issueCFToken, "CF_TOKEN", "Cloudflare token", true); err != nil {
		return err
	}
	if creds.AccountID, err = r.Value(issueCFAccountID, "CF_ACCOUNT_ID", "Cloudflare account ID", false); err != nil {
		return err
	}
	if creds.ZoneID, err = r.Value(issueCFZoneID, "CF_ZONE_ID", "Cloudflare zone ID", false); err != nil {
		return err
	}

	domain, err := r.Value(issueDomain, "DOMAIN", "Primary domain (e.g., example.com)", false)
	if err != nil {
		return err
	}
	if err := validateDomain(domain); err != nil {
		return err
	}
	wildcard, err := r.OptionalValue(issueWildcard, "WILDCARD_DOMAIN", "Wildcard domain (e.g., *.example.com)", false)
	if err != nil {
		return err
	}
	if wildcard == "" {
		wildcard = "*." + domain
	}

	acmeBin, err := r.Path(issueACMEBin, "ACME_BIN", defaultACMEBin, "acme.sh path")
	if err != nil {
		return err
	}
	acmeHome, err := r.Path(issueACMEHome, "ACME_HOME", defaultACMEHome, "acme home directory")
	if err != nil {
		return err
	}
	certDir, err := r.CertDir(
		r.OptionalPath(issueCertDir, "CERT_DIR"),
		issueCertDirName,
		[]string{"CERT_DIR_NAME"},
		defaultCertDirName,
	)
	if err != nil {
		return err
	}

	certDst := r.OptionalPath(issueCertOutput, "CERT_OUTPUT_PATH")
	keyDst := r.OptionalPath(issueKeyOutput, "KEY_OUTPUT_PATH")
	if err := validatePairedOutputs(certDst, keyDst); err != nil {
		return err
	}
	if certDst == "" {
		certDst = filepath.Join(certDir, domain+".cer")
		keyDst = filepath.Join(certDir, domain+".key")
	}

	nginxBin, err := r.Path(issueNginxBin, "NGINX_BIN", defaultNginxBin, "nginx binary")
	if err != nil {
		return err
	}

	w := deps.NewWriter(issueDryRun)

	// acme.sh refuses to reissue into a dirty cache; start clean.
	cacheDir := acme.CacheDir(acmeHome, domain)
	if err := w.RemoveAll(cacheDir); err != nil {
		return err
	}

	if issueDryRun {
		output.DryRun("Would run acme.sh to issue certificate for %s and %s", domain, wildcard)
	} else {
		output.Info("Issuing certificate for %s and %s...", domain, wildcard)
		if err := acme.Issue(acmeBin, creds, domain, wildcard); err != nil {
			return err
		}
	}

	if err := w.Copy(acme.CertFile(cacheDir), certDst); err != nil {
		return err
	}
	if err := w.Copy(acme.KeyFile(cacheDir, domain), keyDst); err != nil {
		return err
	}

	if issueReloadNginx {
		if issueDryRun {
			output.DryRun("Would run nginx -t and reload")
		} else {
			output.Info("Testing nginx configuration and reloading...")
			if err := nginx.TestAndReload(nginxBin); err != nil {
				return err
			}
		}
	}

	if issueDryRun {
		return nil
	}
	output.Success("Certificate installed for %s", domain)
	output.Print("  Certificate: %s", certDst)
	output.Print("  Private Key: %s", keyDst)
	return nil
}
