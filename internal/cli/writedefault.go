package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/output"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/template"
)

var (
	defCertPath    string
	defKeyPath     string
	defCertDirName string
	defDomain      string
	defOutputPath  string
	defDryRun      bool
)

var writeDefaultCmd = &cobra.Command{
	Use:   "write-nginx-default",
	Short: "Write the default catch-all nginx server config",
	Long: `Write the default nginx server block that answers unmatched hosts
with connection drop (444). Cert and key paths default to
<cert-dir>/<domain>.cer and .key when not given explicitly.

Examples:
  emby-proxy write-nginx-default --domain example.com
  emby-proxy write-nginx-default --cert-path /certs/a.cer --key-path /certs/a.key --dry-run`,
	RunE: runWriteDefault,
}

func init() {
	f := writeDefaultCmd.Flags()
	f.StringVar(&defCertPath, "cert-path", "", "Certificate path, absolute (env: NGINX_CERT_PATH)")
	f.StringVar(&defKeyPath, "key-path", "", "Key path, absolute (env: NGINX_KEY_PATH)")
	f.StringVar(&defCertDirName, "cert-dir-name", "", "Certificate directory name (env: NGINX_CERT_DIR_NAME, CERT_DIR_NAME)")
	f.StringVar(&defDomain, "domain", "", "Primary domain used for default cert/key names (env: DOMAIN)")
	f.StringVar(&defOutputPath, "output-path", "", "Output path for the default config (env: NGINX_DEFAULT_OUTPUT)")
	f.BoolVar(&defDryRun, "dry-run", false, "Simulate actions without changes")

	rootCmd.AddCommand(writeDefaultCmd)
}

func runWriteDefault(cmd *cobra.Command, args []string) error {
	r := newResolver()

	certPath := r.OptionalPath(defCertPath, "NGINX_CERT_PATH")
	keyPath := r.OptionalPath(defKeyPath, "NGINX_KEY_PATH")

	// Both paths derive from domain and cert dir when either is missing.
	if certPath == "" || keyPath == "" {
		domain, err := r.Value(defDomain, "DOMAIN", "Primary domain (e.g., example.com)", false)
		if err != nil {
			return err
		}
		if err := validateDomain(domain); err != nil {
			return err
		}
		certDir, err := r.CertDir(
			"",
			defCertDirName,
			[]string{"NGINX_CERT_DIR_NAME", "CERT_DIR_NAME"},
			defaultCertDirName,
		)
		if err != nil {
			return err
		}
		if certPath == "" {
			certPath = filepath.Join(certDir, domain+".cer")
		}
		if keyPath == "" {
			keyPath = filepath.Join(certDir, domain+".key")
		}
	}

	outputPath, err := r.Path(defOutputPath, "NGINX_DEFAULT_OUTPUT", defaultNginxOutput, "nginx default output path")
	if err != nil {
		return err
	}

	content, err := template.RenderDefault(template.DefaultData{
		CertPath: certPath,
		KeyPath:  keyPath,
	})
	if err != nil {
		return err
	}

	w := deps.NewWriter(defDryRun)
	if err := w.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return err
	}

	if defDryRun {
		return nil
	}
	output.Success("Default nginx config written to %s", outputPath)
	return nil
}
