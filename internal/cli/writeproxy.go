package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/output"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/resolve"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/template"
)

var (
	proxyDomain      string
	proxyBackendURL  string
	proxyCertPath    string
	proxyKeyPath     string
	proxyCertDirName string
	proxyCertDir     string
	proxyOutputDir   string
	proxyResolvers   []string
	proxyDryRun      bool
)

var writeProxyCmd = &cobra.Command{
	Use:   "write-proxy-config",
	Short: "Write a TLS reverse-proxy nginx config",
	Long: `Write an nginx reverse-proxy server block for a proxy domain in
front of a backend URL. The config file is named after the proxy
domain with dots replaced by dashes.

The resolver directive comes from repeated --resolver flags, the
RESOLVER environment, or an interactive menu of well-known resolver
sets (Cloudflare, Tencent, Aliyun, Google, custom) that falls back to
Cloudflare after 10 seconds.

Examples:
  emby-proxy write-proxy-config --proxy-domain proxy.example.com --backend-url https://emby.example.com:443
  emby-proxy write-proxy-config --resolver 1.1.1.1 --resolver 1.0.0.1 --dry-run`,
	RunE: runWriteProxy,
}

func init() {
	f := writeProxyCmd.Flags()
	f.StringVar(&proxyDomain, "proxy-domain", "", "Proxy domain (env: PROXY_DOMAIN)")
	f.StringVar(&proxyBackendURL, "backend-url", "", "Backend URL (env: BACKEND_URL)")
	f.StringVar(&proxyCertPath, "cert-path", "", "Certificate path, absolute (env: NGINX_CERT_PATH)")
	f.StringVar(&proxyKeyPath, "key-path", "", "Key path, absolute (env: NGINX_KEY_PATH)")
	f.StringVar(&proxyCertDirName, "cert-dir-name", "", "Certificate directory name (env: NGINX_CERT_DIR_NAME, CERT_DIR_NAME)")
	f.StringVar(&proxyCertDir, "cert-dir", "", "Certificate directory, absolute path (env: CERT_DIR)")
	f.StringVar(&proxyOutputDir, "output-dir", "", "Proxy config output directory (env: PROXY_OUTPUT_DIR)")
	f.StringArrayVar(&proxyResolvers, "resolver", nil, "DNS resolver, repeatable (env: RESOLVER)")
	f.BoolVar(&proxyDryRun, "dry-run", false, "Simulate actions without changes")

	rootCmd.AddCommand(writeProxyCmd)
}

func runWriteProxy(cmd *cobra.Command, args []string) error {
	r := newResolver()

	domain, err := r.Value(proxyDomain, "PROXY_DOMAIN", "Proxy domain (e.g., proxy.example.com)", false)
	if err != nil {
		return err
	}
	if err := validateDomain(domain); err != nil {
		return err
	}
	backendURL, err := r.Value(proxyBackendURL, "BACKEND_URL", "Backend URL (e.g., https://emby.example.com:443)", false)
	if err != nil {
		return err
	}
	if err := validateBackendURL(backendURL); err != nil {
		return err
	}

	resolver, err := r.Resolvers(proxyResolvers, "RESOLVER", resolve.DefaultResolver)
	if err != nil {
		return err
	}

	certPath := r.OptionalPath(proxyCertPath, "NGINX_CERT_PATH")
	keyPath := r.OptionalPath(proxyKeyPath, "NGINX_KEY_PATH")
	if certPath == "" || keyPath == "" {
		certDir, err := r.CertDir(
			r.OptionalPath(proxyCertDir, "CERT_DIR"),
			proxyCertDirName,
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

	outputDir, err := r.Path(proxyOutputDir, "PROXY_OUTPUT_DIR", defaultProxyOutDir, "proxy config output dir")
	if err != nil {
		return err
	}
	outputPath := filepath.Join(outputDir, strings.ReplaceAll(domain, ".", "-")+".conf")

	content, err := template.RenderProxy(template.ProxyData{
		ProxyDomain: domain,
		BackendURL:  backendURL,
		CertPath:    certPath,
		KeyPath:     keyPath,
		Resolver:    resolver,
	})
	if err != nil {
		return err
	}

	w := deps.NewWriter(proxyDryRun)
	if err := w.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return err
	}

	if proxyDryRun {
		return nil
	}
	output.Success("Proxy config for %s written to %s", domain, outputPath)
	return nil
}
