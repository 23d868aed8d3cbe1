package cli

import (
	"github.com/spf13/cobra"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/errors"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/output"
)

var paramsFormat string

// ParamRow describes one flag/env pair for print-params.
type ParamRow struct {
	Command     string `json:"command" yaml:"command"`
	Flag        string `json:"flag,omitempty" yaml:"flag,omitempty"`
	Env         string `json:"env,omitempty" yaml:"env,omitempty"`
	Description string `json:"description" yaml:"description"`
}

var paramRows = []ParamRow{
	{Command: "(global)", Flag: "--env KEY=VALUE", Description: "Override environment values (repeatable)"},
	{Command: "(global)", Flag: "--verbose", Description: "Enable verbose logging"},

	{Command: "issue-cert", Description: "Issue certs and optionally reload nginx"},
	{Command: "issue-cert", Flag: "--cf-token", Env: "CF_TOKEN", Description: "Cloudflare token"},
	{Command: "issue-cert", Flag: "--cf-account-id", Env: "CF_ACCOUNT_ID", Description: "Cloudflare account ID"},
	{Command: "issue-cert", Flag: "--cf-zone-id", Env: "CF_ZONE_ID", Description: "Cloudflare zone ID"},
	{Command: "issue-cert", Flag: "--domain", Env: "DOMAIN", Description: "Primary domain"},
	{Command: "issue-cert", Flag: "--wildcard-domain", Env: "WILDCARD_DOMAIN", Description: "Wildcard domain"},
	{Command: "issue-cert", Flag: "--acme-bin", Env: "ACME_BIN", Description: "acme.sh path"},
	{Command: "issue-cert", Flag: "--acme-home", Env: "ACME_HOME", Description: "acme home directory"},
	{Command: "issue-cert", Flag: "--cert-dir", Env: "CERT_DIR", Description: "Certificate directory (absolute path)"},
	{Command: "issue-cert", Flag: "--cert-dir-name", Env: "CERT_DIR_NAME", Description: "Certificate directory name"},
	{Command: "issue-cert", Flag: "--cert-output-path", Env: "CERT_OUTPUT_PATH", Description: "Certificate output path"},
	{Command: "issue-cert", Flag: "--key-output-path", Env: "KEY_OUTPUT_PATH", Description: "Key output path"},
	{Command: "issue-cert", Flag: "--nginx-bin", Env: "NGINX_BIN", Description: "nginx binary"},
	{Command: "issue-cert", Flag: "--reload-nginx", Description: "Reload nginx after issuance"},
	{Command: "issue-cert", Flag: "--dry-run", Description: "Simulate actions without changes"},

	{Command: "write-nginx-default", Description: "Write default nginx 444 config"},
	{Command: "write-nginx-default", Flag: "--cert-path", Env: "NGINX_CERT_PATH", Description: "Nginx cert path (absolute)"},
	{Command: "write-nginx-default", Flag: "--key-path", Env: "NGINX_KEY_PATH", Description: "Nginx key path (absolute)"},
	{Command: "write-nginx-default", Flag: "--cert-dir-name", Env: "NGINX_CERT_DIR_NAME", Description: "Certificate directory name"},
	{Command: "write-nginx-default", Flag: "--domain", Env: "DOMAIN", Description: "Primary domain (used for default cert/key)"},
	{Command: "write-nginx-default", Flag: "--output-path", Env: "NGINX_DEFAULT_OUTPUT", Description: "Output path for default config"},
	{Command: "write-nginx-default", Flag: "--dry-run", Description: "Simulate actions without changes"},

	{Command: "write-proxy-config", Description: "Write reverse proxy config"},
	{Command: "write-proxy-config", Flag: "--proxy-domain", Env: "PROXY_DOMAIN", Description: "Proxy domain"},
	{Command: "write-proxy-config", Flag: "--backend-url", Env: "BACKEND_URL", Description: "Backend URL"},
	{Command: "write-proxy-config", Flag: "--resolver", Env: "RESOLVER", Description: "DNS resolver (repeatable, env or interactive)"},
	{Command: "write-proxy-config", Flag: "--cert-path", Env: "NGINX_CERT_PATH", Description: "Nginx cert path (absolute)"},
	{Command: "write-proxy-config", Flag: "--key-path", Env: "NGINX_KEY_PATH", Description: "Nginx key path (absolute)"},
	{Command: "write-proxy-config", Flag: "--cert-dir", Env: "CERT_DIR", Description: "Certificate directory (absolute path)"},
	{Command: "write-proxy-config", Flag: "--cert-dir-name", Env: "CERT_DIR_NAME", Description: "Certificate directory name"},
	{Command: "write-proxy-config", Flag: "--output-dir", Env: "PROXY_OUTPUT_DIR", Description: "Proxy config output dir"},
	{Command: "write-proxy-config", Flag: "--dry-run", Description: "Simulate actions without changes"},

	{Command: "setup", Description: "Install zsh, nginx, acme.sh, and the renewal cron entry"},
	{Command: "setup", Flag: "--install-zsh", Description: "Install zsh via the package manager"},
	{Command: "setup", Flag: "--install-cron", Description: "Install the renewal crontab entry"},
	{Command: "setup", Flag: "--install-nginx", Description: "Install nginx via the package manager"},
	{Command: "setup", Flag: "--dry-run", Description: "Simulate actions without changes"},
}

var printParamsCmd = &cobra.Command{
	Use:   "print-params",
	Short: "Print all flag and environment variable pairs",
	Long: `Print every parameter each subcommand accepts, with its matching
environment variable.

Examples:
  emby-proxy print-params
  emby-proxy print-params --format yaml`,
	RunE: runPrintParams,
}

func init() {
	printParamsCmd.Flags().StringVar(&paramsFormat, "format", "table", "Output format: table, json, or yaml")
	rootCmd.AddCommand(printParamsCmd)
}

func runPrintParams(cmd *cobra.Command, args []string) error {
	switch paramsFormat {
	case "table":
		rows := make([][]string, 0, len(paramRows))
		for _, row := range paramRows {
			rows = append(rows, []string{row.Command, row.Flag, row.Env, row.Description})
		}
		output.Table([]string{"COMMAND", "FLAG", "ENV", "DESCRIPTION"}, rows)
		return nil
	case "json":
		return output.JSON(paramRows)
	case "yaml":
		return output.YAML(paramRows)
	default:
		return errors.Validation("unknown format: " + paramsFormat)
	}
}
