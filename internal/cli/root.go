package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/logger"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/resolve"
)

var (
	envPairs     []string
	envOverrides map[string]string
	verbose      bool
	version      = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "emby-proxy",
	Short: "TLS certificates and nginx reverse-proxy config for Emby",
	Long: `emby-proxy issues TLS certificates through acme.sh (Cloudflare DNS
validation) and generates nginx reverse-proxy configuration from
templates.

Parameters resolve from CLI flags first, then --env overrides, then
the environment (including .env files), then interactive prompts.
Secrets are never read from the command line history: the Cloudflare
token prompt does not echo.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		m, err := resolve.ToEnvMap(envPairs)
		if err != nil {
			return err
		}
		envOverrides = m
		return nil
	},
}

// Execute runs the root command
func Execute() {
	cobra.OnInitialize(func() {
		logger.Init(verbose)
		loadDotenv()
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadDotenv loads .env.local and .env from the working directory.
// godotenv never overrides variables that are already set, so
// .env.local wins over .env and the process environment wins over both.
func loadDotenv() {
	for _, file := range []string{".env.local", ".env"} {
		if err := godotenv.Load(file); err == nil {
			logger.Debug("loaded %s file", file)
		}
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// newResolver builds a parameter resolver bound to the current --env
// overrides and the injected input reader.
func newResolver() *resolve.Resolver {
	r := resolve.New(envOverrides)
	r.In = deps.Reader
	return r
}

func init() {
	rootCmd.PersistentFlags().StringArrayVar(&envPairs, "env", nil, "Provide environment overrides as KEY=VALUE (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
}
