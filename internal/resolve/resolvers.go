package resolve

import (
	"fmt"
	"strings"
	"time"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/input"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/logger"
)

// Well-known DNS resolver sets offered by the interactive menu.
const (
	ResolverCloudflare = "1.1.1.1 1.0.0.1 [2606:4700:4700::1111] [2606:4700:4700::1064]"
	ResolverTencent    = "119.29.29.29 182.254.116.116"
	ResolverAliyun     = "223.5.5.5 223.6.6.6"
	ResolverGoogle     = "8.8.8.8 8.8.4.4"
)

// DefaultResolver is used when the menu times out or the choice is invalid.
const DefaultResolver = ResolverCloudflare

// resolverMenuTimeout bounds how long the interactive menu waits
// before falling back to the default. Variable so tests can shorten it.
var resolverMenuTimeout = 10 * time.Second

// Resolvers resolves the nginx resolver directive value. Repeated
// --resolver flags are joined with spaces; otherwise the RESOLVER
// environment is consulted; otherwise an interactive menu with a
// timeout picks one of the well-known sets.
func (r *Resolver) Resolvers(flagValues []string, envKey, defaultValue string) (string, error) {
	if len(flagValues) > 0 {
		return strings.Join(flagValues, " "), nil
	}
	if v, ok := r.fromEnv(envKey); ok {
		return v, nil
	}
	return r.selectResolver(defaultValue)
}

func (r *Resolver) selectResolver(defaultValue string) (string, error) {
	out := r.out()
	fmt.Fprintln(out, "Select DNS resolver (default: Cloudflare):")
	fmt.Fprintln(out, "  1) Cloudflare")
	fmt.Fprintln(out, "  2) Tencent")
	fmt.Fprintln(out, "  3) Aliyun")
	fmt.Fprintln(out, "  4) Google")
	fmt.Fprintln(out, "  5) Custom")
	fmt.Fprintf(out, "Enter choice [1-5] within %ds: ", int(resolverMenuTimeout.Seconds()))

	line, ok, err := input.ReadLineTimeout(r.In, resolverMenuTimeout)
	if err != nil {
		return "", err
	}
	if !ok {
		fmt.Fprintln(out)
		logger.Info("resolver menu timed out, using default")
		return defaultValue, nil
	}

	switch strings.TrimSpace(line) {
	case "":
		return defaultValue, nil
	case "1":
		return ResolverCloudflare, nil
	case "2":
		return ResolverTencent, nil
	case "3":
		return ResolverAliyun, nil
	case "4":
		return ResolverGoogle, nil
	case "5":
		custom, err := r.prompt("Custom resolver (space-separated)", false)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(custom) == "" {
			return defaultValue, nil
		}
		return custom, nil
	default:
		return defaultValue, nil
	}
}
