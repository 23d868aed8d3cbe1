package cli

import (
	"net/url"
	"strings"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/errors"
)

// Default locations used when neither flags nor environment supply them.
const (
	defaultACMEBin     = "/root/.acme.sh/acme.sh"
	defaultACMEHome    = "/root/.acme.sh"
	defaultCertDirName = "custom"
	defaultNginxBin    = "nginx"
	defaultNginxOutput = "/etc/nginx/conf.d/default/00-default.conf"
	defaultProxyOutDir = "/etc/nginx/conf.d/proxy"
)

// validateDomain checks if domain is valid
func validateDomain(domain string) error {
	if domain == "" {
		return errors.Validation("domain cannot be empty")
	}
	if strings.Contains(domain, " ") {
		return errors.Validation("domain cannot contain spaces")
	}
	if strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return errors.Validation("domain cannot start or end with hyphen")
	}
	return nil
}

// validateBackendURL checks if the backend URL is valid
func validateBackendURL(backendURL string) error {
	if backendURL == "" {
		return errors.Validation("backend URL cannot be empty")
	}
	u, err := url.Parse(backendURL)
	if err != nil {
		return errors.Wrap(errors.ErrCodeValidation, "invalid backend URL", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.Validation("backend URL must include scheme and host")
	}
	return nil
}

// validatePairedOutputs enforces that cert and key output paths are
// supplied together or not at all.
func validatePairedOutputs(certPath, keyPath string) error {
	if (certPath == "") != (keyPath == "") {
		return errors.ErrUnpairedOutputPaths
	}
	return nil
}
