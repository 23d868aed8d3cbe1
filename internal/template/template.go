// Package template renders the embedded nginx configuration templates.
package template

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/errors"
)

// DefaultData contains data for the default catch-all server template.
type DefaultData struct {
	CertPath string
	KeyPath  string
}

// ProxyData contains data for the reverse proxy template.
type ProxyData struct {
	ProxyDomain string
	BackendURL  string
	CertPath    string
	KeyPath     string
	Resolver    string
}

// RenderDefault renders the default catch-all (444) server config.
func RenderDefault(data DefaultData) (string, error) {
	return render("default.conf.tmpl", data)
}

// RenderProxy renders the TLS reverse proxy config.
func RenderProxy(data ProxyData) (string, error) {
	return render("proxy.conf.tmpl", data)
}

func render(name string, data interface{}) (string, error) {
	content, err := templates.ReadFile("templates/" + name)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTemplate, fmt.Sprintf("template not found: %s", name), err)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTemplate, "failed to parse template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(errors.ErrCodeTemplate, "failed to render template", err)
	}

	return buf.String(), nil
}
