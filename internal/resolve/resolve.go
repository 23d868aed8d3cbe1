// Package resolve implements parameter resolution for the emby-proxy CLI.
//
// Every parameter resolves through the same precedence chain:
// explicit CLI flag, then --env KEY=VALUE overrides, then the process
// environment (which includes values loaded from .env files), then an
// interactive prompt, then the built-in default. Blank values in the
// environment layers count as unset.
package resolve

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/errors"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/input"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/logger"
)

// certBaseDir is where named certificate directories live.
const certBaseDir = "/etc/ca-certificates"

// Resolver resolves parameter values from flags, environment overrides,
// the process environment, and interactive prompts.
type Resolver struct {
	// Overrides holds --env KEY=VALUE pairs, checked before the
	// process environment.
	Overrides map[string]string

	// In supplies interactive input. Defaults to stdin.
	In input.Reader

	// Out receives prompt text. Defaults to stdout.
	Out io.Writer

	// Getenv reads the process environment. Defaults to os.Getenv.
	Getenv func(string) string

	// ReadSecret reads a value without echoing it. Defaults to a
	// terminal no-echo read, falling back to In when stdin is not a
	// terminal.
	ReadSecret func(label string) (string, error)
}

// New creates a Resolver bound to stdin/stdout and the process environment.
func New(overrides map[string]string) *Resolver {
	return &Resolver{
		Overrides: overrides,
		In:        input.NewStdinReader(),
		Out:       os.Stdout,
		Getenv:    os.Getenv,
	}
}

// ParseKeyValue parses a KEY=VALUE pair for the --env flag.
func ParseKeyValue(s string) (string, string, error) {
	key, value, found := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if key == "" || !found {
		return "", "", errors.Validation("--env expects KEY=VALUE")
	}
	return key, value, nil
}

// ToEnvMap converts KEY=VALUE pairs into an override map.
func ToEnvMap(pairs []string) (map[string]string, error) {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, err := ParseKeyValue(p)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}

// fromEnv checks the override map and then the process environment for
// a non-blank value.
func (r *Resolver) fromEnv(key string) (string, bool) {
	if v, ok := r.Overrides[key]; ok && strings.TrimSpace(v) != "" {
		logger.Debug("resolved %s from --env override", key)
		return v, true
	}
	if v := r.getenv(key); strings.TrimSpace(v) != "" {
		logger.Debug("resolved %s from environment", key)
		return v, true
	}
	return "", false
}

func (r *Resolver) getenv(key string) string {
	if r.Getenv != nil {
		return r.Getenv(key)
	}
	return os.Getenv(key)
}

// FromEnvs returns the first non-blank value among the given keys,
// checking overrides before the process environment for each.
func (r *Resolver) FromEnvs(keys []string) (string, bool) {
	for _, key := range keys {
		if v, ok := r.fromEnv(key); ok {
			return v, true
		}
	}
	return "", false
}

// Value resolves a required parameter: flag, env, then prompt.
// Sensitive values are prompted without echo.
func (r *Resolver) Value(flagValue, envKey, promptLabel string, sensitive bool) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v, ok := r.fromEnv(envKey); ok {
		return v, nil
	}
	v, err := r.prompt(promptLabel, sensitive)
	if err != nil {
		return "", errors.Resolve(envKey, err)
	}
	return v, nil
}

// OptionalValue resolves an optional parameter. An empty prompt answer
// leaves it unset.
func (r *Resolver) OptionalValue(flagValue, envKey, promptLabel string, sensitive bool) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v, ok := r.fromEnv(envKey); ok {
		return v, nil
	}
	v, err := r.prompt(promptLabel, sensitive)
	if err != nil {
		return "", errors.Resolve(envKey, err)
	}
	return strings.TrimSpace(v), nil
}

// Path resolves a path parameter with a default shown in the prompt.
// An empty prompt answer selects the default.
func (r *Resolver) Path(flagValue, envKey, def, promptLabel string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v, ok := r.fromEnv(envKey); ok {
		return v, nil
	}
	v, err := r.prompt(fmt.Sprintf("%s [%s]", promptLabel, def), false)
	if err != nil {
		return "", errors.Resolve(envKey, err)
	}
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	return v, nil
}

// OptionalPath resolves a path parameter without prompting. It returns
// an empty string when neither flag nor environment supplies a value.
func (r *Resolver) OptionalPath(flagValue, envKey string) string {
	if flagValue != "" {
		return flagValue
	}
	if v, ok := r.fromEnv(envKey); ok {
		return v
	}
	return ""
}

// NameWithDefault resolves a name checking several env keys, prompting
// with a default when none is set.
func (r *Resolver) NameWithDefault(flagValue string, envKeys []string, def, promptLabel string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v, ok := r.FromEnvs(envKeys); ok {
		return v, nil
	}
	v, err := r.prompt(fmt.Sprintf("%s [%s]", promptLabel, def), false)
	if err != nil {
		return "", errors.Resolve(envKeys[0], err)
	}
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	return v, nil
}

// CertDir resolves the certificate directory. An explicit directory
// wins; otherwise the directory name (default "custom") is resolved
// and joined under /etc/ca-certificates.
func (r *Resolver) CertDir(certDir, certDirName string, envKeys []string, defaultName string) (string, error) {
	if certDir != "" {
		return certDir, nil
	}
	name, err := r.NameWithDefault(certDirName, envKeys, defaultName, "certificate directory name")
	if err != nil {
		return "", err
	}
	return filepath.Join(certBaseDir, name), nil
}

// prompt asks for a value on the interactive input.
func (r *Resolver) prompt(label string, sensitive bool) (string, error) {
	if sensitive {
		return r.readSecret(label)
	}
	if _, err := fmt.Fprintf(r.out(), "%s: ", label); err != nil {
		return "", err
	}
	line, err := r.In.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *Resolver) readSecret(label string) (string, error) {
	if r.ReadSecret != nil {
		return r.ReadSecret(label)
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		// Piped input: fall back to a plain read.
		return r.prompt(label, false)
	}
	if _, err := fmt.Fprintf(r.out(), "%s: ", label); err != nil {
		return "", err
	}
	secret, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(r.out())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}

func (r *Resolver) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}
