package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCLIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CLIError
		expected string
	}{
		{
			name: "message only",
			err: &CLIError{
				Code:    ErrCodeValidation,
				Message: "invalid input",
			},
			expected: "invalid input",
		},
		{
			name: "with param",
			err: &CLIError{
				Code:    ErrCodeResolve,
				Message: "failed to resolve parameter",
				Param:   "CF_TOKEN",
			},
			expected: "CF_TOKEN: failed to resolve parameter",
		},
		{
			name: "with underlying error",
			err: &CLIError{
				Code:    ErrCodeExec,
				Message: "acme.sh failed",
				Err:     fmt.Errorf("exit status 1"),
			},
			expected: "acme.sh failed: exit status 1",
		},
		{
			name: "with param and underlying error",
			err: &CLIError{
				Code:    ErrCodeIO,
				Message: "failed to write",
				Param:   "/etc/nginx/conf.d/proxy/a.conf",
				Err:     fmt.Errorf("permission denied"),
			},
			expected: "/etc/nginx/conf.d/proxy/a.conf: failed to write: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCLIError_Is(t *testing.T) {
	err := Validation("cert and key must be paired")
	if !errors.Is(err, ErrUnpairedOutputPaths) {
		t.Error("validation errors should match by code")
	}
	if errors.Is(err, Resolve("CF_TOKEN", nil)) {
		t.Error("different codes should not match")
	}
}

func TestCLIError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("exit status 2")
	err := Exec("nginx -t failed", inner)
	if !errors.Is(err, inner) {
		t.Error("wrapped error should be reachable via errors.Is")
	}

	var cliErr *CLIError
	if !errors.As(err, &cliErr) {
		t.Fatal("errors.As should find CLIError")
	}
	if cliErr.Code != ErrCodeExec {
		t.Errorf("expected code %s, got %s", ErrCodeExec, cliErr.Code)
	}
}

func TestResolve(t *testing.T) {
	err := Resolve("DOMAIN", fmt.Errorf("EOF"))
	var cliErr *CLIError
	if !errors.As(err, &cliErr) {
		t.Fatal("errors.As should find CLIError")
	}
	if cliErr.Param != "DOMAIN" {
		t.Errorf("expected param DOMAIN, got %s", cliErr.Param)
	}
	if cliErr.Code != ErrCodeResolve {
		t.Errorf("expected code %s, got %s", ErrCodeResolve, cliErr.Code)
	}
}
