// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "resolve credentials"},
			expected: "failed to resolve credentials",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "resolve credentials",
				Resource:  "/creds/adc.json",
			},
			expected: "failed to resolve credentials: /creds/adc.json",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "resolve credentials",
				Resource:  "/creds/adc.json",
				Cause:     errors.New("no such file or directory"),
			},
			expected: "failed to resolve credentials: /creds/adc.json: no such file or directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("root cause")
	err := NewErrorContext().
		WithOperation("locate container engine").
		WithResource("docker").
		WithSuggestion("Install Docker").
		WithSuggestion("Use --engine podman").
		Wrap(root).
		Build()

	plain := err.Format(false)
	for _, want := range []string{"failed to locate container engine: docker: root cause", "• Install Docker", "• Use --engine podman"} {
		if !strings.Contains(plain, want) {
			t.Errorf("Format(false) missing %q:\n%s", want, plain)
		}
	}
	if strings.Contains(plain, "Error chain") {
		t.Error("Format(false) should not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "1. root cause") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}
}

func TestErrorContext_BuildRequiresOperation(t *testing.T) {
	t.Parallel()

	if got := NewErrorContext().WithResource("x").Build(); got != nil {
		t.Errorf("Build() = %v, want nil without operation", got)
	}
	if got := NewErrorContext().BuildError(); got != nil {
		t.Errorf("BuildError() = %v, want nil without operation", got)
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := NewErrorContext().WithOperation("run container").Wrap(sentinel).BuildError()
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped cause")
	}
}
