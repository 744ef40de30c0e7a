// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/creddock/creddock/internal/container"
	"github.com/creddock/creddock/internal/credentials"
	"github.com/creddock/creddock/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// classifyExitCode maps a pipeline error to the process exit status. Host
// misconfiguration that no flag value can fix is fatal; everything else is a
// plain failure.
func classifyExitCode(err error) types.ExitCode {
	switch {
	case err == nil:
		return types.ExitSuccess
	case errors.Is(err, credentials.ErrUnsupportedOS),
		errors.Is(err, credentials.ErrEnvNotSet),
		errors.Is(err, container.ErrEngineNotAvailable):
		return types.ExitMisconfigured
	default:
		return types.ExitFailure
	}
}
