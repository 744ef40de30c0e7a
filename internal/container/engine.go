// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/creddock/creddock/pkg/types"
)

const (
	EngineTypeDocker EngineType = "docker"
	EngineTypePodman EngineType = "podman"
)

var (
	// ErrEngineNotAvailable is the sentinel error wrapped by EngineNotAvailableError.
	ErrEngineNotAvailable = errors.New("container engine not available")

	// ErrInvalidEngineType is the sentinel error wrapped by InvalidEngineTypeError.
	ErrInvalidEngineType = errors.New("invalid container engine type")
)

type (
	// Engine defines the interface for container operations.
	Engine interface {
		// Name returns the engine name (docker or podman).
		Name() string
		// BinaryPath returns the resolved path of the engine executable.
		BinaryPath() string
		// Build builds an image quietly and returns its identifier.
		Build(ctx context.Context, opts BuildOptions) (ImageID, error)
		// Run runs an image in a new container.
		Run(ctx context.Context, opts RunOptions) (*RunResult, error)
	}

	// BuildOptions contains options for building an image.
	BuildOptions struct {
		// ContextDir is the build context directory. It is handed to the engine
		// as-is; validation is left to the engine.
		ContextDir string
		// Stderr receives the engine's captured stderr when the build fails.
		Stderr io.Writer
	}

	// RunOptions contains options for running a container.
	RunOptions struct {
		// Image is the image to run.
		Image ImageID
		// Args are appended verbatim after the image.
		Args []string
		// Env is exported into the container in order.
		Env []EnvVar
		// Volumes are bind mounts.
		Volumes []VolumeMount
		// Remove automatically removes the container after exit.
		Remove bool
		// Stdin is the standard input
		Stdin io.Reader
		// Stdout is where to write standard output
		Stdout io.Writer
		// Stderr is where to write standard error
		Stderr io.Writer
	}

	// RunResult contains the result of running a container.
	RunResult struct {
		// ExitCode is the exit code of the engine process.
		ExitCode types.ExitCode
	}

	// EngineType identifies the container engine type.
	EngineType string

	// LookPathFunc has the signature of exec.LookPath.
	LookPathFunc func(file string) (string, error)

	// EngineNotAvailableError is returned when the engine binary cannot be found.
	EngineNotAvailableError struct {
		Engine EngineType
		Cause  error
	}

	// InvalidEngineTypeError is returned for an engine name other than docker or podman.
	InvalidEngineTypeError struct {
		Value EngineType
	}
)

// Error implements the error interface.
func (e *EngineNotAvailableError) Error() string {
	return fmt.Sprintf("%s not found", e.Engine)
}

// Unwrap returns ErrEngineNotAvailable for errors.Is() compatibility.
func (e *EngineNotAvailableError) Unwrap() error { return ErrEngineNotAvailable }

// Error implements the error interface.
func (e *InvalidEngineTypeError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: docker, podman)", e.Value)
}

// Unwrap returns ErrInvalidEngineType for errors.Is() compatibility.
func (e *InvalidEngineTypeError) Unwrap() error { return ErrInvalidEngineType }

// Validate returns an error if the EngineType is not docker or podman.
func (t EngineType) Validate() error {
	switch t {
	case EngineTypeDocker, EngineTypePodman:
		return nil
	default:
		return &InvalidEngineTypeError{Value: t}
	}
}

// String returns the string representation of the EngineType.
func (t EngineType) String() string { return string(t) }

// NewEngine resolves the engine binary on the search path and returns the
// matching engine. A nil lookPath means exec.LookPath.
func NewEngine(engineType EngineType, lookPath LookPathFunc, opts ...BaseCLIEngineOption) (Engine, error) {
	if err := engineType.Validate(); err != nil {
		return nil, err
	}
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	path, err := lookPath(string(engineType))
	if err != nil {
		return nil, &EngineNotAvailableError{Engine: engineType, Cause: err}
	}

	switch engineType {
	case EngineTypePodman:
		return NewPodmanEngine(HostFilesystemPath(path), opts...), nil
	default:
		return NewDockerEngine(HostFilesystemPath(path), opts...), nil
	}
}
