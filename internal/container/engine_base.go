// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/creddock/creddock/pkg/types"
)

const (
	// SELinuxLabelNone means no SELinux label is applied to volume mounts.
	SELinuxLabelNone SELinuxLabel = ""
	// SELinuxLabelShared allows sharing the volume between containers.
	SELinuxLabelShared SELinuxLabel = "z"
	// SELinuxLabelPrivate restricts the volume to a single container.
	SELinuxLabelPrivate SELinuxLabel = "Z"
)

var (
	// ErrBuildFailed is the sentinel error wrapped by BuildError.
	ErrBuildFailed = errors.New("build failed")

	// ErrRunFailed is the sentinel error wrapped by RunError.
	ErrRunFailed = errors.New("run failed")

	// ErrEmptyImageID is returned when a build succeeds but prints no identifier.
	ErrEmptyImageID = errors.New("build printed no image identifier")

	// ErrInvalidVolumeMount is the sentinel error wrapped by InvalidVolumeMountError.
	ErrInvalidVolumeMount = errors.New("invalid volume mount")

	// ErrInvalidSELinuxLabel is the sentinel error wrapped by InvalidSELinuxLabelError.
	ErrInvalidSELinuxLabel = errors.New("invalid SELinux label")
)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// VolumeFormatFunc formats a volume mount for the -v flag.
	// Podman uses this to add SELinux labels on enforcing hosts.
	VolumeFormatFunc func(mount VolumeMount) string

	// BaseCLIEngineOption configures a BaseCLIEngine.
	BaseCLIEngineOption func(*BaseCLIEngine)

	// BaseCLIEngine provides the implementation shared by CLI-based container
	// engines. Docker and Podman engines embed this struct.
	BaseCLIEngine struct {
		name            string // Engine name for error messages (e.g., "docker", "podman")
		binaryPath      HostFilesystemPath
		execCommand     ExecCommandFunc
		volumeFormatter VolumeFormatFunc
	}

	// ImageID is the opaque identifier printed by a quiet build (commonly a digest).
	ImageID string

	// HostFilesystemPath represents a filesystem path on the host.
	HostFilesystemPath string

	// MountTargetPath represents a filesystem path inside a container.
	MountTargetPath string

	// SELinuxLabel represents an SELinux volume labeling option.
	// The zero value ("") means no SELinux label is applied.
	SELinuxLabel string

	// VolumeMount represents a bind mount specification.
	VolumeMount struct {
		HostPath      HostFilesystemPath
		ContainerPath MountTargetPath
		ReadOnly      bool
		SELinux       SELinuxLabel
	}

	// EnvVar is a single environment variable exported into the container.
	EnvVar struct {
		Name  string
		Value string
	}

	// InvalidVolumeMountError is returned when a VolumeMount has an empty path.
	InvalidVolumeMountError struct {
		Value VolumeMount
	}

	// InvalidSELinuxLabelError is returned when an SELinuxLabel is not a recognized label.
	InvalidSELinuxLabelError struct {
		Value SELinuxLabel
	}

	// BuildError is returned when the engine's build command exits non-zero.
	// The engine's own stderr has already been forwarded to the caller.
	BuildError struct {
		Engine string
		Cause  error
	}

	// RunError is returned when the engine's run command exits non-zero.
	RunError struct {
		Engine   string
		ExitCode types.ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidVolumeMountError) Error() string {
	return fmt.Sprintf("invalid volume mount %q: host and container paths must be non-empty", e.Value.String())
}

// Unwrap returns ErrInvalidVolumeMount for errors.Is() compatibility.
func (e *InvalidVolumeMountError) Unwrap() error { return ErrInvalidVolumeMount }

// Error implements the error interface.
func (e *InvalidSELinuxLabelError) Error() string {
	return fmt.Sprintf("invalid SELinux label %q (valid: empty, z, Z)", e.Value)
}

// Unwrap returns ErrInvalidSELinuxLabel so callers can use errors.Is for programmatic detection.
func (e *InvalidSELinuxLabelError) Unwrap() error { return ErrInvalidSELinuxLabel }

// Error implements the error interface. The message is intentionally generic;
// the engine's diagnostics are on the caller's stderr already.
func (e *BuildError) Error() string { return e.Engine + " build failed" }

// Unwrap returns ErrBuildFailed for errors.Is() compatibility.
func (e *BuildError) Unwrap() error { return ErrBuildFailed }

// Error implements the error interface.
func (e *RunError) Error() string { return e.Engine + " run failed" }

// Unwrap returns ErrRunFailed for errors.Is() compatibility.
func (e *RunError) Unwrap() error { return ErrRunFailed }

// String returns the image identifier.
func (id ImageID) String() string { return string(id) }

// String returns the string representation of the HostFilesystemPath.
func (p HostFilesystemPath) String() string { return string(p) }

// String returns the string representation of the MountTargetPath.
func (p MountTargetPath) String() string { return string(p) }

// Validate returns an error if the SELinuxLabel is not one of the defined labels.
func (s SELinuxLabel) Validate() error {
	switch s {
	case SELinuxLabelNone, SELinuxLabelShared, SELinuxLabelPrivate:
		return nil
	default:
		return &InvalidSELinuxLabelError{Value: s}
	}
}

// Validate returns an error if either path is blank or the label is unknown.
func (v VolumeMount) Validate() error {
	if strings.TrimSpace(string(v.HostPath)) == "" || strings.TrimSpace(string(v.ContainerPath)) == "" {
		return &InvalidVolumeMountError{Value: v}
	}
	return v.SELinux.Validate()
}

// String returns the volume mount in "host:container[:options]" format.
func (v VolumeMount) String() string {
	return FormatVolumeMount(v)
}

// String returns the variable in NAME=VALUE form.
func (e EnvVar) String() string { return e.Name + "=" + e.Value }

// Validate returns an error if any volume mount is invalid.
func (o RunOptions) Validate() error {
	if strings.TrimSpace(string(o.Image)) == "" {
		return errors.New("run: image must be non-empty")
	}
	for _, v := range o.Volumes {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// --- Option Functions ---

// WithName sets the engine name used in error messages.
func WithName(name string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.name = name
	}
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.execCommand = fn
	}
}

// WithVolumeFormatter sets a custom volume formatter function.
// This is used by Podman to add SELinux labels on Linux.
func WithVolumeFormatter(fn VolumeFormatFunc) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.volumeFormatter = fn
	}
}

// --- Constructor ---

// NewBaseCLIEngine creates a new base engine with the given binary path.
func NewBaseCLIEngine(binaryPath HostFilesystemPath, opts ...BaseCLIEngineOption) *BaseCLIEngine {
	e := &BaseCLIEngine{
		name:            string(EngineTypeDocker),
		binaryPath:      binaryPath,
		execCommand:     exec.CommandContext,
		volumeFormatter: FormatVolumeMount,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// --- Accessor Methods ---

// Name returns the engine name used in error messages.
func (e *BaseCLIEngine) Name() string {
	return e.name
}

// BinaryPath returns the path to the container engine binary.
func (e *BaseCLIEngine) BinaryPath() string {
	return string(e.binaryPath)
}

// --- Argument Builders ---

// BuildArgs constructs arguments for a quiet container build.
//
// Generated command: <binary> build -q <context>
func (e *BaseCLIEngine) BuildArgs(opts BuildOptions) []string {
	return []string{"build", "-q", opts.ContextDir}
}

// RunArgs constructs arguments for a container run command.
// Returns arguments in the order expected by docker/podman run.
//
// Generated command: <binary> run [--rm] [-e K=V]... [-v host:ctr[:opts]]... <image> [args...]
func (e *BaseCLIEngine) RunArgs(opts RunOptions) []string {
	args := []string{"run"}

	if opts.Remove {
		args = append(args, "--rm")
	}

	for _, env := range opts.Env {
		args = append(args, "-e", env.String())
	}

	for _, v := range opts.Volumes {
		args = append(args, "-v", e.volumeFormatter(v))
	}

	args = append(args, string(opts.Image))
	args = append(args, opts.Args...)

	return args
}

// --- Command Execution ---

// CreateCommand creates an exec.Cmd for the given arguments.
func (e *BaseCLIEngine) CreateCommand(ctx context.Context, args ...string) *exec.Cmd {
	return e.execCommand(ctx, string(e.binaryPath), args...)
}

// Build runs a quiet build and returns the trimmed stdout as the image
// identifier. On a non-zero exit the captured stderr is copied verbatim to
// opts.Stderr and a *BuildError is returned.
func (e *BaseCLIEngine) Build(ctx context.Context, opts BuildOptions) (ImageID, error) {
	args := e.BuildArgs(opts)

	cmd := e.CreateCommand(ctx, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("command %s %v failed: %w", string(e.binaryPath), args, err)
		}
		forwardStderr(opts.Stderr, stderr.Bytes())
		return "", &BuildError{Engine: e.name, Cause: err}
	}

	id := ImageID(strings.TrimSpace(stdout.String()))
	if id == "" {
		return "", fmt.Errorf("%s build %s: %w", e.name, opts.ContextDir, ErrEmptyImageID)
	}
	return id, nil
}

// Run runs an image in a new container and returns the result.
// A non-zero exit code is captured in RunResult.ExitCode (not returned as error).
// Only infrastructure failures (binary missing, invalid options) return an error.
func (e *BaseCLIEngine) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	args := e.RunArgs(opts)

	cmd := e.CreateCommand(ctx, args...)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	result := &RunResult{}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("command %s %v failed: %w", string(e.binaryPath), args, err)
		}
		result.ExitCode = exitCodeOf(exitErr)
	}

	return result, nil
}

// --- Volume Mount Formatting ---

// FormatVolumeMount formats a volume mount as a string for the -v flag.
func FormatVolumeMount(mount VolumeMount) string {
	var result strings.Builder
	result.WriteString(string(mount.HostPath))
	result.WriteString(":")
	result.WriteString(string(mount.ContainerPath))

	var options []string
	if mount.ReadOnly {
		options = append(options, "ro")
	}
	if mount.SELinux != "" {
		options = append(options, string(mount.SELinux))
	}

	if len(options) > 0 {
		result.WriteString(":")
		result.WriteString(strings.Join(options, ","))
	}

	return result.String()
}

// exitCodeOf maps a process exit to a shell-style status; a child killed by a
// signal reports -1 from ExitCode, which becomes 128+signal where available.
func exitCodeOf(exitErr *exec.ExitError) types.ExitCode {
	if code := exitErr.ExitCode(); code >= 0 {
		return types.ExitCode(code)
	}
	if sig, ok := signalOf(exitErr); ok {
		return types.ExitCode(128 + sig)
	}
	return types.ExitFailure
}

func forwardStderr(w io.Writer, captured []byte) {
	if w == nil || len(captured) == 0 {
		return
	}
	_, _ = w.Write(captured)
	if captured[len(captured)-1] != '\n' {
		_, _ = io.WriteString(w, "\n")
	}
}
