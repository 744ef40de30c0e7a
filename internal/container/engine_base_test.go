// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/creddock/creddock/pkg/types"
)

func newMockEngine(t *testing.T, recorder *MockCommandRecorder) *DockerEngine {
	t.Helper()
	return NewDockerEngine("/usr/bin/docker", WithExecCommand(recorder.ContextCommandFunc(t)))
}

func TestBaseCLIEngine_BuildArgs(t *testing.T) {
	t.Parallel()
	engine := NewBaseCLIEngine("/usr/bin/docker")

	got := engine.BuildArgs(BuildOptions{ContextDir: "./app"})
	want := []string{"build", "-q", "./app"}
	if !slices.Equal(got, want) {
		t.Errorf("BuildArgs() = %q, want %q", got, want)
	}
}

func TestBaseCLIEngine_RunArgs(t *testing.T) {
	t.Parallel()
	engine := NewBaseCLIEngine("/usr/bin/docker")

	tests := []struct {
		name     string
		opts     RunOptions
		expected []string
	}{
		{
			name:     "image only",
			opts:     RunOptions{Image: "img123"},
			expected: []string{"run", "img123"},
		},
		{
			name: "credentials run",
			opts: RunOptions{
				Image:  "sha256:abc123",
				Remove: true,
				Env: []EnvVar{
					{Name: "GOOGLE_APPLICATION_CREDENTIALS", Value: "/tmp/keys/creds.json"},
					{Name: "GOOGLE_CLOUD_PROJECT", Value: "myproj"},
				},
				Volumes: []VolumeMount{
					{HostPath: "/creds/adc.json", ContainerPath: "/tmp/keys/creds.json", ReadOnly: true},
				},
			},
			expected: []string{
				"run", "--rm",
				"-e", "GOOGLE_APPLICATION_CREDENTIALS=/tmp/keys/creds.json",
				"-e", "GOOGLE_CLOUD_PROJECT=myproj",
				"-v", "/creds/adc.json:/tmp/keys/creds.json:ro",
				"sha256:abc123",
			},
		},
		{
			name: "extra args follow the image in order",
			opts: RunOptions{
				Image: "img123",
				Args:  []string{"python", "main.py", "--flag"},
			},
			expected: []string{"run", "img123", "python", "main.py", "--flag"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := engine.RunArgs(tt.opts)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("RunArgs() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBaseCLIEngine_Build(t *testing.T) {
	t.Parallel()

	t.Run("trims stdout into image id", func(t *testing.T) {
		t.Parallel()

		recorder := NewMockCommandRecorder()
		recorder.Stdout = "sha256:abc123\n"
		engine := newMockEngine(t, recorder)

		id, err := engine.Build(context.Background(), BuildOptions{ContextDir: "./app"})
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		if id != "sha256:abc123" {
			t.Errorf("Build() = %q, want %q", id, "sha256:abc123")
		}

		recorder.AssertInvocationCount(t, 1)
		recorder.AssertCommandName(t, "/usr/bin/docker")
		recorder.AssertArgs(t, []string{"build", "-q", "./app"})
	})

	t.Run("failure forwards stderr verbatim", func(t *testing.T) {
		t.Parallel()

		recorder := NewMockCommandRecorder()
		recorder.ExitCode = 1
		recorder.Stderr = "unable to prepare context: path \"./nope\" not found"
		engine := newMockEngine(t, recorder)

		var stderr bytes.Buffer
		id, err := engine.Build(context.Background(), BuildOptions{ContextDir: "./nope", Stderr: &stderr})
		if !errors.Is(err, ErrBuildFailed) {
			t.Fatalf("Build() error = %v, want ErrBuildFailed", err)
		}
		if err.Error() != "docker build failed" {
			t.Errorf("Build() error message = %q, want %q", err.Error(), "docker build failed")
		}
		if id != "" {
			t.Errorf("Build() id = %q, want empty", id)
		}
		if got := stderr.String(); got != recorder.Stderr+"\n" {
			t.Errorf("forwarded stderr = %q, want %q", got, recorder.Stderr+"\n")
		}
	})

	t.Run("empty output is an error", func(t *testing.T) {
		t.Parallel()

		recorder := NewMockCommandRecorder()
		recorder.Stdout = "  \n"
		engine := newMockEngine(t, recorder)

		if _, err := engine.Build(context.Background(), BuildOptions{ContextDir: "."}); !errors.Is(err, ErrEmptyImageID) {
			t.Errorf("Build() error = %v, want ErrEmptyImageID", err)
		}
	})
}

func TestBaseCLIEngine_Run(t *testing.T) {
	t.Parallel()

	opts := RunOptions{
		Image:  "img123",
		Remove: true,
		Volumes: []VolumeMount{
			{HostPath: "/creds/adc.json", ContainerPath: "/tmp/keys/creds.json", ReadOnly: true},
		},
	}

	t.Run("streams stdout and reports success", func(t *testing.T) {
		t.Parallel()

		recorder := NewMockCommandRecorder()
		recorder.Stdout = "hello from container"
		engine := newMockEngine(t, recorder)

		var stdout bytes.Buffer
		o := opts
		o.Stdout = &stdout
		result, err := engine.Run(context.Background(), o)
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if !result.ExitCode.IsSuccess() {
			t.Errorf("Run() exit code = %d, want 0", result.ExitCode)
		}
		if stdout.String() != "hello from container" {
			t.Errorf("stdout = %q", stdout.String())
		}
		recorder.AssertFirstArg(t, "run")
		if !recorder.HasArgPair("-v", "/creds/adc.json:/tmp/keys/creds.json:ro") {
			t.Errorf("missing volume flag in %q", recorder.LastArgs())
		}
	})

	t.Run("non-zero exit is reported in result", func(t *testing.T) {
		t.Parallel()

		recorder := NewMockCommandRecorder()
		recorder.ExitCode = 137
		engine := newMockEngine(t, recorder)

		result, err := engine.Run(context.Background(), opts)
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if result.ExitCode != types.ExitCode(137) {
			t.Errorf("Run() exit code = %d, want 137", result.ExitCode)
		}
	})

	t.Run("invalid volume is rejected before spawning", func(t *testing.T) {
		t.Parallel()

		recorder := NewMockCommandRecorder()
		engine := newMockEngine(t, recorder)

		o := opts
		o.Volumes = []VolumeMount{{HostPath: "", ContainerPath: "/tmp/keys/creds.json"}}
		if _, err := engine.Run(context.Background(), o); !errors.Is(err, ErrInvalidVolumeMount) {
			t.Errorf("Run() error = %v, want ErrInvalidVolumeMount", err)
		}
		recorder.AssertInvocationCount(t, 0)
	})
}

func TestBuildAndRunErrors(t *testing.T) {
	t.Parallel()

	runErr := &RunError{Engine: "podman", ExitCode: 2}
	if runErr.Error() != "podman run failed" {
		t.Errorf("RunError.Error() = %q", runErr.Error())
	}
	if !errors.Is(runErr, ErrRunFailed) {
		t.Error("RunError should wrap ErrRunFailed")
	}
	if errors.Is(runErr, ErrBuildFailed) {
		t.Error("RunError should not wrap ErrBuildFailed")
	}
	if !strings.HasSuffix((&BuildError{Engine: "docker"}).Error(), "build failed") {
		t.Error("BuildError message should end in 'build failed'")
	}
}
