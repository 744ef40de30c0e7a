// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/creddock/creddock/internal/config"
	"github.com/creddock/creddock/internal/container"
	"github.com/creddock/creddock/internal/credentials"
	"github.com/creddock/creddock/internal/issue"
)

type (
	// CanonicalizeFunc resolves the host credentials path before mounting.
	CanonicalizeFunc func(path string) (string, error)

	// Option configures a Launcher.
	Option func(*Launcher)

	// Launcher builds and runs an image with credentials injected.
	Launcher struct {
		engine       container.Engine
		stdin        io.Reader
		stdout       io.Writer
		stderr       io.Writer
		canonicalize CanonicalizeFunc
		logger       *slog.Logger
	}
)

// WithStdio overrides the streams connected to the engine. Defaults to the
// process's own stdin, stdout and stderr.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(l *Launcher) {
		l.stdin = stdin
		l.stdout = stdout
		l.stderr = stderr
	}
}

// WithCanonicalizer overrides credentials path resolution.
func WithCanonicalizer(fn CanonicalizeFunc) Option {
	return func(l *Launcher) {
		l.canonicalize = fn
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launcher) {
		l.logger = logger
	}
}

// New creates a Launcher driving the given engine.
func New(engine container.Engine, opts ...Option) *Launcher {
	l := &Launcher{
		engine:       engine,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		canonicalize: credentials.Canonicalize,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch builds the image and runs it. The run step is never attempted when
// the build fails.
func (l *Launcher) Launch(ctx context.Context, cfg *config.Config) error {
	image, err := l.Build(ctx, cfg)
	if err != nil {
		return err
	}
	return l.Run(ctx, cfg, image)
}

// Build builds the configured context and returns the image identifier.
func (l *Launcher) Build(ctx context.Context, cfg *config.Config) (container.ImageID, error) {
	l.logger.Debug("building image", "engine", l.engine.Name(), "binary", l.engine.BinaryPath(), "context", cfg.Context)

	image, err := l.engine.Build(ctx, container.BuildOptions{
		ContextDir: cfg.Context,
		Stderr:     l.stderr,
	})
	if err != nil {
		return "", err
	}

	l.logger.Debug("image built", "image", image)
	return image, nil
}

// Run runs image with the credentials mounted and returns a *container.RunError
// when the container exits non-zero.
func (l *Launcher) Run(ctx context.Context, cfg *config.Config, image container.ImageID) error {
	localCreds, err := l.canonicalize(cfg.ADC)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("resolve credentials").
			WithResource(cfg.ADC).
			WithSuggestion("Run 'gcloud auth application-default login' to create user credentials").
			WithSuggestion("Pass an existing credentials file with --adc").
			Wrap(err).
			BuildError()
	}

	fmt.Fprintf(l.stdout, "local_creds: %q\n", localCreds)
	fmt.Fprintf(l.stderr, "[creddock] mount source = %q\n", localCreds)

	opts := container.RunOptions{
		Image:  image,
		Args:   cfg.Args,
		Env:    cfg.ContainerEnv(),
		Remove: true,
		Volumes: []container.VolumeMount{{
			HostPath:      container.HostFilesystemPath(localCreds),
			ContainerPath: container.MountTargetPath(cfg.ADCContainer),
			ReadOnly:      true,
		}},
		Stdin:  l.stdin,
		Stdout: l.stdout,
		Stderr: l.stderr,
	}

	l.logger.Debug("running container", "image", image, "args", cfg.Args)
	result, err := l.engine.Run(ctx, opts)
	if err != nil {
		return err
	}
	if !result.ExitCode.IsSuccess() {
		l.logger.Debug("container exited", "code", result.ExitCode, "signal", result.ExitCode.IsSignal())
		return &container.RunError{Engine: l.engine.Name(), ExitCode: result.ExitCode}
	}
	return nil
}
