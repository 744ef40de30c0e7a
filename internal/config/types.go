// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creddock/creddock/internal/container"
)

const (
	// DefaultADCContainerPath is where the credentials file is mounted inside the container.
	DefaultADCContainerPath = "/tmp/keys/creds.json"

	// DefaultEngine is the container engine used when none is selected.
	DefaultEngine = container.EngineTypeDocker

	// EnvCredentials points Google client libraries at the mounted ADC file.
	EnvCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	// EnvProject names the Google Cloud project inside the container.
	EnvProject = "GOOGLE_CLOUD_PROJECT"
)

// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config is the immutable configuration of one invocation.
	Config struct {
		// ADC is the host credentials file path.
		ADC string `mapstructure:"adc"`
		// ADCContainer is the in-container credentials path.
		ADCContainer string `mapstructure:"adc-docker"`
		// Project is the Google Cloud project id.
		Project string `mapstructure:"project"`
		// Context is the build context directory.
		Context string `mapstructure:"context"`
		// Engine selects the container engine CLI.
		Engine container.EngineType `mapstructure:"engine"`
		// Command is a shell-quoted command line appended after Args.
		Command string `mapstructure:"cmd"`
		// Verbose enables debug logging.
		Verbose bool `mapstructure:"verbose"`
		// Args are the extra run arguments with empty entries removed.
		Args []string `mapstructure:"-"`
	}

	// InvalidConfigError is returned when a required value is missing or malformed.
	InvalidConfigError struct {
		Field  string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid --%s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate returns an error if the configuration cannot drive a build and run.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Project) == "" {
		errs = append(errs, &InvalidConfigError{Field: FlagProject, Reason: "project id is required"})
	}
	if strings.TrimSpace(c.Context) == "" {
		errs = append(errs, &InvalidConfigError{Field: FlagContext, Reason: "build context directory is required"})
	}
	if strings.TrimSpace(c.ADCContainer) == "" {
		errs = append(errs, &InvalidConfigError{Field: FlagADCContainer, Reason: "in-container path must be non-empty"})
	}
	if err := c.Engine.Validate(); err != nil {
		errs = append(errs, &InvalidConfigError{Field: FlagEngine, Reason: err.Error()})
	}
	return errors.Join(errs...)
}

// ContainerEnv returns the variables exported into the container, in order.
func (c *Config) ContainerEnv() []container.EnvVar {
	return []container.EnvVar{
		{Name: EnvCredentials, Value: c.ADCContainer},
		{Name: EnvProject, Value: c.Project},
	}
}

// FilterArgs drops empty-string entries while preserving order.
// It returns nil when nothing remains.
func FilterArgs(args []string) []string {
	var out []string
	for _, a := range args {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
