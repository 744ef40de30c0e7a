// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/creddock/creddock/internal/credentials"
)

// Flag names.
const (
	FlagADC          = "adc"
	FlagADCContainer = "adc-docker"
	FlagProject      = "project"
	FlagContext      = "context"
	FlagArgs         = "args"
	FlagCommand      = "cmd"
	FlagEngine       = "engine"
	FlagVerbose      = "verbose"

	// EnvPrefix prefixes the environment overrides of ambient keys.
	EnvPrefix = "CREDDOCK"
)

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// GOOS selects the default credentials location. Defaults to runtime.GOOS.
	GOOS string
	// LookupEnv resolves HOME/APPDATA. Defaults to os.LookupEnv.
	LookupEnv credentials.LookupEnvFunc
	// Positional are trailing command-line arguments appended after --args.
	Positional []string
}

// AddFlags registers the creddock flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(FlagADC, "", "path to your Google Cloud credentials (default: the gcloud user credentials)")
	fs.String(FlagADCContainer, DefaultADCContainerPath, "path to the credentials file inside the container")
	fs.String(FlagProject, "", "Google Cloud project id")
	fs.StringP(FlagContext, "c", "", "directory to build the image from")
	fs.StringArray(FlagArgs, nil, "argument passed to the container after the image (repeatable)")
	fs.String(FlagCommand, "", "shell-quoted command line appended after --args")
	fs.String(FlagEngine, string(DefaultEngine), "container engine CLI (docker or podman)")
	fs.BoolP(FlagVerbose, "v", false, "enable verbose output")
}

// Load resolves the configuration from parsed flags. The returned config is
// validated; a missing --adc is replaced by the platform default location.
func Load(fs *pflag.FlagSet, opts LoadOptions) (*Config, error) {
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}

	v := viper.New()
	v.SetDefault(FlagADCContainer, DefaultADCContainerPath)
	v.SetDefault(FlagEngine, string(DefaultEngine))
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range []string{FlagEngine, FlagVerbose} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	for _, name := range []string{FlagADC, FlagADCContainer, FlagProject, FlagContext, FlagCommand, FlagEngine, FlagVerbose} {
		if err := v.BindPFlag(name, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	args, err := extraArgs(fs, cfg.Command, opts.Positional)
	if err != nil {
		return nil, err
	}
	cfg.Args = args

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.ADC == "" {
		path, err := credentials.DefaultPath(opts.GOOS, opts.LookupEnv)
		if err != nil {
			return nil, err
		}
		cfg.ADC = path
	}

	return &cfg, nil
}

// extraArgs concatenates --args values, positional arguments and the split
// --cmd line, dropping empty entries.
func extraArgs(fs *pflag.FlagSet, command string, positional []string) ([]string, error) {
	flagArgs, err := fs.GetStringArray(FlagArgs)
	if err != nil {
		return nil, fmt.Errorf("read --%s: %w", FlagArgs, err)
	}

	all := append(append([]string{}, flagArgs...), positional...)
	if command != "" {
		fields, err := splitCommand(command)
		if err != nil {
			return nil, &InvalidConfigError{Field: FlagCommand, Reason: err.Error()}
		}
		all = append(all, fields...)
	}
	return FilterArgs(all), nil
}
