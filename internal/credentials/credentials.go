// SPDX-License-Identifier: MPL-2.0

package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/creddock/creddock/pkg/platform"
)

const (
	// FileName is the file gcloud writes on `gcloud auth application-default login`.
	FileName = "application_default_credentials.json"

	// HomeEnv holds the user's home directory on unix-like systems.
	HomeEnv = "HOME"
	// AppDataEnv holds the roaming profile directory on Windows.
	AppDataEnv = "APPDATA"
)

var (
	// ErrUnsupportedOS is the sentinel error wrapped by UnsupportedOSError.
	ErrUnsupportedOS = errors.New("unsupported OS")

	// ErrEnvNotSet is the sentinel error wrapped by EnvNotSetError.
	ErrEnvNotSet = errors.New("environment variable not set")
)

type (
	// LookupEnvFunc has the signature of os.LookupEnv.
	LookupEnvFunc func(key string) (string, bool)

	// UnsupportedOSError is returned when no default location is known for GOOS.
	UnsupportedOSError struct {
		GOOS string
	}

	// EnvNotSetError is returned when the variable anchoring the default
	// location is unset or empty.
	EnvNotSetError struct {
		Name string
	}
)

// Error implements the error interface.
func (e *UnsupportedOSError) Error() string {
	return fmt.Sprintf("unsupported OS %q: no default credentials location", e.GOOS)
}

// Unwrap returns ErrUnsupportedOS for errors.Is() compatibility.
func (e *UnsupportedOSError) Unwrap() error { return ErrUnsupportedOS }

// Error implements the error interface.
func (e *EnvNotSetError) Error() string {
	return fmt.Sprintf("environment variable %s is not set", e.Name)
}

// Unwrap returns ErrEnvNotSet for errors.Is() compatibility.
func (e *EnvNotSetError) Unwrap() error { return ErrEnvNotSet }

// DefaultPath returns the location gcloud uses for ADC on the given OS:
//
//	unix:    $HOME/.config/gcloud/application_default_credentials.json
//	windows: %APPDATA%/gcloud/application_default_credentials.json
func DefaultPath(goos string, lookupEnv LookupEnvFunc) (string, error) {
	switch platform.FamilyOf(goos) {
	case platform.FamilyUnix:
		home, err := requireEnv(lookupEnv, HomeEnv)
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "gcloud", FileName), nil
	case platform.FamilyWindows:
		appData, err := requireEnv(lookupEnv, AppDataEnv)
		if err != nil {
			return "", err
		}
		return filepath.Join(appData, "gcloud", FileName), nil
	default:
		return "", &UnsupportedOSError{GOOS: goos}
	}
}

// Canonicalize returns the absolute path of the credentials file with every
// symlink and relative segment resolved. The file must exist.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve credentials path %q: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve credentials path %q: %w", path, err)
	}
	if _, err := os.Stat(resolved); err != nil {
		return "", fmt.Errorf("stat credentials file: %w", err)
	}
	return resolved, nil
}

func requireEnv(lookupEnv LookupEnvFunc, name string) (string, error) {
	v, ok := lookupEnv(name)
	if !ok || v == "" {
		return "", &EnvNotSetError{Name: name}
	}
	return v, nil
}
