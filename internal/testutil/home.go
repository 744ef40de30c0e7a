// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/creddock/creddock/pkg/platform"
)

// SetCredentialsHome points the variable gcloud derives its configuration
// directory from at dir and returns the gcloud configuration directory:
//
//   - Windows: sets APPDATA, returns dir/gcloud
//   - everything else: sets HOME, returns dir/.config/gcloud
//
// The variable is restored when the test ends, so callers must not be parallel.
func SetCredentialsHome(t *testing.T, dir string) string {
	t.Helper()

	if runtime.GOOS == platform.Windows {
		t.Setenv("APPDATA", dir)
		return filepath.Join(dir, "gcloud")
	}
	t.Setenv("HOME", dir)
	return filepath.Join(dir, ".config", "gcloud")
}
