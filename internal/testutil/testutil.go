// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// FakeCredentials is the content written by WriteCredentials.
const FakeCredentials = `{"type":"authorized_user","client_id":"test","refresh_token":"test"}`

// RealTempDir returns t.TempDir() with symlinks resolved, so paths compare
// equal to canonicalized ones (macOS /var is a link to /private/var).
func RealTempDir(t testing.TB) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	return dir
}

// MustMkdirAll creates a directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustWriteFile writes content to path, creating parent directories.
// The test fails immediately if the operation fails.
func MustWriteFile(t testing.TB, path, content string) {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// MustSymlink creates newname as a symbolic link to oldname.
// The test fails immediately if the operation fails.
func MustSymlink(t testing.TB, oldname, newname string) {
	t.Helper()
	if err := os.Symlink(oldname, newname); err != nil {
		t.Fatalf("failed to link %s -> %s: %v", newname, oldname, err)
	}
}

// WriteCredentials writes a fake ADC file named adc.json into dir and
// returns its path.
func WriteCredentials(t testing.TB, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "adc.json")
	MustWriteFile(t, path, FakeCredentials)
	return path
}
