// SPDX-License-Identifier: MPL-2.0

package container

import (
	"os"
	"strings"
)

// selinuxEnforcePath reports the SELinux mode on Linux hosts.
const selinuxEnforcePath = "/sys/fs/selinux/enforce"

type (
	// SELinuxCheckFunc is a function that checks if SELinux is enabled.
	// This allows injection of mock implementations for testing.
	SELinuxCheckFunc func() bool

	// PodmanEngine implements the Engine interface using Podman CLI.
	// It embeds BaseCLIEngine for common CLI operations.
	PodmanEngine struct {
		*BaseCLIEngine
	}
)

// NewPodmanEngine creates a new Podman engine backed by the binary at path.
// On Linux with SELinux enforcing, volume mounts are automatically labeled with :z.
func NewPodmanEngine(path HostFilesystemPath, opts ...BaseCLIEngineOption) *PodmanEngine {
	// Podman needs SELinux volume labels on Linux (prepend to user options)
	allOpts := append([]BaseCLIEngineOption{
		WithName(string(EngineTypePodman)),
		WithVolumeFormatter(selinuxVolumeFormatter(isSELinuxEnabled)),
	}, opts...)

	return &PodmanEngine{
		BaseCLIEngine: NewBaseCLIEngine(path, allOpts...),
	}
}

// isSELinuxEnabled checks if SELinux is enforcing on the system.
func isSELinuxEnabled() bool {
	data, err := os.ReadFile(selinuxEnforcePath)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "1"
}

// selinuxVolumeFormatter labels unlabeled mounts with :z when check reports
// SELinux as enforcing. Without it the container cannot read the bind mount.
func selinuxVolumeFormatter(check SELinuxCheckFunc) VolumeFormatFunc {
	return func(mount VolumeMount) string {
		if mount.SELinux == SELinuxLabelNone && check() {
			mount.SELinux = SELinuxLabelShared
		}
		return FormatVolumeMount(mount)
	}
}
