// SPDX-License-Identifier: MPL-2.0

//go:build unix

package container

import (
	"os/exec"
	"syscall"
)

func signalOf(exitErr *exec.ExitError) (int, bool) {
	ws, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 0, false
	}
	return int(ws.Signal()), true
}
