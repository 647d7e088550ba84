//go:build !windows

package process

import (
	"errors"
	"syscall"
)

// killTree sends SIGKILL to the process group (negative PID). The rod
// launcher starts Chrome as a group leader. For a process that leads no
// group, no group matches and ESRCH is ignored.
func killTree(pid int) error {
	err := syscall.Kill(-pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return err
}
