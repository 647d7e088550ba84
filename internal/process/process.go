// Package process terminates the browser process trees a renderer starts.
// Chrome forks renderer and GPU helpers; killing only the parent can leave
// them running after a crash or a cancelled conversion.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID rejects PIDs that would target the caller's own group or init.
var ErrInvalidPID = errors.New("invalid process id")

// KillTree kills pid and every process it spawned.
// A process that already exited is not an error.
func KillTree(pid int) error {
	if pid <= 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return killTree(pid)
}
