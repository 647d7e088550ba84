//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// killTree uses taskkill: /F forces, /T includes child processes.
// taskkill fails for a PID that no longer exists, which is ignored.
func killTree(pid int) error {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
	return nil
}
