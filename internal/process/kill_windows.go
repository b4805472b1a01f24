//go:build windows

package process

import (
	"fmt"
	"os/exec"
	"strconv"
)

// KillTree force-terminates pid and its children with taskkill.
func KillTree(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	// /F forces termination, /T includes the child tree.
	// #nosec G204 -- pid is an integer
	if err := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run(); err != nil {
		return fmt.Errorf("taskkill %d: %w", pid, err)
	}
	return nil
}
