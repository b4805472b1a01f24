package process

// Notes:
// - Real kill behavior is covered by the browser integration tests; unit tests
//   only use PIDs that cannot address live processes.

import (
	"errors"
	"runtime"
	"testing"
)

// ---------------------------------------------------------------------------
// TestKillTree - PID validation and vanished processes
// ---------------------------------------------------------------------------

func TestKillTree_InvalidPID(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1, -12345} {
		if err := KillTree(pid); !errors.Is(err, ErrInvalidPID) {
			t.Errorf("KillTree(%d) error = %v, want ErrInvalidPID", pid, err)
		}
	}
}

func TestKillTree_MissingProcess(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("taskkill reports missing processes as errors")
	}
	if err := KillTree(999999999); err != nil {
		t.Errorf("KillTree(missing) error = %v, want nil", err)
	}
}
