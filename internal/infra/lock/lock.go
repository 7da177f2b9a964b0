// Where: cli/internal/infra/lock/lock.go
// What: Single-instance guard for mutating commands.
// Why: Two concurrent lifecycle commands on one deployment race on .env and containers.
package lock

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrLocked reports that another process holds the deployment lock.
var ErrLocked = errors.New("another stackctl command is running")

// HeldError names the holder of a contended lock.
type HeldError struct {
	Path      string
	HolderPID int
}

func (e *HeldError) Error() string {
	if e.HolderPID > 0 {
		return fmt.Sprintf("%s (PID %d); remove %s if it is stale", ErrLocked, e.HolderPID, e.Path)
	}
	return fmt.Sprintf("%s (lock %s)", ErrLocked, e.Path)
}

func (e *HeldError) Unwrap() error { return ErrLocked }

// Lock is an acquired deployment lock.
type Lock struct {
	path string
	file *os.File
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

func readHolderPID(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}
