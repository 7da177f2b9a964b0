// Where: cli/internal/infra/compose/errors.go
// What: Shared error definitions for compose infra.
// Why: Ensure consistent error wrapping without dynamic error creation.
package compose

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errCommandRunnerNil = errors.New("command runner is nil")
	errUnsupportedMode  = errors.New("unsupported mode")
	errDockerClientNil  = errors.New("docker client is nil")
	errNoComposeFiles   = errors.New("no compose files configured")
	errBinaryRequired   = errors.New("compose binary is required")
)

// ProcessError reports a child process that did not exit cleanly.
// ExitCode is -1 when the process could not be started or was killed by a signal.
type ProcessError struct {
	Command    string
	ExitCode   int
	StderrTail string
	Err        error
}

func (e *ProcessError) Error() string {
	var b strings.Builder
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, "%s exited with code %d", e.Command, e.ExitCode)
	} else {
		fmt.Fprintf(&b, "%s did not complete", e.Command)
		if e.Err != nil {
			fmt.Fprintf(&b, ": %v", e.Err)
		}
	}
	if tail := strings.TrimSpace(e.StderrTail); tail != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(tail, "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// FilesystemError reports a failed pre-step on the host filesystem.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
