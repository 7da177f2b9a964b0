// Where: cli/internal/infra/compose/runner.go
// What: External command execution.
// Why: Keep os/exec behind an interface so invocations can be asserted in tests.
package compose

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// Command is a fully resolved child process invocation.
type Command struct {
	Dir    string
	Name   string
	Args   []string
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CommandRunner defines the interface for executing external commands.
// A non-zero exit must surface as an error implementing ExitCode() int.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner is a concrete implementation of CommandRunner using os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if c.Env != nil {
		cmd.Env = c.Env
	}
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", c.Name, err)
	}
	return nil
}
