package compose

import (
	"context"
	"fmt"
	"io"
)

type fakeExitError struct {
	code int
}

func (e fakeExitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
func (e fakeExitError) ExitCode() int { return e.code }

type fakeRunner struct {
	calls  []Command
	stdout string
	stderr string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, cmd Command) error {
	f.calls = append(f.calls, cmd)
	if f.stdout != "" && cmd.Stdout != nil {
		_, _ = io.WriteString(cmd.Stdout, f.stdout)
	}
	if f.stderr != "" && cmd.Stderr != nil {
		_, _ = io.WriteString(cmd.Stderr, f.stderr)
	}
	return f.err
}

func (f *fakeRunner) last() Command {
	if len(f.calls) == 0 {
		return Command{}
	}
	return f.calls[len(f.calls)-1]
}

type recordingIndicator struct {
	titles []string
	active bool
	events []string
}

func (r *recordingIndicator) Run(title string, action func() error) error {
	r.titles = append(r.titles, title)
	r.active = true
	r.events = append(r.events, "start")
	defer func() {
		r.active = false
		r.events = append(r.events, "stop")
	}()
	return action()
}
