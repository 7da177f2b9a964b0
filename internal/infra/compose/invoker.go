// Where: cli/internal/infra/compose/invoker.go
// What: Run the orchestration tool for a verb.
// Why: One place decides the command line, environment, and output handling
// for every lifecycle and backup operation.
package compose

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/poruru/stackctl/internal/infra/config"
	"github.com/poruru/stackctl/internal/infra/ui"
)

// Invoker executes orchestration commands. Env is passed verbatim to the
// child; callers supply the process environment merged with .env values.
type Invoker struct {
	Runner    CommandRunner
	Settings  config.Settings
	Env       []string
	Indicator ui.Indicator
	In        io.Reader
	Out       io.Writer
	ErrOut    io.Writer
}

// Run builds the command line for args under rc and executes it.
// It returns *ProcessError for a non-zero exit.
func (i Invoker) Run(ctx context.Context, args []string, rc RunConfig, opts ExecOptions) error {
	if i.Runner == nil {
		return errCommandRunnerNil
	}
	name, argv, err := BuildCommandLine(i.Settings, args, rc)
	if err != nil {
		return err
	}
	cmd := Command{
		Dir:  i.Settings.RootDir,
		Name: name,
		Args: argv,
		Env:  i.Env,
	}

	if opts.StreamOutput {
		// Live stderr is already on screen; the error carries no tail.
		cmd.Stdin = i.in()
		cmd.Stdout = i.out()
		cmd.Stderr = i.errOut()
		return i.classify(ctx, cmd, nil)
	}

	captured := newTailBuffer(defaultTailBytes)
	cmd.Stdout = captured
	cmd.Stderr = captured
	run := func() error {
		return i.classify(ctx, cmd, captured)
	}

	if strings.TrimSpace(opts.WaitLog) != "" {
		return i.indicator().Run(opts.WaitLog, run)
	}
	return run()
}

func (i Invoker) classify(ctx context.Context, cmd Command, tail *tailBuffer) error {
	err := i.Runner.Run(ctx, cmd)
	if err == nil {
		return nil
	}
	display := strings.TrimSpace(cmd.Name + " " + strings.Join(cmd.Args, " "))
	var stderrTail string
	if tail != nil {
		stderrTail = tail.Lines(defaultTailLines)
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) && coded.ExitCode() >= 0 {
		return &ProcessError{
			Command:    display,
			ExitCode:   coded.ExitCode(),
			StderrTail: stderrTail,
			Err:        err,
		}
	}
	return &ProcessError{
		Command:    display,
		ExitCode:   -1,
		StderrTail: stderrTail,
		Err:        err,
	}
}

func (i Invoker) indicator() ui.Indicator {
	if i.Indicator == nil {
		return ui.NoopIndicator{}
	}
	return i.Indicator
}

func (i Invoker) in() io.Reader {
	if i.In == nil {
		return os.Stdin
	}
	return i.In
}

func (i Invoker) out() io.Writer {
	if i.Out == nil {
		return os.Stdout
	}
	return i.Out
}

func (i Invoker) errOut() io.Writer {
	if i.ErrOut == nil {
		return os.Stderr
	}
	return i.ErrOut
}
