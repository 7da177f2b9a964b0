// Where: cli/internal/infra/ui/indicator.go
// What: Scoped progress indicators for long-running child processes.
// Why: The indicator must always be torn down before the wrapped action's
// result is returned, on success and on failure.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh/spinner"
)

// Indicator shows progress for the lifetime of action. Implementations must
// stop displaying before Run returns.
type Indicator interface {
	Run(title string, action func() error) error
}

// NewIndicator picks a spinner on a terminal and a line printer otherwise.
func NewIndicator(out *os.File) Indicator {
	if IsTerminal(out) {
		return SpinnerIndicator{}
	}
	return LineIndicator{Out: out}
}

var runSpinner = func(title string, action func()) error {
	return spinner.New().
		Type(spinner.Dots).
		Title(" " + title).
		Action(action).
		Run()
}

// SpinnerIndicator renders a huh spinner while the action runs.
type SpinnerIndicator struct{}

// Run owns the action goroutine; the spinner only waits for it. When the
// spinner ends early (interrupt, no terminal) Run still blocks until the
// action has finished and returns its result.
func (SpinnerIndicator) Run(title string, action func() error) error {
	done := make(chan struct{})
	var actionErr error
	go func() {
		defer close(done)
		actionErr = action()
	}()
	_ = runSpinner(title, func() { <-done })
	<-done
	return actionErr
}

// LineIndicator prints a start line and a done/failed suffix.
type LineIndicator struct {
	Out io.Writer
}

func (l LineIndicator) Run(title string, action func() error) error {
	out := l.Out
	if out == nil {
		out = io.Discard
	}
	fmt.Fprintf(out, "%s...\n", title)
	err := action()
	if err != nil {
		fmt.Fprintf(out, "%s... failed\n", title)
		return err
	}
	fmt.Fprintf(out, "%s... done\n", title)
	return nil
}

// NoopIndicator runs the action without output.
type NoopIndicator struct{}

func (NoopIndicator) Run(_ string, action func() error) error {
	return action()
}
