// Where: cli/internal/infra/compose/operations.go
// What: Lifecycle operations as fixed verb compositions.
// Why: Each CLI verb maps to exactly one orchestration invocation.
package compose

import (
	"context"
	"os"
)

// Executor runs orchestration arguments. Invoker is the production implementation.
type Executor interface {
	Run(ctx context.Context, args []string, rc RunConfig, opts ExecOptions) error
}

// Verb argument lists.
var (
	BuildArgs  = []string{"build", "--no-cache", "--force-rm"}
	StartArgs  = []string{"up", "-d", "--force-recreate", "--remove-orphans"}
	StopArgs   = []string{"rm", "--stop", "--force"}
	DevArgs    = []string{"up", "--build", "--force-recreate", "--remove-orphans", "--no-color"}
	StatusArgs = []string{"ps"}
	ConfigArgs = []string{"config"}
)

// Operations exposes the lifecycle verbs.
type Operations struct {
	Exec Executor
	// Dirs are created before start and dev.
	Dirs []string
	// MkdirAll defaults to os.MkdirAll.
	MkdirAll func(path string, perm os.FileMode) error
}

// Build rebuilds every image from scratch.
func (o Operations) Build(ctx context.Context) error {
	return o.run(ctx, BuildArgs, RunConfig{Mode: ModeProd}, ExecOptions{WaitLog: "Building images"})
}

// Start recreates the production stack in the background.
func (o Operations) Start(ctx context.Context) error {
	if err := o.ensureDirs(); err != nil {
		return err
	}
	return o.run(ctx, StartArgs, RunConfig{Mode: ModeProd}, ExecOptions{WaitLog: "Starting services"})
}

// Stop stops and removes the containers of mode.
func (o Operations) Stop(ctx context.Context, mode RunMode) error {
	return o.run(ctx, StopArgs, RunConfig{Mode: defaultMode(mode)}, ExecOptions{WaitLog: "Stopping services"})
}

// Dev rebuilds and runs the development stack in the foreground.
func (o Operations) Dev(ctx context.Context) error {
	if err := o.ensureDirs(); err != nil {
		return err
	}
	return o.run(ctx, DevArgs, RunConfig{Mode: ModeDev}, ExecOptions{StreamOutput: true})
}

// Status lists the production containers.
func (o Operations) Status(ctx context.Context) error {
	return o.run(ctx, StatusArgs, RunConfig{Mode: ModeProd}, ExecOptions{StreamOutput: true})
}

// Config prints the resolved compose configuration of mode.
func (o Operations) Config(ctx context.Context, mode RunMode) error {
	return o.run(ctx, ConfigArgs, RunConfig{Mode: defaultMode(mode)}, ExecOptions{StreamOutput: true})
}

func (o Operations) run(ctx context.Context, args []string, rc RunConfig, opts ExecOptions) error {
	if o.Exec == nil {
		return errCommandRunnerNil
	}
	return o.Exec.Run(ctx, append([]string(nil), args...), rc, opts)
}

func (o Operations) ensureDirs() error {
	mkdir := o.MkdirAll
	if mkdir == nil {
		mkdir = os.MkdirAll
	}
	for _, dir := range o.Dirs {
		if dir == "" {
			continue
		}
		if err := mkdir(dir, 0o755); err != nil {
			return &FilesystemError{Op: "create directory", Path: dir, Err: err}
		}
	}
	return nil
}

func defaultMode(mode RunMode) RunMode {
	if mode == "" {
		return ModeProd
	}
	return mode
}
