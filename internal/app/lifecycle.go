// Where: cli/internal/app/lifecycle.go
// What: build/start/stop/dev/status/config handlers.
// Why: Each verb loads the session and runs one lifecycle operation.
package app

import (
	"context"
	"os"
	"os/signal"

	"github.com/poruru/stackctl/internal/infra/compose"
)

func runBuild(ctx context.Context, cli CLI, deps Dependencies) error {
	s, err := openSession(cli, deps)
	if err != nil {
		return err
	}
	if err := s.operations().Build(ctx); err != nil {
		return err
	}
	s.console.Success("Images built")
	return nil
}

func runStart(ctx context.Context, cli CLI, deps Dependencies) error {
	s, err := openSession(cli, deps)
	if err != nil {
		return err
	}
	if err := s.operations().Start(ctx); err != nil {
		return err
	}
	s.console.Success("Services started")
	return nil
}

func runStop(ctx context.Context, cli CLI, deps Dependencies) error {
	mode, err := resolveMode(cli.Stop.Mode, deps)
	if err != nil {
		return err
	}
	s, err := openSession(cli, deps)
	if err != nil {
		return err
	}
	if err := s.operations().Stop(ctx, mode); err != nil {
		return err
	}
	s.console.Success("Services stopped (" + string(mode) + ")")
	return nil
}

// runDev streams the foreground stack. Interrupts are left to the child so
// the orchestration tool can stop its containers before we return. The
// controller only swallows SIGINT; it must not set SIG_IGN, which the child
// would inherit across exec.
func runDev(ctx context.Context, cli CLI, deps Dependencies) error {
	s, err := openSession(cli, deps)
	if err != nil {
		return err
	}
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)
	return s.operations().Dev(ctx)
}

func runStatus(ctx context.Context, cli CLI, deps Dependencies) error {
	s, err := openSession(cli, deps)
	if err != nil {
		return err
	}
	return s.operations().Status(ctx)
}

func runConfig(ctx context.Context, cli CLI, deps Dependencies) error {
	mode, err := resolveMode(cli.Config.Mode, deps)
	if err != nil {
		return err
	}
	s, err := openSession(cli, deps)
	if err != nil {
		return err
	}
	return s.operations().Config(ctx, mode)
}

// resolveMode parses flag, asking on a terminal when it is empty.
// Non-interactive callers get prod.
func resolveMode(flag string, deps Dependencies) (compose.RunMode, error) {
	if flag != "" || !deps.Interactive() {
		return compose.ParseRunMode(flag)
	}
	options := make([]string, len(compose.RunModes))
	for i, mode := range compose.RunModes {
		options[i] = string(mode)
	}
	selected, err := deps.Prompter.Select("Run mode", options)
	if err != nil {
		return "", err
	}
	if selected == "" {
		return "", errModeRequired
	}
	return compose.ParseRunMode(selected)
}
