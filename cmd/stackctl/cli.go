// Where: cli/cmd/stackctl/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"
	"time"

	"github.com/poruru/stackctl/internal/app"
	"github.com/poruru/stackctl/internal/domain/env"
	"github.com/poruru/stackctl/internal/infra/compose"
	"github.com/poruru/stackctl/internal/infra/interaction"
	"github.com/poruru/stackctl/internal/infra/ui"
)

var (
	getwd           = os.Getwd
	newDockerClient = compose.NewDockerClient
)

// buildDependencies constructs all runtime dependencies required by the CLI.
// The Docker client is created lazily by the commands that need it.
func buildDependencies() (app.Dependencies, error) {
	projectDir, err := getwd()
	if err != nil {
		return app.Dependencies{}, err
	}

	return app.Dependencies{
		ProjectDir:    projectDir,
		Out:           os.Stdout,
		ErrOut:        os.Stderr,
		In:            os.Stdin,
		Environ:       os.Environ,
		Runner:        compose.ExecRunner{},
		Indicator:     ui.NewIndicator(os.Stderr),
		Prompter:      interaction.HuhPrompter{},
		Interactive:   interactive,
		DockerFactory: newDockerClient,
		Secrets:       env.GenerateSecrets,
		Now:           time.Now,
	}, nil
}

// interactive reports whether prompts can be shown.
func interactive() bool {
	return ui.IsTerminal(os.Stdin) && ui.IsTerminal(os.Stdout)
}
