// Where: cli/cmd/stackctl/cli_test.go
// What: Tests for dependency wiring.
// Why: Ensure the production graph is complete without touching Docker.
package main

import (
	"errors"
	"testing"

	"github.com/poruru/stackctl/internal/infra/compose"
)

func TestBuildDependenciesWiresCollaborators(t *testing.T) {
	origGetwd := getwd
	t.Cleanup(func() { getwd = origGetwd })
	getwd = func() (string, error) { return "/srv/rent", nil }

	deps, err := buildDependencies()
	if err != nil {
		t.Fatalf("buildDependencies() error = %v", err)
	}
	if deps.ProjectDir != "/srv/rent" {
		t.Fatalf("ProjectDir = %q", deps.ProjectDir)
	}
	if deps.Runner == nil || deps.Indicator == nil || deps.Prompter == nil {
		t.Fatal("runner, indicator and prompter must be wired")
	}
	if deps.DockerFactory == nil || deps.Secrets == nil || deps.Now == nil {
		t.Fatal("docker factory, secrets and clock must be wired")
	}
}

func TestBuildDependenciesGetwdError(t *testing.T) {
	origGetwd := getwd
	t.Cleanup(func() { getwd = origGetwd })
	getwd = func() (string, error) { return "", errors.New("cwd removed") }

	if _, err := buildDependencies(); err == nil {
		t.Fatal("expected error")
	}
}

func TestDockerFactoryIsLazy(t *testing.T) {
	origFactory := newDockerClient
	t.Cleanup(func() { newDockerClient = origFactory })
	called := false
	newDockerClient = func() (compose.DockerClient, error) {
		called = true
		return nil, errors.New("no daemon")
	}

	deps, err := buildDependencies()
	if err != nil {
		t.Fatalf("buildDependencies() error = %v", err)
	}
	if called {
		t.Fatal("docker client must not be created during wiring")
	}
	if _, err := deps.DockerFactory(); err == nil || !called {
		t.Fatal("factory must delegate to newDockerClient")
	}
}
