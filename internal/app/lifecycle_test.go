// Where: cli/internal/app/lifecycle_test.go
// What: Tests for lifecycle command wiring.
// Why: Each verb must reach the orchestration tool with its fixed arguments.
package app

import (
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poruru/stackctl/internal/infra/compose"
	"github.com/poruru/stackctl/internal/meta"
)

func TestLifecycleVerbsRunComposeVerb(t *testing.T) {
	cases := []struct {
		args []string
		verb []string
		file string
	}{
		{args: []string{"build"}, verb: compose.BuildArgs, file: "docker-compose.yml"},
		{args: []string{"start"}, verb: compose.StartArgs, file: "docker-compose.yml"},
		{args: []string{"stop"}, verb: compose.StopArgs, file: "docker-compose.yml"},
		{args: []string{"stop", "--mode", "dev"}, verb: compose.StopArgs, file: "docker-compose.dev.yml"},
		{args: []string{"dev"}, verb: compose.DevArgs, file: "docker-compose.dev.yml"},
		{args: []string{"status"}, verb: compose.StatusArgs, file: "docker-compose.yml"},
		{args: []string{"config", "-m", "dev"}, verb: compose.ConfigArgs, file: "docker-compose.dev.yml"},
	}
	for _, tc := range cases {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			e := newTestEnv(t)
			if code := e.run(tc.args...); code != 0 {
				t.Fatalf("exit code = %d\n%s", code, e.out.String())
			}
			cmd := e.runner.last(t)
			if cmd.Name != "docker" {
				t.Fatalf("Name = %q", cmd.Name)
			}
			if !hasSuffix(cmd.Args, tc.verb) {
				t.Fatalf("args = %v, want suffix %v", cmd.Args, tc.verb)
			}
			if !containsArg(cmd.Args, filepath.Join(e.dir, tc.file)) {
				t.Fatalf("args = %v, want file %s", cmd.Args, tc.file)
			}
		})
	}
}

func TestLifecycleFailureReturnsExitCodeOne(t *testing.T) {
	e := newTestEnv(t)
	e.runner.failOn = "build"
	e.runner.stderr = "failed to solve: dockerfile not found\n"

	if code := e.run("build"); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	out := e.out.String()
	if !strings.Contains(out, "exited with code 2") {
		t.Fatalf("missing exit code in output:\n%s", out)
	}
	if n := strings.Count(out, "dockerfile not found"); n != 1 {
		t.Fatalf("child stderr reported %d times:\n%s", n, out)
	}

	// The process keeps working after a failed verb.
	e.runner.failOn = ""
	if code := e.run("status"); code != 0 {
		t.Fatalf("subsequent command exit code = %d", code)
	}
}

func TestStartCreatesDataDirectories(t *testing.T) {
	e := newTestEnv(t)
	if code := e.run("start"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	for _, dir := range []string{"data", "backup"} {
		if info, err := os.Stat(filepath.Join(e.dir, dir)); err != nil || !info.IsDir() {
			t.Fatalf("%s not created: %v", dir, err)
		}
	}
}

func TestStartPassesEnvFileToChild(t *testing.T) {
	e := newTestEnv(t)
	writeFile(t, filepath.Join(e.dir, meta.EnvFile), "NGINX_PORT=8080\nDB_NAME=appdb\n")

	if code := e.run("start"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	cmd := e.runner.last(t)
	if !containsArg(cmd.Env, "NGINX_PORT=8080") || !containsArg(cmd.Env, "PATH=/usr/bin") {
		t.Fatalf("env = %v", cmd.Env)
	}
}

func TestStopPromptsForModeOnTerminal(t *testing.T) {
	e := newTestEnv(t)
	e.interactive()
	e.prompter.selectAnswer = "dev"

	if code := e.run("stop"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if e.prompter.selectCalls != 1 {
		t.Fatalf("select calls = %d", e.prompter.selectCalls)
	}
	if !containsArg(e.runner.last(t).Args, filepath.Join(e.dir, "docker-compose.dev.yml")) {
		t.Fatalf("dev files not used: %v", e.runner.last(t).Args)
	}
}

func TestStopWithModeFlagSkipsPrompt(t *testing.T) {
	e := newTestEnv(t)
	e.interactive()

	if code := e.run("stop", "--mode", "prod"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if e.prompter.selectCalls != 0 {
		t.Fatal("prompt must not be shown when --mode is given")
	}
}

func TestStopRejectsUnknownMode(t *testing.T) {
	e := newTestEnv(t)
	if code := e.run("stop", "--mode", "staging"); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if len(e.runner.commands) != 0 {
		t.Fatal("nothing may run for an unknown mode")
	}
}

func TestStreamingVerbsAttachStdin(t *testing.T) {
	e := newTestEnv(t)
	if code := e.run("dev"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if e.runner.last(t).Stdin == nil {
		t.Fatal("dev must attach stdin")
	}
}

func TestDevChildKeepsDefaultInterruptHandling(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	if signal.Ignored(os.Interrupt) {
		t.Skip("test process was started with SIGINT ignored")
	}
	e := newTestEnv(t)
	script := filepath.Join(e.dir, "fake-compose")
	writeFile(t, script, "#!/bin/sh\nkill -INT $$\necho survived-sigint\n")
	if err := os.Chmod(script, 0o755); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	writeFile(t, filepath.Join(e.dir, meta.SettingsFile), "project: rent\ncompose:\n  binary: "+script+"\n")
	e.deps.Runner = compose.ExecRunner{}

	if code := e.run("--no-lock", "dev"); code != 1 {
		t.Fatalf("exit code = %d, want 1\n%s", code, e.out.String())
	}
	if strings.Contains(e.out.String(), "survived-sigint") {
		t.Fatalf("child ignored SIGINT:\n%s", e.out.String())
	}
}
