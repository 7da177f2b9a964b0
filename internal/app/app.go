// Where: cli/internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/poruru/stackctl/internal/domain/env"
	"github.com/poruru/stackctl/internal/infra/backup"
	"github.com/poruru/stackctl/internal/infra/compose"
	"github.com/poruru/stackctl/internal/infra/config"
	"github.com/poruru/stackctl/internal/infra/interaction"
	"github.com/poruru/stackctl/internal/infra/ui"
	"github.com/poruru/stackctl/internal/meta"
	"github.com/poruru/stackctl/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Zero values are replaced by production implementations in Run.
type Dependencies struct {
	ProjectDir string
	Out        io.Writer
	ErrOut     io.Writer
	In         io.Reader
	// Environ is the process environment handed to child processes.
	Environ     func() []string
	Runner      compose.CommandRunner
	Indicator   ui.Indicator
	Prompter    interaction.Prompter
	Interactive func() bool
	// DockerFactory is optional; without it the container checks are skipped.
	DockerFactory   func() (compose.DockerClient, error)
	UploaderFactory func(ctx context.Context, cfg config.S3Config, rt config.Runtime) (backup.Uploader, error)
	Secrets         func() (env.Secrets, error)
	Now             func() time.Time
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	Dir      string `short:"C" name:"dir" env:"STACKCTL_DIR" help:"Deployment directory (default: current directory)"`
	EnvFile  string `name:"env-file" env:"STACKCTL_ENV_FILE" help:"Path to .env file (default: <dir>/.env)"`
	Settings string `name:"settings" env:"STACKCTL_SETTINGS" help:"Path to settings file (default: <dir>/stackctl.yml)"`
	NoLock   bool   `name:"no-lock" env:"STACKCTL_NO_LOCK" help:"Do not take the deployment lock"`

	Init       InitCmd       `cmd:"" help:"Generate the .env file with fresh secrets"`
	Build      BuildCmd      `cmd:"" help:"Rebuild all images without cache"`
	Start      StartCmd      `cmd:"" help:"Start the production stack in the background"`
	Stop       StopCmd       `cmd:"" help:"Stop and remove the stack containers"`
	Dev        DevCmd        `cmd:"" help:"Run the development stack in the foreground"`
	Status     StatusCmd     `cmd:"" help:"List the production containers"`
	Config     ConfigCmd     `cmd:"" name:"config" help:"Print the resolved compose configuration"`
	DumpDB     DumpDBCmd     `cmd:"" name:"dumpdb" help:"Dump the database to the backup directory"`
	RestoreDB  RestoreDBCmd  `cmd:"" name:"restoredb" help:"Restore the database from a backup file"`
	Check      CheckCmd      `cmd:"" help:"Show declared services and their container state"`
	Complete   CompleteCmd   `cmd:"" name:"__complete" hidden:"" help:"Completion candidate provider"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completion script"`
	Version    VersionCmd    `cmd:"" help:"Show version information"`
}

type (
	BuildCmd   struct{}
	StartCmd   struct{}
	DevCmd     struct{}
	StatusCmd  struct{}
	VersionCmd struct{}
	StopCmd    struct {
		Mode string `short:"m" help:"Run mode: prod or dev (prompted on a terminal)"`
	}
	ConfigCmd struct {
		Mode string `short:"m" help:"Run mode: prod or dev (prompted on a terminal)"`
	}
	CheckCmd struct {
		Mode string `short:"m" help:"Run mode: prod or dev" default:"prod"`
	}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
// Command failures are printed and never escape as panics.
func Run(args []string, deps Dependencies) int {
	deps = withDefaults(deps)
	console := ui.New(deps.Out)

	cli := CLI{}
	exited, exitCode := false, 0
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description("Deployment controller for the compose stack."),
		kong.Writers(deps.Out, deps.ErrOut),
		kong.Exit(func(code int) {
			exited, exitCode = true, code
		}),
	)
	if err != nil {
		return exitWithError(console, err)
	}

	// Handle no arguments: show help and fail.
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return 1
	}

	kctx, err := parser.Parse(args)
	if exited {
		return exitCode
	}
	if err != nil {
		return handleParseError(console, err)
	}

	command := kctx.Command()
	if code, handled := dispatchCommand(command, cli, deps, console); handled {
		return code
	}

	console.Error("unknown command: " + command)
	return 1
}

type commandHandler func(context.Context, CLI, Dependencies) error

type prefixHandler struct {
	prefix  string
	handler commandHandler
}

// mutating commands hold the deployment lock for their whole run.
var mutating = map[string]bool{
	"init":      true,
	"build":     true,
	"start":     true,
	"stop":      true,
	"dev":       true,
	"dumpdb":    true,
	"restoredb": true,
}

func dispatchCommand(command string, cli CLI, deps Dependencies, console *ui.Console) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"init":              runInit,
		"build":             runBuild,
		"start":             runStart,
		"stop":              runStop,
		"dev":               runDev,
		"status":            runStatus,
		"config":            runConfig,
		"dumpdb":            runDumpDB,
		"check":             runCheck,
		"__complete backup": runCompleteBackup,
		"completion bash":   runCompletionBash,
		"completion zsh":    runCompletionZsh,
		"completion fish":   runCompletionFish,
		"version":           runVersion,
	}

	handler, ok := exactHandlers[command]
	if !ok {
		prefixHandlers := []prefixHandler{
			{prefix: "restoredb", handler: runRestoreDB},
		}
		for _, entry := range prefixHandlers {
			if strings.HasPrefix(command, entry.prefix) {
				handler, ok = entry.handler, true
				break
			}
		}
	}
	if !ok {
		return 1, false
	}

	verb := strings.Fields(command)[0]
	if mutating[verb] && !cli.NoLock {
		release, err := acquireLock(cli, deps)
		if err != nil {
			return exitWithError(console, err), true
		}
		defer release()
	}

	if err := handler(context.Background(), cli, deps); err != nil {
		return exitWithError(console, err), true
	}
	return 0, true
}

// exitWithError prints err and returns the failure exit code.
func exitWithError(console *ui.Console, err error) int {
	console.Error(err.Error())
	return 1
}

func handleParseError(console *ui.Console, err error) int {
	console.Error(err.Error())
	console.Info(fmt.Sprintf("Run '%s --help' for usage.", meta.AppName))
	return 1
}

// runVersion prints the version information of the CLI.
func runVersion(_ context.Context, _ CLI, deps Dependencies) error {
	fmt.Fprintln(deps.Out, version.GetVersion())
	return nil
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.In == nil {
		deps.In = os.Stdin
	}
	if deps.Environ == nil {
		deps.Environ = os.Environ
	}
	if deps.Runner == nil {
		deps.Runner = compose.ExecRunner{}
	}
	if deps.Indicator == nil {
		deps.Indicator = ui.NoopIndicator{}
	}
	if deps.Prompter == nil {
		deps.Prompter = interaction.HuhPrompter{}
	}
	if deps.Interactive == nil {
		deps.Interactive = func() bool { return false }
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return deps
}
