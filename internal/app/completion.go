// Where: cli/internal/app/completion.go
// What: Shell completion command implementation.
// Why: Provide tab completion for bash, zsh, and fish.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/poruru/stackctl/internal/infra/backup"
	"github.com/poruru/stackctl/internal/infra/compose"
	"github.com/poruru/stackctl/internal/meta"
)

// CompletionCmd defines the structure for the completion command.
type CompletionCmd struct {
	Bash CompletionBashCmd `cmd:"" help:"Generate bash completion script"`
	Zsh  CompletionZshCmd  `cmd:"" help:"Generate zsh completion script"`
	Fish CompletionFishCmd `cmd:"" help:"Generate fish completion script"`
}

type (
	CompletionBashCmd struct{}
	CompletionZshCmd  struct{}
	CompletionFishCmd struct{}
)

// CompleteCmd prints dynamic candidates for the completion scripts.
type CompleteCmd struct {
	Backup CompleteBackupCmd `cmd:"" help:"List backup files"`
}

type CompleteBackupCmd struct{}

type visibleCommand struct {
	name string
	help string
}

func visibleCommands() []visibleCommand {
	parser, err := kong.New(&CLI{}, kong.Name(meta.AppName))
	if err != nil {
		return nil
	}
	var commands []visibleCommand
	for _, node := range parser.Model.Children {
		if node.Hidden || strings.HasPrefix(node.Name, "__") {
			continue
		}
		commands = append(commands, visibleCommand{name: node.Name, help: node.Help})
	}
	return commands
}

func commandNames() []string {
	commands := visibleCommands()
	names := make([]string, len(commands))
	for i, cmd := range commands {
		names[i] = cmd.name
	}
	return names
}

func modeNames() string {
	names := make([]string, len(compose.RunModes))
	for i, mode := range compose.RunModes {
		names[i] = string(mode)
	}
	return strings.Join(names, " ")
}

func runCompletionBash(_ context.Context, _ CLI, deps Dependencies) error {
	script := `_stackctl_completion() {
    local cur prev cmd
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    cmd="${COMP_WORDS[1]}"

    case "${prev}" in
        --mode|-m)
            COMPREPLY=( $(compgen -W "%[2]s" -- "${cur}") )
            return 0
            ;;
        --dir|-C|--env-file|--settings)
            COMPREPLY=( $(compgen -f -- "${cur}") )
            return 0
            ;;
    esac
    if [[ "${cmd}" == "restoredb" && ${COMP_CWORD} -eq 2 ]]; then
        COMPREPLY=( $(compgen -W "$(command %[3]s __complete backup 2>/dev/null)" -- "${cur}") )
        return 0
    fi
    if [[ "${cmd}" == "completion" && ${COMP_CWORD} -eq 2 ]]; then
        COMPREPLY=( $(compgen -W "bash zsh fish" -- "${cur}") )
        return 0
    fi
    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "%[1]s" -- "${cur}") )
    fi
}
complete -F _stackctl_completion %[3]s
`
	_, err := fmt.Fprintf(deps.Out, script, strings.Join(commandNames(), " "), modeNames(), meta.AppName)
	return err
}

func runCompletionZsh(_ context.Context, _ CLI, deps Dependencies) error {
	var described []string
	for _, cmd := range visibleCommands() {
		described = append(described, fmt.Sprintf("'%s:%s'", cmd.name, strings.ReplaceAll(cmd.help, "'", "")))
	}
	script := `#compdef %[3]s
_stackctl_completion() {
    local -a commands
    commands=(
        %[1]s
    )
    local prev="${words[$CURRENT-1]}"
    local cmd="${words[2]}"
    if [[ "${prev}" == "--mode" || "${prev}" == "-m" ]]; then
        _values 'modes' %[2]s
        return
    fi
    if [[ "${cmd}" == "restoredb" && ${CURRENT} -eq 3 ]]; then
        _values 'backups' ${(f)"$(command %[3]s __complete backup 2>/dev/null)"}
        return
    fi
    if [[ ${CURRENT} -eq 2 ]]; then
        _describe 'commands' commands
    fi
}
compdef _stackctl_completion %[3]s
`
	_, err := fmt.Fprintf(deps.Out, script, strings.Join(described, "\n        "), modeNames(), meta.AppName)
	return err
}

func runCompletionFish(_ context.Context, _ CLI, deps Dependencies) error {
	out := deps.Out
	name := meta.AppName
	for _, cmd := range visibleCommands() {
		fmt.Fprintf(out, "complete -c %s -f -n '__fish_use_subcommand' -a %s -d '%s'\n", name, cmd.name, strings.ReplaceAll(cmd.help, "'", ""))
	}
	fmt.Fprintf(out, "complete -c %s -f -n '__fish_seen_subcommand_from stop config check' -l mode -s m -r -a '%s'\n", name, modeNames())
	fmt.Fprintf(out, "complete -c %s -f -n '__fish_seen_subcommand_from restoredb' -a '(%s __complete backup)'\n", name, name)
	fmt.Fprintf(out, "complete -c %s -f -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'\n", name)
	return nil
}

// runCompleteBackup lists archive names. Failures print nothing so the
// shell never shows error text as a candidate.
func runCompleteBackup(_ context.Context, cli CLI, deps Dependencies) error {
	s, err := loadSettings(cli, deps)
	if err != nil {
		return nil
	}
	archives, err := backup.ListArchives(s.settings.BackupPath())
	if err != nil {
		return nil
	}
	writeLines(deps.Out, archiveNames(archives))
	return nil
}

func archiveNames(archives []backup.Archive) []string {
	names := make([]string, len(archives))
	for i, archive := range archives {
		names[i] = archive.Name
	}
	return names
}

func writeLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}
