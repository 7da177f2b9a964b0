// Where: cli/internal/infra/interaction/interaction.go
// What: Interactive primitives for CLI prompts.
// Why: Centralize user interaction to keep command handlers focused on orchestration.
package interaction

// SelectOption represents a single option in a selection menu.
type SelectOption struct {
	Label string // Display text
	Value string // Return value
}

// Prompter defines the interface for interactive user input and selection.
type Prompter interface {
	Input(title string, suggestions []string) (string, error)
	Select(title string, options []string) (string, error)
	SelectValue(title string, options []SelectOption) (string, error)
	Confirm(title string) (bool, error)
	Bootstrap(defaults BootstrapDefaults) (BootstrapResult, error)
}
