// Where: cli/internal/infra/compose/modes.go
// What: Run modes and per-invocation execution options.
// Why: The mode selects the compose file set; options select the output UX.
package compose

import (
	"fmt"
	"strings"
)

// RunMode selects the compose file set.
type RunMode string

const (
	ModeProd RunMode = "prod"
	ModeDev  RunMode = "dev"
)

// RunModes lists the accepted modes in display order.
var RunModes = []RunMode{ModeProd, ModeDev}

// ParseRunMode normalizes value. Empty input yields ModeProd.
func ParseRunMode(value string) (RunMode, error) {
	switch RunMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ModeProd:
		return ModeProd, nil
	case ModeDev:
		return ModeDev, nil
	default:
		return "", fmt.Errorf("%w: %s", errUnsupportedMode, value)
	}
}

// RunConfig is created per invocation and never persisted.
type RunConfig struct {
	Mode RunMode
	Root bool
}

// ExecOptions governs output while the child runs. StreamOutput wins over
// WaitLog when both are set; a spinner cannot share the terminal with live logs.
type ExecOptions struct {
	// WaitLog shows an indicator with this title and buffers child output;
	// its last lines are reported through ProcessError when the child fails.
	WaitLog string
	// StreamOutput forwards child stdout/stderr live and attaches stdin.
	StreamOutput bool
}
