// Where: cli/internal/infra/ui/terminal.go
// What: TTY detection.
// Why: Spinners and emoji only make sense on an interactive terminal.
package ui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether the file refers to a terminal device.
var IsTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
