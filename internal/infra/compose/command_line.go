// Where: cli/internal/infra/compose/command_line.go
// What: Deterministic construction of orchestration command lines.
// Why: Keep file selection and privilege elevation identical across verbs.
package compose

import (
	"strings"

	"github.com/poruru/stackctl/internal/infra/config"
)

// ComposeFiles returns the compose files for mode resolved against RootDir.
func ComposeFiles(settings config.Settings, mode RunMode) ([]string, error) {
	var files []string
	switch mode {
	case ModeProd, "":
		files = settings.Compose.Files.Prod
	case ModeDev:
		files = settings.Compose.Files.Dev
	default:
		return nil, errUnsupportedMode
	}
	if len(files) == 0 {
		return nil, errNoComposeFiles
	}
	out := make([]string, 0, len(files))
	for _, file := range files {
		if strings.TrimSpace(file) == "" {
			continue
		}
		out = append(out, settings.ResolvePath(file))
	}
	return out, nil
}

// BuildCommandLine returns the executable and its arguments:
// [elevation...] binary [subcommand] [-p project] -f file... args...
func BuildCommandLine(settings config.Settings, args []string, rc RunConfig) (string, []string, error) {
	binary := strings.TrimSpace(settings.Compose.Binary)
	if binary == "" {
		return "", nil, errBinaryRequired
	}
	files, err := ComposeFiles(settings, rc.Mode)
	if err != nil {
		return "", nil, err
	}

	composeArgs := make([]string, 0, len(files)*2+len(args)+3)
	if sub := strings.TrimSpace(settings.Compose.Subcommand); sub != "" {
		composeArgs = append(composeArgs, sub)
	}
	if project := strings.TrimSpace(settings.Project); project != "" {
		composeArgs = append(composeArgs, "-p", project)
	}
	for _, file := range files {
		composeArgs = append(composeArgs, "-f", file)
	}
	composeArgs = append(composeArgs, args...)

	if !rc.Root || len(settings.Elevation) == 0 {
		return binary, composeArgs, nil
	}
	elevated := make([]string, 0, len(settings.Elevation)+len(composeArgs))
	elevated = append(elevated, settings.Elevation[1:]...)
	elevated = append(elevated, binary)
	elevated = append(elevated, composeArgs...)
	return settings.Elevation[0], elevated, nil
}
