// Where: cli/internal/infra/compose/project.go
// What: Static inspection of the compose file set with compose-go.
// Why: List declared services without a running daemon.
package compose

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"github.com/poruru/stackctl/internal/infra/config"
)

// ServiceInfo is a service declared in the compose files.
type ServiceInfo struct {
	Name  string
	Image string
	Build bool
}

// LoadServices parses the compose files for mode, interpolating variables
// from environment, and returns the declared services sorted by name.
func LoadServices(ctx context.Context, settings config.Settings, mode RunMode, environment map[string]string) ([]ServiceInfo, error) {
	files, err := ComposeFiles(settings, mode)
	if err != nil {
		return nil, err
	}
	configFiles := make([]types.ConfigFile, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read compose file: %w", err)
		}
		configFiles = append(configFiles, types.ConfigFile{Filename: file, Content: content})
	}

	project, err := loader.LoadWithContext(ctx, types.ConfigDetails{
		WorkingDir:  settings.RootDir,
		ConfigFiles: configFiles,
		Environment: types.Mapping(environment),
	}, func(opts *loader.Options) {
		opts.SetProjectName(settings.Project, true)
	})
	if err != nil {
		return nil, fmt.Errorf("load compose project: %w", err)
	}

	services := make([]ServiceInfo, 0, len(project.Services))
	for name, svc := range project.Services {
		services = append(services, ServiceInfo{
			Name:  name,
			Image: svc.Image,
			Build: svc.Build != nil,
		})
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services, nil
}
