// Where: cli/internal/infra/compose/docker.go
// What: Docker SDK helpers for compose-managed containers.
// Why: Check live service state without shelling out to the CLI.
package compose

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
)

const (
	ComposeProjectLabel = "com.docker.compose.project"
	ComposeServiceLabel = "com.docker.compose.service"
)

// DockerClient defines the subset of Docker SDK methods used by this package.
// This interface enables mocking the Docker client in tests.
type DockerClient interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
}

// ContainerInfo holds information about containers discovered via compose.
type ContainerInfo struct {
	Name    string
	Service string
	State   string
	Status  string
}

// ListContainersByProject returns container information for all containers
// belonging to the specified Docker Compose project, sorted by service.
func ListContainersByProject(
	ctx context.Context,
	client DockerClient,
	project string,
) ([]ContainerInfo, error) {
	if client == nil {
		return nil, errDockerClientNil
	}
	labelFilter := filters.NewArgs()
	labelFilter.Add("label", fmt.Sprintf("%s=%s", ComposeProjectLabel, project))

	containers, err := client.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: labelFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	result := make([]ContainerInfo, 0, len(containers))
	for _, ctr := range containers {
		if ctr.Labels == nil || ctr.Labels[ComposeProjectLabel] != project {
			continue
		}

		name := ""
		if len(ctr.Names) > 0 {
			name = strings.TrimPrefix(ctr.Names[0], "/")
		}

		result = append(result, ContainerInfo{
			Name:    name,
			Service: ctr.Labels[ComposeServiceLabel],
			State:   string(ctr.State),
			Status:  ctr.Status,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Service != result[j].Service {
			return result[i].Service < result[j].Service
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// ServiceRunning reports whether at least one container of service is running.
func ServiceRunning(ctx context.Context, client DockerClient, project, service string) (bool, error) {
	containers, err := ListContainersByProject(ctx, client, project)
	if err != nil {
		return false, err
	}
	for _, ctr := range containers {
		if ctr.Service == service && strings.EqualFold(ctr.State, "running") {
			return true, nil
		}
	}
	return false, nil
}
