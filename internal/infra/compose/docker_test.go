// Where: cli/internal/infra/compose/docker_test.go
// What: Tests for Docker SDK wrappers.
// Why: Ensure container checks are scoped to the compose project.
package compose

import (
	"context"
	"errors"
	"testing"

	"github.com/docker/docker/api/types/container"
)

type fakeDockerClient struct {
	containers []container.Summary
	err        error
	calls      int
}

func (f *fakeDockerClient) ContainerList(_ context.Context, _ container.ListOptions) ([]container.Summary, error) {
	f.calls++
	return f.containers, f.err
}

func summary(name, project, service, state string) container.Summary {
	return container.Summary{
		Names: []string{"/" + name},
		State: state,
		Labels: map[string]string{
			ComposeProjectLabel: project,
			ComposeServiceLabel: service,
		},
	}
}

func TestListContainersByProjectFiltersAndSorts(t *testing.T) {
	client := &fakeDockerClient{containers: []container.Summary{
		summary("rent-mongo-1", "rent", "mongo", "running"),
		summary("other-api-1", "other", "api", "running"),
		summary("rent-api-1", "rent", "api", "exited"),
	}}
	got, err := ListContainersByProject(context.Background(), client, "rent")
	if err != nil {
		t.Fatalf("ListContainersByProject() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("containers = %+v", got)
	}
	if got[0].Service != "api" || got[1].Service != "mongo" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[1].Name != "rent-mongo-1" {
		t.Fatalf("name = %q", got[1].Name)
	}
}

func TestServiceRunning(t *testing.T) {
	client := &fakeDockerClient{containers: []container.Summary{
		summary("rent-mongo-1", "rent", "mongo", "running"),
		summary("rent-api-1", "rent", "api", "exited"),
	}}
	running, err := ServiceRunning(context.Background(), client, "rent", "mongo")
	if err != nil || !running {
		t.Fatalf("mongo running = %v, err = %v", running, err)
	}
	running, err = ServiceRunning(context.Background(), client, "rent", "api")
	if err != nil || running {
		t.Fatalf("api running = %v, err = %v", running, err)
	}
}

func TestServiceRunningPropagatesErrors(t *testing.T) {
	client := &fakeDockerClient{err: errors.New("daemon unreachable")}
	if _, err := ServiceRunning(context.Background(), client, "rent", "mongo"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := ListContainersByProject(context.Background(), nil, "rent"); !errors.Is(err, errDockerClientNil) {
		t.Fatalf("expected errDockerClientNil, got %v", err)
	}
}
