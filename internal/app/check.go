// Where: cli/internal/app/check.go
// What: check command.
// Why: Compare the services the compose files declare with what is running.
package app

import (
	"context"
	"fmt"

	"github.com/poruru/stackctl/internal/infra/compose"
)

func runCheck(ctx context.Context, cli CLI, deps Dependencies) error {
	mode, err := compose.ParseRunMode(cli.Check.Mode)
	if err != nil {
		return err
	}
	s, err := openSession(cli, deps)
	if err != nil {
		return err
	}
	services, err := compose.LoadServices(ctx, s.settings, mode, s.runtime.Mapping())
	if err != nil {
		return err
	}

	states := map[string][]string{}
	client, done := s.docker()
	defer done()
	live := client != nil
	if live {
		containers, err := compose.ListContainersByProject(ctx, client, s.settings.Project)
		if err != nil {
			s.console.Warn(fmt.Sprintf("container state unavailable: %v", err))
			live = false
		}
		for _, ctr := range containers {
			states[ctr.Service] = append(states[ctr.Service], ctr.State)
		}
	}

	s.console.BlockStart("📦", fmt.Sprintf("%s (%s)", s.settings.Project, mode))
	missing := 0
	for _, svc := range services {
		source := svc.Image
		if svc.Build {
			source = "build"
			if svc.Image != "" {
				source = "build -> " + svc.Image
			}
		}
		state := "unknown"
		if live {
			state = "not created"
			if got := states[svc.Name]; len(got) > 0 {
				state = joinStates(got)
			} else {
				missing++
			}
		}
		s.console.Item(svc.Name, fmt.Sprintf("%-12s %s", state, source))
	}
	s.console.BlockEnd()
	if live && missing > 0 {
		s.console.Warn(fmt.Sprintf("%d of %d services have no container", missing, len(services)))
	}
	return nil
}

func joinStates(states []string) string {
	if len(states) == 1 {
		return states[0]
	}
	counts := map[string]int{}
	order := []string{}
	for _, state := range states {
		if counts[state] == 0 {
			order = append(order, state)
		}
		counts[state]++
	}
	out := ""
	for i, state := range order {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d %s", counts[state], state)
	}
	return out
}
