// Where: cli/internal/app/session.go
// What: Per-invocation configuration and collaborators.
// Why: Settings and the .env view are loaded once and passed explicitly to
// every operation.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru/stackctl/internal/infra/backup"
	"github.com/poruru/stackctl/internal/infra/compose"
	"github.com/poruru/stackctl/internal/infra/config"
	"github.com/poruru/stackctl/internal/infra/lock"
	"github.com/poruru/stackctl/internal/infra/ui"
	"github.com/poruru/stackctl/internal/meta"
)

type session struct {
	deps     Dependencies
	console  *ui.Console
	settings config.Settings
	runtime  config.Runtime
	envPath  string
}

func resolveRoot(cli CLI, deps Dependencies) (string, error) {
	dir := strings.TrimSpace(cli.Dir)
	if dir == "" {
		dir = deps.ProjectDir
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve deployment directory: %w", err)
	}
	return abs, nil
}

func resolveFile(root, flag, name string) string {
	if strings.TrimSpace(flag) == "" {
		return filepath.Join(root, name)
	}
	if filepath.IsAbs(flag) {
		return flag
	}
	return filepath.Join(root, flag)
}

// loadSettings reads stackctl.yml without touching the .env file.
func loadSettings(cli CLI, deps Dependencies) (session, error) {
	root, err := resolveRoot(cli, deps)
	if err != nil {
		return session{}, err
	}
	settings, err := config.LoadSettings(root, resolveFile(root, cli.Settings, meta.SettingsFile))
	if err != nil {
		return session{}, err
	}
	return session{
		deps:     deps,
		console:  ui.New(deps.Out),
		settings: settings,
		envPath:  resolveFile(root, cli.EnvFile, meta.EnvFile),
	}, nil
}

// openSession loads settings and the runtime environment.
func openSession(cli CLI, deps Dependencies) (session, error) {
	s, err := loadSettings(cli, deps)
	if err != nil {
		return session{}, err
	}
	rt, err := config.LoadRuntime(s.envPath, deps.Environ())
	if err != nil {
		return session{}, err
	}
	s.runtime = rt
	return s, nil
}

func (s session) invoker() compose.Invoker {
	return compose.Invoker{
		Runner:    s.deps.Runner,
		Settings:  s.settings,
		Env:       s.runtime.Environ(),
		Indicator: s.deps.Indicator,
		In:        s.deps.In,
		Out:       s.deps.Out,
		ErrOut:    s.deps.ErrOut,
	}
}

func (s session) operations() compose.Operations {
	return compose.Operations{
		Exec: s.invoker(),
		Dirs: []string{s.settings.DataPath(), s.settings.BackupPath()},
	}
}

// docker returns a client for container checks, or nil when none is available.
// The returned closer is never nil.
func (s session) docker() (compose.DockerClient, func()) {
	noop := func() {}
	if s.deps.DockerFactory == nil {
		return nil, noop
	}
	client, err := s.deps.DockerFactory()
	if err != nil {
		s.console.Warn(fmt.Sprintf("docker unavailable: %v", err))
		return nil, noop
	}
	if closer, ok := client.(io.Closer); ok {
		return client, func() { _ = closer.Close() }
	}
	return client, noop
}

func (s session) backupService(ctx context.Context, forceUpload bool) (backup.Service, func(), error) {
	docker, closeDocker := s.docker()
	svc := backup.Service{
		Exec:     s.invoker(),
		Settings: s.settings,
		Runtime:  s.runtime,
		Docker:   docker,
		Now:      s.deps.Now,
		Warnf: func(format string, args ...any) {
			s.console.Warn(fmt.Sprintf(format, args...))
		},
	}
	s3cfg := s.settings.Backup.S3
	if forceUpload && !s3cfg.Enabled() {
		closeDocker()
		return backup.Service{}, nil, errUploadNotConfigured
	}
	if s3cfg.Enabled() {
		factory := s.deps.UploaderFactory
		if factory == nil {
			factory = newS3Uploader
		}
		uploader, err := factory(ctx, s3cfg, s.runtime)
		if err != nil {
			closeDocker()
			return backup.Service{}, nil, err
		}
		svc.Uploader = uploader
	}
	return svc, closeDocker, nil
}

func newS3Uploader(ctx context.Context, cfg config.S3Config, rt config.Runtime) (backup.Uploader, error) {
	return backup.NewS3Uploader(ctx, cfg, rt)
}

func acquireLock(cli CLI, deps Dependencies) (func(), error) {
	root, err := resolveRoot(cli, deps)
	if err != nil {
		return nil, err
	}
	held, err := lock.Acquire(filepath.Join(root, meta.LockFile))
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return nil, err
		}
		return nil, fmt.Errorf("acquire deployment lock: %w", err)
	}
	return func() { _ = held.Release() }, nil
}
