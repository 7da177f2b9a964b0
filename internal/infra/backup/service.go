// Where: cli/internal/infra/backup/service.go
// What: Database dump and restore through the orchestration tool.
// Why: The database utilities live in the database container; the host only
// names the archives and drives the invocation.
package backup

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/poruru/stackctl/internal/infra/compose"
	"github.com/poruru/stackctl/internal/infra/config"
)

// Service runs dumps and restores against the database service.
type Service struct {
	Exec     compose.Executor
	Settings config.Settings
	Runtime  config.Runtime
	// Docker enables the running-service preflight. Nil skips it.
	Docker compose.DockerClient
	// Uploader copies successful dumps off-host. Nil skips it.
	Uploader Uploader
	Now      func() time.Time
	Warnf    func(format string, args ...any)
}

// DumpResult describes a completed dump.
type DumpResult struct {
	Database      string
	Archive       string
	ContainerPath string
	HostPath      string
	Size          int64
	SizeKnown     bool
	UploadedTo    string
}

// Dump writes a compressed archive of the active database to the backup mount.
// The connection string is not validated here; the dump utility reports a
// missing or wrong URI itself.
func (s Service) Dump(ctx context.Context) (DumpResult, error) {
	if s.Exec == nil {
		return DumpResult{}, errExecutorNil
	}
	uri := s.Runtime.DBURL()
	dbName := DatabaseName(uri)
	name := ArchiveName(dbName, s.now())
	result := DumpResult{
		Database:      dbName,
		Archive:       name,
		ContainerPath: path.Join(s.Settings.Backup.Mount, name),
		HostPath:      filepath.Join(s.Settings.BackupPath(), name),
	}

	if err := s.preflight(ctx); err != nil {
		return result, err
	}
	args := []string{
		"exec", "-T", s.Settings.Database.Service,
		s.Settings.Database.DumpBinary,
		"--uri=" + uri,
		"--gzip",
		"--archive=" + result.ContainerPath,
	}
	rc := compose.RunConfig{Mode: compose.ModeProd, Root: true}
	opts := compose.ExecOptions{WaitLog: fmt.Sprintf("Dumping database %s", dbName)}
	if err := s.Exec.Run(ctx, args, rc, opts); err != nil {
		return result, err
	}

	if info, err := os.Stat(result.HostPath); err == nil {
		result.Size = info.Size()
		result.SizeKnown = true
	}
	if s.Uploader != nil {
		location, err := s.Uploader.Upload(ctx, result.HostPath)
		if err != nil {
			return result, err
		}
		result.UploadedTo = location
	}
	return result, nil
}

// Restore replaces the active database with archive, dropping existing data.
// archive must be a file name inside the host backup directory.
func (s Service) Restore(ctx context.Context, archive string) error {
	if s.Exec == nil {
		return errExecutorNil
	}
	if _, err := ArchivePath(s.Settings.BackupPath(), archive); err != nil {
		return err
	}
	if err := s.preflight(ctx); err != nil {
		return err
	}
	args := []string{
		"exec", "-T", s.Settings.Database.Service,
		s.Settings.Database.RestoreBinary,
		"--uri=" + s.Runtime.DBURL(),
		"--drop",
		"--gzip",
		"--archive=" + path.Join(s.Settings.Backup.Mount, archive),
	}
	rc := compose.RunConfig{Mode: compose.ModeProd}
	opts := compose.ExecOptions{WaitLog: fmt.Sprintf("Restoring %s", archive)}
	return s.Exec.Run(ctx, args, rc, opts)
}

// Archives lists restorable files.
func (s Service) Archives() ([]Archive, error) {
	return ListArchives(s.Settings.BackupPath())
}

func (s Service) preflight(ctx context.Context) error {
	if s.Docker == nil {
		return nil
	}
	service := s.Settings.Database.Service
	running, err := compose.ServiceRunning(ctx, s.Docker, s.Settings.Project, service)
	if err != nil {
		s.warnf("skipping service check: %v", err)
		return nil
	}
	if !running {
		return fmt.Errorf("%w: %s (run start first)", ErrServiceNotRunning, service)
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s Service) warnf(format string, args ...any) {
	if s.Warnf != nil {
		s.Warnf(format, args...)
	}
}
