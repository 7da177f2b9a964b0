// Where: cli/internal/app/backup.go
// What: dumpdb and restoredb commands.
// Why: Wrap the backup service with archive selection and reporting.
package app

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/poruru/stackctl/internal/infra/backup"
	"github.com/poruru/stackctl/internal/infra/interaction"
)

type DumpDBCmd struct {
	Upload bool `help:"Fail unless the archive is also copied to S3 (backup.s3.bucket)"`
}

type RestoreDBCmd struct {
	File string `arg:"" optional:"" help:"Backup file name in the backup directory (prompted when omitted)"`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt"`
}

func runDumpDB(ctx context.Context, cli CLI, deps Dependencies) error {
	s, err := openSession(cli, deps)
	if err != nil {
		return err
	}
	svc, done, err := s.backupService(ctx, cli.DumpDB.Upload)
	if err != nil {
		return err
	}
	defer done()

	result, err := svc.Dump(ctx)
	if err != nil {
		return err
	}
	s.console.Success(fmt.Sprintf("Database %s dumped", result.Database))
	s.console.Item("Archive", result.HostPath)
	if result.SizeKnown {
		s.console.Item("Size", humanize.Bytes(uint64(result.Size)))
	}
	if result.UploadedTo != "" {
		s.console.Item("Uploaded", result.UploadedTo)
	}
	return nil
}

func runRestoreDB(ctx context.Context, cli CLI, deps Dependencies) error {
	s, err := openSession(cli, deps)
	if err != nil {
		return err
	}
	svc, done, err := s.backupService(ctx, false)
	if err != nil {
		return err
	}
	defer done()

	interactive := deps.Interactive()
	file := cli.RestoreDB.File
	if file == "" {
		if !interactive {
			return backup.ErrArchiveRequired
		}
		file, err = pickArchive(svc, deps.Prompter)
		if err != nil {
			return err
		}
	}
	if _, err := backup.ArchivePath(svc.Settings.BackupPath(), file); err != nil {
		return err
	}
	if interactive && !cli.RestoreDB.Yes {
		ok, err := deps.Prompter.Confirm(fmt.Sprintf("Restore %s? Existing data is dropped.", file))
		if err != nil {
			return err
		}
		if !ok {
			s.console.Info("Restore cancelled")
			return nil
		}
	}

	if err := svc.Restore(ctx, file); err != nil {
		return err
	}
	s.console.Success("Database restored from " + file)
	return nil
}

func pickArchive(svc backup.Service, prompter interaction.Prompter) (string, error) {
	archives, err := svc.Archives()
	if err != nil {
		return "", err
	}
	if len(archives) == 0 {
		return "", fmt.Errorf("%w in %s", backup.ErrNoArchives, svc.Settings.BackupPath())
	}
	options := make([]interaction.SelectOption, len(archives))
	for i, archive := range archives {
		options[i] = interaction.SelectOption{Label: archive.Label(), Value: archive.Name}
	}
	selected, err := prompter.SelectValue("Backup file", options)
	if err != nil {
		return "", err
	}
	if selected == "" {
		return "", backup.ErrArchiveRequired
	}
	return selected, nil
}
