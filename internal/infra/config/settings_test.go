// Where: cli/internal/infra/config/settings_test.go
// What: Tests for stackctl.yml loading.
// Why: Defaults must hold without a file and invalid shapes must be rejected.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeSettings(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "stackctl.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "My Rental-App")
	settings, err := LoadSettings(dir, filepath.Join(dir, "stackctl.yml"))
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if settings.Project != "myrental-app" {
		t.Fatalf("Project = %q", settings.Project)
	}
	if !reflect.DeepEqual(settings.Compose.Files.Dev, []string{"docker-compose.yml", "docker-compose.dev.yml"}) {
		t.Fatalf("dev files = %v", settings.Compose.Files.Dev)
	}
	if settings.Database.Service != "mongo" || settings.Backup.Mount != "/backup" {
		t.Fatalf("unexpected defaults: %+v", settings)
	}
	if settings.BackupPath() != filepath.Join(dir, "backup") {
		t.Fatalf("BackupPath() = %q", settings.BackupPath())
	}
}

func TestLoadSettingsOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, `
project: rent
compose:
  files:
    prod: [compose.prod.yml]
elevation: []
database:
  service: db
backup:
  host_dir: /srv/backups
  s3:
    bucket: archive
    region: eu-west-1
`)
	settings, err := LoadSettings(dir, path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if settings.Project != "rent" {
		t.Fatalf("Project = %q", settings.Project)
	}
	if !reflect.DeepEqual(settings.Compose.Files.Prod, []string{"compose.prod.yml"}) {
		t.Fatalf("prod files = %v", settings.Compose.Files.Prod)
	}
	if len(settings.Compose.Files.Dev) != 2 {
		t.Fatalf("dev files must keep defaults, got %v", settings.Compose.Files.Dev)
	}
	if len(settings.Elevation) != 0 {
		t.Fatalf("explicit empty elevation must disable the prefix, got %v", settings.Elevation)
	}
	if settings.Database.Service != "db" || settings.Database.DumpBinary != "mongodump" {
		t.Fatalf("database = %+v", settings.Database)
	}
	if settings.BackupPath() != "/srv/backups" {
		t.Fatalf("BackupPath() = %q", settings.BackupPath())
	}
	if !settings.Backup.S3.Enabled() {
		t.Fatal("s3 must be enabled")
	}
}

func TestLoadSettingsRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, "compose:\n  binarry: podman\n")
	_, err := LoadSettings(dir, path)
	if !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestLoadSettingsRejectsWrongShapes(t *testing.T) {
	cases := map[string]string{
		"relative mount":  "backup:\n  mount: backup\n",
		"empty file list": "compose:\n  files:\n    dev: []\n",
		"bad project":     "project: \"Has Spaces\"\n",
		"not a list":      "elevation: sudo\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeSettings(t, dir, content)
			if _, err := LoadSettings(dir, path); !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestLoadSettingsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, "\n")
	settings, err := LoadSettings(dir, path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if settings.Compose.Binary != "docker" {
		t.Fatalf("Binary = %q", settings.Compose.Binary)
	}
}
