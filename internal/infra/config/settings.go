// Where: cli/internal/infra/config/settings.go
// What: Project settings load and defaults.
// Why: Keep compose file sets, service names, and backup locations configurable
// per checkout while shipping working defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings is the decoded stackctl.yml.
type Settings struct {
	Version   int            `yaml:"version,omitempty"`
	Project   string         `yaml:"project,omitempty"`
	Compose   ComposeConfig  `yaml:"compose,omitempty"`
	Elevation []string       `yaml:"elevation,omitempty"`
	DataDir   string         `yaml:"data_dir,omitempty"`
	Database  DatabaseConfig `yaml:"database,omitempty"`
	Backup    BackupConfig   `yaml:"backup,omitempty"`

	// RootDir is the project directory the settings were resolved against.
	RootDir string `yaml:"-"`
}

// ComposeConfig selects the orchestration binary and file sets per run mode.
type ComposeConfig struct {
	Binary     string       `yaml:"binary,omitempty"`
	Subcommand string       `yaml:"subcommand,omitempty"`
	Files      ComposeFiles `yaml:"files,omitempty"`
}

// ComposeFiles lists compose files relative to RootDir.
type ComposeFiles struct {
	Prod []string `yaml:"prod,omitempty"`
	Dev  []string `yaml:"dev,omitempty"`
}

// DatabaseConfig names the database service and its utilities.
type DatabaseConfig struct {
	Service       string `yaml:"service,omitempty"`
	DumpBinary    string `yaml:"dump_binary,omitempty"`
	RestoreBinary string `yaml:"restore_binary,omitempty"`
}

// BackupConfig locates archives on the host and inside the database container.
type BackupConfig struct {
	HostDir string   `yaml:"host_dir,omitempty"`
	Mount   string   `yaml:"mount,omitempty"`
	S3      S3Config `yaml:"s3,omitempty"`
}

// S3Config enables off-host copies of dump archives.
type S3Config struct {
	Bucket   string `yaml:"bucket,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
}

// Enabled reports whether a bucket is configured.
func (c S3Config) Enabled() bool {
	return strings.TrimSpace(c.Bucket) != ""
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings(rootDir string) Settings {
	return Settings{
		Version: 1,
		Project: projectNameFromDir(rootDir),
		Compose: ComposeConfig{
			Binary:     "docker",
			Subcommand: "compose",
			Files: ComposeFiles{
				Prod: []string{"docker-compose.yml"},
				Dev:  []string{"docker-compose.yml", "docker-compose.dev.yml"},
			},
		},
		Elevation: []string{"sudo", "-E"},
		DataDir:   "data",
		Database: DatabaseConfig{
			Service:       "mongo",
			DumpBinary:    "mongodump",
			RestoreBinary: "mongorestore",
		},
		Backup: BackupConfig{
			HostDir: "backup",
			Mount:   "/backup",
		},
		RootDir: rootDir,
	}
}

// LoadSettings reads path (if it exists), validates it against the embedded
// schema and overlays it on DefaultSettings(rootDir).
func LoadSettings(rootDir, path string) (Settings, error) {
	settings := DefaultSettings(rootDir)
	if strings.TrimSpace(path) == "" {
		return settings, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return settings, nil
	}
	if err := validateSettings(content); err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %v", ErrInvalidSettings, path, err)
	}

	var loaded Settings
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&loaded); err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %v", ErrInvalidSettings, path, err)
	}
	settings.merge(loaded)
	return settings, nil
}

func (s *Settings) merge(o Settings) {
	if o.Version != 0 {
		s.Version = o.Version
	}
	s.Project = firstNonEmpty(o.Project, s.Project)
	s.Compose.Binary = firstNonEmpty(o.Compose.Binary, s.Compose.Binary)
	if o.Compose.Subcommand != "" {
		s.Compose.Subcommand = o.Compose.Subcommand
	}
	if len(o.Compose.Files.Prod) > 0 {
		s.Compose.Files.Prod = o.Compose.Files.Prod
	}
	if len(o.Compose.Files.Dev) > 0 {
		s.Compose.Files.Dev = o.Compose.Files.Dev
	}
	if o.Elevation != nil {
		s.Elevation = o.Elevation
	}
	s.DataDir = firstNonEmpty(o.DataDir, s.DataDir)
	s.Database.Service = firstNonEmpty(o.Database.Service, s.Database.Service)
	s.Database.DumpBinary = firstNonEmpty(o.Database.DumpBinary, s.Database.DumpBinary)
	s.Database.RestoreBinary = firstNonEmpty(o.Database.RestoreBinary, s.Database.RestoreBinary)
	s.Backup.HostDir = firstNonEmpty(o.Backup.HostDir, s.Backup.HostDir)
	s.Backup.Mount = firstNonEmpty(o.Backup.Mount, s.Backup.Mount)
	s.Backup.S3 = o.Backup.S3
}

// ResolvePath returns p joined to RootDir unless it is already absolute.
func (s Settings) ResolvePath(p string) string {
	if filepath.IsAbs(p) || s.RootDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(s.RootDir, p)
}

// DataPath is the absolute host data directory.
func (s Settings) DataPath() string {
	return s.ResolvePath(s.DataDir)
}

// BackupPath is the absolute host backup directory.
func (s Settings) BackupPath() string {
	return s.ResolvePath(s.Backup.HostDir)
}

var invalidProjectChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// projectNameFromDir mirrors the compose default project name.
func projectNameFromDir(dir string) string {
	base := strings.ToLower(filepath.Base(filepath.Clean(dir)))
	name := strings.Trim(invalidProjectChars.ReplaceAllString(base, ""), "-_")
	if name == "" || name == "." {
		return "stack"
	}
	return name
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
