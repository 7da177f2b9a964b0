// Where: cli/internal/infra/backup/archives.go
// What: Discover dump archives in the host backup directory.
// Why: The restore picker offers existing files, newest first.
package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Archive is a dump file on the host.
type Archive struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Label renders the archive for selection lists.
func (a Archive) Label() string {
	return fmt.Sprintf("%s (%s, %s)", a.Name, humanize.Bytes(uint64(a.Size)), humanize.Time(a.ModTime))
}

// ListArchives returns the *.dump files in dir, newest first.
// A missing directory yields no archives.
func ListArchives(dir string) ([]Archive, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	archives := make([]Archive, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ArchiveExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		archives = append(archives, Archive{Name: entry.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	sort.SliceStable(archives, func(i, j int) bool {
		if !archives[i].ModTime.Equal(archives[j].ModTime) {
			return archives[i].ModTime.After(archives[j].ModTime)
		}
		return archives[i].Name > archives[j].Name
	})
	return archives, nil
}

// ValidateArchiveName rejects names that would escape the backup directory.
func ValidateArchiveName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrArchiveRequired
	}
	if trimmed != name || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidArchiveName, name)
	}
	return nil
}

// ArchivePath joins name to dir after validation and checks it exists.
func ArchivePath(dir, name string) (string, error) {
	if err := ValidateArchiveName(name); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrArchiveNotFound, path)
		}
		return "", fmt.Errorf("stat archive: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrInvalidArchiveName, path)
	}
	return path, nil
}
