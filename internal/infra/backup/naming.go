// Where: cli/internal/infra/backup/naming.go
// What: Archive naming for database dumps.
// Why: Dump names must be deterministic and sortable by time.
package backup

import (
	"strings"
	"time"
)

// TimestampLayout renders YYYYMMDDHHmm.
const TimestampLayout = "200601021504"

// ArchiveExt is the extension of every dump archive.
const ArchiveExt = ".dump"

// ArchiveName returns {dbName}-{YYYYMMDDHHmm}.dump for t in local time.
func ArchiveName(dbName string, t time.Time) string {
	return dbName + "-" + t.Format(TimestampLayout) + ArchiveExt
}

// DatabaseName extracts the database from a connection string: the path
// component with its leading slash stripped and any options removed.
// Multi-host URIs (host1:27017,host2:27017) are handled without net/url,
// which rejects them.
func DatabaseName(uri string) string {
	rest := strings.TrimSpace(uri)
	if _, after, ok := strings.Cut(rest, "://"); ok {
		rest = after
	}
	_, path, ok := strings.Cut(rest, "/")
	if !ok {
		return ""
	}
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	return strings.Trim(path, "/")
}
