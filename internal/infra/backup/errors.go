// Where: cli/internal/infra/backup/errors.go
// What: Shared error definitions for backup operations.
// Why: Ensure consistent error wrapping without dynamic error creation.
package backup

import "errors"

var (
	ErrArchiveRequired    = errors.New("backup file is required")
	ErrInvalidArchiveName = errors.New("invalid backup file name")
	ErrArchiveNotFound    = errors.New("backup file not found")
	ErrServiceNotRunning  = errors.New("database service is not running")
	ErrNoArchives         = errors.New("no backup files found")
	errExecutorNil        = errors.New("executor is nil")
	errBucketRequired     = errors.New("s3 bucket is required")
)
