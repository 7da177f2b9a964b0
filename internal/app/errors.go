// Where: cli/internal/app/errors.go
// What: Shared error definitions for command handlers.
// Why: Ensure consistent error wrapping without dynamic error creation.
package app

import "errors"

var (
	errEnvFileExists       = errors.New("environment file already exists")
	errUploadNotConfigured = errors.New("--upload requires backup.s3.bucket in the settings file")
	errModeRequired        = errors.New("run mode is required")
)
