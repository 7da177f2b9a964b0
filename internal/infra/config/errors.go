// Where: cli/internal/infra/config/errors.go
// What: Shared error definitions for configuration loading.
// Why: Ensure consistent error wrapping without dynamic error creation.
package config

import "errors"

var ErrInvalidSettings = errors.New("invalid settings")
