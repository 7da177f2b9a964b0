// Where: cli/internal/infra/envfile/errors.go
// What: Shared error definitions for the env file writer.
// Why: Ensure consistent error wrapping without dynamic error creation.
package envfile

import "errors"

const defaultDBHost = "mongo"

var errPathRequired = errors.New("env file path is required")
