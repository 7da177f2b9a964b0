// Where: cli/internal/domain/env/errors.go
// What: Error definitions for environment answers and derived values.
// Why: Let prompt validation and callers match failures with errors.Is/As.
package env

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL          = errors.New("invalid url")
	ErrInvalidTokenLength  = errors.New("token length must be positive")
	ErrUnknownDBData       = errors.New("unknown database data choice")
	ErrMailgunFieldMissing = errors.New("mailgun field is required")
	ErrMultilineValue      = errors.New("value must be a single line")
	ErrSingleQuoteValue    = errors.New("value must not contain a single quote")
)

// InvalidURLError reports an app URL that is not a well-formed absolute URL.
type InvalidURLError struct {
	Input  string
	Reason string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid url %q: %s", e.Input, e.Reason)
}

func (e *InvalidURLError) Unwrap() error {
	return ErrInvalidURL
}
