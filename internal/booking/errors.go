package booking

import (
	"errors"
	"fmt"
)

var (
	ErrDraftNotFound = errors.New("draft not found")
	ErrItemNotFound  = errors.New("catalog item not found")
)

// ValidationError reports a failed workflow gate. It is always recoverable:
// the caller fixes the named field and retries.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
