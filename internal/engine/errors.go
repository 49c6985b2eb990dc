package engine

import (
	"errors"
	"fmt"
)

// NotFoundError reports ending a comparison that was never started.
// Surfaced to the triggering flow card; the document is left untouched.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("NOT_FOUND: no running comparison named %q", e.Name)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
