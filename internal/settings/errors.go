package settings

import (
	"errors"
	"fmt"
)

// PersistenceError reports a rejected settings write. It is always
// propagated to the caller: a swallowed write failure would leave the
// in-memory document ahead of the stored one.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("PERSISTENCE_FAILURE: writing %q: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistenceFailure reports whether err is a PersistenceError.
func IsPersistenceFailure(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
