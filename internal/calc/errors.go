package calc

import (
	"errors"
	"fmt"
)

// InvalidOperationError reports a selector outside the Operation enum.
// Surfaced to the triggering flow card so the host can show it to the user.
type InvalidOperationError struct {
	Op string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("INVALID_OPERATION: unknown calculation %q", e.Op)
}

// DivisionByZeroError reports a zero divisor for divide/percentage.
type DivisionByZeroError struct {
	Op Operation
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("DIVISION_BY_ZERO: %s with zero divisor", e.Op)
}

// IsInvalidOperation reports whether err is an InvalidOperationError,
// unwrapping as needed.
func IsInvalidOperation(err error) bool {
	var ie *InvalidOperationError
	return errors.As(err, &ie)
}

// IsDivisionByZero reports whether err is a DivisionByZeroError.
func IsDivisionByZero(err error) bool {
	var de *DivisionByZeroError
	return errors.As(err, &de)
}
