package ax

import (
	"errors"
	"fmt"
)

var (
	// ErrMisuse marks a programming error, such as a nil predicate. It is
	// raised with panic, never returned.
	ErrMisuse = errors.New("ax: misuse")

	// ErrTypeMismatch is returned by IsValid for values that are not handles.
	ErrTypeMismatch = errors.New("ax: type mismatch")

	// ErrNotFound reports that a resolver produced no valid element.
	ErrNotFound = errors.New("ax: element not found")

	// ErrReadOnly is returned when writing a property built as read-only.
	ErrReadOnly = errors.New("ax: property is read-only")

	// ErrSetFailed reports that the provider rejected an attribute write.
	ErrSetFailed = errors.New("ax: set attribute failed")

	// ErrActionFailed wraps provider errors from PerformAction.
	ErrActionFailed = errors.New("ax: action failed")
)

// misuse builds the panic value for a programming error.
func misuse(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMisuse}, args...)...)
}
