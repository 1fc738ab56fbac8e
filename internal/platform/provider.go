package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
)

// ErrUnsupported is returned when no native session is registered for this OS.
var ErrUnsupported = fmt.Errorf("axquery has no native accessibility provider on %s/%s; pass --tree to query a recorded tree", runtime.GOOS, runtime.GOARCH)

// ErrNoTarget is returned when a Target matches no running application.
var ErrNoTarget = errors.New("no matching application")

// ErrNoFocus is returned when nothing has keyboard focus.
var ErrNoFocus = errors.New("no focused element")

// NewSessionFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go for the macOS registration.
var NewSessionFunc func() (Session, error)

// NewSession returns a native Session for the current OS.
func NewSession() (Session, error) {
	if NewSessionFunc == nil {
		return nil, ErrUnsupported
	}
	return NewSessionFunc()
}

func itoa(n int) string { return strconv.Itoa(n) }
