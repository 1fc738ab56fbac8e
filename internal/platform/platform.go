package platform

import "github.com/mj1618/axquery/internal/ax"

// Target selects the application a session resolves its root from.
// The zero Target means the frontmost application.
type Target struct {
	App string // Application name, matched case-insensitively
	PID int    // Process ID (0 = unset)
}

// IsZero reports whether no application was named.
func (t Target) IsZero() bool { return t.App == "" && t.PID == 0 }

// String renders the target for messages and cache keys.
func (t Target) String() string {
	switch {
	case t.PID != 0 && t.App != "":
		return t.App + "#" + itoa(t.PID)
	case t.PID != 0:
		return "pid " + itoa(t.PID)
	case t.App != "":
		return t.App
	}
	return "frontmost"
}

// Session is one connection to an accessibility tree: the provider every
// element belongs to, plus the entry points queries start from.
type Session interface {
	// Provider returns the provider backing every element of the session.
	Provider() ax.Provider

	// Root returns the application element for t.
	Root(t Target) (*ax.Element, error)

	// Focused returns the element that currently has keyboard focus.
	Focused() (*ax.Element, error)

	// Close releases native handles held by the session.
	Close() error
}
