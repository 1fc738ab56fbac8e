//go:build darwin && cgo

package darwin

import (
	"fmt"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/platform"
)

// Session implements platform.Session for the local desktop.
type Session struct {
	p      *Provider
	system uintptr
}

// NewSession checks accessibility permission and opens a session.
func NewSession() (*Session, error) {
	if err := CheckAccessibilityPermission(); err != nil {
		return nil, err
	}
	return &Session{p: newProvider(), system: systemElement()}, nil
}

// Provider implements platform.Session.
func (s *Session) Provider() ax.Provider { return s.p }

// Root resolves the target to a process and returns its application
// element. PID wins over App when both are set.
func (s *Session) Root(t platform.Target) (*ax.Element, error) {
	pid := t.PID
	switch {
	case pid != 0:
	case t.App != "":
		pid = findApp(t.App)
	default:
		pid = frontmostPID()
	}
	if pid == 0 {
		return nil, fmt.Errorf("%w: %s", platform.ErrNoTarget, t)
	}
	h := appElement(pid)
	defer cf.release(h)
	el := s.p.element(h)
	if !el.IsValid() {
		return nil, fmt.Errorf("%w: %s", platform.ErrNoTarget, t)
	}
	return el, nil
}

// Focused implements platform.Session.
func (s *Session) Focused() (*ax.Element, error) {
	v, code := copyAttr(s.system, ax.AttrFocusedUI)
	if code != axSuccess || v == 0 {
		return nil, platform.ErrNoFocus
	}
	defer cf.release(v)
	if kindOf(v) != kindElement {
		return nil, platform.ErrNoFocus
	}
	return s.p.element(v), nil
}

// Close implements platform.Session.
func (s *Session) Close() error {
	s.p.reg.releaseAll()
	cf.release(s.system)
	s.system = 0
	return nil
}
