package memtree

import (
	"fmt"
	"strings"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/platform"
)

// Session serves a Tree through the platform.Session interface.
type Session struct {
	tree *Tree
}

// NewSession wraps tree.
func NewSession(tree *Tree) *Session {
	return &Session{tree: tree}
}

// OpenFile loads a recorded tree and wraps it in a session.
func OpenFile(path string) (*Session, error) {
	tree, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewSession(tree), nil
}

// Tree returns the underlying tree for mutation.
func (s *Session) Tree() *Tree { return s.tree }

// Provider implements platform.Session.
func (s *Session) Provider() ax.Provider { return s.tree }

// Root returns the first application matching t. The zero target selects
// the frontmost (first) application.
func (s *Session) Root(t platform.Target) (*ax.Element, error) {
	for _, app := range s.tree.Apps() {
		if t.App != "" && !strings.EqualFold(app.Title(), t.App) {
			continue
		}
		if t.PID != 0 && s.tree.pidOf(app.Ref()) != t.PID {
			continue
		}
		return app, nil
	}
	return nil, fmt.Errorf("%w: %s", platform.ErrNoTarget, t)
}

// Focused implements platform.Session.
func (s *Session) Focused() (*ax.Element, error) {
	ref, ok := s.tree.FocusedRef()
	if !ok {
		return nil, platform.ErrNoFocus
	}
	return s.tree.Element(ref), nil
}

// Close implements platform.Session.
func (s *Session) Close() error { return nil }

func (t *Tree) pidOf(ref ax.Ref) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if n, ok := t.nodes[ref]; ok {
		return n.pid
	}
	return 0
}
