// Package memtree is an in-memory accessibility provider. It serves recorded
// trees to the CLI when no native provider is available and lets tests
// mutate a tree (invalidate, replace, refocus) between queries.
package memtree

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/mj1618/axquery/internal/ax"
)

// Performed records one action delivered to the tree.
type Performed struct {
	Ref    ax.Ref
	Action string
}

// Tree is a mutable element tree implementing ax.Provider. It is safe for
// concurrent use.
type Tree struct {
	mu      sync.RWMutex
	nodes   map[ax.Ref]*node
	apps    []ax.Ref
	next    ax.Ref
	focused ax.Ref
	history []Performed
}

type node struct {
	attrs    map[string]any
	actions  []string
	parent   ax.Ref
	children []ax.Ref
	pid      int
	dead     bool
}

// readOnly attributes are derived from the tree's structure.
var readOnly = map[string]bool{
	ax.AttrRole:      true,
	ax.AttrChildren:  true,
	ax.AttrParent:    true,
	ax.AttrActions:   true,
	ax.AttrWindows:   true,
	ax.AttrFocusedUI: true,
}

// New builds a tree with one application per node.
func New(apps ...Node) (*Tree, error) {
	t := &Tree{nodes: make(map[ax.Ref]*node), next: 1}
	for _, a := range apps {
		ref, err := t.insert(0, a)
		if err != nil {
			return nil, err
		}
		t.apps = append(t.apps, ref)
	}
	return t, nil
}

func (t *Tree) insert(parent ax.Ref, n Node) (ax.Ref, error) {
	attrs, err := n.attrs()
	if err != nil {
		return 0, err
	}
	ref := t.next
	t.next++
	nd := &node{attrs: attrs, actions: slices.Clone(n.Actions), parent: parent, pid: n.PID}
	t.nodes[ref] = nd
	if n.Focused {
		t.focused = ref
	}
	for _, c := range n.Children {
		cref, err := t.insert(ref, c)
		if err != nil {
			return 0, err
		}
		nd.children = append(nd.children, cref)
	}
	return ref, nil
}

// Element wraps ref as an element of this tree.
func (t *Tree) Element(ref ax.Ref) *ax.Element {
	return ax.NewElement(t, ref)
}

// Apps returns the application elements, front to back.
func (t *Tree) Apps() ax.Elements {
	t.mu.RLock()
	defer t.mu.RUnlock()
	els := make(ax.Elements, 0, len(t.apps))
	for _, ref := range t.apps {
		if n, ok := t.nodes[ref]; ok && !n.dead {
			els = append(els, t.Element(ref))
		}
	}
	return els
}

// Add appends a new subtree under parent and returns its root.
func (t *Tree) Add(parent *ax.Element, n Node) (*ax.Element, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.live(parent.Ref())
	if !ok {
		return nil, fmt.Errorf("add %s: %w", n.Role, ax.ErrNotFound)
	}
	ref, err := t.insert(parent.Ref(), n)
	if err != nil {
		return nil, err
	}
	p.children = append(p.children, ref)
	return t.Element(ref), nil
}

// Invalidate makes el and its subtree stale while leaving them listed in
// their parent, the way a native handle dies before the tree is refreshed.
func (t *Tree) Invalidate(el *ax.Element) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.kill(el.Ref())
}

// Remove detaches el from its parent and invalidates its subtree.
func (t *Tree) Remove(el *ax.Element) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.detach(el.Ref())
	t.kill(el.Ref())
}

// Replace swaps el for a freshly built subtree at the same position. The old
// handles become invalid; the returned element is the replacement.
func (t *Tree) Replace(el *ax.Element, n Node) (*ax.Element, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	old, ok := t.live(el.Ref())
	if !ok {
		return nil, fmt.Errorf("replace: %w", ax.ErrNotFound)
	}
	ref, err := t.insert(old.parent, n)
	if err != nil {
		return nil, err
	}
	siblings := &t.apps
	if p, ok := t.nodes[old.parent]; ok {
		siblings = &p.children
	}
	if i := slices.Index(*siblings, el.Ref()); i >= 0 {
		(*siblings)[i] = ref
	} else {
		*siblings = append(*siblings, ref)
	}
	t.kill(el.Ref())
	return t.Element(ref), nil
}

// SetFocus moves keyboard focus to el.
func (t *Tree) SetFocus(el *ax.Element) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.live(el.Ref()); ok {
		t.focused = el.Ref()
	}
}

// FocusedRef returns the focused node, if it is still live.
func (t *Tree) FocusedRef() (ax.Ref, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if _, ok := t.live(t.focused); !ok {
		return 0, false
	}
	return t.focused, true
}

// History returns the actions performed so far.
func (t *Tree) History() []Performed {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.history)
}

func (t *Tree) live(ref ax.Ref) (*node, bool) {
	n, ok := t.nodes[ref]
	if !ok || n.dead {
		return nil, false
	}
	return n, true
}

func (t *Tree) kill(ref ax.Ref) {
	n, ok := t.nodes[ref]
	if !ok {
		return
	}
	n.dead = true
	for _, c := range n.children {
		t.kill(c)
	}
}

func (t *Tree) detach(ref ax.Ref) {
	n, ok := t.nodes[ref]
	if !ok {
		return
	}
	if p, ok := t.nodes[n.parent]; ok {
		p.children = slices.DeleteFunc(p.children, func(r ax.Ref) bool { return r == ref })
		return
	}
	t.apps = slices.DeleteFunc(t.apps, func(r ax.Ref) bool { return r == ref })
}

func (t *Tree) appOf(ref ax.Ref) ax.Ref {
	for {
		n, ok := t.nodes[ref]
		if !ok || n.parent == 0 {
			return ref
		}
		ref = n.parent
	}
}

// AttributeValue implements ax.Provider.
func (t *Tree) AttributeValue(ref ax.Ref, name string) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.live(ref)
	if !ok {
		return nil, false
	}
	switch name {
	case ax.AttrChildren:
		return slices.Clone(n.children), true
	case ax.AttrParent:
		if n.parent == 0 {
			return nil, false
		}
		return n.parent, true
	case ax.AttrActions:
		if len(n.actions) == 0 {
			return nil, false
		}
		return slices.Clone(n.actions), true
	case ax.AttrFocused:
		return ref == t.focused, true
	case ax.AttrWindows:
		if n.parent != 0 {
			return nil, false
		}
		var wins []ax.Ref
		for _, c := range n.children {
			if cn, ok := t.live(c); ok && cn.attrs[ax.AttrRole] == ax.RoleWindow {
				wins = append(wins, c)
			}
		}
		return wins, true
	case ax.AttrFocusedUI:
		if _, ok := t.live(t.focused); !ok || t.appOf(t.focused) != ref {
			return nil, false
		}
		return t.focused, true
	}
	v, ok := n.attrs[name]
	return v, ok
}

// AttributeNames implements ax.Provider.
func (t *Tree) AttributeNames(ref ax.Ref) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.live(ref)
	if !ok {
		return nil
	}
	names := []string{ax.AttrChildren, ax.AttrFocused}
	if n.parent != 0 {
		names = append(names, ax.AttrParent)
	} else {
		names = append(names, ax.AttrWindows, ax.AttrFocusedUI)
	}
	if len(n.actions) > 0 {
		names = append(names, ax.AttrActions)
	}
	for k := range n.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// IsLive implements ax.Provider.
func (t *Tree) IsLive(ref ax.Ref) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.live(ref)
	return ok
}

// SetAttributeValue implements ax.Provider. Structural attributes are
// rejected, and disabled elements accept no writes.
func (t *Tree) SetAttributeValue(ref ax.Ref, name string, value any) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.live(ref)
	if !ok || readOnly[name] {
		return false
	}
	if enabled, ok := n.attrs[ax.AttrEnabled].(bool); ok && !enabled {
		return false
	}
	if name == ax.AttrFocused {
		focus, ok := value.(bool)
		if !ok {
			return false
		}
		if focus {
			t.focused = ref
		} else if t.focused == ref {
			t.focused = 0
		}
		return true
	}
	n.attrs[name] = normalize(value)
	return true
}

var errUnsupportedAction = errors.New("action not supported")

// PerformAction implements ax.Provider. Only advertised actions succeed;
// pressing a checkbox toggles its value.
func (t *Tree) PerformAction(ref ax.Ref, action string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.live(ref)
	if !ok {
		return ax.ErrNotFound
	}
	if !slices.Contains(n.actions, action) {
		return fmt.Errorf("%w: %s", errUnsupportedAction, action)
	}
	if action == ax.ActionPress && n.attrs[ax.AttrRole] == "AXCheckBox" {
		n.attrs[ax.AttrValue] = toggle(n.attrs[ax.AttrValue])
	}
	t.history = append(t.history, Performed{Ref: ref, Action: action})
	return nil
}

func toggle(v any) any {
	switch x := v.(type) {
	case bool:
		return !x
	case float64:
		return 1 - x
	}
	return 1.0
}
