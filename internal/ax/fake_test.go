package ax

import (
	"errors"
	"sort"
	"testing"
)

// fakeProvider is a mutable in-memory tree used by the tests in this package.
type fakeProvider struct {
	nodes     map[Ref]*fakeNode
	next      Ref
	rejectSet bool
	actions   []string
}

type fakeNode struct {
	attrs    map[string]any
	parent   Ref
	children []Ref
	dead     bool
}

func newFake() *fakeProvider {
	return &fakeProvider{nodes: make(map[Ref]*fakeNode), next: 1}
}

// add creates a node under parent (nil for a root) with the given attributes.
func (f *fakeProvider) add(parent *Element, attrs map[string]any) *Element {
	ref := f.next
	f.next++
	n := &fakeNode{attrs: make(map[string]any)}
	for k, v := range attrs {
		n.attrs[k] = v
	}
	f.nodes[ref] = n
	if parent != nil {
		n.parent = parent.Ref()
		p := f.nodes[parent.Ref()]
		p.children = append(p.children, ref)
	}
	return NewElement(f, ref)
}

// box adds a child with a role and a frame.
func (f *fakeProvider) box(parent *Element, role string, x, y, w, h float64) *Element {
	return f.add(parent, map[string]any{AttrRole: role, AttrFrame: Frame{X: x, Y: y, W: w, H: h}})
}

func (f *fakeProvider) kill(el *Element) { f.nodes[el.Ref()].dead = true }

func (f *fakeProvider) set(el *Element, name string, v any) { f.nodes[el.Ref()].attrs[name] = v }

func (f *fakeProvider) unset(el *Element, name string) { delete(f.nodes[el.Ref()].attrs, name) }

func (f *fakeProvider) live(ref Ref) (*fakeNode, bool) {
	n, ok := f.nodes[ref]
	if !ok || n.dead {
		return nil, false
	}
	return n, true
}

func (f *fakeProvider) AttributeValue(ref Ref, name string) (any, bool) {
	n, ok := f.live(ref)
	if !ok {
		return nil, false
	}
	switch name {
	case AttrChildren:
		return append([]Ref(nil), n.children...), true
	case AttrParent:
		if n.parent == 0 {
			return nil, false
		}
		return n.parent, true
	}
	v, ok := n.attrs[name]
	return v, ok
}

func (f *fakeProvider) AttributeNames(ref Ref) []string {
	n, ok := f.live(ref)
	if !ok {
		return nil
	}
	names := []string{AttrChildren}
	for k := range n.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (f *fakeProvider) IsLive(ref Ref) bool {
	_, ok := f.live(ref)
	return ok
}

func (f *fakeProvider) SetAttributeValue(ref Ref, name string, value any) bool {
	n, ok := f.live(ref)
	if !ok || f.rejectSet {
		return false
	}
	n.attrs[name] = value
	return true
}

func (f *fakeProvider) PerformAction(ref Ref, action string) error {
	if _, ok := f.live(ref); !ok {
		return errors.New("invalid element")
	}
	if action == "AXBoom" {
		return errors.New("action unsupported")
	}
	f.actions = append(f.actions, action)
	return nil
}

// expectMisuse fails the test unless fn panics with an ErrMisuse error.
func expectMisuse(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrMisuse) {
			t.Fatalf("expected ErrMisuse panic, got %v", r)
		}
	}()
	fn()
}
