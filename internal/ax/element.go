package ax

import (
	"fmt"
	"strings"
)

// Ref is an opaque handle to one node of an accessibility tree. Refs are
// minted by a Provider and are only meaningful to the Provider that minted
// them. Two elements are the same node iff they share a Provider and a Ref.
type Ref uint64

// Provider is the narrow interface this package consumes from the OS
// accessibility layer. All calls are synchronous.
//
// Attribute values are heterogeneous: strings, numbers, booleans, Frame,
// Ref (a nested node) or []Ref (a list of nodes). Anything else is passed
// through untouched.
type Provider interface {
	// AttributeValue returns the named attribute, or false when the node is
	// gone or the attribute is unset.
	AttributeValue(ref Ref, name string) (any, bool)

	// AttributeNames lists the attributes the node currently exposes.
	AttributeNames(ref Ref) []string

	// IsLive reports whether the node still refers to an attached UI element.
	IsLive(ref Ref) bool

	// SetAttributeValue writes the named attribute and reports success.
	SetAttributeValue(ref Ref, name string, value any) bool

	// PerformAction triggers a named action such as AXPress.
	PerformAction(ref Ref, action string) error
}

// Element is a non-owning handle to one accessibility node. A nil *Element
// is the "absent" handle and every method tolerates it.
//
// Validity is never cached: a handle may go stale between any two calls, and
// once stale it stays stale. Callers re-resolve rather than revalidate.
type Element struct {
	provider Provider
	ref      Ref
}

// NewElement wraps ref as an element of provider.
func NewElement(provider Provider, ref Ref) *Element {
	if provider == nil {
		panic(misuse("NewElement requires a provider"))
	}
	return &Element{provider: provider, ref: ref}
}

// Ref returns the underlying native handle.
func (e *Element) Ref() Ref {
	if e == nil {
		return 0
	}
	return e.ref
}

// Provider returns the provider the element belongs to.
func (e *Element) Provider() Provider {
	if e == nil {
		return nil
	}
	return e.provider
}

// IsValid reports whether the element is present and still live.
func (e *Element) IsValid() bool {
	return e != nil && e.provider != nil && e.provider.IsLive(e.ref)
}

// Same reports whether e and other are the same underlying node. It compares
// identity, never attribute values.
func (e *Element) Same(other *Element) bool {
	if e == nil || other == nil {
		return false
	}
	return e.provider == other.provider && e.ref == other.ref
}

// Attribute returns the named attribute. Invalid handles and unset
// attributes both report false; nested node references come back as
// *Element and lists of nodes as Elements.
func (e *Element) Attribute(name string) (any, bool) {
	if !e.IsValid() {
		return nil, false
	}
	v, ok := e.provider.AttributeValue(e.ref, name)
	if !ok || v == nil {
		return nil, false
	}
	return e.wrap(v), true
}

// AttributeOr returns the named attribute, or def when it cannot be read.
func (e *Element) AttributeOr(name string, def any) any {
	if v, ok := e.Attribute(name); ok {
		return v
	}
	return def
}

func (e *Element) wrap(v any) any {
	switch t := v.(type) {
	case Ref:
		return &Element{provider: e.provider, ref: t}
	case []Ref:
		els := make(Elements, 0, len(t))
		for _, r := range t {
			els = append(els, &Element{provider: e.provider, ref: r})
		}
		return els
	}
	return v
}

// AttributeNames lists the attributes currently exposed by the element.
func (e *Element) AttributeNames() []string {
	if !e.IsValid() {
		return nil
	}
	return e.provider.AttributeNames(e.ref)
}

// StringAttr returns a string attribute, or "" when absent or of another type.
func (e *Element) StringAttr(name string) string {
	v, _ := e.Attribute(name)
	s, _ := v.(string)
	return s
}

// Bool returns a boolean attribute.
func (e *Element) Bool(name string) (bool, bool) {
	v, ok := e.Attribute(name)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Role returns the AXRole attribute.
func (e *Element) Role() string { return e.StringAttr(AttrRole) }

// Subrole returns the AXSubrole attribute.
func (e *Element) Subrole() string { return e.StringAttr(AttrSubrole) }

// Title returns the AXTitle attribute.
func (e *Element) Title() string { return e.StringAttr(AttrTitle) }

// Frame returns the element's on-screen rectangle.
func (e *Element) Frame() (Frame, bool) {
	v, ok := e.Attribute(AttrFrame)
	if !ok {
		return Frame{}, false
	}
	switch f := v.(type) {
	case Frame:
		return f, true
	case *Frame:
		if f != nil {
			return *f, true
		}
	}
	return Frame{}, false
}

// Parent asks the provider for the element's parent. The relation is a
// lookup, never a stored back-pointer.
func (e *Element) Parent() *Element {
	v, ok := e.Attribute(AttrParent)
	if !ok {
		return nil
	}
	p, _ := v.(*Element)
	return p
}

// Children pulls the AXChildren attribute. It makes *Element a ChildSource.
func (e *Element) Children() Elements {
	v, ok := e.Attribute(AttrChildren)
	if !ok {
		return nil
	}
	switch c := v.(type) {
	case Elements:
		return c
	case *Element:
		return Elements{c}
	}
	return nil
}

// Actions lists the actions the element supports.
func (e *Element) Actions() []string {
	v, ok := e.Attribute(AttrActions)
	if !ok {
		return nil
	}
	switch a := v.(type) {
	case []string:
		return a
	case []any:
		out := make([]string, 0, len(a))
		for _, x := range a {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// SetAttribute writes the named attribute. It reports false, without
// touching the provider, when the element is not valid.
func (e *Element) SetAttribute(name string, value any) bool {
	if !e.IsValid() {
		return false
	}
	if el, ok := value.(*Element); ok {
		value = el.Ref()
	}
	return e.provider.SetAttributeValue(e.ref, name, value)
}

// PerformAction triggers the named action on the element.
func (e *Element) PerformAction(action string) error {
	if !e.IsValid() {
		return fmt.Errorf("perform %s: %w", action, ErrNotFound)
	}
	if err := e.provider.PerformAction(e.ref, action); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrActionFailed, action, err)
	}
	return nil
}

// Describe renders a short human-readable label for messages.
func (e *Element) Describe() string {
	if !e.IsValid() {
		return "<invalid>"
	}
	var b strings.Builder
	b.WriteString(e.Role())
	if t := e.Title(); t != "" {
		fmt.Fprintf(&b, " %q", t)
	}
	if f, ok := e.Frame(); ok {
		fmt.Fprintf(&b, " %s", f)
	}
	return b.String()
}

// Elements is an ordered list of element handles.
type Elements []*Element

// Children returns the list itself, making a materialized list a ChildSource.
func (els Elements) Children() Elements { return els }

// IsValid reports whether the list is non-empty and every member is live.
func (els Elements) IsValid() bool {
	if len(els) == 0 {
		return false
	}
	for _, el := range els {
		if !el.IsValid() {
			return false
		}
	}
	return true
}

// Index returns the 0-based index of el in the list by identity.
func (els Elements) Index(el *Element) (int, bool) {
	for i, x := range els {
		if x.Same(el) {
			return i, true
		}
	}
	return 0, false
}

// Contains reports whether el is in the list by identity.
func (els Elements) Contains(el *Element) bool {
	_, ok := els.Index(el)
	return ok
}

// IsValid reports the validity of a dynamically typed handle. A nil value is
// simply not valid; a value that is not a handle at all is a programming
// error reported as ErrTypeMismatch.
func IsValid(v any) (bool, error) {
	switch t := v.(type) {
	case nil:
		return false, nil
	case *Element:
		return t.IsValid(), nil
	case Elements:
		return t.IsValid(), nil
	case Validator:
		return t.IsValid(), nil
	}
	return false, fmt.Errorf("%w: expected an element handle, got %T", ErrTypeMismatch, v)
}
