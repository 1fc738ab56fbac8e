package ax

import (
	"reflect"
	"strings"
)

// Predicate tests one element. Predicates are pure and reusable; they must
// return false for a nil or invalid element rather than panic.
type Predicate func(*Element) bool

func mustPredicate(p Predicate, op string) {
	if p == nil {
		panic(misuse("%s requires a predicate", op))
	}
}

// Any matches every present element.
func Any(el *Element) bool { return el != nil }

// HasAttribute matches elements whose attribute name equals value. Scalars
// compare by value, composite values such as Frame structurally, and nested
// elements by identity.
func HasAttribute(name string, value any) Predicate {
	return func(el *Element) bool {
		v, ok := el.Attribute(name)
		if !ok {
			return false
		}
		return attributeEqual(v, value)
	}
}

func attributeEqual(a, b any) bool {
	if ea, ok := a.(*Element); ok {
		eb, ok := b.(*Element)
		return ok && ea.Same(eb)
	}
	if la, ok := a.(Elements); ok {
		lb, ok := b.(Elements)
		if !ok || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !la[i].Same(lb[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// HasRole matches the AXRole attribute.
func HasRole(role string) Predicate { return HasAttribute(AttrRole, role) }

// HasSubrole matches the AXSubrole attribute.
func HasSubrole(subrole string) Predicate { return HasAttribute(AttrSubrole, subrole) }

// HasTitle matches the AXTitle attribute exactly.
func HasTitle(title string) Predicate { return HasAttribute(AttrTitle, title) }

// HasValue matches the AXValue attribute.
func HasValue(value any) Predicate { return HasAttribute(AttrValue, value) }

// HasIdentifier matches the AXIdentifier attribute.
func HasIdentifier(id string) Predicate { return HasAttribute(AttrIdentifier, id) }

// HasDescription matches the AXDescription attribute.
func HasDescription(desc string) Predicate { return HasAttribute(AttrDescription, desc) }

// TitleContains matches a case-insensitive substring of the title.
func TitleContains(text string) Predicate {
	lower := strings.ToLower(text)
	return func(el *Element) bool {
		t := el.Title()
		return t != "" && strings.Contains(strings.ToLower(t), lower)
	}
}

// IsEnabled matches elements whose AXEnabled attribute is true.
func IsEnabled(el *Element) bool {
	b, ok := el.Bool(AttrEnabled)
	return ok && b
}

// IsFocused matches elements whose AXFocused attribute is true.
func IsFocused(el *Element) bool {
	b, ok := el.Bool(AttrFocused)
	return ok && b
}

// IsValidElement matches live elements.
func IsValidElement(el *Element) bool { return el.IsValid() }

// And matches when every predicate matches.
func And(preds ...Predicate) Predicate {
	for _, p := range preds {
		mustPredicate(p, "And")
	}
	return func(el *Element) bool {
		for _, p := range preds {
			if !p(el) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches.
func Or(preds ...Predicate) Predicate {
	for _, p := range preds {
		mustPredicate(p, "Or")
	}
	return func(el *Element) bool {
		for _, p := range preds {
			if p(el) {
				return true
			}
		}
		return false
	}
}

// Not inverts p. A nil or stale element still never matches.
func Not(p Predicate) Predicate {
	mustPredicate(p, "Not")
	return func(el *Element) bool {
		return el.IsValid() && !p(el)
	}
}

// geometric builds a predicate comparing a candidate frame to a reference
// frame. An absent reference, or one without a frame, matches everything.
func geometric(reference *Element, test func(cand, ref Frame) bool) Predicate {
	return func(el *Element) bool {
		if el == nil {
			return false
		}
		if reference == nil {
			return true
		}
		ref, ok := reference.Frame()
		if !ok {
			return true
		}
		cand, ok := el.Frame()
		if !ok {
			return false
		}
		return test(cand, ref)
	}
}

// IsAbove matches elements whose bottom edge is strictly above the
// reference's top edge.
func IsAbove(reference *Element) Predicate {
	return geometric(reference, func(c, r Frame) bool { return c.Bottom() < r.Y })
}

// IsBelow matches elements whose top edge is strictly below the reference's
// bottom edge.
func IsBelow(reference *Element) Predicate {
	return geometric(reference, func(c, r Frame) bool { return c.Y > r.Bottom() })
}

// IsLeftOf matches elements whose right edge is strictly left of the
// reference's left edge.
func IsLeftOf(reference *Element) Predicate {
	return geometric(reference, func(c, r Frame) bool { return c.Right() < r.X })
}

// IsRightOf matches elements whose left edge is strictly right of the
// reference's right edge.
func IsRightOf(reference *Element) Predicate {
	return geometric(reference, func(c, r Frame) bool { return c.X > r.Right() })
}

// ContainsExactly matches elements whose children are exactly set, compared
// by identity and ignoring order.
func ContainsExactly(set Elements) Predicate {
	return func(el *Element) bool {
		if el == nil {
			return false
		}
		children := el.Children()
		if len(children) != len(set) {
			return false
		}
		for _, c := range children {
			if !set.Contains(c) {
				return false
			}
		}
		return true
	}
}
