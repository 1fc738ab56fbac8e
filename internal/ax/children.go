package ax

// ChildSource is anything a query can pull an ordered child list from.
//
// Three shapes are provided, and the method set decides which applies:
//
//   - *Element pulls its AXChildren attribute (a native node)
//   - ChildFunc and UIFunc produce children on demand (wrapper objects)
//   - Elements is an already-resolved list and returns itself
//
// Domain wrappers implement Children themselves; a wrapper that embeds an
// *Element and defines Children overrides the native lookup.
type ChildSource interface {
	Children() Elements
}

// ChildFunc adapts a function producing a child list to a ChildSource.
type ChildFunc func() Elements

// Children calls f. A nil ChildFunc has no children.
func (f ChildFunc) Children() Elements {
	if f == nil {
		return nil
	}
	return f()
}

// UIFunc adapts a resolver of a parent element to a ChildSource. The
// resolver runs on every query, so it always sees the current UI.
type UIFunc func() *Element

// Children resolves the parent and pulls its children.
func (f UIFunc) Children() Elements {
	if f == nil {
		return nil
	}
	return f().Children()
}

// Element resolves the element. It makes UIFunc usable as a Resolver.
func (f UIFunc) Element() *Element {
	if f == nil {
		return nil
	}
	return f()
}

// Children returns the children of src, or nil when src is absent.
func Children(src ChildSource) Elements {
	if src == nil {
		return nil
	}
	return src.Children()
}
