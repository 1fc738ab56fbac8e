package ax

// MatchingChildren returns the children of src accepted by pred, stable-sorted
// by less (ReadingOrder when nil). An absent source yields an empty result.
func MatchingChildren(src ChildSource, pred Predicate, less Less) Elements {
	mustPredicate(pred, "MatchingChildren")
	var out Elements
	for _, c := range Children(src) {
		if pred(c) {
			out = append(out, c)
		}
	}
	Sort(out, less)
	return out
}

// FirstMatchingChild returns the first child accepted by pred in less order.
func FirstMatchingChild(src ChildSource, pred Predicate, less Less) *Element {
	return NthMatchingChild(src, pred, 1, less)
}

// NthMatchingChild returns the nth (1-based) child accepted by pred in less
// order, or nil when there are fewer matches.
func NthMatchingChild(src ChildSource, pred Predicate, nth int, less Less) *Element {
	matches := MatchingChildren(src, pred, less)
	if nth < 1 || nth > len(matches) {
		return nil
	}
	return matches[nth-1]
}

// ChildrenWith returns the children whose attribute name equals value, in
// their native order.
func ChildrenWith(src ChildSource, name string, value any) Elements {
	return filter(Children(src), HasAttribute(name, value))
}

// ChildWith returns the first child, in native order, whose attribute name
// equals value.
func ChildWith(src ChildSource, name string, value any) *Element {
	return firstOf(Children(src), HasAttribute(name, value))
}

// ChildrenWithRole returns the children with the given role in native order.
func ChildrenWithRole(src ChildSource, role string) Elements {
	return ChildrenWith(src, AttrRole, role)
}

// ChildWithRole returns the first child with the given role.
func ChildWithRole(src ChildSource, role string) *Element {
	return ChildWith(src, AttrRole, role)
}

// ChildWithTitle returns the first child with the given title.
func ChildWithTitle(src ChildSource, title string) *Element {
	return ChildWith(src, AttrTitle, title)
}

// ChildWithID returns the first child with the given AXIdentifier.
func ChildWithID(src ChildSource, id string) *Element {
	return ChildWith(src, AttrIdentifier, id)
}

// ChildWithDescription returns the first child with the given description.
func ChildWithDescription(src ChildSource, desc string) *Element {
	return ChildWith(src, AttrDescription, desc)
}

// ChildMatching returns the first child, in native order, accepted by pred.
func ChildMatching(src ChildSource, pred Predicate) *Element {
	mustPredicate(pred, "ChildMatching")
	return firstOf(Children(src), pred)
}

// HasChild reports whether any child is accepted by pred.
func HasChild(src ChildSource, pred Predicate) bool {
	return ChildMatching(src, pred) != nil
}

// ChildAtPosition filters the children by pred (all children when nil),
// sorts them by less and returns the element at the 1-based position.
func ChildAtPosition(src ChildSource, position int, less Less, pred Predicate) *Element {
	if less == nil {
		panic(misuse("ChildAtPosition requires a comparator"))
	}
	if pred == nil {
		pred = Any
	}
	return NthMatchingChild(src, pred, position, less)
}

// ChildFromLeft returns the child at position counting from the left.
func ChildFromLeft(src ChildSource, position int, pred Predicate) *Element {
	return ChildAtPosition(src, position, LeftToRight, pred)
}

// ChildFromRight returns the child at position counting from the right.
func ChildFromRight(src ChildSource, position int, pred Predicate) *Element {
	return ChildAtPosition(src, position, RightToLeft, pred)
}

// ChildFromTop returns the child at position counting from the top.
func ChildFromTop(src ChildSource, position int, pred Predicate) *Element {
	return ChildAtPosition(src, position, TopToBottom, pred)
}

// ChildFromBottom returns the child at position counting from the bottom.
func ChildFromBottom(src ChildSource, position int, pred Predicate) *Element {
	return ChildAtPosition(src, position, BottomToTop, pred)
}

// IndexOfChild returns the 0-based index of el among its parent's children,
// matched by identity.
func IndexOfChild(el *Element) (int, bool) {
	parent := el.Parent()
	if parent == nil {
		return 0, false
	}
	return parent.Children().Index(el)
}

func filter(els Elements, pred Predicate) Elements {
	var out Elements
	for _, el := range els {
		if pred(el) {
			out = append(out, el)
		}
	}
	return out
}

func firstOf(els Elements, pred Predicate) *Element {
	for _, el := range els {
		if pred(el) {
			return el
		}
	}
	return nil
}
