package ax

import "sort"

// Less reports whether a sorts before b. Comparators only look at frames
// and return false when either frame is missing, so such elements keep
// their input order under a stable sort.
type Less func(a, b *Element) bool

func frames(a, b *Element) (Frame, Frame, bool) {
	fa, ok := a.Frame()
	if !ok {
		return Frame{}, Frame{}, false
	}
	fb, ok := b.Frame()
	if !ok {
		return Frame{}, Frame{}, false
	}
	return fa, fb, true
}

// LeftToRight orders by left edge.
func LeftToRight(a, b *Element) bool {
	fa, fb, ok := frames(a, b)
	return ok && fa.X < fb.X
}

// RightToLeft orders by right edge, rightmost first.
func RightToLeft(a, b *Element) bool {
	fa, fb, ok := frames(a, b)
	return ok && fa.Right() > fb.Right()
}

// TopToBottom orders by top edge.
func TopToBottom(a, b *Element) bool {
	fa, fb, ok := frames(a, b)
	return ok && fa.Y < fb.Y
}

// BottomToTop orders by bottom edge, lowest first.
func BottomToTop(a, b *Element) bool {
	fa, fb, ok := frames(a, b)
	return ok && fa.Bottom() > fb.Bottom()
}

// Then compares by primary and falls back to secondary when primary ties.
func Then(primary, secondary Less) Less {
	if primary == nil || secondary == nil {
		panic(misuse("Then requires two comparators"))
	}
	return func(a, b *Element) bool {
		if primary(a, b) {
			return true
		}
		if primary(b, a) {
			return false
		}
		return secondary(a, b)
	}
}

// ReadingOrder scans top to bottom, then left to right. It is the default
// ordering of every query that takes a nil comparator.
var ReadingOrder Less = Then(TopToBottom, LeftToRight)

// ReverseReadingOrder scans bottom to top, then right to left.
var ReverseReadingOrder Less = Then(BottomToTop, RightToLeft)

// Sort stable-sorts els in place by less, or ReadingOrder when less is nil.
func Sort(els Elements, less Less) {
	if less == nil {
		less = ReadingOrder
	}
	sort.SliceStable(els, func(i, j int) bool { return less(els[i], els[j]) })
}

// Comparator looks up a comparator by its short name.
func Comparator(name string) (Less, bool) {
	switch name {
	case "", "reading":
		return ReadingOrder, true
	case "reverse-reading":
		return ReverseReadingOrder, true
	case "ltr", "left-to-right":
		return LeftToRight, true
	case "rtl", "right-to-left":
		return RightToLeft, true
	case "ttb", "top-to-bottom":
		return TopToBottom, true
	case "btt", "bottom-to-top":
		return BottomToTop, true
	}
	return nil, false
}
