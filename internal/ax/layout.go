package ax

// Layout helpers group siblings geometrically, for UIs that wrap controls
// into rows and columns without any native grouping attribute.

// ChildrenOnSameLine returns the siblings of el (el included) whose frames
// share a horizontal band of positive height with el's frame. It returns nil
// when el, its parent or its frame is unavailable.
func ChildrenOnSameLine(el *Element) Elements {
	parent := el.Parent()
	if parent == nil {
		return nil
	}
	return lineOf(el, parent.Children())
}

func lineOf(el *Element, siblings Elements) Elements {
	frame, ok := el.Frame()
	if !ok || len(siblings) == 0 {
		return nil
	}
	var line Elements
	for _, s := range siblings {
		f, ok := s.Frame()
		if !ok {
			continue
		}
		if frame.VerticalOverlap(f) > 0 {
			line = append(line, s)
		}
	}
	return line
}

// ChildrenOnNextLine returns the line that starts right after the line
// containing el: the sibling following the last (by index) member of el's
// line, scroll bars aside, anchors the next line. It returns nil when there
// is no next line.
func ChildrenOnNextLine(el *Element) Elements {
	parent := el.Parent()
	if parent == nil {
		return nil
	}
	siblings := parent.Children()
	line := lineOf(el, siblings)
	if len(line) == 0 {
		return nil
	}
	highest := -1
	for _, member := range line {
		if member.Role() == RoleScrollBar {
			continue
		}
		if i, ok := siblings.Index(member); ok && i > highest {
			highest = i
		}
	}
	if highest < 0 || highest+1 >= len(siblings) {
		return nil
	}
	return lineOf(siblings[highest+1], siblings)
}

// ChildrenInColumn returns the children with the given role that are
// stacked in the same column as the one at startIndex (0-based, among the
// role matches). A child belongs to the column when its left edge falls
// within [x, x+w] of the anchor. Fewer than two role matches never form a
// column.
func ChildrenInColumn(src ChildSource, role string, startIndex int) Elements {
	candidates := ChildrenWithRole(src, role)
	if len(candidates) < 2 || startIndex < 0 || startIndex >= len(candidates) {
		return nil
	}
	anchor, ok := candidates[startIndex].Frame()
	if !ok {
		return nil
	}
	var column Elements
	for _, c := range candidates[startIndex:] {
		f, ok := c.Frame()
		if !ok {
			continue
		}
		if f.X >= anchor.X && f.X <= anchor.Right() {
			column = append(column, c)
		}
	}
	return column
}

// ChildInColumn returns the element at the 1-based position within the
// column found by ChildrenInColumn.
func ChildInColumn(src ChildSource, role string, startIndex, position int) *Element {
	column := ChildrenInColumn(src, role, startIndex)
	if position < 1 || position > len(column) {
		return nil
	}
	return column[position-1]
}
