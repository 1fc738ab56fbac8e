package ax

// FindDescendant searches below src breadth-first and returns the first
// element accepted by pred, so shallower matches win.
func FindDescendant(src ChildSource, pred Predicate) *Element {
	mustPredicate(pred, "FindDescendant")
	var found *Element
	walk(src, 0, func(el *Element, _ int) bool {
		if pred(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// MatchingDescendants returns every element below src accepted by pred, in
// breadth-first order. maxDepth bounds the walk (1 = children only, 0 =
// unlimited).
func MatchingDescendants(src ChildSource, pred Predicate, maxDepth int) Elements {
	mustPredicate(pred, "MatchingDescendants")
	var out Elements
	walk(src, maxDepth, func(el *Element, _ int) bool {
		if pred(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// Walk visits every element below src breadth-first with its depth (1 for
// children). Returning false from visit stops the walk.
func Walk(src ChildSource, maxDepth int, visit func(el *Element, depth int) bool) {
	if visit == nil {
		panic(misuse("Walk requires a visit function"))
	}
	walk(src, maxDepth, visit)
}

func walk(src ChildSource, maxDepth int, visit func(*Element, int) bool) {
	type item struct {
		el    *Element
		depth int
	}
	seen := make(map[Ref]bool)
	var queue []item
	for _, c := range Children(src) {
		queue = append(queue, item{c, 1})
	}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		// The tree is externally owned and may be rebuilt mid-walk; skip
		// anything that went stale and never revisit a node.
		if !it.el.IsValid() || seen[it.el.Ref()] {
			continue
		}
		seen[it.el.Ref()] = true
		if !visit(it.el, it.depth) {
			return
		}
		if maxDepth > 0 && it.depth >= maxDepth {
			continue
		}
		for _, c := range it.el.Children() {
			queue = append(queue, item{c, it.depth + 1})
		}
	}
}

// Ancestor walks the parent relation upward from el and returns the first
// ancestor accepted by pred.
func Ancestor(el *Element, pred Predicate) *Element {
	mustPredicate(pred, "Ancestor")
	seen := make(map[Ref]bool)
	for p := el.Parent(); p != nil; p = p.Parent() {
		if seen[p.Ref()] {
			return nil
		}
		seen[p.Ref()] = true
		if pred(p) {
			return p
		}
	}
	return nil
}

// Path returns the 1-based positions, in native child order, leading from
// root down to el, or false when el is not below root.
func Path(root, el *Element) ([]int, bool) {
	var path []int
	seen := make(map[Ref]bool)
	for cur := el; cur != nil; {
		if cur.Same(root) {
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path, true
		}
		if seen[cur.Ref()] {
			return nil, false
		}
		seen[cur.Ref()] = true
		idx, ok := IndexOfChild(cur)
		if !ok {
			return nil, false
		}
		path = append(path, idx+1)
		cur = cur.Parent()
	}
	return nil, false
}

// Resolve follows 1-based positions, in native child order, down from root.
func Resolve(root *Element, path []int) *Element {
	cur := root
	for _, pos := range path {
		children := cur.Children()
		if pos < 1 || pos > len(children) {
			return nil
		}
		cur = children[pos-1]
	}
	if !cur.IsValid() {
		return nil
	}
	return cur
}
