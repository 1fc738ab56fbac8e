package ax

import "testing"

// twoRowTree builds root -> [B(below), A(above)] with B first in native order.
func twoRowTree() (*fakeProvider, *Element, *Element, *Element) {
	f := newFake()
	root := f.add(nil, map[string]any{AttrRole: RoleWindow})
	b := f.box(root, RoleButton, 0, 20, 10, 10)
	a := f.box(root, RoleButton, 0, 0, 10, 10)
	return f, root, a, b
}

func TestMatchingChildren_DefaultReadingOrder(t *testing.T) {
	_, root, a, b := twoRowTree()
	got := MatchingChildren(root, Any, nil)
	if len(got) != 2 || !got[0].Same(a) || !got[1].Same(b) {
		t.Fatalf("got %v, want [A B]", describeAll(got))
	}
	got = MatchingChildren(root, HasRole(RoleButton), nil)
	if len(got) != 2 || !got[0].Same(a) {
		t.Errorf("role filter: got %v, want [A B]", describeAll(got))
	}
}

func TestMatchingChildren_Absent(t *testing.T) {
	if got := MatchingChildren(nil, Any, nil); len(got) != 0 {
		t.Errorf("nil source: got %d elements", len(got))
	}
	var el *Element
	if got := MatchingChildren(el, Any, nil); len(got) != 0 {
		t.Errorf("nil element: got %d elements", len(got))
	}
	_, root, _, _ := twoRowTree()
	if got := MatchingChildren(root, HasRole("AXSlider"), nil); len(got) != 0 {
		t.Errorf("no matches: got %d elements", len(got))
	}
}

func TestMatchingChildren_NilPredicate(t *testing.T) {
	_, root, _, _ := twoRowTree()
	expectMisuse(t, func() { MatchingChildren(root, nil, nil) })
}

func TestNthMatchingChild(t *testing.T) {
	_, root, a, b := twoRowTree()
	if got := FirstMatchingChild(root, Any, nil); !got.Same(a) {
		t.Errorf("first = %s, want A", got.Describe())
	}
	if got := NthMatchingChild(root, Any, 2, nil); !got.Same(b) {
		t.Errorf("second = %s, want B", got.Describe())
	}
	if got := NthMatchingChild(root, Any, 3, nil); got != nil {
		t.Errorf("third = %s, want nil", got.Describe())
	}
	if got := NthMatchingChild(root, Any, 0, nil); got != nil {
		t.Errorf("zeroth = %s, want nil", got.Describe())
	}
}

func TestChildFromTop(t *testing.T) {
	_, root, a, b := twoRowTree()
	if got := ChildFromTop(root, 1, nil); !got.Same(a) {
		t.Errorf("ChildFromTop(1) = %s, want A", got.Describe())
	}
	if got := ChildFromTop(root, 2, nil); !got.Same(b) {
		t.Errorf("ChildFromTop(2) = %s, want B", got.Describe())
	}
	if got := ChildFromTop(root, 3, nil); got != nil {
		t.Errorf("ChildFromTop(3) = %s, want nil", got.Describe())
	}
	if got := ChildFromBottom(root, 1, nil); !got.Same(b) {
		t.Errorf("ChildFromBottom(1) = %s, want B", got.Describe())
	}
}

func TestChildAtPosition_Filtered(t *testing.T) {
	f := newFake()
	root := f.add(nil, nil)
	f.box(root, RoleGroup, 0, 0, 10, 10)
	second := f.box(root, RoleButton, 40, 0, 10, 10)
	first := f.box(root, RoleButton, 20, 0, 10, 10)

	if got := ChildFromLeft(root, 1, HasRole(RoleButton)); !got.Same(first) {
		t.Errorf("first button from left = %s", got.Describe())
	}
	if got := ChildFromRight(root, 1, HasRole(RoleButton)); !got.Same(second) {
		t.Errorf("first button from right = %s", got.Describe())
	}
	if got := ChildFromLeft(root, -1, nil); got != nil {
		t.Error("negative position should be absent")
	}
	expectMisuse(t, func() { ChildAtPosition(root, 1, nil, nil) })
}

func TestChildSources(t *testing.T) {
	_, root, a, b := twoRowTree()
	calls := 0
	sources := map[string]ChildSource{
		"element":   root,
		"list":      Elements{b, a},
		"childFunc": ChildFunc(func() Elements { calls++; return root.Children() }),
		"uiFunc":    UIFunc(func() *Element { return root }),
	}
	for name, src := range sources {
		got := MatchingChildren(src, Any, nil)
		if len(got) != 2 || !got[0].Same(a) || !got[1].Same(b) {
			t.Errorf("%s: got %v, want [A B]", name, describeAll(got))
		}
	}
	if calls != 1 {
		t.Errorf("ChildFunc called %d times, want 1", calls)
	}
	if Children(ChildFunc(nil)) != nil || Children(UIFunc(nil)) != nil {
		t.Error("nil funcs should have no children")
	}
}

// wrapper overrides the native children lookup of its embedded element.
type wrapper struct {
	*Element
	only *Element
}

func (w wrapper) Children() Elements { return Elements{w.only} }

func TestChildSource_WrapperTakesPrecedence(t *testing.T) {
	_, root, _, b := twoRowTree()
	got := MatchingChildren(wrapper{Element: root, only: b}, Any, nil)
	if len(got) != 1 || !got[0].Same(b) {
		t.Errorf("got %v, want [B]", describeAll(got))
	}
}

func TestChildWith(t *testing.T) {
	f := newFake()
	root := f.add(nil, nil)
	f.add(root, map[string]any{AttrRole: RoleButton, AttrTitle: "Cancel"})
	ok := f.add(root, map[string]any{AttrRole: RoleButton, AttrTitle: "OK", AttrIdentifier: "_NS:9"})
	txt := f.add(root, map[string]any{AttrRole: "AXStaticText", AttrDescription: "status"})

	if got := ChildWithTitle(root, "OK"); !got.Same(ok) {
		t.Errorf("ChildWithTitle = %s", got.Describe())
	}
	if got := ChildWithID(root, "_NS:9"); !got.Same(ok) {
		t.Errorf("ChildWithID = %s", got.Describe())
	}
	if got := ChildWithDescription(root, "status"); !got.Same(txt) {
		t.Errorf("ChildWithDescription = %s", got.Describe())
	}
	if got := ChildrenWithRole(root, RoleButton); len(got) != 2 {
		t.Errorf("ChildrenWithRole: got %d, want 2", len(got))
	}
	if ChildWithRole(root, "AXSlider") != nil {
		t.Error("missing role should be absent")
	}
	if !HasChild(root, HasTitle("Cancel")) || HasChild(root, HasTitle("Apply")) {
		t.Error("HasChild mismatch")
	}
}

func TestIndexOfChild(t *testing.T) {
	f, root, a, b := twoRowTree()
	for _, el := range Elements{a, b} {
		i, ok := IndexOfChild(el)
		if !ok {
			t.Fatalf("%s not found", el.Describe())
		}
		if !root.Children()[i].Same(el) {
			t.Errorf("children[%d] is not %s", i, el.Describe())
		}
	}
	if _, ok := IndexOfChild(root); ok {
		t.Error("root has no parent")
	}
	if _, ok := IndexOfChild(nil); ok {
		t.Error("nil element has no index")
	}
	f.kill(root)
	if _, ok := IndexOfChild(a); ok {
		t.Error("element with an invalid parent has no index")
	}
}

func describeAll(els Elements) []string {
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = el.Describe()
	}
	return out
}
