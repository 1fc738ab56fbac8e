package ax

import "testing"

func deepTree() (*fakeProvider, *Element, map[string]*Element) {
	f := newFake()
	root := f.add(nil, map[string]any{AttrRole: RoleWindow, AttrTitle: "root"})
	named := map[string]*Element{"root": root}
	add := func(parent, name, role string) {
		named[name] = f.add(named[parent], map[string]any{AttrRole: role, AttrTitle: name})
	}
	add("root", "toolbar", RoleGroup)
	add("root", "content", RoleGroup)
	add("toolbar", "deepSave", RoleButton)
	add("content", "inner", RoleGroup)
	add("inner", "save", RoleButton)
	add("content", "shallowSave", RoleButton)
	return f, root, named
}

func TestFindDescendant_BreadthFirst(t *testing.T) {
	_, root, n := deepTree()
	got := FindDescendant(root, HasRole(RoleButton))
	if !got.Same(n["deepSave"]) {
		t.Errorf("got %s, want deepSave (depth 2, first in order)", got.Describe())
	}
	if FindDescendant(root, HasRole("AXSlider")) != nil {
		t.Error("missing descendant should be absent")
	}
}

func TestMatchingDescendants_Depth(t *testing.T) {
	_, root, _ := deepTree()
	if got := MatchingDescendants(root, HasRole(RoleButton), 0); len(got) != 3 {
		t.Errorf("unlimited: got %d buttons, want 3", len(got))
	}
	if got := MatchingDescendants(root, HasRole(RoleButton), 2); len(got) != 2 {
		t.Errorf("depth 2: got %d buttons, want 2", len(got))
	}
	if got := MatchingDescendants(root, Any, 1); len(got) != 2 {
		t.Errorf("depth 1: got %d elements, want 2", len(got))
	}
}

func TestWalk_SkipsInvalid(t *testing.T) {
	f, root, n := deepTree()
	f.kill(n["inner"])
	var seen []string
	Walk(root, 0, func(el *Element, _ int) bool {
		seen = append(seen, el.Title())
		return true
	})
	for _, s := range seen {
		if s == "inner" || s == "save" {
			t.Errorf("walk visited %q below an invalid node", s)
		}
	}
	expectMisuse(t, func() { Walk(root, 0, nil) })
}

func TestAncestor(t *testing.T) {
	_, _, n := deepTree()
	got := Ancestor(n["save"], HasRole(RoleWindow))
	if !got.Same(n["root"]) {
		t.Errorf("got %s, want root", got.Describe())
	}
	if Ancestor(n["save"], HasRole("AXSheet")) != nil {
		t.Error("missing ancestor should be absent")
	}
}

func TestPathResolve(t *testing.T) {
	_, root, n := deepTree()
	path, ok := Path(root, n["save"])
	if !ok {
		t.Fatal("save should be below root")
	}
	want := []int{2, 1, 1}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path = %v, want %v", path, want)
		}
	}
	if got := Resolve(root, path); !got.Same(n["save"]) {
		t.Errorf("Resolve = %s, want save", got.Describe())
	}
	if Resolve(root, []int{9}) != nil {
		t.Error("out of range path should be absent")
	}
	if _, ok := Path(n["toolbar"], n["save"]); ok {
		t.Error("save is not below toolbar")
	}
}
