package ax

import (
	"errors"
	"testing"
)

func TestIsValid_NilElement(t *testing.T) {
	var el *Element
	if el.IsValid() {
		t.Error("nil element should not be valid")
	}
	if _, ok := el.Attribute(AttrRole); ok {
		t.Error("nil element should have no attributes")
	}
	if el.Children() != nil {
		t.Error("nil element should have no children")
	}
}

func TestIsValid_BecomesInvalid(t *testing.T) {
	f := newFake()
	btn := f.add(nil, map[string]any{AttrRole: RoleButton, AttrTitle: "Save"})
	if !btn.IsValid() {
		t.Fatal("new element should be valid")
	}
	f.kill(btn)
	if btn.IsValid() {
		t.Error("killed element should be invalid")
	}
	if got := btn.Title(); got != "" {
		t.Errorf("Title on invalid element = %q, want empty", got)
	}
	if got := btn.AttributeOr(AttrTitle, "fallback"); got != "fallback" {
		t.Errorf("AttributeOr = %v, want fallback", got)
	}
}

func TestIsValid_Dynamic(t *testing.T) {
	f := newFake()
	el := f.add(nil, nil)

	tests := []struct {
		name    string
		v       any
		want    bool
		wantErr error
	}{
		{"nil", nil, false, nil},
		{"element", el, true, nil},
		{"nil element", (*Element)(nil), false, nil},
		{"list", Elements{el}, true, nil},
		{"empty list", Elements{}, false, nil},
		{"string", "AXButton", false, ErrTypeMismatch},
		{"int", 42, false, ErrTypeMismatch},
	}
	for _, tt := range tests {
		got, err := IsValid(tt.v)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestElement_ChildrenAndParent(t *testing.T) {
	f := newFake()
	root := f.add(nil, map[string]any{AttrRole: RoleWindow})
	a := f.box(root, RoleButton, 0, 0, 10, 10)
	b := f.box(root, RoleButton, 20, 0, 10, 10)

	children := root.Children()
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	if !children[0].Same(a) || !children[1].Same(b) {
		t.Error("children should keep native order")
	}
	if !a.Parent().Same(root) {
		t.Error("parent of a should be root")
	}
	if root.Parent() != nil {
		t.Error("root should have no parent")
	}
}

func TestElement_SameIsIdentity(t *testing.T) {
	f := newFake()
	a := f.add(nil, map[string]any{AttrTitle: "x"})
	b := f.add(nil, map[string]any{AttrTitle: "x"})
	if a.Same(b) {
		t.Error("equal attributes must not make elements the same")
	}
	if !a.Same(NewElement(f, a.Ref())) {
		t.Error("two handles to one ref should be the same")
	}
	other := newFake()
	if a.Same(NewElement(other, a.Ref())) {
		t.Error("same ref from another provider is a different node")
	}
}

func TestElement_FrameMissing(t *testing.T) {
	f := newFake()
	el := f.add(nil, map[string]any{AttrFrame: "not a frame"})
	if _, ok := el.Frame(); ok {
		t.Error("non-frame value should not be reported as a frame")
	}
	p := &Frame{X: 1, Y: 2, W: 3, H: 4}
	f.set(el, AttrFrame, p)
	got, ok := el.Frame()
	if !ok || got != *p {
		t.Errorf("Frame = %v %v, want %v", got, ok, *p)
	}
}

func TestElement_SetAttribute(t *testing.T) {
	f := newFake()
	el := f.add(nil, map[string]any{AttrValue: "a"})
	if !el.SetAttribute(AttrValue, "b") {
		t.Fatal("SetAttribute should succeed on a live element")
	}
	if v, _ := el.Attribute(AttrValue); v != "b" {
		t.Errorf("value = %v, want b", v)
	}
	f.kill(el)
	if el.SetAttribute(AttrValue, "c") {
		t.Error("SetAttribute should fail on an invalid element")
	}
}

func TestElement_PerformAction(t *testing.T) {
	f := newFake()
	el := f.add(nil, map[string]any{AttrActions: []string{ActionPress}})
	if err := el.PerformAction(ActionPress); err != nil {
		t.Fatal(err)
	}
	if len(f.actions) != 1 || f.actions[0] != ActionPress {
		t.Errorf("actions = %v, want [AXPress]", f.actions)
	}
	if err := el.PerformAction("AXBoom"); !errors.Is(err, ErrActionFailed) {
		t.Errorf("err = %v, want ErrActionFailed", err)
	}
	f.kill(el)
	if err := el.PerformAction(ActionPress); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestElement_Actions(t *testing.T) {
	f := newFake()
	el := f.add(nil, map[string]any{AttrActions: []any{"AXPress", 3, "AXShowMenu"}})
	got := el.Actions()
	if len(got) != 2 || got[0] != "AXPress" || got[1] != "AXShowMenu" {
		t.Errorf("Actions = %v", got)
	}
}

func TestNewElement_NilProvider(t *testing.T) {
	expectMisuse(t, func() { NewElement(nil, 1) })
}
