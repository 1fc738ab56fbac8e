package query

import (
	"errors"
	"testing"

	"github.com/mj1618/axquery/internal/ax"
)

func TestSettable(t *testing.T) {
	root := editorRoot(t)
	body := ax.Resolve(root, []int{1, 2})
	tests := []struct {
		name string
		el   *ax.Element
		attr string
		want bool
	}{
		{"value", body, ax.AttrValue, true},
		{"focused", body, ax.AttrFocused, true},
		{"role", body, ax.AttrRole, false},
		{"frame", body, ax.AttrFrame, false},
		{"children", body, ax.AttrChildren, false},
		{"absent element", nil, ax.AttrValue, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Settable(tt.el, tt.attr); got != tt.want {
				t.Errorf("Settable(%s) = %v, want %v", tt.attr, got, tt.want)
			}
		})
	}
}

func TestReadValue(t *testing.T) {
	root := editorRoot(t)
	tests := []struct {
		name    string
		pos     []int
		attr    string
		want    any
		present bool
	}{
		{"string", []int{1, 2}, ax.AttrValue, "hello", true},
		{"number", []int{1, 1, 3}, ax.AttrValue, 0.0, true},
		{"frame", []int{1, 1, 1}, ax.AttrFrame, [4]int{10, 5, 60, 30}, true},
		{"element list", []int{1, 1}, ax.AttrChildren, "3 elements", true},
		{"unset", []int{1, 1, 1}, ax.AttrValue, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := ax.Resolve(root, tt.pos)
			got := ReadValue(root, el, tt.attr, false)
			if got.Value != tt.want || got.Present != tt.present {
				t.Errorf("ReadValue = %v (present %v), want %v (present %v)", got.Value, got.Present, tt.want, tt.present)
			}
			if got.Attr != tt.attr || got.Changed {
				t.Errorf("result = %+v", got)
			}
		})
	}

	got := ReadValue(root, ax.Resolve(root, []int{1, 2}), ax.AttrValue, true)
	if got.Pos != "1/2" || !got.Settable || !got.Changed {
		t.Errorf("result = %+v", got)
	}
}

func TestReadValue_Parent(t *testing.T) {
	root := editorRoot(t)
	win := ax.Resolve(root, []int{1})
	got := ReadValue(root, win, ax.AttrParent, false)
	if got.Value != root.Describe() {
		t.Errorf("parent = %v, want %q", got.Value, root.Describe())
	}
}

func TestWriteValue(t *testing.T) {
	root := editorRoot(t)
	body := ax.Resolve(root, []int{1, 2})

	if err := WriteValue(body, ax.AttrValue, "42"); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	if v, _ := body.Attribute(ax.AttrValue); v != 42.0 {
		t.Errorf("value = %#v, want 42.0", v)
	}
	if err := WriteValue(body, ax.AttrValue, `"42"`); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	if v, _ := body.Attribute(ax.AttrValue); v != "42" {
		t.Errorf("quoted value = %#v, want string 42", v)
	}
	if err := WriteValue(body, ax.AttrRole, "AXButton"); !errors.Is(err, ax.ErrReadOnly) {
		t.Errorf("role err = %v, want ErrReadOnly", err)
	}
	if err := WriteValue(nil, ax.AttrValue, "x"); !errors.Is(err, ax.ErrReadOnly) {
		t.Errorf("absent element err = %v, want ErrReadOnly", err)
	}
}
