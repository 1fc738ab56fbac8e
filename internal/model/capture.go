package model

import (
	"fmt"
	"strings"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/platform"
)

// ActionMap maps AX action names to short names.
var ActionMap = map[string]string{
	"AXPress":     "press",
	"AXCancel":    "cancel",
	"AXPick":      "pick",
	"AXIncrement": "increment",
	"AXDecrement": "decrement",
	"AXConfirm":   "confirm",
	"AXShowMenu":  "showmenu",
	"AXRaise":     "raise",
}

func mapAction(axAction string) string {
	if short, ok := ActionMap[axAction]; ok {
		return short
	}
	return strings.ToLower(strings.TrimPrefix(axAction, "AX"))
}

// FromElement converts one live element, without children. pos is its
// position path from the scope root; id its sequential ID.
func FromElement(el *ax.Element, id int, pos []int) Element {
	out := Element{
		ID:          id,
		Role:        MapRole(el.Role()),
		Subrole:     el.Subrole(),
		Title:       el.Title(),
		Value:       valueString(el),
		Description: el.StringAttr(ax.AttrDescription),
		Identifier:  el.StringAttr(ax.AttrIdentifier),
		Pos:         platform.FormatPath(pos),
	}
	if f, ok := el.Frame(); ok {
		out.Bounds = f.Bounds()
	}
	out.Focused, _ = el.Bool(ax.AttrFocused)
	out.Selected, _ = el.Bool(ax.AttrSelected)
	if enabled, ok := el.Bool(ax.AttrEnabled); ok && !enabled {
		out.Enabled = &enabled
	}
	for _, a := range el.Actions() {
		out.Actions = append(out.Actions, mapAction(a))
	}
	return out
}

func valueString(el *ax.Element) string {
	v, ok := el.Attribute(ax.AttrValue)
	if !ok {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case bool, int, int64, float64:
		return fmt.Sprint(x)
	}
	return ""
}

// Capture converts the live subtree under root into a nested element tree.
// IDs are assigned in depth-first order starting at 1; depth limits how many
// levels below root are read (0 = unlimited). Invalid nodes are skipped.
func Capture(root *ax.Element, depth int) []Element {
	if !root.IsValid() {
		return []Element{}
	}
	next := 0
	var build func(el *ax.Element, pos []int, level int) Element
	build = func(el *ax.Element, pos []int, level int) Element {
		next++
		out := FromElement(el, next, pos)
		if depth > 0 && level >= depth {
			return out
		}
		for i, c := range el.Children() {
			if !c.IsValid() {
				continue
			}
			childPos := append(append([]int(nil), pos...), i+1)
			out.Children = append(out.Children, build(c, childPos, level+1))
		}
		return out
	}
	return []Element{build(root, nil, 0)}
}

// Results converts query results into elements numbered in result order.
// Positions are computed relative to scope when the element lies under it.
func Results(scope *ax.Element, els ax.Elements) []Element {
	out := make([]Element, 0, len(els))
	for i, el := range els {
		pos, _ := ax.Path(scope, el)
		out = append(out, FromElement(el, i+1, pos))
	}
	return out
}
