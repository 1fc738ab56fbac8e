package query

import (
	"fmt"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/output"
	"github.com/mj1618/axquery/internal/platform"
)

// Settable is a best-effort writability check: structural attributes are
// never written through axquery.
func Settable(el *ax.Element, name string) bool {
	switch name {
	case ax.AttrRole, ax.AttrSubrole, ax.AttrChildren, ax.AttrParent, ax.AttrFrame, ax.AttrActions, ax.AttrWindows:
		return false
	}
	return el.IsValid()
}

// Property returns a property over el's attribute name.
func Property(el *ax.Element, name string) *ax.Property {
	return ax.PropertyOf(func() *ax.Element { return el }, name, Settable(el, name))
}

// ReadValue reads el's attribute name into a printable result. Nested
// elements are described, element lists counted and frames truncated to
// bounds.
func ReadValue(root, el *ax.Element, name string, changed bool) output.ValueResult {
	pos, _ := ax.Path(root, el)
	prop := Property(el, name)
	v, ok := prop.Get()
	switch x := v.(type) {
	case *ax.Element:
		v = x.Describe()
	case ax.Elements:
		v = fmt.Sprintf("%d elements", len(x))
	case ax.Frame:
		v = x.Bounds()
	}
	return output.ValueResult{
		Pos:      platform.FormatPath(pos),
		Attr:     name,
		Value:    v,
		Present:  ok,
		Settable: prop.Settable(),
		Changed:  changed,
	}
}

// WriteValue sets el's attribute name. String values are parsed the way
// command-line values are: true/false and numbers become typed.
func WriteValue(el *ax.Element, name string, value any) error {
	if s, ok := value.(string); ok {
		value = platform.ParseValue(s)
	}
	return Property(el, name).Set(value)
}
