package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/axquery/internal/ax"
)

// ParseFrame parses a "x,y,w,h" string into a Frame.
func ParseFrame(s string) (ax.Frame, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return ax.Frame{}, fmt.Errorf("invalid frame %q: expected x,y,w,h", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return ax.Frame{}, fmt.Errorf("invalid frame %q: %w", s, err)
		}
		vals[i] = v
	}
	if vals[2] < 0 || vals[3] < 0 {
		return ax.Frame{}, fmt.Errorf("invalid frame %q: negative size", s)
	}
	return ax.Frame{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}

// ParsePath parses a path of 1-based child positions such as "2/1/3".
// Commas are accepted as separators too. The empty string is the root.
func ParsePath(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == ',' })
	path := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", s, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("invalid path %q: positions start at 1", s)
		}
		path = append(path, n)
	}
	return path, nil
}

// FormatPath is the inverse of ParsePath.
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, "/")
}

// ParseAttr splits a "name=value" filter. Short attribute names are expanded
// with AttrName; the value is typed with ParseValue.
func ParseAttr(s string) (string, any, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return "", nil, fmt.Errorf("invalid attribute filter %q: expected name=value", s)
	}
	return AttrName(strings.TrimSpace(name)), ParseValue(raw), nil
}

// ParseValue types a command-line value: booleans and numbers become bool and
// float64, anything else stays a string. Quote a value to force a string.
func ParseValue(s string) any {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

var shortAttrs = map[string]string{
	"role":        ax.AttrRole,
	"subrole":     ax.AttrSubrole,
	"title":       ax.AttrTitle,
	"value":       ax.AttrValue,
	"description": ax.AttrDescription,
	"id":          ax.AttrIdentifier,
	"help":        ax.AttrHelp,
	"enabled":     ax.AttrEnabled,
	"focused":     ax.AttrFocused,
	"selected":    ax.AttrSelected,
}

// AttrName maps a short attribute name ("value", "title") to its AX name.
// Names already in AX form pass through.
func AttrName(s string) string {
	if full, ok := shortAttrs[strings.ToLower(s)]; ok {
		return full
	}
	return s
}

var shortActions = map[string]string{
	"press":     ax.ActionPress,
	"cancel":    ax.ActionCancel,
	"pick":      "AXPick",
	"increment": "AXIncrement",
	"decrement": "AXDecrement",
	"confirm":   ax.ActionConfirm,
	"showmenu":  ax.ActionShowMenu,
	"raise":     ax.ActionRaise,
}

// ActionName maps a short action name ("press") to its AX name.
func ActionName(s string) string {
	if full, ok := shortActions[strings.ToLower(s)]; ok {
		return full
	}
	return s
}
