package model

import (
	"strings"

	"github.com/mj1618/axquery/internal/ax"
)

// RoleMap maps macOS AXRole values to compact role codes.
var RoleMap = map[string]string{
	"AXApplication": "app",
	"AXButton":      "btn",
	"AXPopUpButton": "btn",
	"AXMenuButton":  "btn",
	"AXStaticText":  "txt",
	"AXLink":        "lnk",
	"AXImage":       "img",
	"AXTextField":   "input",
	"AXTextArea":    "input",
	"AXComboBox":    "input",
	"AXCheckBox":    "chk",
	"AXSwitch":      "toggle",
	"AXRadioButton": "radio",
	"AXSlider":      "slider",
	"AXMenu":        "menu",
	"AXMenuBar":     "menu",
	"AXMenuItem":    "menuitem",
	"AXTabGroup":    "tab",
	"AXList":        "list",
	"AXTable":       "list",
	"AXOutline":     "list",
	"AXRow":         "row",
	"AXColumn":      "col",
	"AXCell":        "cell",
	"AXGroup":       "group",
	"AXSplitGroup":  "group",
	"AXScrollArea":  "scroll",
	"AXScrollBar":   "scrollbar",
	"AXToolbar":     "toolbar",
	"AXWebArea":     "web",
	"AXWindow":      "window",
	"AXSheet":       "sheet",
}

// MetaRoles maps meta-role names to the compact roles they expand to.
var MetaRoles = map[string][]string{
	"interactive": {"btn", "input", "chk", "toggle", "radio", "slider", "menuitem", "lnk"},
	"text":        {"txt", "input"},
}

// ExpandRoles expands any meta-roles in the given list to their concrete roles.
// Non-meta roles are passed through unchanged. Duplicates are removed.
func ExpandRoles(roles []string) []string {
	seen := make(map[string]bool, len(roles))
	var expanded []string
	for _, r := range roles {
		if concrete, ok := MetaRoles[r]; ok {
			for _, c := range concrete {
				if !seen[c] {
					seen[c] = true
					expanded = append(expanded, c)
				}
			}
		} else if !seen[r] {
			seen[r] = true
			expanded = append(expanded, r)
		}
	}
	return expanded
}

// MapRole converts a raw accessibility role to a compact code.
func MapRole(axRole string) string {
	if short, ok := RoleMap[axRole]; ok {
		return short
	}
	return "other"
}

// RolePredicate matches elements whose role is any of names. A name may be a
// raw AXRole ("AXButton"), a compact code ("btn") or a meta-role
// ("interactive"). No names matches every element.
func RolePredicate(names ...string) ax.Predicate {
	if len(names) == 0 {
		return ax.Any
	}
	raw := make(map[string]bool)
	compact := make(map[string]bool)
	for _, n := range ExpandRoles(names) {
		if strings.HasPrefix(n, "AX") {
			raw[n] = true
		} else {
			compact[n] = true
		}
	}
	return func(el *ax.Element) bool {
		if el == nil {
			return false
		}
		role := el.Role()
		return raw[role] || compact[MapRole(role)]
	}
}
