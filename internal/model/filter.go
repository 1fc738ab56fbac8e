package model

import "strings"

// promote walks a tree bottom-up. Elements for which keep returns true stay
// with their surviving children; the rest are replaced by those children.
func promote(elements []Element, keep func(Element) bool) []Element {
	var out []Element
	for _, el := range elements {
		children := promote(el.Children, keep)
		if !keep(el) {
			out = append(out, children...)
			continue
		}
		el.Children = children
		out = append(out, el)
	}
	return out
}

// FilterElements keeps the elements whose compact role is in roles (after
// meta-role expansion) and whose bounds intersect bbox. Non-matching elements
// are dropped and their matching descendants promoted. Depth is limited at
// capture time, not here.
func FilterElements(elements []Element, roles []string, bbox *[4]int) []Element {
	if len(roles) == 0 && bbox == nil {
		return elements
	}
	roleSet := make(map[string]bool)
	for _, r := range ExpandRoles(roles) {
		roleSet[r] = true
	}
	return promote(elements, func(el Element) bool {
		if len(roleSet) > 0 && !roleSet[el.Role] {
			return false
		}
		return bbox == nil || boundsIntersect(el.Bounds, *bbox)
	})
}

// FilterByText keeps the elements whose title, value or description contains
// text (case-insensitive) or whose identifier equals it, together with their
// ancestors so the result is still a tree.
func FilterByText(elements []Element, text string) []Element {
	if text == "" {
		return elements
	}
	needle := strings.ToLower(text)
	var out []Element
	for _, el := range elements {
		children := FilterByText(el.Children, text)
		if len(children) == 0 && !mentions(el, needle) {
			continue
		}
		el.Children = children
		out = append(out, el)
	}
	return out
}

func mentions(el Element, needle string) bool {
	for _, s := range []string{el.Title, el.Value, el.Description} {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return strings.EqualFold(el.Identifier, needle)
}

// anonymous reports whether an element is a group or "other" container with
// nothing to identify it by.
func anonymous(role, title, value, desc, id string) bool {
	return (role == "group" || role == "other") && title == "" && value == "" && desc == "" && id == ""
}

// PruneEmptyGroups removes anonymous containers, promoting their children.
func PruneEmptyGroups(elements []Element) []Element {
	return promote(elements, func(el Element) bool {
		return !anonymous(el.Role, el.Title, el.Value, el.Description, el.Identifier)
	})
}

// PruneEmptyGroupsFlat is PruneEmptyGroups for flat lists. Breadcrumbs of
// the remaining elements keep the pruned ancestors.
func PruneEmptyGroupsFlat(elements []FlatElement) []FlatElement {
	var out []FlatElement
	for _, el := range elements {
		if !anonymous(el.Role, el.Title, el.Value, el.Description, el.Identifier) {
			out = append(out, el)
		}
	}
	return out
}

// boundsIntersect reports whether two [x, y, w, h] rectangles overlap.
func boundsIntersect(a, b [4]int) bool {
	return a[0] < b[0]+b[2] && b[0] < a[0]+a[2] && a[1] < b[1]+b[3] && b[1] < a[1]+a[3]
}
