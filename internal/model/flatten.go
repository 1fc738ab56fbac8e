package model

// FlatElement is an element with a path breadcrumb instead of children.
type FlatElement struct {
	ID          int      `yaml:"i"                json:"i"`
	Role        string   `yaml:"r"                json:"r"`
	Subrole     string   `yaml:"sr,omitempty"     json:"sr,omitempty"`
	Title       string   `yaml:"t,omitempty"      json:"t,omitempty"`
	Value       string   `yaml:"v,omitempty"      json:"v,omitempty"`
	Description string   `yaml:"d,omitempty"      json:"d,omitempty"`
	Identifier  string   `yaml:"id,omitempty"     json:"id,omitempty"`
	Bounds      [4]int   `yaml:"b,flow"           json:"b"`
	Focused     bool     `yaml:"f,omitempty"      json:"f,omitempty"`
	Enabled     *bool    `yaml:"e,omitempty"      json:"e,omitempty"`
	Selected    bool     `yaml:"s,omitempty"      json:"s,omitempty"`
	Actions     []string `yaml:"a,omitempty,flow" json:"a,omitempty"`
	Pos         string   `yaml:"pos,omitempty"    json:"pos,omitempty"`
	Path        string   `yaml:"p,omitempty"      json:"p,omitempty"`
}

// FlattenElements converts a tree of elements into a flat list.
// Each element gets a path string showing its location in the tree
// using abbreviated role names joined with " > ".
func FlattenElements(elements []Element) []FlatElement {
	var result []FlatElement
	for _, el := range elements {
		flattenRecursive(el, "", &result)
	}
	return result
}

// Flatten strips the children from el, recording parentPath as its breadcrumb.
func Flatten(el Element, parentPath string) FlatElement {
	path := el.Role
	if parentPath != "" {
		path = parentPath + " > " + el.Role
	}
	return FlatElement{
		ID:          el.ID,
		Role:        el.Role,
		Subrole:     el.Subrole,
		Title:       el.Title,
		Value:       el.Value,
		Description: el.Description,
		Identifier:  el.Identifier,
		Bounds:      el.Bounds,
		Focused:     el.Focused,
		Enabled:     el.Enabled,
		Selected:    el.Selected,
		Actions:     el.Actions,
		Pos:         el.Pos,
		Path:        path,
	}
}

func flattenRecursive(el Element, parentPath string, result *[]FlatElement) {
	flat := Flatten(el, parentPath)
	*result = append(*result, flat)
	for _, child := range el.Children {
		flattenRecursive(child, flat.Path, result)
	}
}
