package model

// Element is the compact serialized form of one accessibility node.
type Element struct {
	ID          int       `yaml:"i"                 json:"i"`             // Sequential integer ID
	Role        string    `yaml:"r"                 json:"r"`             // Abbreviated role code
	Subrole     string    `yaml:"sr,omitempty"      json:"sr,omitempty"`  // Raw AXSubrole
	Title       string    `yaml:"t,omitempty"       json:"t,omitempty"`   // Visible label / title
	Value       string    `yaml:"v,omitempty"       json:"v,omitempty"`   // Current value
	Description string    `yaml:"d,omitempty"       json:"d,omitempty"`   // Accessibility description
	Identifier  string    `yaml:"id,omitempty"      json:"id,omitempty"`  // AXIdentifier
	Bounds      [4]int    `yaml:"b,flow"            json:"b"`             // [x, y, width, height]
	Focused     bool      `yaml:"f,omitempty"       json:"f,omitempty"`   // Has keyboard focus
	Enabled     *bool     `yaml:"e,omitempty"       json:"e,omitempty"`   // nil or true = enabled (omit); false = disabled (include)
	Selected    bool      `yaml:"s,omitempty"       json:"s,omitempty"`   // Is selected
	Actions     []string  `yaml:"a,omitempty,flow"  json:"a,omitempty"`   // Available actions
	Pos         string    `yaml:"pos,omitempty"     json:"pos,omitempty"` // 1-based child positions from the scope root
	Children    []Element `yaml:"c,omitempty"       json:"c,omitempty"`   // Child elements
}
