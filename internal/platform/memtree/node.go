package memtree

import (
	"fmt"
	"io"
	"os"

	"github.com/mj1618/axquery/internal/ax"
	"gopkg.in/yaml.v3"
)

// Node is the serialized form of one element. YAML and JSON trees share it;
// JSON files are read through the YAML decoder.
type Node struct {
	Role        string         `yaml:"role"                  json:"role"`
	Subrole     string         `yaml:"subrole,omitempty"     json:"subrole,omitempty"`
	Title       string         `yaml:"title,omitempty"       json:"title,omitempty"`
	Value       any            `yaml:"value,omitempty"       json:"value,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Identifier  string         `yaml:"id,omitempty"          json:"id,omitempty"`
	Frame       []float64      `yaml:"frame,omitempty,flow"  json:"frame,omitempty"`
	Enabled     *bool          `yaml:"enabled,omitempty"     json:"enabled,omitempty"`
	Focused     bool           `yaml:"focused,omitempty"     json:"focused,omitempty"`
	Selected    bool           `yaml:"selected,omitempty"    json:"selected,omitempty"`
	Actions     []string       `yaml:"actions,omitempty,flow" json:"actions,omitempty"`
	Attrs       map[string]any `yaml:"attrs,omitempty"       json:"attrs,omitempty"`
	PID         int            `yaml:"pid,omitempty"         json:"pid,omitempty"`
	Children    []Node         `yaml:"children,omitempty"    json:"children,omitempty"`
}

// File is a recorded desktop: the running applications in front-to-back
// order.
type File struct {
	Apps []Node `yaml:"apps" json:"apps"`
}

// Decode reads a File from YAML or JSON.
func Decode(r io.Reader) (File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return File{}, nil
		}
		return File{}, fmt.Errorf("decode tree: %w", err)
	}
	return f, nil
}

// LoadFile reads a recorded tree from path.
func LoadFile(path string) (*Tree, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tree: %w", err)
	}
	defer fh.Close()
	f, err := Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(f.Apps...)
}

// attrs flattens the node's fields into the attribute map the provider
// serves. Explicit Attrs entries win over the named fields.
func (n Node) attrs() (map[string]any, error) {
	m := make(map[string]any, len(n.Attrs)+8)
	if n.Role != "" {
		m[ax.AttrRole] = n.Role
	}
	if n.Subrole != "" {
		m[ax.AttrSubrole] = n.Subrole
	}
	if n.Title != "" {
		m[ax.AttrTitle] = n.Title
	}
	if n.Value != nil {
		m[ax.AttrValue] = normalize(n.Value)
	}
	if n.Description != "" {
		m[ax.AttrDescription] = n.Description
	}
	if n.Identifier != "" {
		m[ax.AttrIdentifier] = n.Identifier
	}
	if len(n.Frame) > 0 {
		if len(n.Frame) != 4 {
			return nil, fmt.Errorf("%s %q: frame needs 4 numbers, got %d", n.Role, n.Title, len(n.Frame))
		}
		m[ax.AttrFrame] = ax.Frame{X: n.Frame[0], Y: n.Frame[1], W: n.Frame[2], H: n.Frame[3]}
	}
	enabled := n.Enabled == nil || *n.Enabled
	m[ax.AttrEnabled] = enabled
	if n.Selected {
		m[ax.AttrSelected] = true
	}
	for k, v := range n.Attrs {
		m[k] = normalize(v)
	}
	return m, nil
}

// normalize widens integers to float64, the type native providers report
// numbers as, so that values from fixtures compare equal to parsed filters.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	}
	return v
}

// Capture records the live subtree under el, up to depth levels below it
// (0 = unlimited). Invalid children are skipped.
func Capture(el *ax.Element, depth int) Node {
	return capture(el, depth, 0)
}

func capture(el *ax.Element, depth, level int) Node {
	n := Node{
		Role:        el.Role(),
		Subrole:     el.Subrole(),
		Title:       el.Title(),
		Description: el.StringAttr(ax.AttrDescription),
		Identifier:  el.StringAttr(ax.AttrIdentifier),
		Actions:     el.Actions(),
	}
	if v, ok := el.Attribute(ax.AttrValue); ok {
		switch v.(type) {
		case string, bool, int, int64, float64:
			n.Value = v
		}
	}
	if f, ok := el.Frame(); ok {
		n.Frame = []float64{f.X, f.Y, f.W, f.H}
	}
	if enabled, ok := el.Bool(ax.AttrEnabled); ok && !enabled {
		n.Enabled = &enabled
	}
	n.Focused, _ = el.Bool(ax.AttrFocused)
	n.Selected, _ = el.Bool(ax.AttrSelected)
	if depth > 0 && level >= depth {
		return n
	}
	for _, c := range el.Children() {
		if c.IsValid() {
			n.Children = append(n.Children, capture(c, depth, level+1))
		}
	}
	return n
}
