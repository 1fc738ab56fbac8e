package ax

import "fmt"

// Attribute names understood by every provider.
const (
	AttrRole        = "AXRole"
	AttrSubrole     = "AXSubrole"
	AttrTitle       = "AXTitle"
	AttrValue       = "AXValue"
	AttrDescription = "AXDescription"
	AttrIdentifier  = "AXIdentifier"
	AttrHelp        = "AXHelp"
	AttrFrame       = "AXFrame"
	AttrParent      = "AXParent"
	AttrChildren    = "AXChildren"
	AttrEnabled     = "AXEnabled"
	AttrFocused     = "AXFocused"
	AttrSelected    = "AXSelected"
	AttrActions     = "AXActions"
	AttrWindows     = "AXWindows"
	AttrFocusedUI   = "AXFocusedUIElement"
)

// Roles referenced by the layout helpers.
const (
	RoleScrollBar = "AXScrollBar"
	RoleButton    = "AXButton"
	RoleGroup     = "AXGroup"
	RoleWindow    = "AXWindow"
	RoleApp       = "AXApplication"
)

// Actions.
const (
	ActionPress    = "AXPress"
	ActionShowMenu = "AXShowMenu"
	ActionRaise    = "AXRaise"
	ActionCancel   = "AXCancel"
	ActionConfirm  = "AXConfirm"
)

// Frame is an on-screen rectangle in points, origin top-left.
type Frame struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	W float64 `yaml:"w" json:"w"`
	H float64 `yaml:"h" json:"h"`
}

// Right is the x coordinate of the right edge.
func (f Frame) Right() float64 { return f.X + f.W }

// Bottom is the y coordinate of the bottom edge.
func (f Frame) Bottom() float64 { return f.Y + f.H }

// VerticalOverlap returns the height of the band shared by f and g, or a
// non-positive number when they do not share one.
func (f Frame) VerticalOverlap(g Frame) float64 {
	return min(f.Bottom(), g.Bottom()) - max(f.Y, g.Y)
}

// Bounds converts the frame to the integer [x, y, w, h] form used in output.
func (f Frame) Bounds() [4]int {
	return [4]int{int(f.X), int(f.Y), int(f.W), int(f.H)}
}

func (f Frame) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", f.X, f.Y, f.W, f.H)
}
