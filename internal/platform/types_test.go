package platform

import (
	"reflect"
	"testing"

	"github.com/mj1618/axquery/internal/ax"
)

func TestParseFrame_Valid(t *testing.T) {
	f, err := ParseFrame("10, 20, 300, 400.5")
	if err != nil {
		t.Fatal(err)
	}
	want := ax.Frame{X: 10, Y: 20, W: 300, H: 400.5}
	if f != want {
		t.Errorf("got %+v, want %+v", f, want)
	}
}

func TestParseFrame_Invalid(t *testing.T) {
	tests := []string{
		"",
		"10,20,300",
		"10,20,300,400,500",
		"a,b,c,d",
		"0,0,-1,5",
	}
	for _, s := range tests {
		if _, err := ParseFrame(s); err == nil {
			t.Errorf("ParseFrame(%q) should fail", s)
		}
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		input string
		want  []int
	}{
		{"", nil},
		{"2", []int{2}},
		{"2/1/3", []int{2, 1, 3}},
		{"2,1", []int{2, 1}},
		{" 1 / 4 ", []int{1, 4}},
	}
	for _, tt := range tests {
		got, err := ParsePath(tt.input)
		if err != nil {
			t.Errorf("ParsePath(%q): %v", tt.input, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParsePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
	for _, bad := range []string{"0", "1/x", "-2"} {
		if _, err := ParsePath(bad); err == nil {
			t.Errorf("ParsePath(%q) should fail", bad)
		}
	}
	if got := FormatPath([]int{2, 1, 3}); got != "2/1/3" {
		t.Errorf("FormatPath = %q", got)
	}
}

func TestParseAttr(t *testing.T) {
	tests := []struct {
		input     string
		wantName  string
		wantValue any
	}{
		{"title=Save", ax.AttrTitle, "Save"},
		{"AXEnabled=false", ax.AttrEnabled, false},
		{"value=1.5", ax.AttrValue, 1.5},
		{`value="42"`, ax.AttrValue, "42"},
		{"AXCustom=a=b", "AXCustom", "a=b"},
	}
	for _, tt := range tests {
		name, value, err := ParseAttr(tt.input)
		if err != nil {
			t.Errorf("ParseAttr(%q): %v", tt.input, err)
			continue
		}
		if name != tt.wantName || value != tt.wantValue {
			t.Errorf("ParseAttr(%q) = %q, %#v; want %q, %#v", tt.input, name, value, tt.wantName, tt.wantValue)
		}
	}
	for _, bad := range []string{"title", "=x"} {
		if _, _, err := ParseAttr(bad); err == nil {
			t.Errorf("ParseAttr(%q) should fail", bad)
		}
	}
}

func TestActionName(t *testing.T) {
	tests := map[string]string{
		"press":    ax.ActionPress,
		"ShowMenu": ax.ActionShowMenu,
		"AXPick":   "AXPick",
	}
	for in, want := range tests {
		if got := ActionName(in); got != want {
			t.Errorf("ActionName(%q) = %q, want %q", in, got, want)
		}
	}
}
