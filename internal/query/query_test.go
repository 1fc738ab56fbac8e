package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/platform"
	"github.com/mj1618/axquery/internal/platform/memtree"
)

const editorFixture = "../platform/memtree/testdata/editor.yaml"

func editorRoot(t *testing.T) *ax.Element {
	t.Helper()
	s, err := memtree.OpenFile(editorFixture)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	root, err := s.Root(platform.Target{App: "Editor"})
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func titles(els ax.Elements) string {
	var out []string
	for _, el := range els {
		t := el.Title()
		if t == "" {
			t = el.StringAttr(ax.AttrIdentifier)
		}
		out = append(out, t)
	}
	return strings.Join(out, ",")
}

func TestSpec_Run(t *testing.T) {
	root := editorRoot(t)
	toolbar := []int{1, 1}

	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{"all children", Spec{Scope: toolbar}, "Open,Save,Wrap"},
		{"role", Spec{Scope: toolbar, Roles: []string{"btn"}}, "Open,Save"},
		{"raw role", Spec{Scope: toolbar, Roles: []string{"AXCheckBox"}}, "Wrap"},
		{"right to left", Spec{Scope: toolbar, Roles: []string{"btn"}, Sort: "rtl"}, "Save,Open"},
		{"nth", Spec{Scope: toolbar, Roles: []string{"btn"}, Nth: 2}, "Save"},
		{"nth past end", Spec{Scope: toolbar, Nth: 5}, ""},
		{"title", Spec{Scope: toolbar, Title: "Save"}, "Save"},
		{"contains", Spec{Scope: toolbar, Contains: "PE"}, "Open"},
		{"attr number", Spec{Scope: toolbar, Attrs: []Attr{{ax.AttrValue, 0.0}}}, "Wrap"},
		{"right of", Spec{Scope: toolbar, RightOf: []int{1, 1, 1}}, "Save,Wrap"},
		{"left of", Spec{Scope: toolbar, LeftOf: []int{1, 1, 3}}, "Open,Save"},
		{"below", Spec{Scope: []int{1}, Below: []int{1, 1, 1}}, "body"},
		{"limit", Spec{Scope: toolbar, Limit: 1}, "Open"},
		{"descendants breadth first", Spec{Roles: []string{"interactive"}, Descendants: true}, "body,Open,Save,Wrap"},
		{"descendants depth", Spec{Roles: []string{"input"}, Descendants: true, Depth: 2}, "body"},
		{"descendants nth", Spec{Roles: []string{"btn"}, Descendants: true, Nth: 2}, "Save"},
		{"descendants sorted", Spec{Roles: []string{"interactive"}, Descendants: true, Sort: "ttb"}, "Open,Save,Wrap,body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, els, err := tt.spec.Run(root)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if got := titles(els); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpec_RunErrors(t *testing.T) {
	root := editorRoot(t)

	if _, _, err := (Spec{Scope: []int{9}}).Run(root); !errors.Is(err, ax.ErrNotFound) {
		t.Errorf("bad scope: err = %v, want ErrNotFound", err)
	}
	if _, _, err := (Spec{Sort: "diagonal"}).Run(root); err == nil {
		t.Error("bad sort: expected error")
	}
	if _, _, err := (Spec{Above: []int{1, 7}}).Run(root); !errors.Is(err, ax.ErrNotFound) {
		t.Errorf("bad reference: err = %v, want ErrNotFound", err)
	}
}

func TestLocate(t *testing.T) {
	root := editorRoot(t)

	el, err := Locate(root, []int{1, 1, 2}, Spec{})
	if err != nil || el.Title() != "Save" {
		t.Errorf("Locate by path = %v, %v", el.Describe(), err)
	}

	el, err = Locate(root, nil, Spec{Roles: []string{"chk"}, Descendants: true})
	if err != nil || el.Title() != "Wrap" {
		t.Errorf("Locate by query = %v, %v", el.Describe(), err)
	}

	el, err = Locate(root, []int{}, Spec{Title: "ignored"})
	if err != nil || !el.Same(root) {
		t.Errorf("empty path should be the root, got %v, %v", el.Describe(), err)
	}

	if _, err := Locate(root, nil, Spec{Title: "Print"}); !errors.Is(err, ax.ErrNotFound) {
		t.Errorf("missing element: err = %v", err)
	}
}

func TestSpec_String(t *testing.T) {
	s := Spec{Scope: []int{1, 1}, Roles: []string{"btn", "chk"}, Nth: 2, Sort: "ltr", Attrs: []Attr{{"AXValue", 0.0}}}
	want := "scope=1/1 role=btn,chk AXValue=0 sort=ltr nth=2"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := (Spec{}).String(); got != "*" {
		t.Errorf("empty spec = %q", got)
	}
}

func TestFromParams(t *testing.T) {
	params := map[string]any{
		"scope":       "1/1",
		"role":        "btn, chk",
		"nth":         2.0,
		"attr":        []any{"value=0", "enabled=true"},
		"descendants": true,
		"right-of":    "1,1,1",
		"app":         "Editor",
		"pid":         101.0,
	}
	s, err := FromParams(params)
	if err != nil {
		t.Fatal(err)
	}
	if platform.FormatPath(s.Scope) != "1/1" || s.Nth != 2 || !s.Descendants {
		t.Errorf("spec = %+v", s)
	}
	if strings.Join(s.Roles, "|") != "btn|chk" {
		t.Errorf("roles = %q", s.Roles)
	}
	if len(s.Attrs) != 2 || s.Attrs[0] != (Attr{ax.AttrValue, 0.0}) || s.Attrs[1] != (Attr{ax.AttrEnabled, true}) {
		t.Errorf("attrs = %+v", s.Attrs)
	}
	if platform.FormatPath(s.RightOf) != "1/1/1" {
		t.Errorf("right-of = %v", s.RightOf)
	}
	if target := TargetFromParams(params); target != (platform.Target{App: "Editor", PID: 101}) {
		t.Errorf("target = %+v", target)
	}

	for _, bad := range []map[string]any{
		{"scope": "1/x"},
		{"attr": "novalue"},
		{"nth": -1.0},
	} {
		if _, err := FromParams(bad); err == nil {
			t.Errorf("FromParams(%v): expected error", bad)
		}
	}
}

func TestParamHelpers(t *testing.T) {
	params := map[string]any{"s": 12.0, "i": 3.0, "b": true, "l": []string{"a", "b"}}
	if got := StringParam(params, "s", ""); got != "12" {
		t.Errorf("StringParam = %q", got)
	}
	if got := IntParam(params, "i", 0); got != 3 {
		t.Errorf("IntParam = %d", got)
	}
	if got := IntParam(params, "missing", 7); got != 7 {
		t.Errorf("IntParam default = %d", got)
	}
	if !BoolParam(params, "b", false) || BoolParam(params, "s", false) {
		t.Error("BoolParam")
	}
	if got := ListParam(params, "l"); len(got) != 2 {
		t.Errorf("ListParam = %v", got)
	}
	if path, err := PathParam(params, "missing"); path != nil || err != nil {
		t.Errorf("PathParam missing = %v, %v", path, err)
	}
}
