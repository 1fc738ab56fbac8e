package model

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestElement_CompactKeys(t *testing.T) {
	el := Element{ID: 1, Role: "btn", Title: "OK", Bounds: [4]int{10, 20, 100, 30}, Pos: "1/2"}

	data, err := json.Marshal(el)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"i", "r", "t", "b", "pos"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected key %q in JSON output", key)
		}
	}
	for _, key := range []string{"v", "d", "f", "e", "s", "a", "c", "id", "sr"} {
		if _, ok := m[key]; ok {
			t.Errorf("empty field %q should be omitted", key)
		}
	}

	out, err := yaml.Marshal(el)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "b: [10, 20, 100, 30]") {
		t.Errorf("bounds should be a flow sequence in YAML:\n%s", out)
	}
}

func TestElement_EnabledOnlyWhenFalse(t *testing.T) {
	disabled := false
	tests := []struct {
		name    string
		enabled *bool
		want    bool
	}{
		{"unset", nil, false},
		{"disabled", &disabled, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, _ := json.Marshal(Element{Role: "btn", Enabled: tt.enabled})
			if got := strings.Contains(string(data), `"e":false`); got != tt.want {
				t.Errorf("json %s: contains e=%v, want %v", data, got, tt.want)
			}
		})
	}
}
