package query

import (
	"fmt"
	"strings"

	"github.com/mj1618/axquery/internal/platform"
)

// Parameter extraction helpers for tool-call argument maps. Values arrive
// from JSON, so numbers are float64.

// StringParam returns params[key] as a string.
func StringParam(params map[string]any, key, defaultVal string) string {
	if v, ok := params[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

// IntParam returns params[key] as an int.
func IntParam(params map[string]any, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

// BoolParam returns params[key] as a bool.
func BoolParam(params map[string]any, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// ListParam returns params[key] as a list of strings. A string value is
// split on commas.
func ListParam(params map[string]any, key string) []string {
	var out []string
	switch v := params[key].(type) {
	case string:
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, x := range v {
			out = append(out, fmt.Sprint(x))
		}
	case []string:
		out = append(out, v...)
	}
	return out
}

// PathParam parses params[key] as a position path. A missing key is nil.
func PathParam(params map[string]any, key string) ([]int, error) {
	s := StringParam(params, key, "")
	if s == "" {
		return nil, nil
	}
	path, err := platform.ParsePath(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	if path == nil {
		path = []int{}
	}
	return path, nil
}

// TargetFromParams reads the app and pid arguments.
func TargetFromParams(params map[string]any) platform.Target {
	return platform.Target{
		App: StringParam(params, "app", ""),
		PID: IntParam(params, "pid", 0),
	}
}

// FromParams builds a Spec from a tool-call argument map.
func FromParams(params map[string]any) (Spec, error) {
	s := Spec{
		Roles:       ListParam(params, "role"),
		Title:       StringParam(params, "title", ""),
		Contains:    StringParam(params, "contains", ""),
		Identifier:  StringParam(params, "id", ""),
		Sort:        StringParam(params, "sort", ""),
		Nth:         IntParam(params, "nth", 0),
		Descendants: BoolParam(params, "descendants", false),
		Depth:       IntParam(params, "depth", 0),
		Limit:       IntParam(params, "limit", 0),
	}
	for _, raw := range ListParam(params, "attr") {
		name, value, err := platform.ParseAttr(raw)
		if err != nil {
			return Spec{}, err
		}
		s.Attrs = append(s.Attrs, Attr{Name: name, Value: value})
	}

	paths := []struct {
		key string
		dst *[]int
	}{
		{"scope", &s.Scope},
		{"above", &s.Above},
		{"below", &s.Below},
		{"left-of", &s.LeftOf},
		{"right-of", &s.RightOf},
	}
	for _, p := range paths {
		path, err := PathParam(params, p.key)
		if err != nil {
			return Spec{}, err
		}
		*p.dst = path
	}
	if s.Nth < 0 {
		return Spec{}, fmt.Errorf("nth must be positive, got %d", s.Nth)
	}
	return s, nil
}
