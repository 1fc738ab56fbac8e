package output

import "github.com/mj1618/axquery/internal/model"

// TreeResult is the output of the `tree` command.
type TreeResult struct {
	Target   string          `yaml:"target"         json:"target"`
	Scope    string          `yaml:"scope,omitempty" json:"scope,omitempty"`
	TS       int64           `yaml:"ts"             json:"ts"`
	Elements []model.Element `yaml:"elements"       json:"elements"`
}

// TreeFlatResult is the output of `tree --flat`.
type TreeFlatResult struct {
	Target   string              `yaml:"target"         json:"target"`
	Scope    string              `yaml:"scope,omitempty" json:"scope,omitempty"`
	TS       int64               `yaml:"ts"             json:"ts"`
	Elements []model.FlatElement `yaml:"elements"       json:"elements"`
}

// QueryResult is the output of the query commands (find, line, column).
// Elements are numbered in result order.
type QueryResult struct {
	Target   string          `yaml:"target"   json:"target"`
	Query    string          `yaml:"query"    json:"query"`
	Count    int             `yaml:"count"    json:"count"`
	Elements []model.Element `yaml:"elements" json:"elements"`
}

// ValueResult is the output of `get` and `set`.
type ValueResult struct {
	Pos      string `yaml:"pos"            json:"pos"`
	Attr     string `yaml:"attr"           json:"attr"`
	Value    any    `yaml:"value"          json:"value"`
	Present  bool   `yaml:"present"        json:"present"`
	Settable bool   `yaml:"settable"       json:"settable"`
	Changed  bool   `yaml:"changed,omitempty" json:"changed,omitempty"`
}

// ActionResult is the output of the `action` command.
type ActionResult struct {
	OK      bool          `yaml:"ok"      json:"ok"`
	Action  string        `yaml:"action"  json:"action"`
	Element model.Element `yaml:"element" json:"element"`
}

// WaitResult is the output of the `wait` command.
type WaitResult struct {
	OK       bool           `yaml:"ok"                  json:"ok"`
	Query    string         `yaml:"query"               json:"query"`
	Gone     bool           `yaml:"gone,omitempty"      json:"gone,omitempty"`
	Elapsed  string         `yaml:"elapsed"             json:"elapsed"`
	Polls    int            `yaml:"polls"               json:"polls"`
	Element  *model.Element `yaml:"element,omitempty"   json:"element,omitempty"`
	TimedOut bool           `yaml:"timed_out,omitempty" json:"timed_out,omitempty"`
}

// AnnotateResult is the output of the `annotate` command.
type AnnotateResult struct {
	Image    string          `yaml:"image"    json:"image"`
	Width    int             `yaml:"width"    json:"width"`
	Height   int             `yaml:"height"   json:"height"`
	Elements []model.Element `yaml:"elements" json:"elements"`
}
