// Package query turns command-line and tool-call parameters into element
// queries and runs them against a session root.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/model"
	"github.com/mj1618/axquery/internal/platform"
)

// Attr is one attribute equality filter.
type Attr struct {
	Name  string
	Value any
}

// Spec describes a query over the children (or descendants) of a scope.
// Paths are 1-based child positions from the session root.
type Spec struct {
	Scope       []int
	Roles       []string
	Title       string
	Contains    string
	Identifier  string
	Attrs       []Attr
	Above       []int
	Below       []int
	LeftOf      []int
	RightOf     []int
	Sort        string
	Nth         int
	Descendants bool
	Depth       int
	Limit       int
}

// ResolvePath returns the element at path below root, or an error wrapping
// ax.ErrNotFound.
func ResolvePath(root *ax.Element, path []int) (*ax.Element, error) {
	el := ax.Resolve(root, path)
	if el == nil {
		return nil, fmt.Errorf("no element at %q: %w", platform.FormatPath(path), ax.ErrNotFound)
	}
	return el, nil
}

// Predicate builds the filter for s. Geometric filters resolve their
// reference elements against root.
func (s Spec) Predicate(root *ax.Element) (ax.Predicate, error) {
	preds := []ax.Predicate{model.RolePredicate(s.Roles...)}
	if s.Title != "" {
		preds = append(preds, ax.HasTitle(s.Title))
	}
	if s.Contains != "" {
		preds = append(preds, ax.TitleContains(s.Contains))
	}
	if s.Identifier != "" {
		preds = append(preds, ax.HasIdentifier(s.Identifier))
	}
	for _, a := range s.Attrs {
		preds = append(preds, ax.HasAttribute(a.Name, a.Value))
	}

	geometric := []struct {
		path []int
		pred func(*ax.Element) ax.Predicate
	}{
		{s.Above, ax.IsAbove},
		{s.Below, ax.IsBelow},
		{s.LeftOf, ax.IsLeftOf},
		{s.RightOf, ax.IsRightOf},
	}
	for _, g := range geometric {
		if g.path == nil {
			continue
		}
		ref, err := ResolvePath(root, g.path)
		if err != nil {
			return nil, fmt.Errorf("reference element: %w", err)
		}
		preds = append(preds, g.pred(ref))
	}
	return ax.And(preds...), nil
}

// Less returns the comparator named by s.Sort.
func (s Spec) Less() (ax.Less, error) {
	less, ok := ax.Comparator(s.Sort)
	if !ok {
		return nil, fmt.Errorf("unknown sort order %q (use reading, reverse-reading, ltr, rtl, ttb or btt)", s.Sort)
	}
	return less, nil
}

// Run evaluates s below root. It returns the scope the query ran in along
// with the matches; an empty result is not an error.
func (s Spec) Run(root *ax.Element) (*ax.Element, ax.Elements, error) {
	scope, err := ResolvePath(root, s.Scope)
	if err != nil {
		return nil, nil, fmt.Errorf("scope: %w", err)
	}
	pred, err := s.Predicate(root)
	if err != nil {
		return nil, nil, err
	}
	less, err := s.Less()
	if err != nil {
		return nil, nil, err
	}

	var els ax.Elements
	switch {
	case s.Descendants:
		els = ax.MatchingDescendants(scope, pred, s.Depth)
		if s.Sort != "" {
			ax.Sort(els, less)
		}
		if s.Nth > 0 {
			if s.Nth > len(els) {
				return scope, nil, nil
			}
			els = els[s.Nth-1 : s.Nth]
		}
	case s.Nth > 0:
		if el := ax.NthMatchingChild(scope, pred, s.Nth, less); el != nil {
			els = ax.Elements{el}
		}
	default:
		els = ax.MatchingChildren(scope, pred, less)
	}
	if s.Limit > 0 && len(els) > s.Limit {
		els = els[:s.Limit]
	}
	return scope, els, nil
}

// Locate returns a single element: the one at pos when pos is given,
// otherwise the first result of s.
func Locate(root *ax.Element, pos []int, s Spec) (*ax.Element, error) {
	if pos != nil {
		return ResolvePath(root, pos)
	}
	_, els, err := s.Run(root)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%s: %w", s, ax.ErrNotFound)
	}
	return els[0], nil
}

// String renders s as space-separated key=value terms.
func (s Spec) String() string {
	var terms []string
	add := func(k, v string) {
		if v != "" {
			terms = append(terms, k+"="+v)
		}
	}
	add("scope", platform.FormatPath(s.Scope))
	add("role", strings.Join(s.Roles, ","))
	add("title", s.Title)
	add("contains", s.Contains)
	add("id", s.Identifier)
	for _, a := range s.Attrs {
		add(a.Name, fmt.Sprint(a.Value))
	}
	add("above", platform.FormatPath(s.Above))
	add("below", platform.FormatPath(s.Below))
	add("left-of", platform.FormatPath(s.LeftOf))
	add("right-of", platform.FormatPath(s.RightOf))
	add("sort", s.Sort)
	if s.Nth > 0 {
		add("nth", strconv.Itoa(s.Nth))
	}
	if s.Descendants {
		add("descendants", "true")
	}
	if len(terms) == 0 {
		return "*"
	}
	return strings.Join(terms, " ")
}
