package model

import (
	"crypto/sha256"
	"fmt"
)

// HashChange represents a changed element detected by hash-based diffing.
type HashChange struct {
	ID      int                  `yaml:"i"                json:"i"`
	Role    string               `yaml:"r,omitempty"      json:"r,omitempty"`
	Title   string               `yaml:"t,omitempty"      json:"t,omitempty"`
	Changes map[string][2]string `yaml:"changes"          json:"changes"`
}

// TreeDiff is the result of comparing two element snapshots by content hash.
type TreeDiff struct {
	Added          []FlatElement `yaml:"added,omitempty"   json:"added,omitempty"`
	Removed        []FlatElement `yaml:"removed,omitempty" json:"removed,omitempty"`
	Changed        []HashChange  `yaml:"changed,omitempty" json:"changed,omitempty"`
	UnchangedCount int           `yaml:"unchanged_count"   json:"unchanged_count"`
}

// ElementHash computes a stable identity hash for an element based on its
// semantic content and position in the tree. This allows matching elements
// across separate reads where sequential IDs may shift.
func ElementHash(el FlatElement) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s|%s", el.Role, el.Title, el.Description, el.Subrole, el.Identifier, el.Path)
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// DiffElementsByHash compares two flat element lists using content hashing
// for stable identity. Unlike DiffElements (which matches by position),
// this handles shifts caused by elements being added or removed. Elements
// sharing a hash are paired in document order.
func DiffElementsByHash(prev, curr []FlatElement) TreeDiff {
	pending := make(map[string][]FlatElement, len(prev))
	for _, el := range prev {
		h := ElementHash(el)
		pending[h] = append(pending[h], el)
	}

	var diff TreeDiff
	for _, el := range curr {
		h := ElementHash(el)
		queue := pending[h]
		if len(queue) == 0 {
			diff.Added = append(diff.Added, el)
			continue
		}
		prevEl := queue[0]
		pending[h] = queue[1:]
		if changes := diffSnapshotProperties(prevEl, el); len(changes) > 0 {
			diff.Changed = append(diff.Changed, HashChange{
				ID:      el.ID,
				Role:    el.Role,
				Title:   el.Title,
				Changes: changes,
			})
		} else {
			diff.UnchangedCount++
		}
	}

	for _, el := range prev {
		h := ElementHash(el)
		if queue := pending[h]; len(queue) > 0 && queue[0].ID == el.ID {
			diff.Removed = append(diff.Removed, el)
			pending[h] = queue[1:]
		}
	}
	return diff
}

// diffSnapshotProperties compares the properties outside the hash: value,
// bounds, focus, selection and enablement.
func diffSnapshotProperties(prev, curr FlatElement) map[string][2]string {
	diffs := make(map[string][2]string)

	if prev.Value != curr.Value {
		diffs["v"] = [2]string{prev.Value, curr.Value}
	}
	if prev.Bounds != curr.Bounds {
		diffs["b"] = formatPair(prev.Bounds, curr.Bounds)
	}
	if prev.Focused != curr.Focused {
		diffs["f"] = formatPair(prev.Focused, curr.Focused)
	}
	if prev.Selected != curr.Selected {
		diffs["s"] = formatPair(prev.Selected, curr.Selected)
	}
	if enabled(prev) != enabled(curr) {
		diffs["e"] = formatPair(enabled(prev), enabled(curr))
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}

func enabled(el FlatElement) bool { return el.Enabled == nil || *el.Enabled }
