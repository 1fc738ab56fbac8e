package model

import (
	"fmt"
	"strconv"
	"time"
)

// ChangeType represents the kind of UI change detected.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
)

// UIChange represents a single change between two reads.
type UIChange struct {
	Type    ChangeType           `yaml:"type"              json:"type"`
	TS      int64                `yaml:"ts"                json:"ts"`
	Element *FlatElement         `yaml:"el,omitempty"      json:"el,omitempty"`      // For added: the full element
	Pos     string               `yaml:"pos,omitempty"     json:"pos,omitempty"`     // Position path of the element
	ID      int                  `yaml:"id,omitempty"      json:"id,omitempty"`      // For removed/changed: element ID
	Role    string               `yaml:"r,omitempty"       json:"r,omitempty"`       // For removed: role
	Title   string               `yaml:"t,omitempty"       json:"t,omitempty"`       // For removed: title
	Changes map[string][2]string `yaml:"changes,omitempty" json:"changes,omitempty"` // For changed: field diffs
}

// positionKey identifies an element across two polls of the same scope: its
// position path when known, its sequential ID otherwise.
func positionKey(el FlatElement) string {
	if el.Pos != "" || el.ID == 0 {
		return "p:" + el.Pos
	}
	return "i:" + strconv.Itoa(el.ID)
}

// DiffElements compares two flat element lists taken from the same scope and
// returns the changes in current order, removals last. Elements are matched
// by position, so a node replaced in place shows up as changed.
func DiffElements(prev, curr []FlatElement) []UIChange {
	prevMap := make(map[string]FlatElement, len(prev))
	for _, el := range prev {
		prevMap[positionKey(el)] = el
	}
	currMap := make(map[string]FlatElement, len(curr))
	for _, el := range curr {
		currMap[positionKey(el)] = el
	}

	var changes []UIChange
	now := time.Now().Unix()

	for _, el := range curr {
		prevEl, existed := prevMap[positionKey(el)]
		if !existed {
			elCopy := el
			changes = append(changes, UIChange{Type: ChangeAdded, TS: now, Element: &elCopy, Pos: el.Pos})
			continue
		}
		if diffs := diffProperties(prevEl, el); len(diffs) > 0 {
			changes = append(changes, UIChange{Type: ChangeChanged, TS: now, ID: el.ID, Pos: el.Pos, Changes: diffs})
		}
	}

	for _, el := range prev {
		if _, exists := currMap[positionKey(el)]; !exists {
			changes = append(changes, UIChange{
				Type:  ChangeRemoved,
				TS:    now,
				ID:    el.ID,
				Pos:   el.Pos,
				Role:  el.Role,
				Title: el.Title,
			})
		}
	}

	return changes
}

// diffProperties compares every visible field of two elements.
func diffProperties(prev, curr FlatElement) map[string][2]string {
	diffs := diffSnapshotProperties(prev, curr)
	if diffs == nil {
		diffs = make(map[string][2]string)
	}
	for key, pair := range map[string][2]string{
		"r":  {prev.Role, curr.Role},
		"t":  {prev.Title, curr.Title},
		"d":  {prev.Description, curr.Description},
		"id": {prev.Identifier, curr.Identifier},
	} {
		if pair[0] != pair[1] {
			diffs[key] = pair
		}
	}
	if len(diffs) == 0 {
		return nil
	}
	return diffs
}

func formatPair(a, b any) [2]string {
	return [2]string{fmt.Sprint(a), fmt.Sprint(b)}
}
