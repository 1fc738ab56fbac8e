package model

import "testing"

func TestElementHash(t *testing.T) {
	base := FlatElement{ID: 1, Role: "btn", Title: "OK", Value: "x", Path: "window > btn"}
	if ElementHash(base) != ElementHash(base) {
		t.Error("hash should be stable")
	}

	same := base
	same.ID, same.Value, same.Bounds = 9, "y", [4]int{1, 2, 3, 4}
	if ElementHash(base) != ElementHash(same) {
		t.Error("ID, value and bounds should not affect the hash")
	}

	for name, mutate := range map[string]func(*FlatElement){
		"role":       func(e *FlatElement) { e.Role = "lnk" },
		"path":       func(e *FlatElement) { e.Path = "dialog > btn" },
		"identifier": func(e *FlatElement) { e.Identifier = "ok" },
	} {
		other := base
		mutate(&other)
		if ElementHash(base) == ElementHash(other) {
			t.Errorf("%s should affect the hash", name)
		}
	}
}

func TestDiffElementsByHash_IDShift(t *testing.T) {
	prev := []FlatElement{
		{ID: 1, Role: "btn", Title: "A", Path: "window"},
		{ID: 2, Role: "btn", Title: "B", Path: "window"},
		{ID: 3, Role: "input", Title: "Search", Path: "window"},
	}
	curr := []FlatElement{
		{ID: 1, Role: "btn", Title: "New", Path: "window"},
		{ID: 2, Role: "btn", Title: "A", Path: "window"},
		{ID: 3, Role: "input", Title: "Search", Value: "hello", Path: "window"},
	}
	diff := DiffElementsByHash(prev, curr)
	if len(diff.Added) != 1 || diff.Added[0].Title != "New" {
		t.Errorf("added = %+v", diff.Added)
	}
	if len(diff.Removed) != 1 || diff.Removed[0].Title != "B" {
		t.Errorf("removed = %+v", diff.Removed)
	}
	if len(diff.Changed) != 1 || diff.Changed[0].Changes["v"][1] != "hello" {
		t.Errorf("changed = %+v", diff.Changed)
	}
	if diff.UnchangedCount != 1 {
		t.Errorf("unchanged = %d, want 1", diff.UnchangedCount)
	}
}

func TestDiffElementsByHash_DuplicateHashes(t *testing.T) {
	row := FlatElement{Role: "row", Path: "list > row"}
	prev := []FlatElement{row, row, row}
	prev[0].ID, prev[1].ID, prev[2].ID = 1, 2, 3
	curr := []FlatElement{row, row}
	curr[0].ID, curr[1].ID = 1, 2

	diff := DiffElementsByHash(prev, curr)
	if diff.UnchangedCount != 2 {
		t.Errorf("unchanged = %d, want 2", diff.UnchangedCount)
	}
	if len(diff.Removed) != 1 || diff.Removed[0].ID != 3 {
		t.Errorf("removed = %+v, want the third row", diff.Removed)
	}
	if len(diff.Added) != 0 {
		t.Errorf("added = %+v", diff.Added)
	}
}

func TestDiffElementsByHash_Empty(t *testing.T) {
	diff := DiffElementsByHash(nil, nil)
	if len(diff.Added)+len(diff.Removed)+len(diff.Changed) != 0 || diff.UnchangedCount != 0 {
		t.Errorf("expected empty diff, got %+v", diff)
	}
}
