package model

import "testing"

func TestFilterElements_Roles(t *testing.T) {
	elements := []Element{
		{
			ID: 1, Role: "group", Bounds: [4]int{0, 0, 200, 200},
			Children: []Element{
				{ID: 2, Role: "btn", Bounds: [4]int{10, 10, 50, 30}},
				{ID: 3, Role: "txt", Bounds: [4]int{10, 50, 100, 20}},
				{ID: 4, Role: "input", Bounds: [4]int{10, 80, 100, 20}},
			},
		},
	}

	kept := FilterElements(elements, []string{"group", "btn"}, nil)
	if len(kept) != 1 || len(kept[0].Children) != 1 {
		t.Fatalf("group with one btn expected, got %+v", kept)
	}

	promoted := FilterElements(elements, []string{"interactive"}, nil)
	if len(promoted) != 2 || promoted[0].ID != 2 || promoted[1].ID != 4 {
		t.Errorf("interactive children should be promoted, got %+v", promoted)
	}
}

func TestFilterElements_BBox(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "btn", Bounds: [4]int{10, 10, 50, 30}},
		{ID: 2, Role: "btn", Bounds: [4]int{200, 200, 50, 30}},
		{ID: 3, Role: "btn", Bounds: [4]int{90, 90, 50, 30}},
	}
	bbox := [4]int{0, 0, 100, 100}
	if got := FilterElements(elements, nil, &bbox); len(got) != 2 {
		t.Errorf("expected inside + overlapping, got %d", len(got))
	}
}

func TestFilterByText(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "toolbar", Children: []Element{
			{ID: 2, Role: "btn", Title: "Save"},
			{ID: 3, Role: "btn", Title: "Open"},
		}},
		{ID: 4, Role: "input", Identifier: "search"},
	}
	got := FilterByText(elements, "save")
	if len(got) != 1 || len(got[0].Children) != 1 || got[0].Children[0].ID != 2 {
		t.Errorf("FilterByText(save) = %+v", got)
	}
	if got := FilterByText(elements, "SEARCH"); len(got) != 1 || got[0].ID != 4 {
		t.Errorf("identifier match = %+v", got)
	}
}

func TestPruneEmptyGroups(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "group", Children: []Element{
			{ID: 2, Role: "btn", Title: "OK"},
			{ID: 3, Role: "group", Identifier: "sidebar"},
		}},
	}
	got := PruneEmptyGroups(elements)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("PruneEmptyGroups = %+v", got)
	}
	flat := PruneEmptyGroupsFlat(FlattenElements(elements))
	if len(flat) != 2 || flat[0].Path != "group > btn" {
		t.Errorf("PruneEmptyGroupsFlat = %+v", flat)
	}
}

func TestBoundsIntersect(t *testing.T) {
	tests := []struct {
		a, b [4]int
		want bool
	}{
		{[4]int{0, 0, 100, 100}, [4]int{50, 50, 100, 100}, true},
		{[4]int{0, 0, 50, 50}, [4]int{100, 100, 50, 50}, false},
		{[4]int{0, 0, 100, 100}, [4]int{100, 0, 50, 50}, false},
		{[4]int{0, 0, 100, 100}, [4]int{10, 10, 10, 10}, true},
	}
	for _, tt := range tests {
		if got := boundsIntersect(tt.a, tt.b); got != tt.want {
			t.Errorf("boundsIntersect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
