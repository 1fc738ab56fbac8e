package ax

import "testing"

// gridTree lays out two rows of three buttons, optionally followed by a
// scroll bar spanning both rows as the last child:
//
//	row 1: b1 (0,0)   b2 (50,0)   b3 (100,0)
//	row 2: b4 (0,30)  b5 (50,30)  b6 (100,30)
func gridTree(scrollBar bool) (*fakeProvider, *Element, Elements) {
	f := newFake()
	root := f.add(nil, map[string]any{AttrRole: RoleGroup})
	var btns Elements
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			btns = append(btns, f.box(root, RoleButton, float64(col*50), float64(row*30), 40, 20))
		}
	}
	if scrollBar {
		f.box(root, RoleScrollBar, 150, 0, 10, 50)
	}
	return f, root, btns
}

func TestChildrenOnSameLine(t *testing.T) {
	_, _, btns := gridTree(true)
	line := ChildrenOnSameLine(btns[1])
	// b1, b2, b3 and the scroll bar overlap the first row.
	if len(line) != 4 {
		t.Fatalf("got %d elements on line, want 4: %v", len(line), describeAll(line))
	}
	for _, b := range btns[:3] {
		if !line.Contains(b) {
			t.Errorf("line should contain %s", b.Describe())
		}
	}
	for _, b := range btns[3:] {
		if line.Contains(b) {
			t.Errorf("line should not contain %s", b.Describe())
		}
	}
}

func TestChildrenOnSameLine_ZeroOverlapExcluded(t *testing.T) {
	f := newFake()
	root := f.add(nil, nil)
	el := f.box(root, RoleButton, 0, 0, 10, 10)
	touching := f.box(root, RoleButton, 20, 10, 10, 10)
	overlapping := f.box(root, RoleButton, 40, 9, 10, 10)

	line := ChildrenOnSameLine(el)
	if line.Contains(touching) {
		t.Error("element sharing only an edge should be excluded")
	}
	if !line.Contains(overlapping) || !line.Contains(el) {
		t.Errorf("got %v", describeAll(line))
	}
}

func TestChildrenOnSameLine_Absent(t *testing.T) {
	f := newFake()
	orphan := f.box(nil, RoleButton, 0, 0, 10, 10)
	if ChildrenOnSameLine(orphan) != nil {
		t.Error("element without parent should have no line")
	}
	root := f.add(nil, nil)
	noFrame := f.add(root, map[string]any{AttrRole: RoleButton})
	if ChildrenOnSameLine(noFrame) != nil {
		t.Error("element without frame should have no line")
	}
	if ChildrenOnSameLine(nil) != nil {
		t.Error("nil element should have no line")
	}
}

func TestChildrenOnNextLine(t *testing.T) {
	_, _, btns := gridTree(true)
	// The scroll bar is on every line and last in child order; it must not
	// be taken as the end of the first line.
	next := ChildrenOnNextLine(btns[0])
	if len(next) != 4 {
		t.Fatalf("got %v", describeAll(next))
	}
	for _, b := range btns[3:] {
		if !next.Contains(b) {
			t.Errorf("next line should contain %s", b.Describe())
		}
	}
	for _, b := range btns[:3] {
		if next.Contains(b) {
			t.Errorf("next line should not contain %s", b.Describe())
		}
	}
}

func TestChildrenOnNextLine_LastLine(t *testing.T) {
	_, _, btns := gridTree(false)
	if got := ChildrenOnNextLine(btns[4]); got != nil {
		t.Errorf("last line should have no next line, got %v", describeAll(got))
	}
	if ChildrenOnNextLine(nil) != nil {
		t.Error("nil element should have no next line")
	}
}

func TestChildrenInColumn(t *testing.T) {
	_, root, btns := gridTree(true)
	col := ChildrenInColumn(root, RoleButton, 1)
	if len(col) != 2 || !col[0].Same(btns[1]) || !col[1].Same(btns[4]) {
		t.Fatalf("column = %v, want [b2 b5]", describeAll(col))
	}
	if got := ChildInColumn(root, RoleButton, 1, 2); !got.Same(btns[4]) {
		t.Errorf("ChildInColumn(2) = %s, want b5", got.Describe())
	}
	if ChildInColumn(root, RoleButton, 1, 3) != nil {
		t.Error("position beyond column should be absent")
	}
	if ChildrenInColumn(root, RoleButton, 10) != nil {
		t.Error("start index out of range should be absent")
	}
}

func TestChildrenInColumn_NeedsTwoCandidates(t *testing.T) {
	_, root, _ := gridTree(true)
	if got := ChildrenInColumn(root, RoleScrollBar, 0); got != nil {
		t.Errorf("single role match should not form a column, got %v", describeAll(got))
	}
}
