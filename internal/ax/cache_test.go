package ax

import "testing"

func TestCached_RoundTrip(t *testing.T) {
	f := newFake()
	el := f.add(nil, map[string]any{AttrRole: RoleButton})
	source := Slots{}
	calls := 0
	resolve := func() *Element { calls++; return el }

	for i := 0; i < 2; i++ {
		got, ok := Cached(source, "k", resolve, nil)
		if !ok || !got.Same(el) {
			t.Fatalf("read %d: got %s %v", i, got.Describe(), ok)
		}
	}
	if calls != 1 {
		t.Fatalf("resolver called %d times, want 1", calls)
	}

	f.kill(el)
	if _, ok := Cached(source, "k", resolve, nil); ok {
		t.Error("resolver returning an invalid element should yield absent")
	}
	if calls != 2 {
		t.Errorf("resolver called %d times after invalidation, want 2", calls)
	}
	if _, ok := source["k"]; ok {
		t.Error("failed resolution should clear the slot")
	}
}

func TestCached_VerifyFailure(t *testing.T) {
	f := newFake()
	el := f.add(nil, nil)
	source := Slots{}
	calls := 0
	resolve := func() *Element { calls++; return el }
	never := func(*Element) bool { return false }

	for i := 1; i <= 3; i++ {
		if got, ok := Cached(source, "k", resolve, never); ok || got != nil {
			t.Fatalf("read %d: got %s, want absent", i, got.Describe())
		}
		if calls != i {
			t.Fatalf("read %d: resolver called %d times", i, calls)
		}
	}
}

func TestCached_Replacement(t *testing.T) {
	f := newFake()
	old := f.add(nil, map[string]any{AttrTitle: "Old"})
	current := old
	source := Slots{}
	resolve := func() *Element { return current }

	if got, _ := Cached(source, "k", resolve, nil); !got.Same(old) {
		t.Fatal("first read should resolve old")
	}

	f.kill(old)
	replacement := f.add(nil, map[string]any{AttrTitle: "New"})
	current = replacement

	got, ok := Cached(source, "k", resolve, nil)
	if !ok || !got.Same(replacement) {
		t.Fatalf("got %s, want replacement", got.Describe())
	}
	stored, _ := source["k"].(*Element)
	if !stored.Same(replacement) {
		t.Error("slot should hold the replacement")
	}
}

func TestCached_VerifyRejectsStaleMeaning(t *testing.T) {
	f := newFake()
	el := f.add(nil, map[string]any{AttrTitle: "Save"})
	source := Slots{}
	calls := 0
	resolve := func() *Element { calls++; return el }
	isSave := func(e *Element) bool { return e.Title() == "Save" }

	Cached(source, "k", resolve, isSave)
	Cached(source, "k", resolve, isSave)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	f.set(el, AttrTitle, "Save As…")
	if _, ok := Cached(source, "k", resolve, isSave); ok {
		t.Error("element no longer passing verify should be absent")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestCached_Lists(t *testing.T) {
	f := newFake()
	root := f.add(nil, nil)
	f.add(root, nil)
	f.add(root, nil)
	source := Slots{}
	calls := 0
	resolve := func() Elements { calls++; return root.Children() }

	Cached(source, "rows", resolve, nil)
	got, ok := Cached(source, "rows", resolve, nil)
	if !ok || len(got) != 2 || calls != 1 {
		t.Fatalf("got %d rows ok=%v after %d calls", len(got), ok, calls)
	}
	f.kill(got[1])
	if _, ok := Cached(source, "rows", resolve, nil); ok {
		t.Error("list with an invalid member should not be returned")
	}
}

func TestCached_ForeignSlotValue(t *testing.T) {
	f := newFake()
	el := f.add(nil, nil)
	source := Slots{"k": "not an element"}
	got, ok := Cached(source, "k", func() *Element { return el }, nil)
	if !ok || !got.Same(el) {
		t.Error("slot of another type should be re-resolved")
	}
}

func TestCached_Misuse(t *testing.T) {
	expectMisuse(t, func() { Cached[*Element](nil, "k", func() *Element { return nil }, nil) })
	expectMisuse(t, func() { Cached[*Element](Slots{}, "k", nil, nil) })
}

func TestSlot(t *testing.T) {
	f := newFake()
	el := f.add(nil, nil)
	var s Slot[*Element]
	calls := 0
	resolve := func() *Element { calls++; return el }

	s.Get(resolve, nil)
	got, ok := s.Get(resolve, nil)
	if !ok || !got.Same(el) || calls != 1 {
		t.Fatalf("got %s ok=%v calls=%d", got.Describe(), ok, calls)
	}
	f.kill(el)
	if _, ok := s.Get(resolve, nil); ok {
		t.Error("invalid element should be absent")
	}
	if _, set := s.Peek(); set {
		t.Error("slot should be cleared after failed resolution")
	}
}
