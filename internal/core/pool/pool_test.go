package pool

import "testing"

type position struct{ X, Y int }

func TestNewDefaultsSlots(t *testing.T) {
	p := New[position](4)
	if p.Len() != 4 {
		t.Fatalf("expected 4 slots, got %d", p.Len())
	}
	if *p.Get(3) != (position{}) {
		t.Fatalf("expected zero value, got %+v", *p.Get(3))
	}
}

func TestResizeNeverShrinks(t *testing.T) {
	p := New[position](10)
	p.Set(9, position{X: 1, Y: 2})
	p.Resize(3)
	if p.Len() != 10 {
		t.Fatalf("pool shrank to %d", p.Len())
	}
	p.Resize(25)
	if p.Len() != 25 {
		t.Fatalf("expected 25 slots, got %d", p.Len())
	}
	if got := *p.Get(9); got != (position{X: 1, Y: 2}) {
		t.Fatalf("value lost on resize: %+v", got)
	}
}

func TestGetReturnsMutableSlot(t *testing.T) {
	p := New[position](2)
	p.Get(1).X = 42
	if p.Get(1).X != 42 {
		t.Fatal("write through pointer was not stored")
	}
}

func TestGetOutOfRangePanics(t *testing.T) {
	p := New[position](2)
	defer func() {
		if recover() == nil {
			t.Fatal("expected out of range panic")
		}
	}()
	p.Get(2)
}

func TestSetOutOfRangePanics(t *testing.T) {
	p := New[int](0)
	defer func() {
		if recover() == nil {
			t.Fatal("expected out of range panic")
		}
	}()
	p.Set(0, 1)
}

func TestAddValuesClear(t *testing.T) {
	p := New[int](0)
	p.Add(1)
	p.Add(2)
	vals := p.Values()
	if len(vals) != 2 || vals[0] != 1 || vals[1] != 2 {
		t.Fatalf("unexpected values %v", vals)
	}
	p.Clear()
	if !p.Empty() {
		t.Fatalf("expected empty pool, got %d", p.Len())
	}
	// The copy taken before Clear is unaffected.
	if vals[1] != 2 {
		t.Fatalf("values copy was mutated: %v", vals)
	}
}

func TestBaseInterface(t *testing.T) {
	var b Base = New[string](1)
	b.Resize(5)
	if b.Len() != 5 {
		t.Fatalf("expected 5, got %d", b.Len())
	}
	b.Clear()
	if b.Len() != 0 {
		t.Fatalf("expected 0, got %d", b.Len())
	}
}

func TestPointerSurvivesGrowth(t *testing.T) {
	p := New[position](1)
	slot := p.Get(0)
	p.Resize(PageSize*3 + 1)
	for i := 0; i < 10; i++ {
		p.Add(position{X: i})
	}
	slot.X = 7
	if p.Get(0).X != 7 {
		t.Fatal("write through an old pointer was lost after the pool grew")
	}
	if got := p.Get(PageSize * 3).X; got != 0 {
		t.Fatalf("slot on a new page = %d, want zero value", got)
	}
	if p.Len() != PageSize*3+11 {
		t.Fatalf("len = %d", p.Len())
	}
}

func TestClearThenReuse(t *testing.T) {
	p := New[int](0)
	for i := 0; i < PageSize+5; i++ {
		p.Add(i + 1)
	}
	p.Clear()
	p.Resize(PageSize + 5)
	for i := 0; i < p.Len(); i++ {
		if v := *p.Get(i); v != 0 {
			t.Fatalf("slot %d kept %d after Clear", i, v)
		}
	}
}
