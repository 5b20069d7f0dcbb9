package list

import "testing"

func oneRow(int) int { return 1 }

func TestItemNextPrevClamp(t *testing.T) {
	var s State
	s.ItemPrev(5)
	if s.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0 (clamped at top)", s.Cursor())
	}
	s.End(5)
	s.ItemNext(5)
	if s.Cursor() != 4 {
		t.Fatalf("cursor = %d, want 4 (clamped at bottom)", s.Cursor())
	}
}

func TestHomeEnd(t *testing.T) {
	var s State
	s.SetCursor(2, 5)
	s.Home(5)
	if s.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0", s.Cursor())
	}
	s.End(5)
	if s.Cursor() != 4 {
		t.Fatalf("cursor = %d, want 4", s.Cursor())
	}
}

func TestPageNextUsesLastVisibleCount(t *testing.T) {
	var s State
	s.Layout(20, 5, oneRow)
	s.PageNext(20)
	if s.Cursor() != 5 {
		t.Fatalf("cursor = %d, want 5 after one page of 5 rows", s.Cursor())
	}
}

func TestLayoutExpandsDownwardToCursor(t *testing.T) {
	var s State
	s.SetCursor(10, 20)
	rows, view := s.Layout(20, 5, oneRow)
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}
	if rows[len(rows)-1].Index != 10 {
		t.Fatalf("last row index = %d, want 10 (cursor included)", rows[len(rows)-1].Index)
	}
	if view.Offset != 6 {
		t.Fatalf("offset = %d, want 6", view.Offset)
	}
}

func TestLayoutExpandsUpwardWhenCursorAboveWindow(t *testing.T) {
	var s State
	s.Layout(20, 5, oneRow) // offset stays 0, cursor 0
	s.SetCursor(15, 20)
	s.Layout(20, 5, oneRow) // window now covers [11..15]
	s.SetCursor(2, 20)
	_, view := s.Layout(20, 5, oneRow)
	if view.Offset != 2 {
		t.Fatalf("offset = %d, want 2 (window jumps up to cursor)", view.Offset)
	}
}

func TestLayoutEmpty(t *testing.T) {
	var s State
	rows, view := s.Layout(0, 5, oneRow)
	if rows != nil || view.VisibleCount != 0 {
		t.Fatalf("expected empty layout for zero-length list")
	}
}

func TestLayoutDropsFrontForOversizedRows(t *testing.T) {
	heights := []int{1, 1, 10, 1, 1}
	h := func(i int) int { return heights[i] }
	var s State
	s.SetCursor(4, 5)
	rows, _ := s.Layout(5, 3, h)
	for _, r := range rows {
		if r.Index == 2 {
			t.Fatalf("oversized row 2 should have been dropped once cursor moved past it")
		}
	}
	if rows[len(rows)-1].Index != 4 {
		t.Fatalf("last row should be the cursor row, got %d", rows[len(rows)-1].Index)
	}
}
