// Package list implements the scrolling, multi-select list widget shown
// below the input line: cursor motion, paging, and the offset-expanding
// layout algorithm that keeps the cursor on screen while allowing
// variable-height rows.
package list

// Items is the source the list widget scrolls and selects over. T is
// whatever the caller's rendered item type is (e.g. candidate.Row).
type Items[T any] interface {
	Len() int
	Get(index int) (T, bool)
	IsMarked(index int) bool
}

// View is the layout-computed window into Items: which indices are
// currently retained on screen and at what offset.
type View struct {
	Offset       int
	VisibleCount int
}

// State is the list widget's cursor and persisted view state.
type State struct {
	cursor int
	view   View
}

// Cursor returns the current cursor index.
func (s *State) Cursor() int { return s.cursor }

func clamp(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

func (s *State) clampCursor(length int) {
	if length <= 0 {
		s.cursor = 0
		return
	}
	s.cursor = clamp(s.cursor, 0, length-1)
}

// ItemNext moves the cursor one item down.
func (s *State) ItemNext(length int) {
	s.cursor++
	s.clampCursor(length)
}

// ItemPrev moves the cursor one item up.
func (s *State) ItemPrev(length int) {
	s.cursor--
	s.clampCursor(length)
}

// PageNext advances the cursor by the last computed visible count.
func (s *State) PageNext(length int) {
	step := s.view.VisibleCount
	if step <= 0 {
		step = 1
	}
	s.cursor += step
	s.clampCursor(length)
}

// PagePrev retreats the cursor by the last computed visible count.
func (s *State) PagePrev(length int) {
	step := s.view.VisibleCount
	if step <= 0 {
		step = 1
	}
	s.cursor -= step
	s.clampCursor(length)
}

// Home moves the cursor to the first item.
func (s *State) Home(length int) {
	s.cursor = 0
	s.clampCursor(length)
}

// End moves the cursor to the last item.
func (s *State) End(length int) {
	s.cursor = length - 1
	s.clampCursor(length)
}

// SetCursor moves the cursor directly to index, clamped to bounds.
func (s *State) SetCursor(index, length int) {
	s.cursor = index
	s.clampCursor(length)
}

// RowHeight reports how many screen rows a laid-out item occupies; callers
// supply this per item since rows may wrap.
type RowHeight func(index int) int

// Row is one retained, laid-out item: its index and its height in rows.
type Row struct {
	Index  int
	Height int
}

// Layout computes which items are retained on screen for a window of
// height rows, expanding the stored offset downward to include the cursor
// (or upward if the cursor sits above the window), then dropping rows from
// the front while the accumulated height exceeds the window and the
// cursor remains in the retained set. It updates and returns the new View.
func (s *State) Layout(length, height int, rowHeight RowHeight) ([]Row, View) {
	s.clampCursor(length)
	if length <= 0 || height <= 0 {
		s.view = View{}
		return nil, s.view
	}

	offset := s.view.Offset
	if offset > length-height {
		offset = length - height
	}
	if offset < 0 {
		offset = 0
	}
	if s.cursor < offset {
		offset = s.cursor
	}
	for offset < length && s.cursor >= offset {
		rows := layoutRows(offset, length, height, rowHeight)
		last := offset
		if len(rows) > 0 {
			last = rows[len(rows)-1].Index
		}
		if s.cursor <= last {
			break
		}
		offset++
	}

	rows := layoutRows(offset, length, height, rowHeight)
	for len(rows) > 0 {
		total := 0
		for _, r := range rows {
			total += r.Height
		}
		if total <= height {
			break
		}
		if rows[0].Index == s.cursor {
			break
		}
		offset = rows[0].Index + 1
		rows = rows[1:]
	}

	s.view = View{Offset: offset, VisibleCount: len(rows)}
	return rows, s.view
}

// layoutRows lays out items starting at offset in order until the
// accumulated height would exceed height or the source is exhausted.
func layoutRows(offset, length, height int, rowHeight RowHeight) []Row {
	var rows []Row
	total := 0
	for i := offset; i < length; i++ {
		h := rowHeight(i)
		rows = append(rows, Row{Index: i, Height: h})
		total += h
		if total >= height {
			break
		}
	}
	return rows
}
