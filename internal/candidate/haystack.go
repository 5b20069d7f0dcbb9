package candidate

import "github.com/sweeptui/sweep/internal/theme"

// Row is the rendered view of one item in the list widget: the left-hand
// fields, the right-aligned fields, and the reserved column width the
// right-aligned side needs. It carries no match positions. This stands in for
// the out-of-scope view/layout toolkit's richer Flex/Text tree: enough
// structure for a list renderer to paint a row without depending on any
// particular terminal drawing backend.
type Row struct {
	Fields      []Field
	RightFields []Field
	RightWidth  int
}

// Preview is a small, in-row preview alongside a matched item, with a flex
// weight controlling how much horizontal space it claims relative to other
// flexible content on the same row.
type Preview struct {
	Lines      []string
	FlexWeight float64
}

// PreviewLarge is a full-width, scrollable preview of the current item,
// shown in a split region beside or below the main list.
type PreviewLarge interface {
	// Lines returns the rendered lines visible at the given row/column
	// scroll offset for a viewport of the given size.
	Lines(rowOffset, colOffset, width, height int) []string
	// Size reports the full (unscrolled) content size.
	Size() (width, height int)
}

// Haystack is the interface Candidate implements and the interface the
// ranker, list widget and preview pane consume: expose searchable
// characters once, render a row, and optionally offer previews.
type Haystack interface {
	// Chars returns every searchable (active-field), already-lowercased
	// character, in order, exactly once.
	Chars() []rune
	// View renders this item's list row from its fields; Candidate's View
	// ignores positions, so the row does not mark the matched characters.
	View(positions []int, th *theme.Theme) Row
	// Preview optionally renders a small in-row preview; ok is false if
	// this item has none.
	Preview(positions []int, th *theme.Theme) (p Preview, ok bool)
	// PreviewLarge optionally renders a full-width scrollable preview;
	// ok is false if this item has none.
	PreviewLarge(positions []int, th *theme.Theme) (p PreviewLarge, ok bool)
}

var _ Haystack = (*Candidate)(nil)

func (c *Candidate) View(positions []int, th *theme.Theme) Row {
	highlighted := make([]Field, len(c.Fields))
	copy(highlighted, c.Fields)
	return Row{Fields: highlighted, RightFields: c.RightFields, RightWidth: rightWidth(c.RightFields)}
}

func (c *Candidate) Preview(positions []int, th *theme.Theme) (Preview, bool) {
	return Preview{}, false
}

func (c *Candidate) PreviewLarge(positions []int, th *theme.Theme) (PreviewLarge, bool) {
	return nil, false
}

func rightWidth(fields []Field) int {
	width := 0
	for _, f := range fields {
		if l := len([]rune(f.Text)); l > width {
			width = l
		}
	}
	return width
}
