// Package input implements the query input line: a cursor-managed text
// buffer with char- and word-granularity motion and deletion, built from
// two rune slices used as stacks straddling the cursor.
package input

import (
	"unicode"

	"github.com/sweeptui/sweep/tools/wcswidth"
)

// Buffer is a text buffer split at the cursor into two stacks: before holds
// characters to the left of the cursor in order, after holds characters to
// the right in reverse order (so both grow/shrink from their tail).
type Buffer struct {
	before []rune
	after  []rune
	offset int
}

// New returns an empty buffer.
func New() *Buffer { return &Buffer{} }

// NewWithText returns a buffer pre-filled with text, cursor at the end.
func NewWithText(text string) *Buffer {
	b := &Buffer{before: []rune(text)}
	return b
}

// Insert pushes c onto before, i.e. types c at the cursor.
func (b *Buffer) Insert(c rune) {
	b.before = append(b.before, c)
}

// InsertString inserts each rune of s at the cursor in order.
func (b *Buffer) InsertString(s string) {
	for _, c := range s {
		b.Insert(c)
	}
}

// CursorForward moves the cursor one character right.
func (b *Buffer) CursorForward() {
	if n := len(b.after); n > 0 {
		b.before = append(b.before, b.after[n-1])
		b.after = b.after[:n-1]
	}
}

// CursorBackward moves the cursor one character left.
func (b *Buffer) CursorBackward() {
	if n := len(b.before); n > 0 {
		b.after = append(b.after, b.before[n-1])
		b.before = b.before[:n-1]
	}
}

// CursorStart moves the cursor to the beginning of the buffer.
func (b *Buffer) CursorStart() {
	for len(b.before) > 0 {
		b.CursorBackward()
	}
}

// CursorEnd moves the cursor to the end of the buffer.
func (b *Buffer) CursorEnd() {
	for len(b.after) > 0 {
		b.CursorForward()
	}
}

// isWordSeparator reports whether c is a word separator: ASCII punctuation
// or ASCII whitespace.
func isWordSeparator(c rune) bool {
	return c < 128 && (unicode.IsPunct(c) || unicode.IsSpace(c))
}

// CursorNextWord skips the run of word-separators then the run of
// non-separators ahead of the cursor, moving those characters from after
// to before.
func (b *Buffer) CursorNextWord() {
	for n := len(b.after); n > 0 && isWordSeparator(b.after[n-1]); n = len(b.after) {
		b.CursorForward()
	}
	for n := len(b.after); n > 0 && !isWordSeparator(b.after[n-1]); n = len(b.after) {
		b.CursorForward()
	}
}

// CursorPrevWord is the symmetric motion from before to after.
func (b *Buffer) CursorPrevWord() {
	for n := len(b.before); n > 0 && isWordSeparator(b.before[n-1]); n = len(b.before) {
		b.CursorBackward()
	}
	for n := len(b.before); n > 0 && !isWordSeparator(b.before[n-1]); n = len(b.before) {
		b.CursorBackward()
	}
}

// DeleteBackward removes the character immediately before the cursor.
func (b *Buffer) DeleteBackward() {
	if n := len(b.before); n > 0 {
		b.before = b.before[:n-1]
	}
}

// DeleteForward removes the character immediately after the cursor.
func (b *Buffer) DeleteForward() {
	if n := len(b.after); n > 0 {
		b.after = b.after[:n-1]
	}
}

// DeleteEnd removes everything from the cursor to the end of the buffer.
func (b *Buffer) DeleteEnd() {
	b.after = b.after[:0]
}

// Len returns the total number of characters in the buffer.
func (b *Buffer) Len() int { return len(b.before) + len(b.after) }

// CursorIndex returns the cursor's character offset from the start.
func (b *Buffer) CursorIndex() int { return len(b.before) }

// String returns the full buffer contents as a string.
func (b *Buffer) String() string {
	out := make([]rune, 0, b.Len())
	out = append(out, b.before...)
	for i := len(b.after) - 1; i >= 0; i-- {
		out = append(out, b.after[i])
	}
	return string(out)
}

// cellWidth sums the terminal column width of each rune in rs using
// wcswidth.Runewidth, so combining marks (width 0) and wide CJK runes
// (width 2) are accounted for rather than each counted as one column.
func cellWidth(rs []rune) int {
	w := 0
	for _, r := range rs {
		w += wcswidth.Runewidth(r)
	}
	return w
}

// Layout clamps and returns the horizontal scroll offset (a rune index
// into the buffer) for a viewport of the given cell width so the cursor is
// always visible: the offset is kept in [0, len(before)] and advanced the
// minimum number of runes needed so the cell width from offset to the
// cursor fits within width, accounting for combining marks and wide runes
// rather than assuming one column per rune.
func (b *Buffer) Layout(width int) int {
	cursor := len(b.before)
	if b.offset > cursor {
		b.offset = cursor
	}
	if b.offset < 0 {
		b.offset = 0
	}
	if width > 0 {
		for cursor > b.offset && cellWidth(b.before[b.offset:cursor]) >= width {
			b.offset++
		}
	}
	return b.offset
}

// Visible returns the characters visible in a viewport of the given cell
// width at the buffer's current scroll offset, plus the cursor's column
// (in cells, not runes) within that viewport.
func (b *Buffer) Visible(width int) (visible []rune, cursorCol int) {
	offset := b.Layout(width)
	full := make([]rune, 0, b.Len())
	full = append(full, b.before...)
	for i := len(b.after) - 1; i >= 0; i-- {
		full = append(full, b.after[i])
	}
	end := offset
	if width <= 0 {
		end = len(full)
	} else {
		w := 0
		for end < len(full) {
			cw := wcswidth.Runewidth(full[end])
			if w+cw > width {
				break
			}
			w += cw
			end++
		}
	}
	if offset > end {
		offset = end
	}
	return full[offset:end], cellWidth(full[offset:len(b.before)])
}
