package preview

import (
	"bufio"
	"strings"
	"sync"

	"github.com/sweeptui/sweep/internal/candidate"
	"github.com/sweeptui/sweep/tools/wcswidth"
)

// Grid is an in-memory cell grid fed by a running (or finished) preview
// child's combined stdout/stderr, implementing candidate.PreviewLarge so
// the controller can scroll it like any other large preview.
type Grid struct {
	mu      sync.RWMutex
	lines   []string
	width   int
	running bool
}

var _ candidate.PreviewLarge = (*Grid)(nil)

// NewGrid returns an empty grid.
func NewGrid() *Grid { return &Grid{running: true} }

// Feed appends output read from r, line by line, until r is exhausted;
// Stop does not interrupt it.
func (g *Grid) Feed(r interface {
	Read([]byte) (int, error)
}) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		g.mu.Lock()
		g.lines = append(g.lines, line)
		if w := wcswidth.Stringwidth(line); w > g.width {
			g.width = w
		}
		g.mu.Unlock()
	}
}

// Stop marks the grid as no longer receiving output (the child exited or
// was killed).
func (g *Grid) Stop() {
	g.mu.Lock()
	g.running = false
	g.mu.Unlock()
}

// Running reports whether the backing child process is still writing.
func (g *Grid) Running() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.running
}

// Lines implements candidate.PreviewLarge: returns the visible window at
// the given scroll offset.
func (g *Grid) Lines(rowOffset, colOffset, width, height int) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if rowOffset < 0 {
		rowOffset = 0
	}
	end := rowOffset + height
	if end > len(g.lines) {
		end = len(g.lines)
	}
	if rowOffset > end {
		rowOffset = end
	}
	out := make([]string, 0, end-rowOffset)
	for _, line := range g.lines[rowOffset:end] {
		out = append(out, sliceByCellWindow(line, colOffset, width))
	}
	return out
}

// sliceByCellWindow returns the substring of line spanning terminal cells
// [colOffset, colOffset+width), accounting for wide (e.g. CJK) runes and
// embedded escape sequences the way a real terminal would, rather than
// slicing by rune count.
func sliceByCellWindow(line string, colOffset, width int) string {
	prefix, _ := wcswidth.TruncateToVisualLengthWithWidth(line, colOffset)
	rest := line[len(prefix):]
	if width <= 0 {
		return rest
	}
	visible, _ := wcswidth.TruncateToVisualLengthWithWidth(rest, width)
	return visible
}

// Size implements candidate.PreviewLarge.
func (g *Grid) Size() (width, height int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.width, len(g.lines)
}

// String returns the full captured output, for diagnostics.
func (g *Grid) String() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return strings.Join(g.lines, "\n")
}
