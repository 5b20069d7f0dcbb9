package controller

import (
	"github.com/sweeptui/sweep/internal/keymap"
	"github.com/sweeptui/sweep/internal/rank"
	"github.com/sweeptui/sweep/internal/scorer"
	"github.com/sweeptui/sweep/internal/theme"
	"github.com/sweeptui/sweep/internal/widgets/input"
	"github.com/sweeptui/sweep/internal/widgets/list"
)

// marks is the multi-select mark table: an ordered set of ranked-item ids,
// preserving insertion order for Select-with-marks.
type marks struct {
	order []rank.RankedItemID
	set   map[rank.RankedItemID]bool
}

func newMarks() *marks {
	return &marks{set: make(map[rank.RankedItemID]bool)}
}

func (m *marks) Has(id rank.RankedItemID) bool { return m.set[id] }

func (m *marks) Toggle(id rank.RankedItemID) {
	if m.set[id] {
		delete(m.set, id)
		for i, existing := range m.order {
			if existing == id {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
		return
	}
	m.set[id] = true
	m.order = append(m.order, id)
}

func (m *marks) Clear() {
	m.order = m.order[:0]
	for k := range m.set {
		delete(m.set, k)
	}
}

func (m *marks) Len() int { return len(m.order) }

// helpEntry is one row of a help overlay: a chord and the action it fires.
type helpEntry struct {
	Chord  []keymap.Key
	Action Action
}

// Frame is one entry in the controller's state stack: everything mutated
// on the render thread in response to events or dequeued requests.
type Frame struct {
	Input *input.Buffer
	Prompt string
	Icon   string

	Theme *theme.Theme

	Footer string

	scorerRing []string
	scorerIdx  int

	KeyMap          *keymap.Map[Action]
	ChordState      keymap.State
	BackspaceTag    string
	HasBackspaceTag bool

	List  list.State
	Marks *marks

	Ranker     *rank.Ranker
	LastGen    int
	LastAnchor rank.RankedItemID
	HasAnchor  bool

	LargePreviewOpen  bool
	PreviewLineOffset int

	// HelpEntries is non-nil only for a help overlay frame, built by
	// HelpFrame; its Select action dispatches the chosen entry back onto
	// the frame beneath it instead of emitting a Select event.
	HelpEntries []helpEntry
	helpCursor  int
}

// NewFrame builds the root frame: a fresh input buffer, the given theme,
// ranker handle and key map, with the default two-scorer ring.
func NewFrame(th *theme.Theme, ranker *rank.Ranker, km *keymap.Map[Action]) *Frame {
	return &Frame{
		Input:      input.New(),
		Theme:      th,
		scorerRing: []string{"fuzzy", "substr"},
		KeyMap:     km,
		Marks:      newMarks(),
		Ranker:     ranker,
	}
}

// CurrentScorerName returns the scorer ring's current entry.
func (f *Frame) CurrentScorerName() string {
	if len(f.scorerRing) == 0 {
		return "fuzzy"
	}
	return f.scorerRing[f.scorerIdx]
}

// ScorerNext rotates the scorer ring and installs the new scorer on the
// ranker.
func (f *Frame) ScorerNext() {
	if len(f.scorerRing) == 0 {
		return
	}
	f.scorerIdx = (f.scorerIdx + 1) % len(f.scorerRing)
	f.Ranker.ScorerSet(scorer.Builders[f.CurrentScorerName()])
}

// HelpFrame builds an overlay frame listing every (chord, action) binding
// in parent's key map.
func HelpFrame(parent *Frame) *Frame {
	var entries []helpEntry
	parent.KeyMap.ForEach(func(chord []keymap.Key, action Action) {
		entries = append(entries, helpEntry{Chord: chord, Action: action})
	})
	return &Frame{
		Input:       input.New(),
		Theme:       parent.Theme,
		Prompt:      "help",
		KeyMap:      parent.KeyMap,
		Marks:       newMarks(),
		Ranker:      parent.Ranker,
		HelpEntries: entries,
	}
}
