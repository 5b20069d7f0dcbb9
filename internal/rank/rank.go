// Package rank implements the asynchronous ranker worker: a single
// goroutine that consumes incremental haystack and query mutations,
// decides the minimum amount of re-scoring required, scores in parallel,
// and publishes an immutable snapshot for readers. Each round allocates
// its own matches slice rather than pooling them (see DESIGN.md).
package rank

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sweeptui/sweep/internal/candidate"
	"github.com/sweeptui/sweep/internal/posset"
	"github.com/sweeptui/sweep/internal/scorer"
	"github.com/sweeptui/sweep/tools/utils"
)

// match is one haystack item's scoring state across rounds; score is
// unmatched when matched is false (mirrors Option<Score> in the original).
type match struct {
	matched       bool
	score         scorer.Score
	positions     posset.Set
	haystackIndex int
}

func newMatch(haystackIndex int) match {
	return match{haystackIndex: haystackIndex}
}

// RankedItemID identifies a ranked item stably across snapshots until the
// haystack is cleared, at which point HaystackGen increments.
type RankedItemID struct {
	HaystackGen   int
	HaystackIndex int
}

// RankedItem is one scored match: its score, the haystack positions that
// matched, and its stable id.
type RankedItem struct {
	Score     scorer.Score
	Positions posset.Set
	ID        RankedItemID
}

// RankedItems is an immutable snapshot of the most recent ranking round.
type RankedItems struct {
	haystackGen int
	matches     []match
	scorerUsed  scorer.Scorer
	duration    time.Duration
	rankGen     int
}

func (r *RankedItems) Len() int      { return len(r.matches) }
func (r *RankedItems) IsEmpty() bool { return len(r.matches) == 0 }

// Scorer returns the scorer instance that produced this snapshot.
func (r *RankedItems) Scorer() scorer.Scorer { return r.scorerUsed }

// Duration reports how long this round's scoring and sorting took.
func (r *RankedItems) Duration() time.Duration { return r.duration }

// Generation is the monotonically increasing snapshot generation number.
func (r *RankedItems) Generation() int { return r.rankGen }

// HaystackGeneration is the haystack's generation at the time this
// snapshot was produced, bumped on every HaystackClear; a cursor anchor
// from an older haystack generation must never be trusted to still name
// the same underlying item.
func (r *RankedItems) HaystackGeneration() int { return r.haystackGen }

// Get returns the ranked item at match index.
func (r *RankedItems) Get(index int) (RankedItem, bool) {
	if index < 0 || index >= len(r.matches) {
		return RankedItem{}, false
	}
	m := r.matches[index]
	score := m.score
	if !m.matched {
		score = scorer.MinScore
	}
	return RankedItem{
		Score:     score,
		Positions: m.positions,
		ID:        RankedItemID{HaystackGen: r.haystackGen, HaystackIndex: m.haystackIndex},
	}, true
}

// HaystackIndex returns the haystack index of the match at match index.
func (r *RankedItems) HaystackIndex(index int) (int, bool) {
	if index < 0 || index >= len(r.matches) {
		return 0, false
	}
	return r.matches[index].haystackIndex, true
}

// FindMatchIndex returns the match index whose haystack index is
// haystackIndex, used by the controller to re-anchor the cursor across
// snapshots.
func (r *RankedItems) FindMatchIndex(haystackIndex int) (int, bool) {
	for i, m := range r.matches {
		if m.haystackIndex == haystackIndex {
			return i, true
		}
	}
	return 0, false
}

// All returns every ranked item, in match order.
func (r *RankedItems) All() []RankedItem {
	items := make([]RankedItem, 0, len(r.matches))
	for i := range r.matches {
		item, _ := r.Get(i)
		items = append(items, item)
	}
	return items
}

type rankAction int

const (
	actionNothing rankAction = iota
	actionNotify
	actionOffset
	actionCurrentMatch
	actionAll
)

type rankerCmd struct {
	kind          cmdKind
	needle        string
	builder       scorer.Builder
	appendItems   []candidate.Haystack
	keepOrderSet  bool
	keepOrderVal  bool
	syncFlag      *atomic.Bool
}

type cmdKind int

const (
	cmdHaystackClear cmdKind = iota
	cmdHaystackAppend
	cmdNeedle
	cmdScorer
	cmdKeepOrder
	cmdSync
)

// Ranker owns the haystack and drives the background scoring worker.
type Ranker struct {
	cmdCh  chan rankerCmd
	closed chan struct{}
	once   sync.Once

	resultMu sync.Mutex
	result   *RankedItems

	haystackMu sync.RWMutex
	haystack   []candidate.Haystack
}

// NewRanker starts the ranker worker goroutine. notify is called on the
// worker goroutine after each snapshot publication (including Notify-only
// rounds); it should be cheap and non-blocking (typically: wake the
// terminal render loop). Returning false from notify stops the worker.
func NewRanker(notify func(*RankedItems) bool) *Ranker {
	r := &Ranker{
		cmdCh:  make(chan rankerCmd, 64),
		closed: make(chan struct{}),
		result: &RankedItems{scorerUsed: scorer.Builders["fuzzy"](nil)},
	}
	go r.run(notify)
	return r
}

// HaystackExtend appends items to the haystack.
func (r *Ranker) HaystackExtend(items []candidate.Haystack) {
	r.send(rankerCmd{kind: cmdHaystackAppend, appendItems: items})
}

// HaystackClear empties the haystack and bumps its generation.
func (r *Ranker) HaystackClear() {
	r.send(rankerCmd{kind: cmdHaystackClear})
}

// NeedleSet replaces the current query needle.
func (r *Ranker) NeedleSet(needle string) {
	r.send(rankerCmd{kind: cmdNeedle, needle: needle})
}

// ScorerSet installs a new scorer builder, forcing a full re-rank.
func (r *Ranker) ScorerSet(builder scorer.Builder) {
	r.send(rankerCmd{kind: cmdScorer, builder: builder})
}

// KeepOrder sets (or, if toggle is nil, flips) whether matches keep
// haystack order instead of being sorted by score.
func (r *Ranker) KeepOrder(toggle *bool) {
	cmd := rankerCmd{kind: cmdKeepOrder}
	if toggle != nil {
		cmd.keepOrderSet = true
		cmd.keepOrderVal = *toggle
	}
	r.send(cmd)
}

// Sync returns a flag that latches true once every command submitted
// before this call has been applied and published.
func (r *Ranker) Sync() *atomic.Bool {
	synced := &atomic.Bool{}
	r.send(rankerCmd{kind: cmdSync, syncFlag: synced})
	return synced
}

// Result returns the most recently published snapshot.
func (r *Ranker) Result() *RankedItems {
	r.resultMu.Lock()
	defer r.resultMu.Unlock()
	return r.result
}

// HaystackItem reads the haystack item at index under the read lock, for
// callers (e.g. the preview pane) that need direct access by haystack
// index rather than by match index.
func (r *Ranker) HaystackItem(index int) (candidate.Haystack, bool) {
	r.haystackMu.RLock()
	defer r.haystackMu.RUnlock()
	if index < 0 || index >= len(r.haystack) {
		return nil, false
	}
	return r.haystack[index], true
}

// HaystackLen reads the total number of haystack items under the read
// lock, regardless of how many currently match the needle.
func (r *Ranker) HaystackLen() int {
	r.haystackMu.RLock()
	defer r.haystackMu.RUnlock()
	return len(r.haystack)
}

// Terminate closes the command channel; the worker exits on its next recv.
func (r *Ranker) Terminate() {
	r.once.Do(func() { close(r.cmdCh) })
}

func (r *Ranker) send(cmd rankerCmd) {
	select {
	case r.cmdCh <- cmd:
	case <-r.closed:
	}
}

func (r *Ranker) run(notify func(*RankedItems) bool) {
	defer close(r.closed)

	var needle string
	var keepOrder bool
	builder := scorer.Builders["fuzzy"]
	currentScorer := builder(nil)

	haystackGen := 0
	rankGen := 0
	var prevMatches []match
	var synced []*atomic.Bool

	for {
		first, ok := <-r.cmdCh
		if !ok {
			return
		}
		action := actionNothing
		pending := []rankerCmd{first}
	drain:
		for {
			select {
			case cmd, ok := <-r.cmdCh:
				if !ok {
					break drain
				}
				pending = append(pending, cmd)
			default:
				break drain
			}
		}

		r.haystackMu.Lock()
		for _, cmd := range pending {
			switch cmd.kind {
			case cmdNeedle:
				switch {
				case action == actionNothing && cmd.needle == needle:
					// no-op: stays DoNothing
				case (action == actionNothing || action == actionCurrentMatch) &&
					strings.HasPrefix(cmd.needle, needle):
					action = actionCurrentMatch
				default:
					action = actionAll
				}
				needle = cmd.needle
				currentScorer = builder([]rune(strings.ToLower(needle)))
			case cmdScorer:
				action = actionAll
				builder = cmd.builder
				currentScorer = builder([]rune(strings.ToLower(needle)))
			case cmdHaystackAppend:
				switch action {
				case actionNothing:
					action = actionOffset
				case actionOffset:
					// stays Offset; offset computed below from len before append
				default:
					action = actionAll
				}
				r.haystack = append(r.haystack, cmd.appendItems...)
			case cmdHaystackClear:
				action = actionAll
				haystackGen++
				r.haystack = nil
			case cmdKeepOrder:
				action = actionAll
				if cmd.keepOrderSet {
					keepOrder = cmd.keepOrderVal
				} else {
					keepOrder = !keepOrder
				}
			case cmdSync:
				if action == actionNothing {
					action = actionNotify
				}
				synced = append(synced, cmd.syncFlag)
			}
		}
		haystack := r.haystack
		r.haystackMu.Unlock()

		if action == actionNothing {
			continue
		}

		start := time.Now()
		var matches []match
		switch action {
		case actionNotify:
			matches = prevMatches
		case actionOffset:
			offset := len(haystack) - offsetAppendCount(pending)
			if offset < 0 {
				offset = 0
			}
			fresh := make([]match, 0, len(haystack)-offset)
			for i := offset; i < len(haystack); i++ {
				fresh = append(fresh, newMatch(i))
			}
			scoreMatches(currentScorer, haystack, fresh)
			fresh = filterMatched(fresh)
			matches = make([]match, 0, len(fresh)+len(prevMatches))
			matches = append(matches, prevMatches...)
			matches = append(matches, fresh...)
			if !keepOrder {
				sortMatches(matches)
			}
		case actionCurrentMatch:
			matches = make([]match, len(prevMatches))
			copy(matches, prevMatches)
			scoreMatches(currentScorer, haystack, matches)
			matches = filterMatched(matches)
			if !keepOrder {
				sortMatches(matches)
			}
		case actionAll:
			matches = make([]match, len(haystack))
			for i := range matches {
				matches[i] = newMatch(i)
			}
			scoreMatches(currentScorer, haystack, matches)
			matches = filterMatched(matches)
			if !keepOrder {
				sortMatches(matches)
			}
		}
		elapsed := time.Since(start)
		prevMatches = matches

		rankGen++
		snapshot := &RankedItems{
			haystackGen: haystackGen,
			matches:     matches,
			scorerUsed:  currentScorer,
			duration:    elapsed,
			rankGen:     rankGen,
		}
		r.resultMu.Lock()
		r.result = snapshot
		r.resultMu.Unlock()

		for _, s := range synced {
			s.Store(true)
		}
		synced = synced[:0]

		if !notify(snapshot) {
			return
		}
	}
}

// offsetAppendCount sums the length of every HaystackAppend command folded
// into this round, recovering the pre-append haystack length so Offset
// scoring starts exactly at the first newly-appended item.
func offsetAppendCount(pending []rankerCmd) int {
	n := 0
	for _, cmd := range pending {
		if cmd.kind == cmdHaystackAppend {
			n += len(cmd.appendItems)
		}
	}
	return n
}

// scoreMatches scores every match in place against haystack using s,
// splitting the work across a worker pool via the same parallel-range
// helper the rest of this codebase's data-parallel work uses.
func scoreMatches(s scorer.Scorer, haystack []candidate.Haystack, matches []match) {
	utils.Run_in_parallel_over_range(0, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			m := &matches[i]
			chars := haystack[m.haystackIndex].Chars()
			var positions posset.Set
			score, ok := s.Score(chars, &positions)
			if ok {
				m.matched = true
				m.score = score
				m.positions = positions
			} else {
				m.matched = false
			}
		}
		return nil
	}, 0, len(matches))
}

func filterMatched(matches []match) []match {
	kept := matches[:0]
	for _, m := range matches {
		if m.matched {
			kept = append(kept, m)
		}
	}
	return kept
}

func sortMatches(matches []match) {
	utils.Sort(matches, func(a, b match) int {
		// descending: higher score first
		return -scorer.Compare(a.score, b.score)
	})
}
