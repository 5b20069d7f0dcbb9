package preview

import (
	"errors"

	"github.com/sweeptui/sweep/internal/candidate"
	"github.com/sweeptui/sweep/internal/theme"
	"github.com/sweeptui/sweep/tools/utils"
)

var errNoCommand = errors.New("preview: expanded template produced no command")

// recentGrids bounds how many past previews stay cached by candidate text:
// enough to cover a cursor wandering back and forth over recently viewed
// rows without respawning, without growing unbounded over a long session.
const recentGrids = 32

// Runner binds a parsed argv template to a Spawner, giving a plain
// candidate.Candidate a process-preview the way a CLI-configured
// "--preview-cmd" turns every matched item into a spawned child instead of
// the zero-value "no preview" a bare Candidate reports. Only the most
// recently requested candidate's child is ever running (Spawner
// kill-on-drop semantics); the cache below only avoids re-spawning for
// candidates already previewed, it does not keep old children alive.
type Runner struct {
	spawner *Spawner
	argv    []*Template
	cache   *utils.LRUCache[string, *Grid]
}

// NewRunner returns a Runner that spawns argv[0] with args argv[1:]
// expanded against whichever candidate is currently previewed. A nil or
// empty argv disables previewing: Preview always reports ok=false.
func NewRunner(argv []*Template) *Runner {
	return &Runner{spawner: NewSpawner(), argv: argv, cache: utils.NewLRUCache[string, *Grid](recentGrids)}
}

// Preview returns the running (or already-captured) Grid previewing c.
// Repeated calls for the same candidate (by its rendered text) return the
// cached Grid instead of respawning the child every tick.
func (r *Runner) Preview(c *candidate.Candidate) (candidate.PreviewLarge, bool) {
	if r == nil || len(r.argv) == 0 {
		return nil, false
	}
	grid, err := r.cache.GetOrCreate(c.String(), func(string) (*Grid, error) {
		args := ExpandArgs(r.argv, c)
		if len(args) == 0 || args[0] == "" {
			return nil, errNoCommand
		}
		return r.spawner.Spawn(args[0], args[1:])
	})
	if err != nil {
		return nil, false
	}
	return grid, true
}

// Stop kills whatever child is currently running.
func (r *Runner) Stop() {
	if r == nil {
		return
	}
	r.spawner.Kill()
}

// CandidatePreview adapts a *candidate.Candidate to source its large
// preview from a Runner instead of the always-absent preview a bare
// Candidate reports, without candidate needing any awareness of process
// spawning (avoiding an import cycle: preview already depends on
// candidate, not the other way around).
type CandidatePreview struct {
	*candidate.Candidate
	Runner *Runner
}

var _ candidate.Haystack = (*CandidatePreview)(nil)

func (c *CandidatePreview) PreviewLarge(positions []int, th *theme.Theme) (candidate.PreviewLarge, bool) {
	return c.Runner.Preview(c.Candidate)
}

// Unwrap returns the underlying candidate, letting callers that need the
// concrete type (e.g. the RPC binding's items_current/items_marked
// responses) see through the preview wrapper.
func (c *CandidatePreview) Unwrap() *candidate.Candidate { return c.Candidate }
