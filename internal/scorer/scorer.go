package scorer

import "github.com/sweeptui/sweep/internal/posset"

// Scorer scores a lowercased char haystack against the needle it was built
// with, reporting a match score and the haystack positions that matched.
type Scorer interface {
	// Name identifies the scorer, e.g. for display or for choosing a
	// scorer by CLI flag ("fuzzy", "substr").
	Name() string
	// Needle returns the (lower-cased) needle this scorer matches against.
	Needle() string
	// Score scores haystack (already lower-cased), writing matched
	// positions into positions (which Score clears first) and returning
	// whether haystack matched at all.
	Score(haystack []rune, positions *posset.Set) (score Score, matched bool)
}

// Builder constructs a fresh Scorer for a given needle. The ranker worker
// holds a Builder and re-instantiates the Scorer whenever the needle or the
// builder itself changes.
type Builder func(needle []rune) Scorer

// Builders indexed by the CLI-facing scorer name.
var Builders = map[string]Builder{
	"fuzzy":  func(needle []rune) Scorer { return NewFuzzyScorer(needle) },
	"substr": func(needle []rune) Scorer { return NewSubstrScorer(needle) },
}
