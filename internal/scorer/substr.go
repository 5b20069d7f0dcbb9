package scorer

import (
	"strings"

	"github.com/sweeptui/sweep/internal/posset"
)

// SubstrScorer splits the needle into space-separated words and requires
// each word to occur, in order, as an uninterrupted run of characters in
// the haystack (searched with Knuth-Morris-Pratt).
type SubstrScorer struct {
	needle string
	words  []kmpPattern
}

// NewSubstrScorer builds a SubstrScorer for needle, which must already be
// lower-cased by the caller (the ranker worker does this once per needle
// change, not per haystack item).
func NewSubstrScorer(needle []rune) *SubstrScorer {
	s := &SubstrScorer{needle: string(needle)}
	for _, word := range strings.FieldsFunc(string(needle), func(r rune) bool { return r == ' ' }) {
		s.words = append(s.words, newKMPPattern([]rune(word)))
	}
	return s
}

func (s *SubstrScorer) Name() string   { return "substr" }
func (s *SubstrScorer) Needle() string { return s.needle }

func (s *SubstrScorer) Score(haystack []rune, positions *posset.Set) (Score, bool) {
	positions.Clear()
	if len(s.words) == 0 {
		return MaxScore, true
	}

	var matchStart, matchEnd int
	for i, word := range s.words {
		rel := word.search(haystack[matchEnd:])
		if rel < 0 {
			return 0, false
		}
		matchEnd += rel
		if i == 0 {
			matchStart = matchEnd
		}
		wordStart := matchEnd
		matchEnd += word.Len()
		for j := wordStart; j < matchEnd; j++ {
			positions.Set(j)
		}
	}

	ms := float32(matchStart)
	me := float32(matchEnd)
	hl := float32(len(haystack))
	score := (ms - me) + (me-ms)/hl + 1/(ms+1) + 1/(hl-me+1)
	return Score(score), true
}
