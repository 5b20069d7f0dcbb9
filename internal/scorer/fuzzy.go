package scorer

import (
	"math"
	"sync"

	"github.com/sweeptui/sweep/internal/posset"
)

const (
	scoreGapLeading       = -0.005
	scoreGapTrailing      = -0.005
	scoreGapInner         = -0.01
	scoreMatchConsecutive = 1.0
	scoreMatchSlash       = 0.9
	scoreMatchWord        = 0.8
	scoreMatchCapital     = 0.7
	scoreMatchDot         = 0.6
)

var negInf = float32(math.Inf(-1))

// scratchPool hands each concurrent scoreImpl call its own DP buffer and
// reuses buffers across calls.
var scratchPool = sync.Pool{New: func() any { return new([]float32) }}

// FuzzyScorer matches needle as an ordered sub-sequence of haystack and
// scores the match with a two-plane dynamic program that rewards runs of
// consecutive matches and matches that fall on word boundaries.
//
// The DP scratch buffer is not stored on the instance: the ranker calls one
// FuzzyScorer from several scoring goroutines at once, so each call takes a
// buffer from scratchPool and returns it when done.
type FuzzyScorer struct {
	needle    []rune
	needleStr string
}

func NewFuzzyScorer(needle []rune) *FuzzyScorer {
	return &FuzzyScorer{needle: needle, needleStr: string(needle)}
}

func (f *FuzzyScorer) Name() string   { return "fuzzy" }
func (f *FuzzyScorer) Needle() string { return f.needleStr }

func (f *FuzzyScorer) Score(haystack []rune, positions *posset.Set) (Score, bool) {
	positions.Clear()
	if !subseq(f.needle, haystack) {
		return 0, false
	}
	return f.scoreImpl(haystack, positions)
}

// subseq reports whether needle occurs, in order but not necessarily
// contiguously, within haystack.
func subseq(needle, haystack []rune) bool {
	if len(needle) == 0 {
		return true
	}
	n := 0
	for _, h := range haystack {
		if needle[n] == h {
			n++
			if n == len(needle) {
				return true
			}
		}
	}
	return false
}

// bonus computes the per-position character bonus for haystack: a reward
// for matches that fall right after a path separator, word separator,
// camelCase capital, or dot.
func bonus(haystack []rune, out []float32) {
	cPrev := '/'
	for i, c := range haystack {
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			switch cPrev {
			case '/':
				out[i] = scoreMatchSlash
			case '-', '_', ' ':
				out[i] = scoreMatchWord
			case '.':
				out[i] = scoreMatchDot
			default:
				out[i] = 0
			}
		case c >= 'A' && c <= 'Z':
			switch cPrev {
			case '/':
				out[i] = scoreMatchSlash
			case '-', '_', ' ':
				out[i] = scoreMatchWord
			case '.':
				out[i] = scoreMatchDot
			default:
				if cPrev >= 'a' && cPrev <= 'z' {
					out[i] = scoreMatchCapital
				} else {
					out[i] = 0
				}
			}
		default:
			out[i] = 0
		}
		cPrev = c
	}
}

// scoreMatrix is an nLen x hLen matrix of float32 backed by a flat slice.
type scoreMatrix struct {
	data  []float32
	width int
}

func (m scoreMatrix) get(row, col int) float32    { return m.data[row*m.width+col] }
func (m scoreMatrix) set(row, col int, v float32) { m.data[row*m.width+col] = v }

// scoreImpl runs the two-plane dynamic program. Called only once subseq
// has confirmed a match exists.
func (f *FuzzyScorer) scoreImpl(haystack []rune, positions *posset.Set) (Score, bool) {
	nLen := len(f.needle)
	hLen := len(haystack)

	if nLen == 0 || nLen == hLen {
		for i := 0; i < nLen; i++ {
			positions.Set(i)
		}
		return MaxScore, true
	}

	needed := nLen*hLen*2 + hLen
	buf := scratchPool.Get().(*[]float32)
	defer scratchPool.Put(buf)
	if cap(*buf) < needed {
		*buf = make([]float32, needed)
	}
	data := (*buf)[:needed]

	scoreBonus := data[:hLen]
	matrixData := data[hLen:]
	scoreEndsData := matrixData[:nLen*hLen]
	scoreBestData := matrixData[nLen*hLen:]
	bonus(haystack, scoreBonus)

	scoreEnds := scoreMatrix{data: scoreEndsData, width: hLen}
	scoreBest := scoreMatrix{data: scoreBestData, width: hLen}

	for i, nChar := range f.needle {
		scorePrev := negInf
		scoreGap := float32(scoreGapInner)
		if i == nLen-1 {
			scoreGap = scoreGapTrailing
		}
		for j, hChar := range haystack {
			if nChar == hChar {
				var score float32
				switch {
				case i == 0:
					score = float32(j)*scoreGapLeading + scoreBonus[j]
				case j != 0:
					best := scoreBest.get(i-1, j-1) + scoreBonus[j]
					ends := scoreEnds.get(i-1, j-1) + scoreMatchConsecutive
					score = max32(best, ends)
				default:
					score = negInf
				}
				scorePrev = max32(score, scorePrev+scoreGap)
				scoreEnds.set(i, j, score)
			} else {
				scorePrev += scoreGap
				scoreEnds.set(i, j, negInf)
			}
			scoreBest.set(i, j, scorePrev)
		}
	}

	matchRequired := false
	j := hLen
	for i := nLen - 1; i >= 0; i-- {
		for j > 0 {
			j--
			ends := scoreEnds.get(i, j)
			if (matchRequired || ends == scoreBest.get(i, j)) && ends != negInf {
				matchRequired = i > 0 && j > 0 &&
					scoreBest.get(i, j) == scoreEnds.get(i-1, j-1)+scoreMatchConsecutive
				positions.Set(j)
				break
			}
		}
	}

	return Score(scoreBest.get(nLen-1, hLen-1)), true
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
