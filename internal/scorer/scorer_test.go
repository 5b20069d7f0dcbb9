package scorer

import (
	"math"
	"testing"

	"github.com/sweeptui/sweep/internal/posset"
)

func TestKMPTable(t *testing.T) {
	cases := []struct {
		pattern string
		table   []int
	}{
		{"acat", []int{0, 0, 1, 0}},
		{"acacagt", []int{0, 0, 1, 2, 3, 0, 0}},
		{"abcabcd", []int{0, 0, 0, 1, 2, 3, 0}},
	}
	for _, c := range cases {
		p := newKMPPattern([]rune(c.pattern))
		if len(p.table) != len(c.table) {
			t.Fatalf("%q: got table %v want %v", c.pattern, p.table, c.table)
		}
		for i := range c.table {
			if p.table[i] != c.table[i] {
				t.Fatalf("%q: got table %v want %v", c.pattern, p.table, c.table)
			}
		}
	}
}

func TestKMPSearch(t *testing.T) {
	p := newKMPPattern([]rune("abcdabd"))
	got := p.search([]rune("abcabcdababcdabcdabde"))
	if got != 13 {
		t.Fatalf("got %d want 13", got)
	}
}

func TestSubseq(t *testing.T) {
	one := []rune("one")
	if !subseq(one, []rune("on/e")) {
		t.Fatalf("expected subseq match")
	}
	if !subseq(one, []rune("w o ne")) {
		t.Fatalf("expected subseq match")
	}
	if subseq(one, []rune("net")) {
		t.Fatalf("unexpected subseq match")
	}
	if !subseq(nil, []rune("one")) {
		t.Fatalf("empty needle should always match")
	}
}

func TestFuzzyScorerExample(t *testing.T) {
	needle := []rune("one")
	haystack := []rune(" on/e two")
	s := NewFuzzyScorer(needle)
	var positions posset.Set
	score, ok := s.Score(haystack, &positions)
	if !ok {
		t.Fatalf("expected match")
	}
	want := []int{1, 2, 4}
	got := positions.Items(len(haystack))
	if len(got) != len(want) {
		t.Fatalf("got positions %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got positions %v want %v", got, want)
		}
	}
	if math.Abs(float64(score)-2.665) > 0.001 {
		t.Fatalf("got score %v want ~2.665", score)
	}
}

func TestFuzzyScorerNoMatch(t *testing.T) {
	s := NewFuzzyScorer([]rune("xyz"))
	var positions posset.Set
	_, ok := s.Score([]rune("abc"), &positions)
	if ok {
		t.Fatalf("expected no match")
	}
}

func TestFuzzyScorerFullMatch(t *testing.T) {
	s := NewFuzzyScorer([]rune("abc"))
	var positions posset.Set
	score, ok := s.Score([]rune("abc"), &positions)
	if !ok || score != MaxScore {
		t.Fatalf("expected full match with max score, got %v %v", score, ok)
	}
	for i := 0; i < 3; i++ {
		if !positions.Get(i) {
			t.Fatalf("position %d not set in full match", i)
		}
	}
}

func TestFuzzyScorerEmptyNeedle(t *testing.T) {
	s := NewFuzzyScorer(nil)
	var positions posset.Set
	score, ok := s.Score([]rune("anything"), &positions)
	if !ok || score != MaxScore {
		t.Fatalf("empty needle should always match with max score")
	}
}

func TestSubstrScorerWordOrder(t *testing.T) {
	s := NewSubstrScorer([]rune("foo bar"))
	var positions posset.Set
	_, ok := s.Score([]rune("xx foo yy bar zz"), &positions)
	if !ok {
		t.Fatalf("expected match")
	}
	_, ok = s.Score([]rune("bar foo"), &positions)
	if ok {
		t.Fatalf("words must be found in order")
	}
}

func TestSubstrScorerEmptyNeedle(t *testing.T) {
	s := NewSubstrScorer(nil)
	var positions posset.Set
	score, ok := s.Score([]rune("anything"), &positions)
	if !ok || score != MaxScore {
		t.Fatalf("empty needle should always match with max score")
	}
}

func TestScoreTotalOrder(t *testing.T) {
	if !Less(MinScore, MaxScore) {
		t.Fatalf("MinScore should sort before MaxScore")
	}
	negZero := Score(float32(math.Copysign(0, -1)))
	posZero := Score(0)
	if !Less(negZero, posZero) {
		t.Fatalf("-0 should sort before +0 under total order")
	}
	if Compare(Score(1), Score(2)) >= 0 {
		t.Fatalf("Compare(1,2) should be negative")
	}
}
