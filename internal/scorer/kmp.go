package scorer

// kmpPattern is a Knuth-Morris-Pratt search pattern over runes, with its
// failure-function table precomputed once at construction.
type kmpPattern struct {
	needle []rune
	table  []int
}

func newKMPPattern(needle []rune) kmpPattern {
	if len(needle) == 0 {
		return kmpPattern{}
	}
	table := make([]int, len(needle))
	i := 0
	for j := 1; j < len(needle); j++ {
		for i > 0 && needle[i] != needle[j] {
			i = table[i-1]
		}
		if needle[i] == needle[j] {
			i++
		}
		table[j] = i
	}
	return kmpPattern{needle: needle, table: table}
}

func (p kmpPattern) Len() int { return len(p.needle) }

// search returns the start index of the first match of p within haystack,
// or -1 if the pattern does not occur.
func (p kmpPattern) search(haystack []rune) int {
	if len(p.needle) == 0 {
		return -1
	}
	nIndex := 0
	for hIndex, h := range haystack {
		for nIndex > 0 && p.needle[nIndex] != h {
			nIndex = p.table[nIndex-1]
		}
		if p.needle[nIndex] == h {
			nIndex++
		}
		if nIndex == len(p.needle) {
			return hIndex + 1 - nIndex
		}
	}
	return -1
}
