package candidate

import (
	"strings"
)

// Candidate is an immutable, shareable record scored and rendered by the
// ranker and list widget: an ordered sequence of Fields (only Active ones
// feed scoring), an optional secondary sequence of right-aligned fields,
// and a free-form attribute map carried through to the caller unchanged.
type Candidate struct {
	Fields      []Field
	RightFields []Field
	Extra       map[string]any
	chars       []rune
}

// New builds a Candidate from line split on delimiter, activating the
// fields selector chooses (or every field, if selector is nil).
func New(line string, delimiter rune, selector *FieldSelector) *Candidate {
	parts := splitInclusive(delimiter, line)
	fields := make([]Field, len(parts))
	for i, p := range parts {
		fields[i] = Field{Text: p, Active: selector.Matches(i, len(parts))}
	}
	return newFromFields(fields, nil, nil)
}

func newFromFields(fields, rightFields []Field, extra map[string]any) *Candidate {
	c := &Candidate{Fields: fields, RightFields: rightFields, Extra: extra}
	for _, f := range fields {
		if f.Active {
			c.chars = append(c.chars, []rune(strings.ToLower(f.Text))...)
		}
	}
	return c
}

// NewFromFields builds a Candidate directly from already-constructed
// fields, as used by the RPC binding's items_extend/item_update handlers
// where a peer supplies fully-formed field records rather than a raw line.
func NewFromFields(fields, rightFields []Field, extra map[string]any) *Candidate {
	return newFromFields(fields, rightFields, extra)
}

// Chars implements the character stream the scorer and ranker consume:
// every searchable (active-field) character, already lower-cased, in
// order, each exactly once.
func (c *Candidate) Chars() []rune { return c.chars }

// String renders the candidate the way a plain-text caller would see it:
// every field's text concatenated in order, with active and inactive
// fields both included (mirroring the original's Display impl, which does
// not distinguish Ok/Err fields when printing). Fields after the first
// already carry their leading delimiter from splitInclusive, so no
// separator is re-inserted here.
func (c *Candidate) String() string {
	var b strings.Builder
	for _, f := range c.Fields {
		b.WriteString(f.Text)
	}
	return b.String()
}

// splitInclusive splits s on sep, gluing each separator to the start of the
// following chunk and collapsing runs of adjacent separators into one.
func splitInclusive(sep rune, s string) []string {
	if s == "" {
		return []string{""}
	}
	var chunks []string
	var b strings.Builder
	prev := sep
	for _, r := range s {
		if r == sep && prev == sep {
			b.WriteRune(r)
			prev = r
			continue
		}
		if r == sep {
			chunks = append(chunks, b.String())
			b.Reset()
		}
		b.WriteRune(r)
		prev = r
	}
	chunks = append(chunks, b.String())
	return chunks
}
