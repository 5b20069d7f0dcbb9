// Package preview implements the process preview companion: spawning a
// child process whose argv is built from a user template referencing the
// selected candidate's fields, and capturing its output into a cell grid
// the list widget can render as a scrollable preview panel.
package preview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sweeptui/sweep/internal/candidate"
)

// Template is a single preview command-line argument, either a literal
// string or a field-substitution placeholder.
type Template struct {
	parts []templatePart
}

type templatePart struct {
	literal string
	isField bool
	field   fieldRef
}

// fieldRef selects a single field (n), a range (n..m), or every field ({}).
type fieldRef struct {
	all      bool
	from, to int
	hasFrom  bool
	hasTo    bool
}

// ParseTemplate splits a template string like `less {n..m}` into literal
// and field-placeholder parts. Placeholders are `{}` (whole item), `{n}`
// (field n) or `{n..m}` (fields n through m-1).
func ParseTemplate(s string) (*Template, error) {
	var t Template
	i := 0
	for i < len(s) {
		open := strings.IndexByte(s[i:], '{')
		if open < 0 {
			t.parts = append(t.parts, templatePart{literal: s[i:]})
			break
		}
		open += i
		if open > i {
			t.parts = append(t.parts, templatePart{literal: s[i:open]})
		}
		close := strings.IndexByte(s[open:], '}')
		if close < 0 {
			return nil, fmt.Errorf("preview: unterminated %q placeholder in template", "{")
		}
		close += open
		ref, err := parseFieldRef(s[open+1 : close])
		if err != nil {
			return nil, err
		}
		t.parts = append(t.parts, templatePart{isField: true, field: ref})
		i = close + 1
	}
	return &t, nil
}

func parseFieldRef(s string) (fieldRef, error) {
	if s == "" {
		return fieldRef{all: true}, nil
	}
	if idx := strings.Index(s, ".."); idx >= 0 {
		var ref fieldRef
		fromStr, toStr := s[:idx], s[idx+2:]
		if fromStr != "" {
			n, err := strconv.Atoi(fromStr)
			if err != nil {
				return fieldRef{}, fmt.Errorf("preview: invalid field range %q: %w", s, err)
			}
			ref.from, ref.hasFrom = n, true
		}
		if toStr != "" {
			n, err := strconv.Atoi(toStr)
			if err != nil {
				return fieldRef{}, fmt.Errorf("preview: invalid field range %q: %w", s, err)
			}
			ref.to, ref.hasTo = n, true
		}
		return ref, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fieldRef{}, fmt.Errorf("preview: invalid field index %q: %w", s, err)
	}
	return fieldRef{from: n, hasFrom: true, to: n + 1, hasTo: true}, nil
}

// Expand substitutes c's fields into the template and returns the literal
// argument string.
func (t *Template) Expand(c *candidate.Candidate) string {
	var b strings.Builder
	fields := c.Fields
	for _, p := range t.parts {
		if !p.isField {
			b.WriteString(p.literal)
			continue
		}
		from, to := p.field.from, len(fields)
		if p.field.all {
			from, to = 0, len(fields)
		} else {
			if p.field.hasTo {
				to = p.field.to
			} else {
				to = from + 1
			}
		}
		if from < 0 {
			from = 0
		}
		if to > len(fields) {
			to = len(fields)
		}
		for i := from; i < to; i++ {
			if i > from {
				b.WriteByte(' ')
			}
			b.WriteString(fields[i].Text)
		}
	}
	return b.String()
}

// ExpandArgs expands every argument template against c.
func ExpandArgs(templates []*Template, c *candidate.Candidate) []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = t.Expand(c)
	}
	return out
}
