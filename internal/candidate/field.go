// Package candidate implements the Candidate record and the Haystack
// interface that the ranker and list widget score and render.
package candidate

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is one piece of a Candidate's display text. Only Active fields
// contribute characters to scoring and highlight indexing.
type Field struct {
	Text     string
	Active   bool
	Glyph    string
	Face     string
	Ref      FieldRef
	HasRef   bool
}

// FieldRef names an entry in a Registry that a Field falls back to for any
// of Glyph/Face/Text left unset.
type FieldRef int

// Registry maps field-reference ids to base field definitions. Entries are
// added by the embedder and never removed during a session; lookups are
// lock-free once populated, matching the write-once/read-many discipline
// described for this type.
type Registry struct {
	bases map[FieldRef]Field
}

func NewRegistry() *Registry {
	return &Registry{bases: make(map[FieldRef]Field)}
}

func (r *Registry) Define(ref FieldRef, base Field) {
	r.bases[ref] = base
}

// Resolve returns f with any unset Text/Glyph/Face inherited from its
// referenced base field. An unknown reference degrades to f unchanged.
func (r *Registry) Resolve(f Field) Field {
	if !f.HasRef {
		return f
	}
	base, ok := r.bases[f.Ref]
	if !ok {
		return f
	}
	if f.Text == "" {
		f.Text = base.Text
	}
	if f.Glyph == "" {
		f.Glyph = base.Glyph
	}
	if f.Face == "" {
		f.Face = base.Face
	}
	return f
}

// fieldSelect is one comma-separated term of a FieldSelector spec, each
// either a single (possibly negative) index or an open/closed range.
type fieldSelect struct {
	kind       selectKind
	start, end int
}

type selectKind int

const (
	selectAll selectKind = iota
	selectSingle
	selectRangeFrom
	selectRangeTo
	selectRange
)

func parseFieldSelect(s string) (fieldSelect, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return fieldSelect{kind: selectSingle, start: n}, nil
	}
	parts := strings.SplitN(s, "..", 2)
	if len(parts) != 2 {
		return fieldSelect{}, fmt.Errorf("invalid field selector %q", s)
	}
	start, hasStart := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[0]) != ""
	end, hasEnd := strings.TrimSpace(parts[1]), strings.TrimSpace(parts[1]) != ""
	switch {
	case hasStart && hasEnd:
		si, err := strconv.Atoi(start)
		if err != nil {
			return fieldSelect{}, fmt.Errorf("invalid field selector %q: %w", s, err)
		}
		ei, err := strconv.Atoi(end)
		if err != nil {
			return fieldSelect{}, fmt.Errorf("invalid field selector %q: %w", s, err)
		}
		return fieldSelect{kind: selectRange, start: si, end: ei}, nil
	case hasStart:
		si, err := strconv.Atoi(start)
		if err != nil {
			return fieldSelect{}, fmt.Errorf("invalid field selector %q: %w", s, err)
		}
		return fieldSelect{kind: selectRangeFrom, start: si}, nil
	case hasEnd:
		ei, err := strconv.Atoi(end)
		if err != nil {
			return fieldSelect{}, fmt.Errorf("invalid field selector %q: %w", s, err)
		}
		return fieldSelect{kind: selectRangeTo, end: ei}, nil
	default:
		return fieldSelect{kind: selectAll}, nil
	}
}

func resolveIndex(value, size int) int {
	if value < 0 {
		return size + value
	}
	return value
}

func (fs fieldSelect) matches(index, size int) bool {
	switch fs.kind {
	case selectAll:
		return true
	case selectSingle:
		return resolveIndex(fs.start, size) == index
	case selectRangeFrom:
		return resolveIndex(fs.start, size) <= index
	case selectRangeTo:
		return resolveIndex(fs.end, size) > index
	case selectRange:
		return resolveIndex(fs.start, size) <= index && resolveIndex(fs.end, size) > index
	default:
		return false
	}
}

// FieldSelector activates a subset of a candidate's fields for scoring, as
// described by a comma-separated list of field-select terms.
type FieldSelector struct {
	selects []fieldSelect
}

// ParseFieldSelector parses a selector string such as "0", "1..", "..-1",
// "-2..-1" or "..1,-1".
func ParseFieldSelector(s string) (*FieldSelector, error) {
	var fs FieldSelector
	for _, part := range strings.Split(s, ",") {
		sel, err := parseFieldSelect(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		fs.selects = append(fs.selects, sel)
	}
	return &fs, nil
}

// Matches reports whether the field at index, out of size total fields, is
// selected.
func (fs *FieldSelector) Matches(index, size int) bool {
	if fs == nil {
		return true
	}
	for _, sel := range fs.selects {
		if sel.matches(index, size) {
			return true
		}
	}
	return false
}
