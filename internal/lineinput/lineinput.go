// Package lineinput implements the line-oriented candidate stream: UTF-8
// text, one candidate per line, split into fields by a delimiter and
// narrowed to a scored subset by a field selector, plus a JSON variant
// where each line is already a structured candidate record instead of
// raw delimited text.
//
// Scanning follows the same bufio.Scanner large-buffer pattern the
// preview package's Grid.Feed uses for a spawned child's output.
package lineinput

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sweeptui/sweep/internal/candidate"
)

// jsonField mirrors candidate.Field for the JSON input variant.
type jsonField struct {
	Text   string `json:"text"`
	Active bool   `json:"active,omitempty"`
	Glyph  string `json:"glyph,omitempty"`
	Face   string `json:"face,omitempty"`
}

// jsonCandidate mirrors candidate.Candidate for the JSON input variant: one
// line of input decodes to one of these instead of being split on a
// delimiter.
type jsonCandidate struct {
	Fields      []jsonField    `json:"fields"`
	RightFields []jsonField    `json:"right_fields,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}

func (j jsonCandidate) toCandidate() *candidate.Candidate {
	fields := make([]candidate.Field, len(j.Fields))
	for i, f := range j.Fields {
		fields[i] = candidate.Field{Text: f.Text, Active: f.Active, Glyph: f.Glyph, Face: f.Face}
	}
	var right []candidate.Field
	if len(j.RightFields) > 0 {
		right = make([]candidate.Field, len(j.RightFields))
		for i, f := range j.RightFields {
			right[i] = candidate.Field{Text: f.Text, Active: f.Active, Glyph: f.Glyph, Face: f.Face}
		}
	}
	return candidate.NewFromFields(fields, right, j.Extra)
}

// Options configures how each line of a candidate stream is parsed.
type Options struct {
	// Delimiter splits a plain-text line into fields; ignored when JSON is
	// true.
	Delimiter rune
	// Selector activates a subset of fields for scoring; nil activates
	// every field. Ignored when JSON is true (the JSON record's own
	// "active" flags are used instead).
	Selector *candidate.FieldSelector
	// JSON, if true, parses each line as a jsonCandidate record instead of
	// splitting it on Delimiter.
	JSON bool
	// BatchSize is how many candidates Scan accumulates before calling
	// sink; 0 means "emit after EOF only". A stream-until-the-first-match
	// UI wants a small batch size so early results render promptly.
	BatchSize int
}

// Scan reads r line by line per opts, calling sink with each accumulated
// batch of candidates (at most opts.BatchSize, except the final, possibly
// shorter batch). It returns the first error encountered parsing a line,
// wrapping it with the 1-based line number, or the first error sink
// returns.
func Scan(r io.Reader, opts Options, sink func([]candidate.Haystack) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = 1 << 30 // effectively unbounded: one flush at EOF
	}

	var batch []candidate.Haystack
	lineNo := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := sink(batch)
		batch = batch[:0]
		return err
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		item, err := parseLine(line, opts)
		if err != nil {
			return fmt.Errorf("lineinput: line %d: %w", lineNo, err)
		}
		batch = append(batch, item)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("lineinput: %w", err)
	}
	return flush()
}

func parseLine(line string, opts Options) (candidate.Haystack, error) {
	if opts.JSON {
		var jc jsonCandidate
		if err := json.Unmarshal([]byte(line), &jc); err != nil {
			return nil, err
		}
		return jc.toCandidate(), nil
	}
	return candidate.New(line, opts.Delimiter, opts.Selector), nil
}
