package lineinput

import (
	"strings"
	"testing"

	"github.com/sweeptui/sweep/internal/candidate"
)

func TestScanPlainTextSingleBatch(t *testing.T) {
	r := strings.NewReader("one\ntwo\nthree\n")
	var got []candidate.Haystack
	err := Scan(r, Options{Delimiter: ' '}, func(batch []candidate.Haystack) error {
		got = append(got, batch...)
		return nil
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3", len(got))
	}
	if s := got[0].(*candidate.Candidate).String(); s != "one" {
		t.Fatalf("got %q, want \"one\"", s)
	}
}

func TestScanRespectsBatchSize(t *testing.T) {
	r := strings.NewReader("a\nb\nc\nd\ne\n")
	var batches [][]candidate.Haystack
	err := Scan(r, Options{Delimiter: ' ', BatchSize: 2}, func(batch []candidate.Haystack) error {
		cp := append([]candidate.Haystack(nil), batch...)
		batches = append(batches, cp)
		return nil
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(batches) != 3 {
		t.Fatalf("got %d batches, want 3 (2+2+1)", len(batches))
	}
	if len(batches[0]) != 2 || len(batches[1]) != 2 || len(batches[2]) != 1 {
		t.Fatalf("got batch sizes %d/%d/%d, want 2/2/1", len(batches[0]), len(batches[1]), len(batches[2]))
	}
}

func TestScanJSONMode(t *testing.T) {
	r := strings.NewReader(`{"fields":[{"text":"alpha","active":true}]}` + "\n" + `{"fields":[{"text":"beta","active":true}]}` + "\n")
	var got []candidate.Haystack
	err := Scan(r, Options{JSON: true}, func(batch []candidate.Haystack) error {
		got = append(got, batch...)
		return nil
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if s := got[1].(*candidate.Candidate).String(); s != "beta" {
		t.Fatalf("got %q, want \"beta\"", s)
	}
}

func TestScanFieldSelector(t *testing.T) {
	selector, err := candidate.ParseFieldSelector("1..")
	if err != nil {
		t.Fatalf("ParseFieldSelector: %v", err)
	}
	r := strings.NewReader("skip keep\n")
	var got []candidate.Haystack
	err = Scan(r, Options{Delimiter: ' ', Selector: selector}, func(batch []candidate.Haystack) error {
		got = append(got, batch...)
		return nil
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	chars := string(got[0].Chars())
	if strings.Contains(chars, "skip") {
		t.Fatalf("got chars %q, field 0 should not be active", chars)
	}
}

func TestScanInvalidJSONLineReportsLineNumber(t *testing.T) {
	r := strings.NewReader("{\"fields\":[]}\nnot json\n")
	err := Scan(r, Options{JSON: true}, func(batch []candidate.Haystack) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("got %v, want an error naming line 2", err)
	}
}
