package preview

import (
	"testing"

	"github.com/sweeptui/sweep/internal/candidate"
)

func TestParseTemplateWholeItem(t *testing.T) {
	tmpl, err := ParseTemplate("cat {}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := candidate.New("a:b:c", ':', nil)
	got := tmpl.Expand(c)
	if got != "cat a :b :c" {
		t.Fatalf("got %q", got)
	}
}

func TestParseTemplateSingleField(t *testing.T) {
	tmpl, err := ParseTemplate("less {0}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := candidate.New("first:second", ':', nil)
	got := tmpl.Expand(c)
	if got != "less first" {
		t.Fatalf("got %q", got)
	}
}

func TestParseTemplateRange(t *testing.T) {
	tmpl, err := ParseTemplate("{1..3}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := candidate.New("a:b:c:d", ':', nil)
	got := tmpl.Expand(c)
	if got != ":b :c" {
		t.Fatalf("got %q", got)
	}
}

func TestParseTemplateUnterminatedPlaceholder(t *testing.T) {
	if _, err := ParseTemplate("cat {0"); err == nil {
		t.Fatalf("expected error for unterminated placeholder")
	}
}

func TestParseTemplateInvalidIndex(t *testing.T) {
	if _, err := ParseTemplate("{x}"); err == nil {
		t.Fatalf("expected error for non-numeric field index")
	}
}
