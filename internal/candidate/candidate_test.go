package candidate

import (
	"strings"
	"testing"
)

func TestNewSplitsOnDelimiter(t *testing.T) {
	c := New("a:b:c", ':', nil)
	if len(c.Fields) != 3 {
		t.Fatalf("got %d fields, want 3: %#v", len(c.Fields), c.Fields)
	}
	if c.Fields[0].Text != "a" || c.Fields[1].Text != ":b" || c.Fields[2].Text != ":c" {
		t.Fatalf("unexpected split: %#v", c.Fields)
	}
}

func TestNewFieldSelectorDeactivatesFields(t *testing.T) {
	sel, err := ParseFieldSelector("0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := New("a b c", ' ', sel)
	if !c.Fields[0].Active {
		t.Fatalf("field 0 should be active")
	}
	for i, f := range c.Fields[1:] {
		if f.Active {
			t.Fatalf("field %d should be inactive", i+1)
		}
	}
}

func TestCharsOnlyIncludesActiveFields(t *testing.T) {
	sel, err := ParseFieldSelector("1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := New("ABC DEF", ' ', sel)
	got := string(c.Chars())
	if strings.Contains(got, "abc") {
		t.Fatalf("inactive field leaked into Chars(): %q", got)
	}
	if !strings.Contains(got, "def") {
		t.Fatalf("active field missing from Chars(): %q", got)
	}
}

func TestFieldSelectorNegativeIndices(t *testing.T) {
	sel, err := ParseFieldSelector("..-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Matches(2, 3) {
		t.Fatalf("last field should not match ..-1 over size 3")
	}
	if !sel.Matches(1, 3) || !sel.Matches(0, 3) {
		t.Fatalf("expected fields 0,1 to match ..-1 over size 3")
	}

	sel, err = ParseFieldSelector("-2..")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Matches(0, 3) {
		t.Fatalf("field 0 should not match -2.. over size 3")
	}
	if !sel.Matches(1, 3) || !sel.Matches(2, 3) {
		t.Fatalf("expected fields 1,2 to match -2.. over size 3")
	}
}

func TestFieldSelectorCommaSeparated(t *testing.T) {
	sel, err := ParseFieldSelector("..1,-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sel.Matches(0, 3) || sel.Matches(1, 3) || !sel.Matches(2, 3) {
		t.Fatalf("unexpected matches for ..1,-1 over size 3")
	}
}

func TestFieldSelectorAll(t *testing.T) {
	sel, err := ParseFieldSelector("..")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if !sel.Matches(i, 3) {
			t.Fatalf("expected .. to match every index")
		}
	}
}

func TestRegistryResolveInheritsUnsetFields(t *testing.T) {
	reg := NewRegistry()
	reg.Define(1, Field{Text: "base", Glyph: "G", Face: "F"})
	f := reg.Resolve(Field{HasRef: true, Ref: 1})
	if f.Text != "base" || f.Glyph != "G" || f.Face != "F" {
		t.Fatalf("got %#v", f)
	}
}

func TestRegistryResolveUnknownRefDegradesToInline(t *testing.T) {
	reg := NewRegistry()
	f := reg.Resolve(Field{HasRef: true, Ref: 99, Text: "inline"})
	if f.Text != "inline" {
		t.Fatalf("got %#v", f)
	}
}
