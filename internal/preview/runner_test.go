package preview

import (
	"testing"
	"time"

	"github.com/sweeptui/sweep/internal/candidate"
)

func TestRunnerDisabledWithoutArgv(t *testing.T) {
	r := NewRunner(nil)
	c := candidate.New("a:b", ':', nil)
	if _, ok := r.Preview(c); ok {
		t.Fatal("Preview should report false with no configured command")
	}
}

func TestRunnerSpawnsAndCachesByCandidate(t *testing.T) {
	tmpl, err := ParseTemplate("{}")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	argv0, err := ParseTemplate("echo")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	r := NewRunner([]*Template{argv0, tmpl})
	defer r.Stop()

	c := candidate.New("hello", ' ', nil)
	pv, ok := r.Preview(c)
	if !ok {
		t.Fatal("expected a preview")
	}
	grid := pv.(*Grid)

	deadline := time.Now().Add(2 * time.Second)
	for grid.Running() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := grid.String(); got != "hello" {
		t.Fatalf("got output %q, want %q", got, "hello")
	}

	pv2, _ := r.Preview(c)
	if pv2.(*Grid) != grid {
		t.Fatal("Preview should return the cached Grid for the same candidate")
	}
}
