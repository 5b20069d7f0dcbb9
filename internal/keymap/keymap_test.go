package keymap

import "testing"

func must_chord(t *testing.T, s string) []Key {
	t.Helper()
	k, err := ParseChord(s)
	if err != nil {
		t.Fatalf("ParseChord(%q): %v", s, err)
	}
	return k
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("ctrl+alt+x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.Name != "x" || k.Mods != ModCtrl|ModAlt {
		t.Fatalf("got %#v", k)
	}
	if _, err := ParseKey("ctrl+"); err == nil {
		t.Fatalf("expected error for missing key name")
	}
	if _, err := ParseKey("bogus+x"); err == nil {
		t.Fatalf("expected error for unknown modifier")
	}
}

func TestMapSingleKeyLookup(t *testing.T) {
	m := New[string]()
	m.Add(must_chord(t, "down"), "next")
	m.Add(must_chord(t, "ctrl+n"), "next")
	m.Add(must_chord(t, "up"), "prev")

	var state State
	action, ok := m.Lookup(&state, Event{Name: KeyDown})
	if !ok || action != "next" {
		t.Fatalf("got %q, %v", action, ok)
	}
	action, ok = m.Lookup(&state, Event{Name: "n", Mods: ModCtrl})
	if !ok || action != "next" {
		t.Fatalf("got %q, %v", action, ok)
	}
	// a release event never matches
	_, ok = m.Lookup(&state, Event{Name: KeyDown, IsRelease: true})
	if ok {
		t.Fatalf("release event matched")
	}
}

func TestMapChordSequence(t *testing.T) {
	m := New[string]()
	m.Add(must_chord(t, "ctrl+x ctrl+s"), "save")
	m.Add(must_chord(t, "ctrl+x ctrl+c"), "quit")

	var state State
	_, ok := m.Lookup(&state, Event{Name: "x", Mods: ModCtrl})
	if ok {
		t.Fatalf("partial chord should not resolve")
	}
	if len(state.pending) != 1 {
		t.Fatalf("expected pending state of length 1, got %d", len(state.pending))
	}
	action, ok := m.Lookup(&state, Event{Name: "s", Mods: ModCtrl})
	if !ok || action != "save" {
		t.Fatalf("got %q, %v", action, ok)
	}
	if len(state.pending) != 0 {
		t.Fatalf("pending state not cleared after a completed chord")
	}

	// starting the same prefix again and sending a non-matching key clears
	// the pending state instead of matching anything.
	m.Lookup(&state, Event{Name: "x", Mods: ModCtrl})
	_, ok = m.Lookup(&state, Event{Name: "q"})
	if ok {
		t.Fatalf("unbound continuation should not match")
	}
	if len(state.pending) != 0 {
		t.Fatalf("pending state not cleared after a failed continuation")
	}
}

func TestMapRebindLeafIntoPrefixDropsOldLeaf(t *testing.T) {
	m := New[string]()
	m.Add(must_chord(t, "ctrl+x"), "one")
	m.Add(must_chord(t, "ctrl+x ctrl+s"), "save")

	var state State
	_, ok := m.Lookup(&state, Event{Name: "x", Mods: ModCtrl})
	if ok {
		t.Fatalf("ctrl+x alone should no longer resolve once it becomes a chord prefix")
	}
	action, ok := m.Lookup(&state, Event{Name: "s", Mods: ModCtrl})
	if !ok || action != "save" {
		t.Fatalf("got %q, %v", action, ok)
	}
}

func TestMapRebindPrefixIntoLeafDropsOldChild(t *testing.T) {
	m := New[string]()
	m.Add(must_chord(t, "ctrl+x ctrl+s"), "save")
	m.Add(must_chord(t, "ctrl+x"), "one")

	var state State
	action, ok := m.Lookup(&state, Event{Name: "x", Mods: ModCtrl})
	if !ok || action != "one" {
		t.Fatalf("got %q, %v", action, ok)
	}
}

func TestForEachEnumeratesAllBindings(t *testing.T) {
	m := New[string]()
	m.Add(must_chord(t, "down"), "next")
	m.Add(must_chord(t, "ctrl+x ctrl+s"), "save")

	seen := map[string]string{}
	m.ForEach(func(chord []Key, action string) {
		seen[chordString(chord)] = action
	})
	if seen["down"] != "next" || seen["ctrl+x ctrl+s"] != "save" {
		t.Fatalf("got %#v", seen)
	}
}
