// Package keymap implements the chord-based key map described in the
// controller design: a trie from space-separated key chords to actions,
// with partial-match state carried across calls for multi-key sequences.
package keymap

import (
	"fmt"
	"strings"
)

// Mod is a bitmask of key modifiers recognized by the bind syntax
// "modifier+...+name" (ctrl, alt, shift, press).
type Mod int

const (
	ModCtrl Mod = 1 << iota
	ModAlt
	ModShift
	// ModPress marks a key-press (as opposed to the default press-or-repeat
	// matching); it is rarely needed since plain chords already match both.
	ModPress
)

// Key is one element of a chord: a modifier set plus a key name. Key names
// are either a single printable rune rendered as its own string (e.g. "a",
// "$") or one of the special names below.
type Key struct {
	Mods Mod
	Name string
}

const (
	KeyBackspace = "backspace"
	KeyDelete    = "delete"
	KeyEnter     = "enter"
	KeyEsc       = "esc"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyPageUp    = "page_up"
	KeyPageDown  = "page_down"
	KeyHome      = "home"
	KeyEnd       = "end"
	KeyTab       = "tab"
)

// ParseChord parses a space-separated sequence of keys such as
// "ctrl+x ctrl+s" or "alt+enter" into its component Keys.
func ParseChord(chord string) ([]Key, error) {
	parts := strings.Fields(chord)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty key chord")
	}
	keys := make([]Key, len(parts))
	for i, p := range parts {
		k, err := ParseKey(p)
		if err != nil {
			return nil, fmt.Errorf("invalid chord %q: %w", chord, err)
		}
		keys[i] = k
	}
	return keys, nil
}

// ParseKey parses a single "modifier+...+name" key specification.
func ParseKey(spec string) (k Key, err error) {
	parts := strings.Split(spec, "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return k, fmt.Errorf("missing key name in %q", spec)
	}
	k.Name = parts[len(parts)-1]
	for _, m := range parts[:len(parts)-1] {
		switch strings.ToLower(m) {
		case "ctrl":
			k.Mods |= ModCtrl
		case "alt":
			k.Mods |= ModAlt
		case "shift":
			k.Mods |= ModShift
		case "press":
			k.Mods |= ModPress
		default:
			return k, fmt.Errorf("unknown modifier %q in %q", m, spec)
		}
	}
	return k, nil
}

func (k Key) String() string {
	var b strings.Builder
	if k.Mods&ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if k.Mods&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if k.Mods&ModShift != 0 {
		b.WriteString("shift+")
	}
	if k.Mods&ModPress != 0 {
		b.WriteString("press+")
	}
	b.WriteString(k.Name)
	return b.String()
}

func chordString(keys []Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

// Event is the minimal key-event shape the chord matcher needs: the logical
// key name (lower-cased single rune or one of the Key* constants), the
// modifiers held, and whether this is a release (as opposed to a press or
// an auto-repeat).
type Event struct {
	Name      string
	Mods      Mod
	IsRelease bool
}

// Matches reports whether this event satisfies the given Key: a plain key
// (no ModPress) matches on press or repeat (i.e. everything but release);
// ModPress requires specifically the initial press, which this package
// treats the same as "not a release" since the underlying terminal layer
// collapses press/repeat for dispatch purposes.
func (e Event) Matches(k Key) bool {
	if e.Name != k.Name {
		return false
	}
	if e.Mods != k.Mods&^ModPress {
		return false
	}
	if e.IsRelease {
		return false
	}
	return true
}
