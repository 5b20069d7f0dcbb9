package keymap

import "fmt"

// Map is a trie from key chords to actions of type T. It supports the
// partial-match protocol required to let a controller feed keys one at a
// time across multiple calls while a multi-key chord is pending.
//
// Adapted from kitty's tools/tui/shortcuts chord trie, generalized to this
// package's own Key/Event types and extended with ForEach so that a help
// overlay can enumerate every bound chord.
type Map[T any] struct {
	leaves   []leaf[T]
	children map[Key]*Map[T]
}

type leaf[T any] struct {
	key    Key
	action T
}

func New[T any]() *Map[T] {
	return &Map[T]{children: make(map[Key]*Map[T])}
}

// Add binds a chord (a sequence of one or more keys) to an action. If any
// key of the chord was already bound to something, either as a leaf or as a
// prefix, that prior binding is removed.
func (m *Map[T]) Add(chord []Key, action T) {
	node := m
	last := len(chord) - 1
	for i, k := range chord {
		if i == last {
			node.removeChild(k)
			node.setLeaf(k, action)
		} else {
			node.removeLeaf(k)
			child := node.children[k]
			if child == nil {
				child = New[T]()
				node.children[k] = child
			}
			node = child
		}
	}
}

// AddOrPanic is like Add but panics if the chord is empty, naming the
// offending chord in the panic message. Intended for use at config-parse
// time where a malformed bind list is a programmer/config error, not a
// recoverable runtime condition.
func (m *Map[T]) AddOrPanic(chord []Key, action T) {
	if len(chord) == 0 {
		panic(fmt.Sprintf("cannot bind empty chord %q to an action", chordString(chord)))
	}
	m.Add(chord, action)
}

func (m *Map[T]) setLeaf(k Key, action T) {
	for i := range m.leaves {
		if m.leaves[i].key == k {
			m.leaves[i].action = action
			return
		}
	}
	m.leaves = append(m.leaves, leaf[T]{key: k, action: action})
}

func (m *Map[T]) removeLeaf(k Key) {
	for i := range m.leaves {
		if m.leaves[i].key == k {
			m.leaves = append(m.leaves[:i], m.leaves[i+1:]...)
			return
		}
	}
}

func (m *Map[T]) removeChild(k Key) {
	delete(m.children, k)
}

// State tracks the keys matched so far while a multi-key chord is pending.
type State struct {
	pending []Key
}

// Reset clears any pending partial match.
func (s *State) Reset() { s.pending = s.pending[:0] }

// Pending reports how many keys of a multi-key chord are currently
// matched and awaiting the rest of the sequence.
func (s *State) Pending() int { return len(s.pending) }

// Lookup advances the chord matcher by one key event. It returns the bound
// action and ok=true on a completed chord (clearing pending state in the
// process), or ok=false if the event extended a partial match or matched
// nothing at all. A non-matching event always clears prior pending state.
func (m *Map[T]) Lookup(state *State, ev Event) (action T, ok bool) {
	node := m
	for _, k := range state.pending {
		node = node.children[k]
		if node == nil {
			state.Reset()
			return action, false
		}
	}
	for _, l := range node.leaves {
		if ev.Matches(l.key) {
			state.Reset()
			return l.action, true
		}
	}
	for k, child := range node.children {
		if ev.Matches(k) {
			_ = child
			state.pending = append(state.pending, k)
			return action, false
		}
	}
	state.Reset()
	return action, false
}

// ForEach enumerates every (chord, action) pair bound in the map, in the
// order chords were discovered (depth-first, not otherwise guaranteed).
// Used to build a help overlay listing all bindings.
func (m *Map[T]) ForEach(visit func(chord []Key, action T)) {
	m.forEach(nil, visit)
}

func (m *Map[T]) forEach(prefix []Key, visit func(chord []Key, action T)) {
	for _, l := range m.leaves {
		chord := append(append([]Key{}, prefix...), l.key)
		visit(chord, l.action)
	}
	for k, child := range m.children {
		child.forEach(append(append([]Key{}, prefix...), k), visit)
	}
}
