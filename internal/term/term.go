// Package term declares the terminal abstraction the controller drives:
// an event source for keys/mouse/resize and a sink for cell writes. The
// terminal itself (raw mode, escape parsing, capability probing) is
// deliberately out of scope; this package only names the callback shape
// the controller needs, the same shape tools/tui/loop.Loop exposes.
package term

import "time"

// KeyEvent is one parsed key press or release.
type KeyEvent struct {
	Mods    Mod
	Name    string // printable rune as a string, or a named key like "enter"
	Release bool
}

// Mod is a bitset of key modifiers.
type Mod uint8

const (
	ModCtrl Mod = 1 << iota
	ModAlt
	ModShift
)

// MouseEvent is one mouse press/release at a cell position.
type MouseEvent struct {
	X, Y    int
	Release bool
}

// Size is the terminal's cell and pixel geometry.
type Size struct {
	WidthCells, HeightCells int
	WidthPx, HeightPx       int
}

// TimerID identifies a registered timer for later removal.
type TimerID uint64

// Callbacks is the set of handlers the controller registers with a Loop
// implementation. Every field is optional; a nil handler means the event
// is ignored.
type Callbacks struct {
	OnKeyEvent func(KeyEvent) error
	OnMouse    func(MouseEvent) error
	OnResize   func(Size) error
	OnWakeup   func() error
	OnTimer    func(TimerID) error
}

// Loop is the terminal event loop and output sink the controller drives.
// A concrete implementation owns raw mode, the escape-code parser and the
// actual write syscalls; this package only fixes the shape the controller
// programs against.
type Loop interface {
	// Run installs cb and blocks until the loop exits (terminal closed,
	// write error, or the controller calls Quit).
	Run(cb Callbacks) error
	// Quit requests the loop stop after the current tick.
	Quit(exitCode int)
	// QueueWriteString schedules data to be written to the terminal.
	QueueWriteString(data string)
	// WakeupMainThread asks the loop to invoke OnWakeup from any thread.
	WakeupMainThread() bool
	// AddTimer registers a one-shot or repeating timer.
	AddTimer(interval time.Duration, repeats bool, cb func(TimerID) error) (TimerID, error)
	// RemoveTimer cancels a previously added timer.
	RemoveTimer(id TimerID) bool
	// ScreenSize reports the current terminal geometry.
	ScreenSize() (Size, error)
}
