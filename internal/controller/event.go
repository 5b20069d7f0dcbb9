package controller

import (
	"github.com/sweeptui/sweep/internal/candidate"
	"github.com/sweeptui/sweep/internal/term"
)

// EventKind identifies which notification an Event carries, matching the
// core's outbound notifications (select/bind/resize).
type EventKind int

const (
	EventSelect EventKind = iota
	EventBind
	EventResize
)

// Event is emitted to the caller's event queue (an RPC notification
// channel, or the terminal filter's output stream in line-oriented mode).
type Event struct {
	Kind EventKind

	SelectItems []*candidate.Candidate

	BindTag string
	BindKey string

	Resize term.Size
}
