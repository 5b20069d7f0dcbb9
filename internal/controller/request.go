package controller

import (
	"github.com/sweeptui/sweep/internal/candidate"
)

// RequestKind identifies which RPC-facing operation a Request carries.
type RequestKind int

const (
	ReqItemsExtend RequestKind = iota
	ReqItemUpdate
	ReqItemsClear
	ReqItemsCurrent
	ReqItemsMarked
	ReqCursorSet
	ReqQuerySet
	ReqQueryGet
	ReqPromptSet
	ReqFooterSet
	ReqBind
	ReqPreviewSet
	ReqStatePush
	ReqStatePop
	ReqRenderSuppress
	ReqTerminate
)

// Request is one request-channel entry: a caller-submitted mutation or
// query, applied to the active frame in FIFO order during a render tick.
// For ReqItemsCurrent, ReqItemsMarked and ReqQueryGet, Reply, if non-nil,
// receives exactly one value before the tick moves on to the next request;
// other kinds never send on Reply.
type Request struct {
	Kind RequestKind

	Items       []candidate.Haystack
	UpdateIndex int

	CursorPosition int

	Query string

	Prompt    *string
	PromptIcon *string

	Footer *string

	BindChord string
	BindTag   string

	PreviewValue *bool

	Suppress bool

	Reply chan any
}
