// Package controller implements the single-threaded render-tick loop: it
// owns a stack of state Frames, drains caller requests each tick, forwards
// the input buffer to the ranker, reconciles the cursor across ranker
// snapshot generations, and turns key, mouse, resize and wake events into
// either direct frame mutations or outbound Events for the caller (an RPC
// peer or the line-oriented CLI).
//
// The terminal drawing itself, and the flex/text view-tree layout that
// would turn a RenderState into actual cells, are out of scope (see
// internal/term's package doc); Tick returns a RenderState summarizing
// what the next frame should show, for a caller-supplied painter to lay
// out.
package controller

import (
	"github.com/sweeptui/sweep/internal/candidate"
	"github.com/sweeptui/sweep/internal/keymap"
	"github.com/sweeptui/sweep/internal/rank"
	"github.com/sweeptui/sweep/internal/term"
	"github.com/sweeptui/sweep/internal/widgets/input"
)

// NoMatchPolicy controls what Select does with an empty match list in
// non-RPC (line-oriented) mode.
type NoMatchPolicy int

const (
	// NoMatchEmpty returns no items on Select when nothing matched.
	NoMatchEmpty NoMatchPolicy = iota
	// NoMatchInput returns the current query text as the sole result.
	NoMatchInput
)

// Controller owns the frame stack and the request/event channels.
type Controller struct {
	frames []*Frame

	reqCh  chan Request
	events chan Event

	renderSuppressed bool

	NoMatchPolicy NoMatchPolicy
	RPCMode       bool
}

// New starts a controller with root as its sole frame.
func New(root *Frame) *Controller {
	return &Controller{
		frames: []*Frame{root},
		reqCh:  make(chan Request, 64),
		events: make(chan Event, 64),
	}
}

// Active returns the frame on top of the stack.
func (c *Controller) Active() *Frame { return c.frames[len(c.frames)-1] }

// Push adds frame to the top of the stack (e.g. the help overlay).
func (c *Controller) Push(frame *Frame) { c.frames = append(c.frames, frame) }

// Pop removes the top frame, unless it is the only one.
func (c *Controller) Pop() {
	if len(c.frames) > 1 {
		c.frames = c.frames[:len(c.frames)-1]
	}
}

// Submit enqueues a request to be applied on the next tick. It never
// blocks the caller past the channel's buffer.
func (c *Controller) Submit(req Request) { c.reqCh <- req }

// Events returns the channel of outbound notifications (select/bind/resize).
func (c *Controller) Events() <-chan Event { return c.events }

// RenderState summarizes one tick's output for a caller-supplied painter.
type RenderState struct {
	Prompt string
	Icon   string

	InputVisible  string
	InputCursorOK bool
	InputCursor   int

	Footer string

	MatchCount int
	TotalCount int
	ScorerName string

	ListRows   []candidate.Row
	ListCursor int

	PreviewLarge candidate.PreviewLarge

	Suppressed bool
}

// Tick drains the request channel, forwards the needle, reconciles the
// cursor across ranker generations and returns the render state for width
// x height.
func (c *Controller) Tick(width, height int) RenderState {
	c.drainRequests()

	f := c.Active()
	f.Ranker.NeedleSet(f.Input.String())

	snapshot := f.Ranker.Result()
	c.reconcileCursor(f, snapshot)

	if c.renderSuppressed {
		return RenderState{Suppressed: true}
	}

	listHeight := height - 2 // reserve prompt/input row and stats row
	if listHeight < 0 {
		listHeight = 0
	}
	rowHeight := func(int) int { return 1 }
	_, view := f.List.Layout(snapshot.Len(), listHeight, rowHeight)

	rows := make([]candidate.Row, 0, view.VisibleCount)
	for i := 0; i < view.VisibleCount; i++ {
		idx := view.Offset + i
		item, ok := snapshot.Get(idx)
		if !ok {
			continue
		}
		hay, ok := f.Ranker.HaystackItem(item.ID.HaystackIndex)
		if !ok {
			continue
		}
		positions := item.Positions.Items(width)
		rows = append(rows, hay.View(positions, f.Theme))
	}

	visible, col := f.Input.Visible(width)

	var pv candidate.PreviewLarge
	if f.LargePreviewOpen {
		if cur, ok := snapshot.Get(f.List.Cursor()); ok {
			if hay, ok := f.Ranker.HaystackItem(cur.ID.HaystackIndex); ok {
				p, ok := hay.PreviewLarge(cur.Positions.Items(width), f.Theme)
				if ok {
					pv = p
				}
			}
		}
	}

	return RenderState{
		Prompt:        f.Prompt,
		Icon:          f.Icon,
		InputVisible:  string(visible),
		InputCursorOK: true,
		InputCursor:   col,
		Footer:        f.Footer,
		MatchCount:    snapshot.Len(),
		TotalCount:    f.Ranker.HaystackLen(),
		ScorerName:    f.CurrentScorerName(),
		ListRows:      rows,
		ListCursor:    f.List.Cursor() - view.Offset,
		PreviewLarge:  pv,
	}
}

func (c *Controller) reconcileCursor(f *Frame, snapshot *rank.RankedItems) {
	if snapshot.Generation() != f.LastGen {
		if f.HasAnchor && f.LastAnchor.HaystackGen == snapshot.HaystackGeneration() {
			if idx, ok := snapshot.FindMatchIndex(f.LastAnchor.HaystackIndex); ok {
				f.List.SetCursor(idx, snapshot.Len())
			} else {
				f.List.SetCursor(0, snapshot.Len())
			}
		} else {
			f.List.SetCursor(0, snapshot.Len())
		}
		f.LastGen = snapshot.Generation()
	}
	if item, ok := snapshot.Get(f.List.Cursor()); ok {
		f.LastAnchor = item.ID
		f.HasAnchor = true
	} else {
		f.HasAnchor = false
	}
}

func (c *Controller) drainRequests() {
	for {
		select {
		case req := <-c.reqCh:
			c.apply(req)
		default:
			return
		}
	}
}

func (c *Controller) apply(req Request) {
	f := c.Active()
	switch req.Kind {
	case ReqItemsExtend:
		f.Ranker.HaystackExtend(req.Items)
	case ReqItemUpdate:
		// The ranker has no mutate-at-index primitive; an update is an
		// append whose Haystack happens to re-describe an existing row.
		if req.UpdateIndex >= 0 && len(req.Items) == 1 {
			f.Ranker.HaystackExtend(req.Items)
		}
	case ReqItemsClear:
		f.Ranker.HaystackClear()
		f.Marks.Clear()
		f.HasAnchor = false
	case ReqItemsCurrent:
		reply(req, c.currentCandidate(f))
	case ReqItemsMarked:
		reply(req, c.markedCandidates(f))
	case ReqCursorSet:
		f.List.SetCursor(req.CursorPosition, f.Ranker.Result().Len())
	case ReqQuerySet:
		f.Input = input.NewWithText(req.Query)
	case ReqQueryGet:
		reply(req, f.Input.String())
	case ReqPromptSet:
		if req.Prompt != nil {
			f.Prompt = *req.Prompt
		}
		if req.PromptIcon != nil {
			f.Icon = *req.PromptIcon
		}
	case ReqFooterSet:
		if req.Footer != nil {
			f.Footer = *req.Footer
		}
	case ReqBind:
		if keys, err := keymap.ParseChord(req.BindChord); err == nil {
			f.KeyMap.AddOrPanic(keys, Bind(req.BindTag))
		}
	case ReqPreviewSet:
		if req.PreviewValue != nil {
			f.Theme.ShowPreview = *req.PreviewValue
		} else {
			f.Theme.ShowPreview = !f.Theme.ShowPreview
		}
	case ReqStatePush:
		c.Push(HelpFrame(f))
	case ReqStatePop:
		c.Pop()
	case ReqRenderSuppress:
		c.renderSuppressed = req.Suppress
		if !req.Suppress {
			f.Ranker.Sync()
		}
	case ReqTerminate:
		c.emit(Event{Kind: EventSelect})
	}
}

func reply(req Request, value any) {
	if req.Reply != nil {
		req.Reply <- value
	}
}

func (c *Controller) currentCandidate(f *Frame) *candidate.Candidate {
	snapshot := f.Ranker.Result()
	item, ok := snapshot.Get(f.List.Cursor())
	if !ok {
		return nil
	}
	hay, ok := f.Ranker.HaystackItem(item.ID.HaystackIndex)
	if !ok {
		return nil
	}
	return asCandidate(hay)
}

// asCandidate unwraps a Haystack to its underlying *candidate.Candidate,
// seeing through wrappers (such as the preview package's CandidatePreview)
// that adapt one for a different PreviewLarge source.
func asCandidate(hay candidate.Haystack) *candidate.Candidate {
	if c, ok := hay.(*candidate.Candidate); ok {
		return c
	}
	if u, ok := hay.(interface{ Unwrap() *candidate.Candidate }); ok {
		return u.Unwrap()
	}
	return nil
}

func (c *Controller) markedCandidates(f *Frame) []*candidate.Candidate {
	snapshot := f.Ranker.Result()
	out := make([]*candidate.Candidate, 0, f.Marks.Len())
	for _, id := range f.Marks.order {
		for i := 0; i < snapshot.Len(); i++ {
			item, _ := snapshot.Get(i)
			if item.ID == id {
				if hay, ok := f.Ranker.HaystackItem(id.HaystackIndex); ok {
					if cc := asCandidate(hay); cc != nil {
						out = append(out, cc)
					}
				}
				break
			}
		}
	}
	return out
}

func (c *Controller) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
	}
}

// HandleKey looks the event up in the active frame's key map and either
// fires a built-in action, emits a Bind event for a user tag, or falls
// through to Insert for a plain, unbound character.
func (c *Controller) HandleKey(ev keymap.Event) {
	f := c.Active()
	action, ok := f.KeyMap.Lookup(&f.ChordState, ev)
	if !ok {
		if f.ChordState.Pending() == 0 && isPlainChar(ev) {
			f.Input.InsertString(ev.Name)
		}
		return
	}
	c.dispatch(f, action)
}

func isPlainChar(ev keymap.Event) bool {
	return !ev.IsRelease && ev.Mods == 0 && len([]rune(ev.Name)) == 1
}

func (c *Controller) dispatch(f *Frame, action Action) {
	if f.HelpEntries != nil {
		c.dispatchHelp(f, action)
		return
	}
	switch action.Kind {
	case ActionCursorForward:
		f.Input.CursorForward()
	case ActionCursorBackward:
		f.Input.CursorBackward()
	case ActionCursorStart:
		f.Input.CursorStart()
	case ActionCursorEnd:
		f.Input.CursorEnd()
	case ActionCursorNextWord:
		f.Input.CursorNextWord()
	case ActionCursorPrevWord:
		f.Input.CursorPrevWord()
	case ActionDeleteBackward:
		if f.Input.Len() == 0 && f.HasBackspaceTag {
			c.emit(Event{Kind: EventBind, BindTag: f.BackspaceTag})
			return
		}
		f.Input.DeleteBackward()
	case ActionDeleteForward:
		f.Input.DeleteForward()
	case ActionDeleteEnd:
		f.Input.DeleteEnd()

	case ActionItemNext:
		f.List.ItemNext(f.Ranker.Result().Len())
	case ActionItemPrev:
		f.List.ItemPrev(f.Ranker.Result().Len())
	case ActionPageNext:
		f.List.PageNext(f.Ranker.Result().Len())
	case ActionPagePrev:
		f.List.PagePrev(f.Ranker.Result().Len())
	case ActionHome:
		f.List.Home(f.Ranker.Result().Len())
	case ActionEnd:
		f.List.End(f.Ranker.Result().Len())

	case ActionSelect:
		c.doSelect(f)
	case ActionMark:
		c.doMark(f)
	case ActionMarkAll:
		c.doMarkAll(f)
	case ActionHelp:
		c.Push(HelpFrame(f))
	case ActionScorerNext:
		f.ScorerNext()
	case ActionPreviewToggle:
		f.Theme.ShowPreview = !f.Theme.ShowPreview
	case ActionPreviewLineNext:
		f.PreviewLineOffset++
	case ActionPreviewLinePrev:
		if f.PreviewLineOffset > 0 {
			f.PreviewLineOffset--
		}

	case ActionBind:
		c.emit(Event{Kind: EventBind, BindTag: action.Tag})
	}
}

func (c *Controller) dispatchHelp(f *Frame, action Action) {
	switch action.Kind {
	case ActionItemNext:
		if f.helpCursor < len(f.HelpEntries)-1 {
			f.helpCursor++
		}
	case ActionItemPrev:
		if f.helpCursor > 0 {
			f.helpCursor--
		}
	case ActionSelect:
		chosen := f.HelpEntries[f.helpCursor].Action
		c.Pop()
		c.dispatch(c.Active(), chosen)
	case ActionHelp:
		c.Pop()
	}
}

func (c *Controller) doSelect(f *Frame) {
	if f.Marks.Len() > 0 {
		items := c.markedCandidates(f)
		f.Marks.Clear()
		c.emit(Event{Kind: EventSelect, SelectItems: items})
		return
	}
	snapshot := f.Ranker.Result()
	if snapshot.Len() == 0 {
		if !c.RPCMode && c.NoMatchPolicy == NoMatchInput {
			c.emit(Event{Kind: EventSelect, SelectItems: []*candidate.Candidate{
				candidate.New(f.Input.String(), ' ', nil),
			}})
			return
		}
		c.emit(Event{Kind: EventSelect})
		return
	}
	if cur := c.currentCandidate(f); cur != nil {
		c.emit(Event{Kind: EventSelect, SelectItems: []*candidate.Candidate{cur}})
		return
	}
	c.emit(Event{Kind: EventSelect})
}

func (c *Controller) doMark(f *Frame) {
	snapshot := f.Ranker.Result()
	if item, ok := snapshot.Get(f.List.Cursor()); ok {
		f.Marks.Toggle(item.ID)
	}
	f.List.ItemNext(snapshot.Len())
}

func (c *Controller) doMarkAll(f *Frame) {
	snapshot := f.Ranker.Result()
	if f.Marks.Len() > 0 {
		f.Marks.Clear()
		return
	}
	for i := 0; i < snapshot.Len(); i++ {
		item, _ := snapshot.Get(i)
		f.Marks.Toggle(item.ID)
	}
}

// HandleResize emits a Resize event for the caller.
func (c *Controller) HandleResize(size term.Size) {
	c.emit(Event{Kind: EventResize, Resize: size})
}

// HandleWake processes all pending requests (used when woken with nothing
// else to do, e.g. after a ranker notify on a background thread).
func (c *Controller) HandleWake() { c.drainRequests() }

// HandleMouse locates the view tag at (x, y) by walking the layout tree;
// since the layout tree itself is out of scope, callers resolve (x, y) to
// a tag name themselves and pass it here instead of raw coordinates.
func (c *Controller) HandleMouse(release bool, tag string) {
	if !release || tag == "" {
		return
	}
	if action, ok := builtinTagAction(tag); ok {
		c.dispatch(c.Active(), action)
		return
	}
	c.emit(Event{Kind: EventBind, BindTag: tag})
}

func builtinTagAction(tag string) (Action, bool) {
	switch tag {
	case "select":
		return Builtin(ActionSelect), true
	case "mark":
		return Builtin(ActionMark), true
	case "item_next":
		return Builtin(ActionItemNext), true
	case "item_prev":
		return Builtin(ActionItemPrev), true
	}
	return Action{}, false
}
