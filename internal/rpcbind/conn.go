package rpcbind

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"github.com/sweeptui/sweep/internal/controller"
)

// Conn serves one RPC peer: newline-delimited JSON frames in both
// directions, requests dispatched through a Registry, and the
// controller's select/bind/resize notifications forwarded out as they
// arrive. Each request is handled in its own goroutine so a blocking
// query (one that waits for the controller's next render tick) never
// stalls unrelated calls, mirroring the async-runtime-plus-futures model
// per connection.
type Conn struct {
	reg *Registry

	writeMu sync.Mutex
	enc     *json.Encoder

	wg sync.WaitGroup
}

// NewConn wraps w as the writing side of a newline-delimited JSON RPC peer
// dispatching through reg; Serve takes the reading side.
func NewConn(reg *Registry, w io.Writer) *Conn {
	return &Conn{reg: reg, enc: json.NewEncoder(w)}
}

// Serve reads frames from r until EOF or a transport error, dispatching
// each to the registry and writing back a response (if the frame carried
// an id) or nothing (if it was a fire-and-forget notification). It
// returns once r is exhausted and all in-flight handlers have replied.
func (c *Conn) Serve(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		buf := append([]byte(nil), line...)
		c.wg.Add(1)
		go c.handle(buf)
	}
	c.wg.Wait()
	return sc.Err()
}

func (c *Conn) handle(line []byte) {
	defer c.wg.Done()

	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		c.writeResponse(nil, nil, newError(CodeParseError, "malformed JSON-RPC frame: %v", err))
		return
	}
	if req.Method == "" {
		c.writeResponse(req.ID, nil, newError(CodeInvalidRequest, "missing method"))
		return
	}

	result, rpcErr := c.reg.Dispatch(req.Method, req.Params)
	if len(req.ID) == 0 {
		return // fire-and-forget: never reply, even on error
	}
	c.writeResponse(req.ID, result, rpcErr)
}

func (c *Conn) writeResponse(id json.RawMessage, result any, rpcErr *RPCError) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.enc.Encode(response{ID: id, Result: result, Error: rpcErr})
}

// Notify forwards ev as a framed notification. Safe to call concurrently
// with Serve's own response writes.
func (c *Conn) Notify(method string, params any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.enc.Encode(notification{Method: method, Params: params})
}

// ForwardEvents drains ctrl's event channel onto this connection as
// notifications (select/bind/resize) until the event channel is closed or
// the given stop channel closes, whichever comes first.
func (c *Conn) ForwardEvents(ctrl *controller.Controller, stop <-chan struct{}) {
	for {
		select {
		case ev, ok := <-ctrl.Events():
			if !ok {
				return
			}
			c.forwardOne(ev)
		case <-stop:
			return
		}
	}
}

func (c *Conn) forwardOne(ev controller.Event) {
	switch ev.Kind {
	case controller.EventSelect:
		items := make([]candidateWire, len(ev.SelectItems))
		for i, it := range ev.SelectItems {
			items[i] = fromCandidate(it)
		}
		_ = c.Notify("select", map[string]any{"items": items})
	case controller.EventBind:
		_ = c.Notify("bind", map[string]any{"tag": ev.BindTag, "key": ev.BindKey})
	case controller.EventResize:
		pxPerCellW, pxPerCellH := 0.0, 0.0
		if ev.Resize.WidthCells > 0 {
			pxPerCellW = float64(ev.Resize.WidthPx) / float64(ev.Resize.WidthCells)
		}
		if ev.Resize.HeightCells > 0 {
			pxPerCellH = float64(ev.Resize.HeightPx) / float64(ev.Resize.HeightCells)
		}
		_ = c.Notify("resize", map[string]any{
			"cells":           map[string]int{"width": ev.Resize.WidthCells, "height": ev.Resize.HeightCells},
			"pixels":          map[string]int{"width": ev.Resize.WidthPx, "height": ev.Resize.HeightPx},
			"pixels_per_cell": map[string]float64{"width": pxPerCellW, "height": pxPerCellH},
		})
	}
}
