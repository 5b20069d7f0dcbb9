package rpcbind

import (
	"encoding/json"

	"github.com/sweeptui/sweep/internal/candidate"
	"github.com/sweeptui/sweep/internal/controller"
	"github.com/sweeptui/sweep/internal/keymap"
	"github.com/sweeptui/sweep/internal/preview"
)

// Registry dispatches RPC method calls onto a controller's request queue.
type Registry struct {
	ctrl *controller.Controller
	// Runner, if non-nil, gives every candidate pushed through
	// items_extend/item_update a process preview the same way the
	// line-oriented CLI's --preview-cmd does, instead of the caller having
	// to implement its own preview plumbing over the wire.
	Runner *preview.Runner
}

func NewRegistry(ctrl *controller.Controller, runner *preview.Runner) *Registry {
	return &Registry{ctrl: ctrl, Runner: runner}
}

// Dispatch decodes params (positional or named) for method, applies it to
// the controller, and returns the JSON-able result or an RPC error.
func (reg *Registry) Dispatch(method string, rawParams json.RawMessage) (any, *RPCError) {
	h, ok := methods[method]
	if !ok {
		return nil, newError(CodeMethodNotFound, "unknown method %q", method)
	}
	return h(reg, rawParams)
}

type handler func(reg *Registry, raw json.RawMessage) (any, *RPCError)

// submit enqueues req without waiting for any reply.
func submit(ctrl *controller.Controller, req controller.Request) {
	ctrl.Submit(req)
}

// submitAndWait enqueues req and blocks until the controller's next tick
// answers it; there is no internal timeout.
func submitAndWait(ctrl *controller.Controller, req controller.Request) any {
	reply := make(chan any, 1)
	req.Reply = reply
	ctrl.Submit(req)
	return <-reply
}

// wrapForPreview attaches reg's process-preview Runner to c, if one is
// configured; otherwise c is returned as-is (a bare Candidate already
// reports "no large preview").
func (reg *Registry) wrapForPreview(c *candidate.Candidate) candidate.Haystack {
	if reg.Runner == nil {
		return c
	}
	return &preview.CandidatePreview{Candidate: c, Runner: reg.Runner}
}

var methods = map[string]handler{
	"items_extend": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		params, err := normalizeParams(raw, []string{"items"})
		if err != nil {
			return nil, newError(CodeInvalidParams, "%v", err)
		}
		var wire []candidateWire
		if _, err := unmarshalInto(params, "items", &wire); err != nil {
			return nil, newError(CodeInvalidParams, "items: %v", err)
		}
		items := make([]candidate.Haystack, len(wire))
		for i, w := range wire {
			items[i] = reg.wrapForPreview(w.toCandidate())
		}
		submit(reg.ctrl, controller.Request{Kind: controller.ReqItemsExtend, Items: items})
		return nil, nil
	},

	"item_update": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		params, err := normalizeParams(raw, []string{"index", "item"})
		if err != nil {
			return nil, newError(CodeInvalidParams, "%v", err)
		}
		var index int
		if present, err := unmarshalInto(params, "index", &index); err != nil || !present {
			return nil, newError(CodeInvalidParams, "missing or invalid index")
		}
		var wire candidateWire
		if present, err := unmarshalInto(params, "item", &wire); err != nil || !present {
			return nil, newError(CodeInvalidParams, "missing or invalid item")
		}
		submit(reg.ctrl, controller.Request{
			Kind:        controller.ReqItemUpdate,
			UpdateIndex: index,
			Items:       []candidate.Haystack{reg.wrapForPreview(wire.toCandidate())},
		})
		return nil, nil
	},

	"items_clear": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		submit(reg.ctrl, controller.Request{Kind: controller.ReqItemsClear})
		return nil, nil
	},

	"items_current": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		v := submitAndWait(reg.ctrl, controller.Request{Kind: controller.ReqItemsCurrent})
		cur, _ := v.(*candidate.Candidate)
		if cur == nil {
			return nil, nil
		}
		return fromCandidate(cur), nil
	},

	"items_marked": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		v := submitAndWait(reg.ctrl, controller.Request{Kind: controller.ReqItemsMarked})
		marked, _ := v.([]*candidate.Candidate)
		out := make([]candidateWire, len(marked))
		for i, c := range marked {
			out[i] = fromCandidate(c)
		}
		return out, nil
	},

	"cursor_set": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		params, err := normalizeParams(raw, []string{"position"})
		if err != nil {
			return nil, newError(CodeInvalidParams, "%v", err)
		}
		var position int
		if present, err := unmarshalInto(params, "position", &position); err != nil || !present {
			return nil, newError(CodeInvalidParams, "missing or invalid position")
		}
		submit(reg.ctrl, controller.Request{Kind: controller.ReqCursorSet, CursorPosition: position})
		return nil, nil
	},

	"query_set": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		params, err := normalizeParams(raw, []string{"query"})
		if err != nil {
			return nil, newError(CodeInvalidParams, "%v", err)
		}
		var query string
		if present, err := unmarshalInto(params, "query", &query); err != nil || !present {
			return nil, newError(CodeInvalidParams, "missing or invalid query")
		}
		submit(reg.ctrl, controller.Request{Kind: controller.ReqQuerySet, Query: query})
		return nil, nil
	},

	"query_get": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		v := submitAndWait(reg.ctrl, controller.Request{Kind: controller.ReqQueryGet})
		s, _ := v.(string)
		return s, nil
	},

	"prompt_set": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		params, err := normalizeParams(raw, []string{"prompt", "icon"})
		if err != nil {
			return nil, newError(CodeInvalidParams, "%v", err)
		}
		req := controller.Request{Kind: controller.ReqPromptSet}
		var prompt string
		if present, err := unmarshalInto(params, "prompt", &prompt); err != nil {
			return nil, newError(CodeInvalidParams, "prompt: %v", err)
		} else if present {
			req.Prompt = &prompt
		}
		var icon string
		if present, err := unmarshalInto(params, "icon", &icon); err != nil {
			return nil, newError(CodeInvalidParams, "icon: %v", err)
		} else if present {
			req.PromptIcon = &icon
		}
		submit(reg.ctrl, req)
		return nil, nil
	},

	"footer_set": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		params, err := normalizeParams(raw, []string{"footer"})
		if err != nil {
			return nil, newError(CodeInvalidParams, "%v", err)
		}
		req := controller.Request{Kind: controller.ReqFooterSet}
		var footer string
		if present, err := unmarshalInto(params, "footer", &footer); err != nil {
			return nil, newError(CodeInvalidParams, "footer: %v", err)
		} else if present {
			req.Footer = &footer
		}
		submit(reg.ctrl, req)
		return nil, nil
	},

	"bind": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		params, err := normalizeParams(raw, []string{"key", "tag", "desc"})
		if err != nil {
			return nil, newError(CodeInvalidParams, "%v", err)
		}
		var key, tag string
		if present, err := unmarshalInto(params, "key", &key); err != nil || !present {
			return nil, newError(CodeInvalidParams, "missing or invalid key")
		}
		if present, err := unmarshalInto(params, "tag", &tag); err != nil || !present {
			return nil, newError(CodeInvalidParams, "missing or invalid tag")
		}
		if _, err := keymap.ParseChord(key); err != nil {
			return nil, newError(CodeInvalidParams, "key: %v", err)
		}
		submit(reg.ctrl, controller.Request{Kind: controller.ReqBind, BindChord: key, BindTag: tag})
		return nil, nil
	},

	"preview_set": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		params, err := normalizeParams(raw, []string{"value"})
		if err != nil {
			return nil, newError(CodeInvalidParams, "%v", err)
		}
		req := controller.Request{Kind: controller.ReqPreviewSet}
		var value bool
		if present, err := unmarshalInto(params, "value", &value); err != nil {
			return nil, newError(CodeInvalidParams, "value: %v", err)
		} else if present {
			req.PreviewValue = &value
		}
		submit(reg.ctrl, req)
		return nil, nil
	},

	"state_push": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		submit(reg.ctrl, controller.Request{Kind: controller.ReqStatePush})
		return nil, nil
	},

	"state_pop": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		submit(reg.ctrl, controller.Request{Kind: controller.ReqStatePop})
		return nil, nil
	},

	"render_suppress": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		params, err := normalizeParams(raw, []string{"suppress"})
		if err != nil {
			return nil, newError(CodeInvalidParams, "%v", err)
		}
		var suppress bool
		if present, err := unmarshalInto(params, "suppress", &suppress); err != nil || !present {
			return nil, newError(CodeInvalidParams, "missing or invalid suppress")
		}
		submit(reg.ctrl, controller.Request{Kind: controller.ReqRenderSuppress, Suppress: suppress})
		return nil, nil
	},

	"terminate": func(reg *Registry, raw json.RawMessage) (any, *RPCError) {
		submit(reg.ctrl, controller.Request{Kind: controller.ReqTerminate})
		return nil, nil
	},
}
