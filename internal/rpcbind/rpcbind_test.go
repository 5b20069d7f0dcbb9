package rpcbind

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeptui/sweep/internal/controller"
	"github.com/sweeptui/sweep/internal/preview"
	"github.com/sweeptui/sweep/internal/rank"
	"github.com/sweeptui/sweep/internal/theme"
)

func testController(t *testing.T) (*controller.Controller, *rank.Ranker) {
	t.Helper()
	th, err := theme.FromPalette(theme.RGB{R: 230, G: 230, B: 230}, theme.RGB{R: 25, G: 25, B: 25}, theme.RGB{R: 50, G: 150, B: 230})
	if err != nil {
		t.Fatalf("FromPalette: %v", err)
	}
	r := rank.NewRanker(func(snap *rank.RankedItems) bool { return true })
	t.Cleanup(r.Terminate)
	f := controller.NewFrame(th, r, controller.DefaultKeyMap())
	c := controller.New(f)

	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })
	go func() {
		ticker := time.NewTicker(5 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Tick(40, 10)
			case <-stop:
				return
			}
		}
	}()
	return c, r
}

func TestNormalizeParamsPositionalAndNamed(t *testing.T) {
	names := []string{"a", "b"}
	pos, err := normalizeParams(json.RawMessage(`[1,"x"]`), names)
	if err != nil {
		t.Fatalf("positional: %v", err)
	}
	if string(pos["a"]) != "1" || string(pos["b"]) != `"x"` {
		t.Fatalf("got %v", pos)
	}

	named, err := normalizeParams(json.RawMessage(`{"b":"x","a":1}`), names)
	if err != nil {
		t.Fatalf("named: %v", err)
	}
	if string(named["a"]) != "1" || string(named["b"]) != `"x"` {
		t.Fatalf("got %v", named)
	}

	empty, err := normalizeParams(nil, names)
	if err != nil || len(empty) != 0 {
		t.Fatalf("nil params should normalize to empty map, got %v err=%v", empty, err)
	}
}

func TestDispatchUnknownMethod(t *testing.T) {
	reg := NewRegistry(nil, nil)
	_, rpcErr := reg.Dispatch("does_not_exist", nil)
	if rpcErr == nil || rpcErr.Code != CodeMethodNotFound {
		t.Fatalf("got %+v, want MethodNotFound", rpcErr)
	}
}

func TestItemsExtendThenQuerySetThenItemsCurrent(t *testing.T) {
	c, _ := testController(t)
	reg := NewRegistry(c, nil)

	_, rpcErr := reg.Dispatch("items_extend", json.RawMessage(`{"items":[
		{"fields":[{"text":"alpha","active":true}]},
		{"fields":[{"text":"beta","active":true}]}
	]}`))
	if rpcErr != nil {
		t.Fatalf("items_extend: %v", rpcErr)
	}
	time.Sleep(50 * time.Millisecond)

	_, rpcErr = reg.Dispatch("query_set", json.RawMessage(`{"query":"bet"}`))
	if rpcErr != nil {
		t.Fatalf("query_set: %v", rpcErr)
	}
	time.Sleep(50 * time.Millisecond)

	result, rpcErr := reg.Dispatch("items_current", nil)
	if rpcErr != nil {
		t.Fatalf("items_current: %v", rpcErr)
	}
	cur, ok := result.(candidateWire)
	if !ok || len(cur.Fields) != 1 || cur.Fields[0].Text != "beta" {
		t.Fatalf("got %+v, want candidate \"beta\"", result)
	}
}

func TestItemsMarkedEmptyBeforeAnyMark(t *testing.T) {
	c, _ := testController(t)
	reg := NewRegistry(c, nil)

	result, rpcErr := reg.Dispatch("items_marked", nil)
	if rpcErr != nil {
		t.Fatalf("items_marked: %v", rpcErr)
	}
	marked, ok := result.([]candidateWire)
	if !ok || len(marked) != 0 {
		t.Fatalf("got %+v, want empty slice", result)
	}
}

func TestItemsCurrentSeesThroughPreviewWrapper(t *testing.T) {
	c, _ := testController(t)
	argv, err := preview.ParseTemplate("{}")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	reg := NewRegistry(c, preview.NewRunner([]*preview.Template{argv}))

	_, rpcErr := reg.Dispatch("items_extend", json.RawMessage(`{"items":[{"fields":[{"text":"gamma","active":true}]}]}`))
	if rpcErr != nil {
		t.Fatalf("items_extend: %v", rpcErr)
	}
	time.Sleep(50 * time.Millisecond)

	result, rpcErr := reg.Dispatch("items_current", nil)
	if rpcErr != nil {
		t.Fatalf("items_current: %v", rpcErr)
	}
	cur, ok := result.(candidateWire)
	if !ok || len(cur.Fields) != 1 || cur.Fields[0].Text != "gamma" {
		t.Fatalf("got %+v, want candidate \"gamma\" (a preview-wrapped item should still unwrap)", result)
	}
}

func TestBindRejectsMalformedChord(t *testing.T) {
	reg := NewRegistry(nil, nil)
	_, rpcErr := reg.Dispatch("bind", json.RawMessage(`{"key":"unknownmod+x","tag":"t"}`))
	if rpcErr == nil || rpcErr.Code != CodeInvalidParams {
		t.Fatalf("got %+v, want InvalidParams for a bad chord", rpcErr)
	}
}

func TestConnServeRoundTrip(t *testing.T) {
	c, _ := testController(t)
	reg := NewRegistry(c, nil)

	var out bytes.Buffer
	conn := NewConn(reg, &out)

	in := bytes.NewBufferString(`{"id":1,"method":"query_get","params":{}}` + "\n")
	if err := conn.Serve(in); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	var resp response
	if err := json.Unmarshal(bytes.TrimSpace(out.Bytes()), &resp); err != nil {
		t.Fatalf("decode response: %v, raw=%s", err, out.String())
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error response: %+v", resp.Error)
	}
}
