//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/drawdeck/drawdeck/backend-go/internal/board"
	"github.com/drawdeck/drawdeck/backend-go/internal/engine"
	"github.com/drawdeck/drawdeck/backend-go/internal/geometry"
	"github.com/drawdeck/drawdeck/backend-go/internal/history"
)

var (
	store  *board.Store
	log    *history.Log
	editor *engine.Editor
)

// jsBroadcaster forwards committed gesture summaries to a JS callback so
// the frontend can relay them over the collaboration channel.
type jsBroadcaster struct {
	callback js.Value
}

func (b *jsBroadcaster) GestureCommitted(summary engine.GestureSummary) {
	if b.callback.IsUndefined() || b.callback.IsNull() {
		return
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	b.callback.Invoke(string(data))
}

var broadcaster = &jsBroadcaster{callback: js.Undefined()}

func main() {
	store = board.NewStore()
	log = history.NewLog(store)
	editor = engine.New(store, log, broadcaster)

	deck := js.Global().Get("Object").New()

	// --- Pointer and keyboard events ---
	deck.Set("onPointerDown", js.FuncOf(onPointerDown))
	deck.Set("onPointerMove", js.FuncOf(onPointerMove))
	deck.Set("onPointerUp", js.FuncOf(onPointerUp))
	deck.Set("onKeyDown", js.FuncOf(onKeyDown))
	deck.Set("cancelGesture", js.FuncOf(cancelGesture))

	// --- Tool configuration ---
	deck.Set("setTool", js.FuncOf(setTool))
	deck.Set("setEraser", js.FuncOf(setEraser))
	deck.Set("setBrush", js.FuncOf(setBrush))
	deck.Set("setShapeStyle", js.FuncOf(setShapeStyle))
	deck.Set("setTextStyle", js.FuncOf(setTextStyle))
	deck.Set("commitText", js.FuncOf(commitText))

	// --- Commands ---
	deck.Set("loadBoard", js.FuncOf(loadBoard))
	deck.Set("applyRemoteOperation", js.FuncOf(applyRemoteOperation))
	deck.Set("bringForward", js.FuncOf(bringForward))
	deck.Set("sendBackward", js.FuncOf(sendBackward))
	deck.Set("deleteSelection", js.FuncOf(deleteSelection))
	deck.Set("clearBoard", js.FuncOf(clearBoard))
	deck.Set("undo", js.FuncOf(undo))
	deck.Set("redo", js.FuncOf(redo))
	deck.Set("setGestureCallback", js.FuncOf(setGestureCallback))

	// --- Queries ---
	deck.Set("getBoard", js.FuncOf(getBoard))
	deck.Set("getSelection", js.FuncOf(getSelection))
	deck.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	deck.Set("getMarquee", js.FuncOf(getMarquee))
	deck.Set("getPreview", js.FuncOf(getPreview))
	deck.Set("getPendingText", js.FuncOf(getPendingText))
	deck.Set("getTool", js.FuncOf(getTool))

	js.Global().Set("drawdeckEngine", deck)

	// Signal that WASM is ready
	js.Global().Set("drawdeckWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func eventModifiers(args []js.Value, idx int) engine.Modifiers {
	if len(args) <= idx || args[idx].Type() != js.TypeObject {
		return engine.Modifiers{}
	}
	ev := args[idx]
	return engine.Modifiers{
		Shift: ev.Get("shiftKey").Truthy(),
		Ctrl:  ev.Get("ctrlKey").Truthy(),
		Meta:  ev.Get("metaKey").Truthy(),
		Alt:   ev.Get("altKey").Truthy(),
	}
}

// --- Event Handlers ---

func onPointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	pos := geometry.Point{X: args[0].Float(), Y: args[1].Float()}
	editor.OnPointerDown(pos, eventModifiers(args, 2))
	return nil
}

func onPointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	pos := geometry.Point{X: args[0].Float(), Y: args[1].Float()}
	editor.OnPointerMove(pos, eventModifiers(args, 2))
	return nil
}

func onPointerUp(this js.Value, args []js.Value) interface{} {
	editor.OnPointerUp()
	return nil
}

func onKeyDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	editor.OnKeyDown(args[0].String(), eventModifiers(args, 1))
	return nil
}

func cancelGesture(this js.Value, args []js.Value) interface{} {
	editor.CancelGesture()
	return nil
}

// --- Tool configuration ---

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	editor.SetTool(engine.Tool(args[0].String()))
	return nil
}

func setEraser(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	editor.SetEraser(engine.EraserMode(args[0].String()), args[1].Float())
	return nil
}

func setBrush(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	var brush engine.BrushProfile
	if err := json.Unmarshal([]byte(args[0].String()), &brush); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	editor.SetBrush(brush)
	return nil
}

func setShapeStyle(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	var style board.ShapeStyle
	if err := json.Unmarshal([]byte(args[0].String()), &style); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	editor.SetShapeStyle(style)
	return nil
}

func setTextStyle(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	var style engine.TextStyle
	if err := json.Unmarshal([]byte(args[0].String()), &style); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	editor.SetTextStyle(style)
	return nil
}

func commitText(this js.Value, args []js.Value) interface{} {
	content := ""
	if len(args) > 0 {
		content = args[0].String()
	}
	editor.CommitPendingText(content)
	return nil
}

// --- Commands ---

func loadBoard(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}

	var doc board.Document
	if err := json.Unmarshal([]byte(args[0].String()), &doc); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	store.Restore(doc)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// applyRemoteOperation upserts or removes one object from a remote peer
// without touching local history or selection.
func applyRemoteOperation(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing operation"})
	}
	opType := args[0].String()
	payload := args[1].String()

	var err error
	switch opType {
	case "shape.upsert":
		var s board.Shape
		if err = json.Unmarshal([]byte(payload), &s); err == nil {
			store.UpsertShape(s)
		}
	case "shape.delete":
		store.RemoveShape(payload)
	case "stroke.upsert":
		var s board.StrokeLine
		if err = json.Unmarshal([]byte(payload), &s); err == nil {
			store.UpsertStroke(s)
		}
	case "stroke.delete":
		store.RemoveStroke(payload)
	case "text.upsert":
		var t board.TextAnnotation
		if err = json.Unmarshal([]byte(payload), &t); err == nil {
			store.UpsertText(t)
		}
	case "text.delete":
		store.RemoveText(payload)
	case "board.clear":
		store.Clear()
	}

	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func bringForward(this js.Value, args []js.Value) interface{} {
	editor.BringForward()
	return nil
}

func sendBackward(this js.Value, args []js.Value) interface{} {
	editor.SendBackward()
	return nil
}

func deleteSelection(this js.Value, args []js.Value) interface{} {
	editor.DeleteSelection()
	return nil
}

func clearBoard(this js.Value, args []js.Value) interface{} {
	editor.Clear()
	return nil
}

func undo(this js.Value, args []js.Value) interface{} {
	log.Undo()
	return nil
}

func redo(this js.Value, args []js.Value) interface{} {
	log.Redo()
	return nil
}

func setGestureCallback(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		broadcaster.callback = js.Undefined()
		return nil
	}
	broadcaster.callback = args[0]
	return nil
}

// --- Queries ---

func getBoard(this js.Value, args []js.Value) interface{} {
	return marshalJSON(store.Snapshot())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	sel := editor.Selection()
	return marshalJSON(map[string][]string{
		"shapes":  keys(sel.Shapes),
		"strokes": keys(sel.Strokes),
		"texts":   keys(sel.Texts),
	})
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	box := editor.SelectionBounds()
	if box == nil {
		return js.ValueOf("null")
	}
	return marshalJSON(box)
}

func getMarquee(this js.Value, args []js.Value) interface{} {
	box := editor.MarqueeRect()
	if box == nil {
		return js.ValueOf("null")
	}
	return marshalJSON(box)
}

func getPreview(this js.Value, args []js.Value) interface{} {
	if s := editor.PreviewShape(); s != nil {
		return marshalJSON(map[string]interface{}{"kind": "shape", "object": s})
	}
	if s := editor.PreviewStroke(); s != nil {
		return marshalJSON(map[string]interface{}{"kind": "stroke", "object": s})
	}
	return js.ValueOf("null")
}

func getPendingText(this js.Value, args []js.Value) interface{} {
	t := editor.PendingText()
	if t == nil {
		return js.ValueOf("null")
	}
	return marshalJSON(t)
}

func getTool(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(string(editor.Tool()))
}

func marshalJSON(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return js.ValueOf("null")
	}
	return js.ValueOf(string(data))
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
