// Package engine decides, for every pointer sample, what the active tool
// means in terms of object mutation: hit-testing, selection, creation
// drags, transforms, z-reordering, and erasing. It owns selection and
// transient gesture state exclusively; collaborators receive committed
// mutations through the Store, History and Broadcaster boundaries.
package engine

import (
	"reflect"

	"github.com/drawdeck/drawdeck/backend-go/internal/board"
	"github.com/drawdeck/drawdeck/backend-go/internal/geometry"
	"github.com/drawdeck/drawdeck/backend-go/internal/history"
	"github.com/drawdeck/drawdeck/backend-go/internal/typeid"
)

// Tool is the currently active drawing tool.
type Tool string

const (
	ToolSelect    Tool = "select"
	ToolRectangle Tool = "rectangle"
	ToolCircle    Tool = "circle"
	ToolEllipse   Tool = "ellipse"
	ToolLine      Tool = "line"
	ToolArrow     Tool = "arrow"
	ToolTriangle  Tool = "triangle"
	ToolPen       Tool = "pen"
	ToolEraser    Tool = "eraser"
	ToolText      Tool = "text"
)

// minCreateSize discards creation drags smaller than this in both axes.
const minCreateSize = 5.0

// Modifiers carries the keyboard modifier state of an input event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Meta  bool
	Alt   bool
}

// primary reports the platform primary modifier (Ctrl or Cmd).
func (m Modifiers) primary() bool {
	return m.Ctrl || m.Meta
}

// Store is the object-list collaborator. The engine reads the three lists
// at the start of each handler invocation and writes back only through the
// Replace methods.
type Store interface {
	Shapes() []board.Shape
	Strokes() []board.StrokeLine
	Texts() []board.TextAnnotation
	ReplaceShapes([]board.Shape)
	ReplaceStrokes([]board.StrokeLine)
	ReplaceTexts([]board.TextAnnotation)
}

// History is the history collaborator. The engine is fire-and-forget
// toward Record and delegates undo/redo without engine-side state.
type History interface {
	Record(history.Record)
	Undo()
	Redo()
}

// AffectedObject names one object touched by a committed gesture.
type AffectedObject struct {
	Category board.Category `json:"category"`
	ID       string         `json:"id"`
	Fields   map[string]any `json:"fields,omitempty"`
}

// GestureSummary is the serializable record handed to the broadcast
// collaborator after a gesture commits.
type GestureSummary struct {
	Type     string           `json:"type"`
	Affected []AffectedObject `json:"affected"`
}

// Broadcaster receives a summary after commit of move/resize/rotate/
// reorder/erase/create/delete gestures.
type Broadcaster interface {
	GestureCommitted(GestureSummary)
}

// BrushProfile configures strokes created by the pen tool.
type BrushProfile struct {
	Color         string
	Width         float64
	LineCap       string
	LineJoin      string
	Tension       float64
	Dash          []float64
	Opacity       float64
	CompositeMode string
}

// DefaultBrush returns the starting pen profile.
func DefaultBrush() BrushProfile {
	return BrushProfile{
		Color:    "#1a1a2e",
		Width:    3,
		LineCap:  "round",
		LineJoin: "round",
		Opacity:  1,
	}
}

// TextStyle configures annotations created by the text tool.
type TextStyle struct {
	FontSize       float64
	FontFamily     string
	FontWeight     string
	FontStyle      string
	TextDecoration string
}

// DefaultTextStyle returns the starting text style.
func DefaultTextStyle() TextStyle {
	return TextStyle{FontSize: 16, FontFamily: "Arial"}
}

// selectionSnapshot captures the pre-gesture state of every selected
// object so transforms can be recomputed from fixed origins and commits
// can diff against it.
type selectionSnapshot struct {
	shapes  map[string]board.Shape
	strokes map[string]board.StrokeLine
	texts   map[string]board.TextAnnotation
}

// gestureState is the explicit tagged variant threaded through the three
// pointer handlers. Exactly one variant is live at a time.
type gestureState interface{ isGesture() }

type gestureIdle struct{}

type gestureDrawing struct {
	origin  geometry.Point
	preview board.Shape
}

type gesturePenDrawing struct {
	stroke board.StrokeLine
}

type gestureDragging struct {
	last             geometry.Point
	totalDX, totalDY float64
	snap             selectionSnapshot

	// Set when the gesture began with a plain click on an already
	// selected member. If the pointer never moves, the selection
	// collapses to this element on release.
	clickCategory board.Category
	clickID       string
}

type gestureResizing struct {
	handle Handle
	anchor geometry.BoundingBox
	snap   selectionSnapshot
}

type gestureRotating struct {
	startAngle float64
	center     geometry.Point
	snap       selectionSnapshot
}

type gestureMarqueeing struct {
	origin  geometry.Point
	current geometry.Point
}

type gestureErasing struct {
	preShapes  []board.Shape
	preStrokes []board.StrokeLine
	preTexts   []board.TextAnnotation
}

func (gestureIdle) isGesture()       {}
func (gestureDrawing) isGesture()    {}
func (gesturePenDrawing) isGesture() {}
func (gestureDragging) isGesture()   {}
func (gestureResizing) isGesture()   {}
func (gestureRotating) isGesture()   {}
func (gestureMarqueeing) isGesture() {}
func (gestureErasing) isGesture()    {}

// Editor is the interaction state machine. It is single-threaded: pointer
// and keyboard events are processed to completion before the next one is
// dispatched, and gesture state never survives a pointer-up.
type Editor struct {
	store     Store
	history   History
	broadcast Broadcaster

	tool         Tool
	shapeStyle   board.ShapeStyle
	brush        BrushProfile
	textStyle    TextStyle
	eraserMode   EraserMode
	eraserRadius float64

	sel         *Selection
	gesture     gestureState
	fragIDs     *fragmentIDs
	pendingText *board.TextAnnotation
}

// New creates an editor bound to its collaborators. hist and broadcast
// may be nil.
func New(store Store, hist History, broadcast Broadcaster) *Editor {
	return &Editor{
		store:        store,
		history:      hist,
		broadcast:    broadcast,
		tool:         ToolSelect,
		shapeStyle:   board.ShapeStyle{Stroke: "#1a1a2e", StrokeWidth: 2},
		brush:        DefaultBrush(),
		textStyle:    DefaultTextStyle(),
		eraserMode:   EraseModePixel,
		eraserRadius: 10,
		sel:          NewSelection(),
		gesture:      gestureIdle{},
		fragIDs:      newFragmentIDs(),
	}
}

// --- Configuration ---

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// SetTool switches tools, cancelling any in-flight gesture and pending
// text entry.
func (e *Editor) SetTool(t Tool) {
	e.CancelGesture()
	e.pendingText = nil
	e.tool = t
}

// SetShapeStyle sets the style applied to newly created shapes.
func (e *Editor) SetShapeStyle(s board.ShapeStyle) { e.shapeStyle = s }

// SetBrush sets the pen profile applied to newly created strokes.
func (e *Editor) SetBrush(b BrushProfile) { e.brush = b }

// SetTextStyle sets the style applied to newly created annotations.
func (e *Editor) SetTextStyle(t TextStyle) { e.textStyle = t }

// SetEraser configures eraser mode and radius.
func (e *Editor) SetEraser(mode EraserMode, radius float64) {
	e.eraserMode = mode
	if radius > 0 {
		e.eraserRadius = radius
	}
}

// --- Read accessors ---

// Selection returns a copy of the current selection sets.
func (e *Editor) Selection() Selection { return e.sel.Copy() }

// SelectionBounds returns the union box of the selection, or nil when
// empty.
func (e *Editor) SelectionBounds() *geometry.BoundingBox {
	return SelectionBounds(e.sel, e.store.Shapes(), e.store.Strokes(), e.store.Texts())
}

// MarqueeRect returns the live marquee rectangle, or nil outside a
// marquee gesture.
func (e *Editor) MarqueeRect() *geometry.BoundingBox {
	g, ok := e.gesture.(gestureMarqueeing)
	if !ok {
		return nil
	}
	box := marqueeBox(g.origin, g.current)
	return &box
}

// PreviewShape returns the in-flight creation preview, or nil.
func (e *Editor) PreviewShape() *board.Shape {
	g, ok := e.gesture.(gestureDrawing)
	if !ok {
		return nil
	}
	s := g.preview
	return &s
}

// PreviewStroke returns the in-flight pen stroke, or nil.
func (e *Editor) PreviewStroke() *board.StrokeLine {
	g, ok := e.gesture.(gesturePenDrawing)
	if !ok {
		return nil
	}
	s := g.stroke
	return &s
}

// PendingText returns the placed-but-uncommitted text annotation, or nil.
func (e *Editor) PendingText() *board.TextAnnotation {
	if e.pendingText == nil {
		return nil
	}
	t := *e.pendingText
	return &t
}

// --- Pointer handlers ---

// OnPointerDown begins a gesture for the active tool.
func (e *Editor) OnPointerDown(pos geometry.Point, mods Modifiers) {
	if !pos.IsFinite() {
		return
	}

	switch e.tool {
	case ToolSelect:
		e.pointerDownSelect(pos, mods)

	case ToolRectangle, ToolCircle, ToolEllipse, ToolLine, ToolArrow, ToolTriangle:
		e.gesture = gestureDrawing{
			origin:  pos,
			preview: e.newShapeAt(pos),
		}

	case ToolPen:
		e.gesture = gesturePenDrawing{stroke: board.StrokeLine{
			ID:            typeid.NewStrokeID(),
			Points:        []float64{pos.X, pos.Y},
			Color:         e.brush.Color,
			Width:         e.brush.Width,
			LineCap:       e.brush.LineCap,
			LineJoin:      e.brush.LineJoin,
			Tension:       e.brush.Tension,
			Dash:          e.brush.Dash,
			Opacity:       e.brush.Opacity,
			CompositeMode: e.brush.CompositeMode,
		}}

	case ToolEraser:
		e.gesture = gestureErasing{
			preShapes:  e.store.Shapes(),
			preStrokes: e.store.Strokes(),
			preTexts:   e.store.Texts(),
		}
		e.eraseAt(pos)

	case ToolText:
		e.pendingText = &board.TextAnnotation{
			ID:             typeid.NewTextID(),
			X:              pos.X,
			Y:              pos.Y,
			FontSize:       e.textStyle.FontSize,
			FontFamily:     e.textStyle.FontFamily,
			FontWeight:     e.textStyle.FontWeight,
			FontStyle:      e.textStyle.FontStyle,
			TextDecoration: e.textStyle.TextDecoration,
		}
	}
}

func (e *Editor) pointerDownSelect(pos geometry.Point, mods Modifiers) {
	if box := e.SelectionBounds(); box != nil {
		if h, ok := handleAt(*box, pos); ok {
			if h == HandleRotate {
				e.gesture = gestureRotating{
					startAngle: pointerAngle(pos, box.Center()),
					center:     box.Center(),
					snap:       e.snapshotSelection(),
				}
			} else {
				e.gesture = gestureResizing{
					handle: h,
					anchor: *box,
					snap:   e.snapshotSelection(),
				}
			}
			return
		}
	}

	category, id, hit := FindElementAtPoint(e.store.Shapes(), e.store.Strokes(), e.store.Texts(), pos.X, pos.Y)
	if !hit {
		e.gesture = gestureMarqueeing{origin: pos, current: pos}
		return
	}

	g := gestureDragging{last: pos}
	if mods.Shift {
		e.sel.Toggle(category, id)
		if !e.sel.Has(category, id) {
			// Shift-click deselected the element; nothing to drag.
			return
		}
	} else if e.sel.Has(category, id) {
		// A group drag may start from any selected member. The click
		// only replaces the selection if the pointer never moves.
		g.clickCategory = category
		g.clickID = id
	} else {
		e.sel.SelectOnly(category, id)
	}

	g.snap = e.snapshotSelection()
	e.gesture = g
}

// OnPointerMove advances the in-flight gesture, if any.
func (e *Editor) OnPointerMove(pos geometry.Point, mods Modifiers) {
	if !pos.IsFinite() {
		return
	}

	switch g := e.gesture.(type) {
	case gestureDrawing:
		g.preview = updatePreview(g.preview, g.origin, pos)
		e.gesture = g

	case gesturePenDrawing:
		g.stroke.Points = append(g.stroke.Points, pos.X, pos.Y)
		e.gesture = g

	case gestureDragging:
		dx := pos.X - g.last.X
		dy := pos.Y - g.last.Y
		e.applyTranslate(dx, dy)
		g.last = pos
		g.totalDX += dx
		g.totalDY += dy
		e.gesture = g

	case gestureResizing:
		newBox := resizeBox(g.anchor, g.handle, pos, mods.Shift)
		e.applyResize(g.snap, g.anchor, newBox, g.handle)

	case gestureRotating:
		delta := pointerAngle(pos, g.center) - g.startAngle
		if mods.Shift {
			delta = snapAngle(delta)
		}
		e.applyRotation(g.snap, delta)

	case gestureMarqueeing:
		g.current = pos
		e.gesture = g

	case gestureErasing:
		e.eraseAt(pos)
	}
}

// OnPointerUp commits the in-flight gesture and discards its transient
// state unconditionally.
func (e *Editor) OnPointerUp() {
	gesture := e.gesture
	e.gesture = gestureIdle{}

	switch g := gesture.(type) {
	case gestureDrawing:
		e.commitCreatedShape(g.preview)

	case gesturePenDrawing:
		e.commitCreatedStroke(g.stroke)

	case gestureDragging:
		if g.clickID != "" && g.totalDX == 0 && g.totalDY == 0 {
			e.sel.SelectOnly(g.clickCategory, g.clickID)
			return
		}
		e.commitTransform("move", g.snap, map[string]any{"dx": g.totalDX, "dy": g.totalDY})

	case gestureResizing:
		e.commitTransform("resize", g.snap, nil)

	case gestureRotating:
		e.commitTransform("rotate", g.snap, nil)

	case gestureMarqueeing:
		box := marqueeBox(g.origin, g.current)
		e.sel = MarqueeSelect(e.store.Shapes(), e.store.Strokes(), e.store.Texts(), box)

	case gestureErasing:
		e.commitErase(g)
	}
}

// CancelGesture reverts any in-flight gesture to its pre-gesture state.
// It is the safety net for lost pointer-up events (window blur, focus
// loss) and for Escape.
func (e *Editor) CancelGesture() {
	gesture := e.gesture
	e.gesture = gestureIdle{}

	switch g := gesture.(type) {
	case gestureDragging:
		e.restoreSnapshot(g.snap)
	case gestureResizing:
		e.restoreSnapshot(g.snap)
	case gestureRotating:
		e.restoreSnapshot(g.snap)
	case gestureErasing:
		e.store.ReplaceShapes(g.preShapes)
		e.store.ReplaceStrokes(g.preStrokes)
		e.store.ReplaceTexts(g.preTexts)
	}
}

// --- Keyboard ---

// OnKeyDown handles the keyboard surface: select-all, escape, delete,
// and undo/redo delegation.
func (e *Editor) OnKeyDown(key string, mods Modifiers) {
	switch {
	case key == "Escape":
		e.CancelGesture()
		e.sel.Clear()
		e.pendingText = nil

	case (key == "a" || key == "A") && mods.primary():
		e.SelectAll()

	case key == "Delete" || key == "Backspace":
		e.DeleteSelection()

	case (key == "z" || key == "Z") && mods.primary():
		if e.history == nil {
			return
		}
		if mods.Shift {
			e.history.Redo()
		} else {
			e.history.Undo()
		}

	case (key == "y" || key == "Y") && mods.primary():
		if e.history != nil {
			e.history.Redo()
		}
	}
}

// SelectAll selects every object on the board.
func (e *Editor) SelectAll() {
	sel := NewSelection()
	for _, s := range e.store.Shapes() {
		sel.Shapes[s.ID] = true
	}
	for _, s := range e.store.Strokes() {
		sel.Strokes[s.ID] = true
	}
	for _, t := range e.store.Texts() {
		sel.Texts[t.ID] = true
	}
	e.sel = sel
}

// DeleteSelection removes the full selection as one batch.
func (e *Editor) DeleteSelection() {
	if e.sel.IsEmpty() {
		return
	}

	var children []history.Record
	var affected []AffectedObject

	shapes := e.store.Shapes()
	kept := shapes[:0:0]
	for _, s := range shapes {
		if e.sel.Shapes[s.ID] {
			children = append(children, history.Record{
				Kind: history.KindDelete, Category: board.CategoryShape, ID: s.ID, Previous: s,
			})
			affected = append(affected, AffectedObject{Category: board.CategoryShape, ID: s.ID})
			continue
		}
		kept = append(kept, s)
	}
	e.store.ReplaceShapes(kept)

	strokes := e.store.Strokes()
	keptStrokes := strokes[:0:0]
	for _, s := range strokes {
		if e.sel.Strokes[s.ID] {
			children = append(children, history.Record{
				Kind: history.KindDelete, Category: board.CategoryStroke, ID: s.ID, Previous: s,
			})
			affected = append(affected, AffectedObject{Category: board.CategoryStroke, ID: s.ID})
			continue
		}
		keptStrokes = append(keptStrokes, s)
	}
	e.store.ReplaceStrokes(keptStrokes)

	texts := e.store.Texts()
	keptTexts := texts[:0:0]
	for _, t := range texts {
		if e.sel.Texts[t.ID] {
			children = append(children, history.Record{
				Kind: history.KindDelete, Category: board.CategoryText, ID: t.ID, Previous: t,
			})
			affected = append(affected, AffectedObject{Category: board.CategoryText, ID: t.ID})
			continue
		}
		keptTexts = append(keptTexts, t)
	}
	e.store.ReplaceTexts(keptTexts)

	e.sel.Clear()
	e.record(history.Record{Kind: history.KindBatch, Children: children})
	e.emit(GestureSummary{Type: "delete", Affected: affected})
}

// Clear removes every object from the board as one batch.
func (e *Editor) Clear() {
	var children []history.Record
	for _, s := range e.store.Shapes() {
		children = append(children, history.Record{Kind: history.KindDelete, Category: board.CategoryShape, ID: s.ID, Previous: s})
	}
	for _, s := range e.store.Strokes() {
		children = append(children, history.Record{Kind: history.KindDelete, Category: board.CategoryStroke, ID: s.ID, Previous: s})
	}
	for _, t := range e.store.Texts() {
		children = append(children, history.Record{Kind: history.KindDelete, Category: board.CategoryText, ID: t.ID, Previous: t})
	}
	if len(children) == 0 {
		return
	}

	e.store.ReplaceShapes(nil)
	e.store.ReplaceStrokes(nil)
	e.store.ReplaceTexts(nil)
	e.sel.Clear()

	e.record(history.Record{Kind: history.KindBatch, Children: children})
	e.emit(GestureSummary{Type: "clear"})
}

// --- Layer ordering ---

// BringForward advances every selected member one z-slot toward the top,
// each of the three categories independently.
func (e *Editor) BringForward() {
	e.reorder("reorder.forward", bringForwardIDs)
}

// SendBackward is the mirror of BringForward toward the bottom.
func (e *Editor) SendBackward() {
	e.reorder("reorder.backward", sendBackwardIDs)
}

func (e *Editor) reorder(kind string, pass func([]string, map[string]bool) bool) {
	var affected []AffectedObject
	var children []history.Record

	shapes := e.store.Shapes()
	shapeIDs := idsOf(shapes, func(s board.Shape) string { return s.ID })
	prevShapeIDs := append([]string(nil), shapeIDs...)
	if pass(shapeIDs, e.sel.Shapes) {
		e.store.ReplaceShapes(reorderByIDs(shapes, func(s board.Shape) string { return s.ID }, shapeIDs))
		children = append(children, history.Record{
			Kind: history.KindReorder, Category: board.CategoryShape,
			Previous: prevShapeIDs, Next: shapeIDs,
		})
		for id := range e.sel.Shapes {
			affected = append(affected, AffectedObject{Category: board.CategoryShape, ID: id})
		}
	}

	strokes := e.store.Strokes()
	strokeIDs := idsOf(strokes, func(s board.StrokeLine) string { return s.ID })
	prevStrokeIDs := append([]string(nil), strokeIDs...)
	if pass(strokeIDs, e.sel.Strokes) {
		e.store.ReplaceStrokes(reorderByIDs(strokes, func(s board.StrokeLine) string { return s.ID }, strokeIDs))
		children = append(children, history.Record{
			Kind: history.KindReorder, Category: board.CategoryStroke,
			Previous: prevStrokeIDs, Next: strokeIDs,
		})
		for id := range e.sel.Strokes {
			affected = append(affected, AffectedObject{Category: board.CategoryStroke, ID: id})
		}
	}

	texts := e.store.Texts()
	textIDs := idsOf(texts, func(t board.TextAnnotation) string { return t.ID })
	prevTextIDs := append([]string(nil), textIDs...)
	if pass(textIDs, e.sel.Texts) {
		e.store.ReplaceTexts(reorderByIDs(texts, func(t board.TextAnnotation) string { return t.ID }, textIDs))
		children = append(children, history.Record{
			Kind: history.KindReorder, Category: board.CategoryText,
			Previous: prevTextIDs, Next: textIDs,
		})
		for id := range e.sel.Texts {
			affected = append(affected, AffectedObject{Category: board.CategoryText, ID: id})
		}
	}

	if len(children) == 0 {
		return
	}
	e.record(history.Record{Kind: history.KindBatch, Children: children})
	e.emit(GestureSummary{Type: kind, Affected: affected})
}

// --- Text entry ---

// CommitPendingText fills the placed annotation with content and commits
// it. Empty content discards the pending entry.
func (e *Editor) CommitPendingText(content string) {
	pending := e.pendingText
	e.pendingText = nil
	if pending == nil || content == "" {
		return
	}

	pending.Text = content
	texts := append(e.store.Texts(), *pending)
	e.store.ReplaceTexts(texts)

	e.record(history.Record{Kind: history.KindAdd, Category: board.CategoryText, ID: pending.ID, Next: *pending})
	e.emit(GestureSummary{Type: "text.add", Affected: []AffectedObject{{Category: board.CategoryText, ID: pending.ID}}})
}

// --- internals ---

func (e *Editor) newShapeAt(pos geometry.Point) board.Shape {
	s := board.Shape{
		ID:        typeid.NewShapeID(),
		Transform: board.DefaultTransform(),
		Opacity:   1,
		Visible:   true,
		Style:     e.shapeStyle,
		Position:  pos,
	}

	switch e.tool {
	case ToolRectangle:
		s.Kind = board.KindRectangle
	case ToolCircle:
		s.Kind = board.KindCircle
	case ToolEllipse:
		s.Kind = board.KindEllipse
	case ToolLine:
		s.Kind = board.KindLine
		s.Start, s.End = pos, pos
	case ToolArrow:
		s.Kind = board.KindArrow
		s.Start, s.End = pos, pos
		s.ArrowEnd = true
		s.ArrowSize = 10
	case ToolTriangle:
		s.Kind = board.KindTriangle
		s.Points = []geometry.Point{pos, pos, pos}
	}
	return s
}

// updatePreview recomputes the preview geometry from the drag box
// origin→pos.
func updatePreview(s board.Shape, origin, pos geometry.Point) board.Shape {
	minX, maxX := min(origin.X, pos.X), max(origin.X, pos.X)
	minY, maxY := min(origin.Y, pos.Y), max(origin.Y, pos.Y)
	w, h := maxX-minX, maxY-minY

	switch s.Kind {
	case board.KindRectangle:
		s.Position = geometry.Point{X: minX, Y: minY}
		s.Width, s.Height = w, h

	case board.KindCircle:
		s.Position = geometry.Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
		s.Radius = min(w, h) / 2

	case board.KindEllipse:
		s.Position = geometry.Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
		s.RadiusX, s.RadiusY = w/2, h/2

	case board.KindLine, board.KindArrow:
		s.Start, s.End = origin, pos

	case board.KindTriangle:
		s.Points = []geometry.Point{
			{X: (minX + maxX) / 2, Y: minY},
			{X: maxX, Y: maxY},
			{X: minX, Y: maxY},
		}
	}
	return s
}

func (e *Editor) commitCreatedShape(preview board.Shape) {
	box := ShapeBounds(preview)
	if box.Width < minCreateSize && box.Height < minCreateSize {
		// Too small to keep; no object, no history record.
		return
	}

	shapes := append(e.store.Shapes(), preview)
	e.store.ReplaceShapes(shapes)

	e.record(history.Record{Kind: history.KindAdd, Category: board.CategoryShape, ID: preview.ID, Next: preview})
	e.emit(GestureSummary{Type: "shape.add", Affected: []AffectedObject{{Category: board.CategoryShape, ID: preview.ID}}})
}

func (e *Editor) commitCreatedStroke(stroke board.StrokeLine) {
	if len(stroke.Points) < minFragmentNumbers {
		return
	}

	strokes := append(e.store.Strokes(), stroke)
	e.store.ReplaceStrokes(strokes)

	e.record(history.Record{Kind: history.KindAdd, Category: board.CategoryStroke, ID: stroke.ID, Next: stroke})
	e.emit(GestureSummary{Type: "stroke.add", Affected: []AffectedObject{{Category: board.CategoryStroke, ID: stroke.ID}}})
}

func (e *Editor) snapshotSelection() selectionSnapshot {
	snap := selectionSnapshot{
		shapes:  make(map[string]board.Shape),
		strokes: make(map[string]board.StrokeLine),
		texts:   make(map[string]board.TextAnnotation),
	}
	for _, s := range e.store.Shapes() {
		if e.sel.Shapes[s.ID] {
			snap.shapes[s.ID] = s
		}
	}
	for _, s := range e.store.Strokes() {
		if e.sel.Strokes[s.ID] {
			snap.strokes[s.ID] = s
		}
	}
	for _, t := range e.store.Texts() {
		if e.sel.Texts[t.ID] {
			snap.texts[t.ID] = t
		}
	}
	return snap
}

func (e *Editor) restoreSnapshot(snap selectionSnapshot) {
	shapes := e.store.Shapes()
	for i, s := range shapes {
		if prev, ok := snap.shapes[s.ID]; ok {
			shapes[i] = prev
		}
	}
	e.store.ReplaceShapes(shapes)

	strokes := e.store.Strokes()
	for i, s := range strokes {
		if prev, ok := snap.strokes[s.ID]; ok {
			strokes[i] = prev
		}
	}
	e.store.ReplaceStrokes(strokes)

	texts := e.store.Texts()
	for i, t := range texts {
		if prev, ok := snap.texts[t.ID]; ok {
			texts[i] = prev
		}
	}
	e.store.ReplaceTexts(texts)
}

func (e *Editor) applyTranslate(dx, dy float64) {
	shapes := e.store.Shapes()
	for i, s := range shapes {
		if e.sel.Shapes[s.ID] {
			shapes[i] = translateShape(s, dx, dy)
		}
	}
	e.store.ReplaceShapes(shapes)

	strokes := e.store.Strokes()
	for i, s := range strokes {
		if e.sel.Strokes[s.ID] {
			strokes[i] = translateStroke(s, dx, dy)
		}
	}
	e.store.ReplaceStrokes(strokes)

	texts := e.store.Texts()
	for i, t := range texts {
		if e.sel.Texts[t.ID] {
			texts[i] = translateText(t, dx, dy)
		}
	}
	e.store.ReplaceTexts(texts)
}

func (e *Editor) applyResize(snap selectionSnapshot, anchor, newBox geometry.BoundingBox, h Handle) {
	if anchor.Width == 0 || anchor.Height == 0 {
		return
	}

	shapes := e.store.Shapes()
	for i, s := range shapes {
		if prev, ok := snap.shapes[s.ID]; ok {
			shapes[i] = scaleShape(prev, anchor, newBox, h)
		}
	}
	e.store.ReplaceShapes(shapes)

	strokes := e.store.Strokes()
	for i, s := range strokes {
		if prev, ok := snap.strokes[s.ID]; ok {
			strokes[i] = scaleStroke(prev, anchor, newBox)
		}
	}
	e.store.ReplaceStrokes(strokes)

	texts := e.store.Texts()
	for i, t := range texts {
		if prev, ok := snap.texts[t.ID]; ok {
			texts[i] = scaleText(prev, anchor, newBox, h)
		}
	}
	e.store.ReplaceTexts(texts)
}

func (e *Editor) applyRotation(snap selectionSnapshot, delta float64) {
	shapes := e.store.Shapes()
	for i, s := range shapes {
		if prev, ok := snap.shapes[s.ID]; ok {
			prev.Transform.Rotation += delta
			shapes[i] = prev
		}
	}
	e.store.ReplaceShapes(shapes)

	// Strokes do not support rotation in this model.

	texts := e.store.Texts()
	for i, t := range texts {
		if prev, ok := snap.texts[t.ID]; ok {
			prev.Rotation += delta
			texts[i] = prev
		}
	}
	e.store.ReplaceTexts(texts)
}

// commitTransform records one UPDATE per selected object whose post-
// gesture value differs from its pre-gesture snapshot. No-op gestures
// produce neither history nor broadcast.
func (e *Editor) commitTransform(kind string, snap selectionSnapshot, fields map[string]any) {
	var affected []AffectedObject

	for _, s := range e.store.Shapes() {
		prev, ok := snap.shapes[s.ID]
		if !ok || reflect.DeepEqual(prev, s) {
			continue
		}
		e.record(history.Record{Kind: history.KindUpdate, Category: board.CategoryShape, ID: s.ID, Previous: prev, Next: s})
		affected = append(affected, AffectedObject{Category: board.CategoryShape, ID: s.ID, Fields: fields})
	}
	for _, s := range e.store.Strokes() {
		prev, ok := snap.strokes[s.ID]
		if !ok || reflect.DeepEqual(prev, s) {
			continue
		}
		e.record(history.Record{Kind: history.KindUpdate, Category: board.CategoryStroke, ID: s.ID, Previous: prev, Next: s})
		affected = append(affected, AffectedObject{Category: board.CategoryStroke, ID: s.ID, Fields: fields})
	}
	for _, t := range e.store.Texts() {
		prev, ok := snap.texts[t.ID]
		if !ok || reflect.DeepEqual(prev, t) {
			continue
		}
		e.record(history.Record{Kind: history.KindUpdate, Category: board.CategoryText, ID: t.ID, Previous: prev, Next: t})
		affected = append(affected, AffectedObject{Category: board.CategoryText, ID: t.ID, Fields: fields})
	}

	if len(affected) == 0 {
		return
	}
	e.emit(GestureSummary{Type: kind, Affected: affected})
}

func (e *Editor) eraseAt(pos geometry.Point) {
	strokes := e.store.Strokes()
	switch e.eraserMode {
	case EraseModeStroke:
		if kept, removed := eraseStrokesAt(strokes, pos, e.eraserRadius); removed {
			e.store.ReplaceStrokes(kept)
		}
	default:
		if kept, changed := eraseAtPosition(strokes, pos, e.eraserRadius, e.fragIDs); changed {
			e.store.ReplaceStrokes(kept)
		}
	}

	if kept, removed := eraseShapesAt(e.store.Shapes(), pos, e.eraserRadius); len(removed) > 0 {
		e.store.ReplaceShapes(kept)
	}
	if kept, removed := eraseTextsAt(e.store.Texts(), pos, e.eraserRadius); len(removed) > 0 {
		e.store.ReplaceTexts(kept)
	}
}

func (e *Editor) commitErase(g gestureErasing) {
	snapshot := make(map[string]board.StrokeLine, len(g.preStrokes))
	for _, s := range g.preStrokes {
		snapshot[s.ID] = s
	}

	records := classifyErase(snapshot, e.store.Strokes())

	curShapes := make(map[string]bool)
	for _, s := range e.store.Shapes() {
		curShapes[s.ID] = true
	}
	for _, s := range g.preShapes {
		if !curShapes[s.ID] {
			records = append(records, history.Record{
				Kind: history.KindDelete, Category: board.CategoryShape, ID: s.ID, Previous: s,
			})
		}
	}

	curTexts := make(map[string]bool)
	for _, t := range e.store.Texts() {
		curTexts[t.ID] = true
	}
	for _, t := range g.preTexts {
		if !curTexts[t.ID] {
			records = append(records, history.Record{
				Kind: history.KindDelete, Category: board.CategoryText, ID: t.ID, Previous: t,
			})
		}
	}

	if len(records) == 0 {
		return
	}

	affected := make([]AffectedObject, 0, len(records))
	for _, rec := range records {
		e.record(rec)
		affected = append(affected, AffectedObject{Category: rec.Category, ID: rec.ID})
	}
	e.emit(GestureSummary{Type: "erase", Affected: affected})
}

func marqueeBox(a, b geometry.Point) geometry.BoundingBox {
	return geometry.NewBoundingBox(
		min(a.X, b.X), min(a.Y, b.Y),
		max(a.X, b.X), max(a.Y, b.Y),
	)
}

func (e *Editor) record(rec history.Record) {
	if e.history != nil {
		e.history.Record(rec)
	}
}

func (e *Editor) emit(summary GestureSummary) {
	if e.broadcast != nil {
		e.broadcast.GestureCommitted(summary)
	}
}
