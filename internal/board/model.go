package board

import "github.com/drawdeck/drawdeck/backend-go/internal/geometry"

// Category identifies one of the three independently z-ordered object lists.
type Category string

const (
	CategoryShape  Category = "shape"
	CategoryStroke Category = "stroke"
	CategoryText   Category = "text"
)

// ShapeKind tags the geometric variant of a Shape.
type ShapeKind string

const (
	KindRectangle ShapeKind = "rectangle"
	KindCircle    ShapeKind = "circle"
	KindEllipse   ShapeKind = "ellipse"
	KindLine      ShapeKind = "line"
	KindArrow     ShapeKind = "arrow"
	KindTriangle  ShapeKind = "triangle"
)

// Transform carries the per-shape rotation and scale state.
type Transform struct {
	Rotation float64 `json:"rotation"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
}

// DefaultTransform is the transform a freshly created shape starts with.
func DefaultTransform() Transform {
	return Transform{Rotation: 0, ScaleX: 1, ScaleY: 1}
}

// ShapeStyle is the paint style shared by all shape variants.
type ShapeStyle struct {
	Stroke      string    `json:"stroke"`
	StrokeWidth float64   `json:"strokeWidth"`
	Fill        string    `json:"fill,omitempty"`
	HasFill     bool      `json:"hasFill,omitempty"`
	Dash        []float64 `json:"dash,omitempty"`
}

// Shape is a tagged union over the geometric variants. Kind selects which
// of the variant fields are meaningful:
//
//	rectangle: Position (top-left), Width, Height, CornerRadius
//	circle:    Position (center), Radius
//	ellipse:   Position (center), RadiusX, RadiusY
//	line:      Start, End
//	arrow:     Start, End, ArrowStart, ArrowEnd, ArrowSize
//	triangle:  Points (exactly 3)
//
// Width/Height/Radius are never negative.
type Shape struct {
	ID        string     `json:"id"`
	Kind      ShapeKind  `json:"kind"`
	ZIndex    int        `json:"zIndex"`
	Transform Transform  `json:"transform"`
	Opacity   float64    `json:"opacity"`
	Visible   bool       `json:"visible"`
	Style     ShapeStyle `json:"style"`

	Position     geometry.Point `json:"position"`
	Width        float64        `json:"width,omitempty"`
	Height       float64        `json:"height,omitempty"`
	CornerRadius float64        `json:"cornerRadius,omitempty"`

	Radius  float64 `json:"radius,omitempty"`
	RadiusX float64 `json:"radiusX,omitempty"`
	RadiusY float64 `json:"radiusY,omitempty"`

	Start      geometry.Point `json:"startPoint"`
	End        geometry.Point `json:"endPoint"`
	ArrowStart bool           `json:"arrowStart,omitempty"`
	ArrowEnd   bool           `json:"arrowEnd,omitempty"`
	ArrowSize  float64        `json:"arrowSize,omitempty"`

	Points []geometry.Point `json:"points,omitempty"`
}

// StrokeLine is a freehand stroke. Points is a flat sequence of alternating
// x,y coordinates; its length is always even and a stroke needs at least
// 4 numbers (2 points) to be paintable.
type StrokeLine struct {
	ID     string    `json:"id"`
	Points []float64 `json:"points"`
	Color  string    `json:"color"`
	Width  float64   `json:"width"`

	// Rendering hints set by the active brush profile.
	LineCap       string    `json:"lineCap,omitempty"`
	LineJoin      string    `json:"lineJoin,omitempty"`
	Tension       float64   `json:"tension,omitempty"`
	Dash          []float64 `json:"dash,omitempty"`
	Opacity       float64   `json:"opacity,omitempty"`
	CompositeMode string    `json:"compositeMode,omitempty"`
}

// PointCount returns the number of complete x,y pairs in the stroke.
func (s StrokeLine) PointCount() int {
	return len(s.Points) / 2
}

// TextAnnotation is a block of text anchored at its top-left corner.
type TextAnnotation struct {
	ID             string  `json:"id"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Text           string  `json:"text"`
	FontSize       float64 `json:"fontSize"`
	FontFamily     string  `json:"fontFamily"`
	FontWeight     string  `json:"fontWeight,omitempty"`
	FontStyle      string  `json:"fontStyle,omitempty"`
	TextDecoration string  `json:"textDecoration,omitempty"`
	Align          string  `json:"textAlign,omitempty"`
	Rotation       float64 `json:"rotation,omitempty"`
}

// Document is the serializable snapshot of one board's full object state.
type Document struct {
	Shapes  []Shape          `json:"shapes"`
	Strokes []StrokeLine     `json:"strokes"`
	Texts   []TextAnnotation `json:"texts"`
}
