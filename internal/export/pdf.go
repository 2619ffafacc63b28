// Package export renders a board document to PDF.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/drawdeck/drawdeck/backend-go/internal/board"
	"github.com/drawdeck/drawdeck/backend-go/internal/engine"
	"github.com/drawdeck/drawdeck/backend-go/internal/geometry"
)

const (
	pageMargin      = 36.0 // half inch in points
	defaultArrowLen = 10.0
)

// WritePDF renders the document to w as a single-page A4 landscape PDF.
// Content is uniformly scaled to fit inside the page margins.
func WritePDF(doc board.Document, w io.Writer) error {
	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	view := contentBounds(doc)
	scale, offX, offY := fitTransform(view, pageW, pageH)

	r := &renderer{pdf: pdf, scale: scale, offX: offX, offY: offY}

	// Paint order matches the canvas: shapes, then strokes, then texts,
	// each category in z-order.
	for _, s := range doc.Shapes {
		if s.Visible {
			r.shape(s)
		}
	}
	for _, s := range doc.Strokes {
		r.stroke(s)
	}
	for _, t := range doc.Texts {
		r.text(t)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func contentBounds(doc board.Document) geometry.BoundingBox {
	var box *geometry.BoundingBox
	extend := func(b geometry.BoundingBox) {
		if box == nil {
			box = &b
			return
		}
		u := box.Union(b)
		box = &u
	}

	for _, s := range doc.Shapes {
		extend(engine.ShapeBounds(s))
	}
	for _, s := range doc.Strokes {
		if b, ok := engine.StrokeBounds(s); ok {
			extend(b)
		}
	}
	for _, t := range doc.Texts {
		extend(engine.TextBounds(t))
	}

	if box == nil {
		return geometry.NewBoundingBox(0, 0, 1, 1)
	}
	return *box
}

func fitTransform(view geometry.BoundingBox, pageW, pageH float64) (scale, offX, offY float64) {
	availW := pageW - 2*pageMargin
	availH := pageH - 2*pageMargin
	scale = 1.0
	if view.Width > 0 && view.Height > 0 {
		scale = min(availW/view.Width, availH/view.Height)
		if scale > 1 {
			scale = 1
		}
	}
	offX = pageMargin - view.MinX*scale + (availW-view.Width*scale)/2
	offY = pageMargin - view.MinY*scale + (availH-view.Height*scale)/2
	return scale, offX, offY
}

type renderer struct {
	pdf   *gofpdf.Fpdf
	scale float64
	offX  float64
	offY  float64
}

func (r *renderer) x(v float64) float64 { return v*r.scale + r.offX }
func (r *renderer) y(v float64) float64 { return v*r.scale + r.offY }

func (r *renderer) applyStyle(style board.ShapeStyle, opacity float64) string {
	cr, cg, cb := parseHexColor(style.Stroke)
	r.pdf.SetDrawColor(cr, cg, cb)
	r.pdf.SetLineWidth(max(style.StrokeWidth*r.scale, 0.25))
	r.pdf.SetAlpha(clampOpacity(opacity), "Normal")
	r.setDash(style.Dash)

	mode := "D"
	if style.HasFill && style.Fill != "" {
		fr, fg, fb := parseHexColor(style.Fill)
		r.pdf.SetFillColor(fr, fg, fb)
		mode = "FD"
	}
	return mode
}

func (r *renderer) setDash(dash []float64) {
	if len(dash) == 0 {
		r.pdf.SetDashPattern(nil, 0)
		return
	}
	scaled := make([]float64, len(dash))
	for i, d := range dash {
		scaled[i] = d * r.scale
	}
	r.pdf.SetDashPattern(scaled, 0)
}

func (r *renderer) shape(s board.Shape) {
	mode := r.applyStyle(s.Style, s.Opacity)
	defer r.pdf.SetAlpha(1, "Normal")

	rotated := s.Transform.Rotation != 0
	if rotated {
		center := engine.ShapeBounds(s).Center()
		r.pdf.TransformBegin()
		r.pdf.TransformRotate(-s.Transform.Rotation, r.x(center.X), r.y(center.Y))
	}

	switch s.Kind {
	case board.KindRectangle:
		if s.CornerRadius > 0 {
			r.pdf.RoundedRect(r.x(s.Position.X), r.y(s.Position.Y),
				s.Width*r.scale, s.Height*r.scale, s.CornerRadius*r.scale, "1234", mode)
		} else {
			r.pdf.Rect(r.x(s.Position.X), r.y(s.Position.Y),
				s.Width*r.scale, s.Height*r.scale, mode)
		}

	case board.KindCircle:
		r.pdf.Circle(r.x(s.Position.X), r.y(s.Position.Y), s.Radius*r.scale, mode)

	case board.KindEllipse:
		r.pdf.Ellipse(r.x(s.Position.X), r.y(s.Position.Y),
			s.RadiusX*r.scale, s.RadiusY*r.scale, 0, mode)

	case board.KindLine:
		r.pdf.Line(r.x(s.Start.X), r.y(s.Start.Y), r.x(s.End.X), r.y(s.End.Y))

	case board.KindArrow:
		r.pdf.Line(r.x(s.Start.X), r.y(s.Start.Y), r.x(s.End.X), r.y(s.End.Y))
		size := s.ArrowSize
		if size <= 0 {
			size = defaultArrowLen
		}
		if s.ArrowEnd {
			r.arrowHead(s.End, s.Start, size)
		}
		if s.ArrowStart {
			r.arrowHead(s.Start, s.End, size)
		}

	case board.KindTriangle:
		if len(s.Points) == 3 {
			pts := make([]gofpdf.PointType, 3)
			for i, p := range s.Points {
				pts[i] = gofpdf.PointType{X: r.x(p.X), Y: r.y(p.Y)}
			}
			r.pdf.Polygon(pts, mode)
		}
	}

	if rotated {
		r.pdf.TransformEnd()
	}
}

// arrowHead draws the two barbs of an arrowhead at tip, pointing away
// from tail. The barbs are the tip-to-tail direction rotated 30 degrees
// to either side.
func (r *renderer) arrowHead(tip, tail geometry.Point, size float64) {
	d := geometry.Point{X: tail.X - tip.X, Y: tail.Y - tip.Y}
	length := geometry.Distance(tip, tail)
	if length == 0 {
		return
	}
	unit := geometry.Point{X: d.X / length * size, Y: d.Y / length * size}

	for _, angle := range []float64{30, -30} {
		m := geometry.RotateAround(angle, tip.X, tip.Y)
		barb := m.TransformPoint(geometry.Point{X: tip.X + unit.X, Y: tip.Y + unit.Y})
		r.pdf.Line(r.x(tip.X), r.y(tip.Y), r.x(barb.X), r.y(barb.Y))
	}
}

func (r *renderer) stroke(s board.StrokeLine) {
	if s.PointCount() < 2 {
		return
	}

	cr, cg, cb := parseHexColor(s.Color)
	r.pdf.SetDrawColor(cr, cg, cb)
	r.pdf.SetLineWidth(max(s.Width*r.scale, 0.25))
	opacity := s.Opacity
	if opacity == 0 {
		opacity = 1
	}
	r.pdf.SetAlpha(clampOpacity(opacity), "Normal")
	defer r.pdf.SetAlpha(1, "Normal")
	r.setDash(s.Dash)
	if s.LineCap == "round" {
		r.pdf.SetLineCapStyle("round")
		defer r.pdf.SetLineCapStyle("butt")
	}

	r.pdf.MoveTo(r.x(s.Points[0]), r.y(s.Points[1]))
	for i := 2; i+1 < len(s.Points); i += 2 {
		r.pdf.LineTo(r.x(s.Points[i]), r.y(s.Points[i+1]))
	}
	r.pdf.DrawPath("D")
}

func (r *renderer) text(t board.TextAnnotation) {
	style := ""
	if strings.Contains(t.FontWeight, "bold") {
		style += "B"
	}
	if t.FontStyle == "italic" {
		style += "I"
	}
	if t.TextDecoration == "underline" {
		style += "U"
	}

	r.pdf.SetFont(mapFont(t.FontFamily), style, t.FontSize*r.scale)
	r.pdf.SetTextColor(0, 0, 0)

	if t.Rotation != 0 {
		box := engine.TextBounds(t)
		r.pdf.TransformBegin()
		r.pdf.TransformRotate(-t.Rotation, r.x(box.CenterX), r.y(box.CenterY))
		defer r.pdf.TransformEnd()
	}

	// The anchor is the top-left corner; Text wants the baseline.
	r.pdf.Text(r.x(t.X), r.y(t.Y)+t.FontSize*r.scale, t.Text)
}

func mapFont(family string) string {
	switch strings.ToLower(family) {
	case "courier", "monospace":
		return "Courier"
	case "times", "serif":
		return "Times"
	default:
		return "Helvetica"
	}
}

func clampOpacity(v float64) float64 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return v
}

// parseHexColor parses "#rgb" and "#rrggbb" colors; anything else paints
// black.
func parseHexColor(s string) (int, int, int) {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3:
		var rgb [3]int
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseInt(string(s[i]), 16, 32)
			if err != nil {
				return 0, 0, 0
			}
			rgb[i] = int(v * 17)
		}
		return rgb[0], rgb[1], rgb[2]
	case 6:
		var rgb [3]int
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseInt(s[2*i:2*i+2], 16, 32)
			if err != nil {
				return 0, 0, 0
			}
			rgb[i] = int(v)
		}
		return rgb[0], rgb[1], rgb[2]
	default:
		return 0, 0, 0
	}
}
