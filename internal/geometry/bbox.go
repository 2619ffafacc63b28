package geometry

// BoundingBox is an axis-aligned box with its derived center and size
// carried alongside the edges so it can be handed to the UI layer as-is.
// Always construct through NewBoundingBox or FromPoints so the derived
// fields stay consistent.
type BoundingBox struct {
	MinX    float64 `json:"minX"`
	MinY    float64 `json:"minY"`
	MaxX    float64 `json:"maxX"`
	MaxY    float64 `json:"maxY"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// NewBoundingBox builds a box from its edges and fills the derived fields.
func NewBoundingBox(minX, minY, maxX, maxY float64) BoundingBox {
	return BoundingBox{
		MinX:    minX,
		MinY:    minY,
		MaxX:    maxX,
		MaxY:    maxY,
		CenterX: (minX + maxX) / 2,
		CenterY: (minY + maxY) / 2,
		Width:   maxX - minX,
		Height:  maxY - minY,
	}
}

// FromPoints returns the bounding box of a flat x,y coordinate list.
// The second return is false when the list holds no complete point.
func FromPoints(coords []float64) (BoundingBox, bool) {
	if len(coords) < 2 {
		return BoundingBox{}, false
	}

	minX, maxX := coords[0], coords[0]
	minY, maxY := coords[1], coords[1]
	for i := 2; i+1 < len(coords); i += 2 {
		minX = min(minX, coords[i])
		maxX = max(maxX, coords[i])
		minY = min(minY, coords[i+1])
		maxY = max(maxY, coords[i+1])
	}
	return NewBoundingBox(minX, minY, maxX, maxY), true
}

// Union returns the smallest box containing both boxes.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return NewBoundingBox(
		min(b.MinX, other.MinX),
		min(b.MinY, other.MinY),
		max(b.MaxX, other.MaxX),
		max(b.MaxY, other.MaxY),
	)
}

// Contains reports whether the point lies inside or on the box edge.
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Intersects reports whether two boxes overlap, edges included.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return !(b.MaxX < other.MinX || b.MinX > other.MaxX ||
		b.MaxY < other.MinY || b.MinY > other.MaxY)
}

// Inflate returns the box grown by d on every side.
func (b BoundingBox) Inflate(d float64) BoundingBox {
	return NewBoundingBox(b.MinX-d, b.MinY-d, b.MaxX+d, b.MaxY+d)
}

// Center returns the center point of the box.
func (b BoundingBox) Center() Point {
	return Point{X: b.CenterX, Y: b.CenterY}
}
