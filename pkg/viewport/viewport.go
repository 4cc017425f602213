// Package viewport maps between screen space and canvas space for a pannable,
// zoomable 2D canvas. Every function is pure: callers own the State and store
// whatever these functions return.
package viewport

const (
	MinScale = 0.1
	MaxScale = 3.0

	zoomInFactor  = 1.1
	zoomOutFactor = 0.9
)

// Point is a position in screen pixels or canvas units, depending on context.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// State is the pan offset and zoom scale of a canvas.
type State struct {
	Offset Point   `json:"offset"`
	Scale  float64 `json:"scale"`
}

// Initial returns the viewport a session starts with.
func Initial() State {
	return State{Scale: 1}
}

// Direction is the sign of a zoom gesture.
type Direction int

const (
	ZoomOut Direction = -1
	ZoomIn  Direction = 1
)

// WheelDirection converts a wheel deltaY into a zoom direction: scrolling
// down zooms out, anything else zooms in.
func WheelDirection(deltaY float64) Direction {
	if deltaY > 0 {
		return ZoomOut
	}
	return ZoomIn
}

// ClampScale limits v to [MinScale, MaxScale].
func ClampScale(v float64) float64 {
	if v < MinScale {
		return MinScale
	}
	if v > MaxScale {
		return MaxScale
	}
	return v
}

// ScreenToCanvas converts a screen point into canvas space.
func ScreenToCanvas(screen Point, s State) Point {
	d := screen.Sub(s.Offset)
	return Point{X: d.X / s.Scale, Y: d.Y / s.Scale}
}

// CanvasToScreen is the inverse of ScreenToCanvas.
func CanvasToScreen(canvas Point, s State) Point {
	return Point{X: canvas.X*s.Scale + s.Offset.X, Y: canvas.Y*s.Scale + s.Offset.Y}
}

// ApplyPan moves the offset by delta. Scale is unchanged.
func ApplyPan(delta Point, s State) State {
	return State{Offset: s.Offset.Add(delta), Scale: s.Scale}
}

// ApplyZoom scales by 1.1 (ZoomIn) or 0.9 (ZoomOut) and clamps the result.
// The zoom is anchored at the canvas origin, so Offset is unchanged. A zero
// direction only re-clamps.
func ApplyZoom(dir Direction, s State) State {
	scale := s.Scale
	switch {
	case dir > 0:
		scale *= zoomInFactor
	case dir < 0:
		scale *= zoomOutFactor
	}
	return State{Offset: s.Offset, Scale: ClampScale(scale)}
}

// PlaceItem returns the canvas position of an item being dragged, given the
// cursor position and where inside the item it was grabbed.
func PlaceItem(screen, grab Point, s State) Point {
	return ScreenToCanvas(screen.Sub(grab), s)
}
