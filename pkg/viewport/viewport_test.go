package viewport

import (
	"math"
	"math/rand"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestInitial(t *testing.T) {
	s := Initial()
	if s.Scale != 1 {
		t.Errorf("Scale %v, want 1", s.Scale)
	}
	if s.Offset != (Point{}) {
		t.Errorf("Offset %v, want zero", s.Offset)
	}
}

func TestApplyZoom_StaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := Initial()
	for i := 0; i < 2000; i++ {
		dir := ZoomIn
		if rng.Intn(2) == 0 {
			dir = ZoomOut
		}
		s = ApplyZoom(dir, s)
		if s.Scale < MinScale || s.Scale > MaxScale {
			t.Fatalf("step %d: scale %v out of range", i, s.Scale)
		}
	}
}

func TestApplyZoom_ClampsAtBounds(t *testing.T) {
	s := Initial()
	for i := 0; i < 100; i++ {
		s = ApplyZoom(ZoomIn, s)
	}
	if s.Scale != MaxScale {
		t.Errorf("after zooming in, scale %v, want %v", s.Scale, MaxScale)
	}
	for i := 0; i < 100; i++ {
		s = ApplyZoom(ZoomOut, s)
	}
	if s.Scale != MinScale {
		t.Errorf("after zooming out, scale %v, want %v", s.Scale, MinScale)
	}
}

func TestApplyZoom_Factors(t *testing.T) {
	in := ApplyZoom(ZoomIn, Initial())
	if !near(in.Scale, 1.1) {
		t.Errorf("zoom in scale %v, want 1.1", in.Scale)
	}
	out := ApplyZoom(ZoomOut, Initial())
	if !near(out.Scale, 0.9) {
		t.Errorf("zoom out scale %v, want 0.9", out.Scale)
	}
}

func TestApplyZoom_KeepsOffset(t *testing.T) {
	s := State{Offset: Point{X: 12, Y: -7}, Scale: 1}
	got := ApplyZoom(ZoomIn, s)
	if got.Offset != s.Offset {
		t.Errorf("offset %v, want %v", got.Offset, s.Offset)
	}
}

func TestApplyPan(t *testing.T) {
	s := State{Offset: Point{X: 10, Y: 20}, Scale: 2}
	got := ApplyPan(Point{X: -3, Y: 5}, s)
	if got.Offset != (Point{X: 7, Y: 25}) {
		t.Errorf("offset %v, want {7 25}", got.Offset)
	}
	if got.Scale != 2 {
		t.Errorf("scale %v, want 2", got.Scale)
	}
	if s.Offset != (Point{X: 10, Y: 20}) {
		t.Error("ApplyPan mutated its input")
	}
}

func TestScreenToCanvas_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		s := State{
			Offset: Point{X: rng.Float64()*2000 - 1000, Y: rng.Float64()*2000 - 1000},
			Scale:  ClampScale(rng.Float64() * 3),
		}
		screen := Point{X: rng.Float64() * 1920, Y: rng.Float64() * 1080}
		back := CanvasToScreen(ScreenToCanvas(screen, s), s)
		if !near(back.X, screen.X) || !near(back.Y, screen.Y) {
			t.Fatalf("round trip %v -> %v under %+v", screen, back, s)
		}
	}
}

func TestScreenToCanvas_ExactForDyadicScale(t *testing.T) {
	s := State{Offset: Point{X: 40, Y: -8}, Scale: 0.5}
	screen := Point{X: 140, Y: 92}
	c := ScreenToCanvas(screen, s)
	if c != (Point{X: 200, Y: 200}) {
		t.Errorf("canvas %v, want {200 200}", c)
	}
	if back := CanvasToScreen(c, s); back != screen {
		t.Errorf("back %v, want %v", back, screen)
	}
}

func TestPlaceItem_Identity(t *testing.T) {
	screen := Point{X: 321.5, Y: 88}
	got := PlaceItem(screen, Point{}, Initial())
	if got != screen {
		t.Errorf("PlaceItem %v, want %v", got, screen)
	}
}

func TestPlaceItem_GrabOffsetAndZoom(t *testing.T) {
	s := State{Offset: Point{X: 100, Y: 50}, Scale: 2}
	got := PlaceItem(Point{X: 330, Y: 270}, Point{X: 30, Y: 20}, s)
	if got != (Point{X: 100, Y: 100}) {
		t.Errorf("PlaceItem %v, want {100 100}", got)
	}
}

func TestWheelDirection(t *testing.T) {
	if WheelDirection(120) != ZoomOut {
		t.Error("positive deltaY should zoom out")
	}
	if WheelDirection(-120) != ZoomIn {
		t.Error("negative deltaY should zoom in")
	}
	if WheelDirection(0) != ZoomIn {
		t.Error("zero deltaY should zoom in")
	}
}
