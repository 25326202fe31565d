package msdf

import (
	"math"
	"testing"
)

func TestNewContour(t *testing.T) {
	c := NewContour()
	if c == nil {
		t.Fatal("NewContour() returned nil")
	}
	if len(c.Edges) != 0 {
		t.Errorf("NewContour().Edges has length %d, want 0", len(c.Edges))
	}
}

func TestContourAddEdge(t *testing.T) {
	c := NewContour()

	e1 := NewLineEdge(Vec2{0, 0}, Vec2{10, 0})
	e2 := NewLineEdge(Vec2{10, 0}, Vec2{10, 10})

	c.AddEdge(e1)
	c.AddEdge(e2)

	if len(c.Edges) != 2 {
		t.Errorf("len(Edges) = %d, want 2", len(c.Edges))
	}
}

func TestContourBounds(t *testing.T) {
	c := NewContour()
	c.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{10, 0}))
	c.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{10, 10}))
	c.AddEdge(NewLineEdge(Vec2{10, 10}, Vec2{0, 10}))
	c.AddEdge(NewLineEdge(Vec2{0, 10}, Vec2{0, 0}))

	bounds := c.Bounds()

	if bounds.MinX != 0 || bounds.MinY != 0 || bounds.MaxX != 10 || bounds.MaxY != 10 {
		t.Errorf("Bounds() = %v, want {0, 0, 10, 10}", bounds)
	}
}

func TestContourBoundsEmpty(t *testing.T) {
	c := NewContour()
	bounds := c.Bounds()

	if bounds.MinX != 0 || bounds.MaxX != 0 {
		t.Errorf("Empty contour bounds = %v, expected zero rect", bounds)
	}
}

func TestContourCalculateWinding(t *testing.T) {
	// Counter-clockwise square (positive winding)
	ccw := NewContour()
	ccw.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{10, 0}))
	ccw.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{10, 10}))
	ccw.AddEdge(NewLineEdge(Vec2{10, 10}, Vec2{0, 10}))
	ccw.AddEdge(NewLineEdge(Vec2{0, 10}, Vec2{0, 0}))
	ccw.CalculateWinding()

	if ccw.Winding <= 0 {
		t.Errorf("CCW square winding = %v, expected positive", ccw.Winding)
	}
	if ccw.IsClockwise() {
		t.Error("CCW square IsClockwise() = true, expected false")
	}

	// Clockwise square (negative winding)
	cw := NewContour()
	cw.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{0, 10}))
	cw.AddEdge(NewLineEdge(Vec2{0, 10}, Vec2{10, 10}))
	cw.AddEdge(NewLineEdge(Vec2{10, 10}, Vec2{10, 0}))
	cw.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{0, 0}))
	cw.CalculateWinding()

	if cw.Winding >= 0 {
		t.Errorf("CW square winding = %v, expected negative", cw.Winding)
	}
	if !cw.IsClockwise() {
		t.Error("CW square IsClockwise() = false, expected true")
	}
}

func TestContourClone(t *testing.T) {
	c := NewContour()
	c.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{10, 0}))
	c.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{0, 0}))
	c.Winding = 50

	clone := c.Clone()

	if len(clone.Edges) != len(c.Edges) {
		t.Errorf("Clone.Edges length = %d, want %d", len(clone.Edges), len(c.Edges))
	}
	if clone.Winding != c.Winding {
		t.Errorf("Clone.Winding = %v, want %v", clone.Winding, c.Winding)
	}

	clone.Edges[0].Color = ColorMagenta
	if c.Edges[0].Color == ColorMagenta {
		t.Error("Clone is not independent from original")
	}
}

func TestContourReverse(t *testing.T) {
	c := NewContour()
	c.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{10, 0}))
	c.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{10, 10}))
	c.AddEdge(NewLineEdge(Vec2{10, 10}, Vec2{0, 0}))
	c.CalculateWinding()
	wantWinding := -c.Winding

	c.reverse()

	if math.Abs(c.Winding-wantWinding) > 1e-9 {
		t.Errorf("reversed Winding = %v, want %v", c.Winding, wantWinding)
	}
	if c.Edges[0].StartPoint() != (Vec2{0, 0}) {
		t.Errorf("reversed contour should still start at {0,0}, got %v", c.Edges[0].StartPoint())
	}
}

func TestContourContainsPoint(t *testing.T) {
	square := NewContour()
	square.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{10, 0}))
	square.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{10, 10}))
	square.AddEdge(NewLineEdge(Vec2{10, 10}, Vec2{0, 10}))
	square.AddEdge(NewLineEdge(Vec2{0, 10}, Vec2{0, 0}))

	if !square.containsPoint(Vec2{5, 5}) {
		t.Error("center point should be inside square")
	}
	if square.containsPoint(Vec2{20, 20}) {
		t.Error("far point should be outside square")
	}
}

func TestNewShape(t *testing.T) {
	s := NewShape()
	if s == nil {
		t.Fatal("NewShape() returned nil")
	}
	if len(s.Contours) != 0 {
		t.Errorf("NewShape().Contours has length %d, want 0", len(s.Contours))
	}
}

func TestShapeAddContour(t *testing.T) {
	s := NewShape()
	c1 := NewContour()
	c2 := NewContour()

	s.AddContour(c1)
	s.AddContour(c2)

	if len(s.Contours) != 2 {
		t.Errorf("len(Contours) = %d, want 2", len(s.Contours))
	}
}

func TestShapeCalculateBounds(t *testing.T) {
	s := NewShape()

	c1 := NewContour()
	c1.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{10, 10}))

	c2 := NewContour()
	c2.AddEdge(NewLineEdge(Vec2{20, 20}, Vec2{30, 30}))

	s.AddContour(c1)
	s.AddContour(c2)
	s.CalculateBounds()

	if s.Bounds.MinX != 0 || s.Bounds.MinY != 0 {
		t.Errorf("Shape.Bounds min = (%v, %v), want (0, 0)", s.Bounds.MinX, s.Bounds.MinY)
	}
	if s.Bounds.MaxX != 30 || s.Bounds.MaxY != 30 {
		t.Errorf("Shape.Bounds max = (%v, %v), want (30, 30)", s.Bounds.MaxX, s.Bounds.MaxY)
	}
}

func TestShapeValidate(t *testing.T) {
	valid := NewShape()
	c := NewContour()
	c.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{10, 0}))
	c.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{10, 10}))
	c.AddEdge(NewLineEdge(Vec2{10, 10}, Vec2{0, 0}))
	valid.AddContour(c)

	if !valid.Validate() {
		t.Error("Valid closed shape failed validation")
	}

	invalid := NewShape()
	c2 := NewContour()
	c2.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{10, 0}))
	c2.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{10, 10}))
	invalid.AddContour(c2)

	if invalid.Validate() {
		t.Error("Invalid open shape passed validation")
	}
}

func TestShapeEdgeCount(t *testing.T) {
	s := NewShape()

	c1 := NewContour()
	c1.AddEdge(NewLineEdge(Vec2{}, Vec2{}))
	c1.AddEdge(NewLineEdge(Vec2{}, Vec2{}))

	c2 := NewContour()
	c2.AddEdge(NewLineEdge(Vec2{}, Vec2{}))

	s.AddContour(c1)
	s.AddContour(c2)

	if s.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", s.EdgeCount())
	}
}

func TestShapeNormalizeDropsDegenerateEdges(t *testing.T) {
	s := NewShape()
	c := NewContour()
	c.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{10, 0}))
	c.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{10, 0})) // zero-length
	c.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{10, 10}))
	c.AddEdge(NewLineEdge(Vec2{10, 10}, Vec2{0, 0}))
	s.AddContour(c)

	s.Normalize()

	if len(s.Contours) != 1 {
		t.Fatalf("len(Contours) = %d, want 1", len(s.Contours))
	}
	if len(s.Contours[0].Edges) != 3 {
		t.Errorf("len(Edges) = %d, want 3 (degenerate edge dropped)", len(s.Contours[0].Edges))
	}
}

func TestShapeNormalizeDropsEmptyContours(t *testing.T) {
	s := NewShape()
	degenerate := NewContour()
	degenerate.AddEdge(NewLineEdge(Vec2{5, 5}, Vec2{5, 5}))
	s.AddContour(degenerate)

	real := NewContour()
	real.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{10, 0}))
	real.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{0, 0}))
	s.AddContour(real)

	s.Normalize()

	if len(s.Contours) != 1 {
		t.Errorf("len(Contours) = %d, want 1 (all-degenerate contour dropped)", len(s.Contours))
	}
}

func TestOrientContoursOuterIsCCW(t *testing.T) {
	s := NewShape()
	cw := NewContour()
	cw.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{0, 10}))
	cw.AddEdge(NewLineEdge(Vec2{0, 10}, Vec2{10, 10}))
	cw.AddEdge(NewLineEdge(Vec2{10, 10}, Vec2{10, 0}))
	cw.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{0, 0}))
	s.AddContour(cw)

	orientContours(s)

	if s.Contours[0].Winding <= 0 {
		t.Errorf("outer contour winding = %v, want positive (CCW) after orientation", s.Contours[0].Winding)
	}
}

func TestOrientContoursHoleIsCW(t *testing.T) {
	s := NewShape()

	outer := NewContour()
	outer.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{20, 0}))
	outer.AddEdge(NewLineEdge(Vec2{20, 0}, Vec2{20, 20}))
	outer.AddEdge(NewLineEdge(Vec2{20, 20}, Vec2{0, 20}))
	outer.AddEdge(NewLineEdge(Vec2{0, 20}, Vec2{0, 0}))
	s.AddContour(outer)

	// Hole wound the same (CCW) direction as the outer contour, which
	// orientContours must flip to CW since it's nested once (odd parity).
	hole := NewContour()
	hole.AddEdge(NewLineEdge(Vec2{5, 5}, Vec2{15, 5}))
	hole.AddEdge(NewLineEdge(Vec2{15, 5}, Vec2{15, 15}))
	hole.AddEdge(NewLineEdge(Vec2{15, 15}, Vec2{5, 15}))
	hole.AddEdge(NewLineEdge(Vec2{5, 15}, Vec2{5, 5}))
	s.AddContour(hole)

	orientContours(s)

	if s.Contours[0].Winding <= 0 {
		t.Errorf("outer winding = %v, want positive", s.Contours[0].Winding)
	}
	if s.Contours[1].Winding >= 0 {
		t.Errorf("hole winding = %v, want negative", s.Contours[1].Winding)
	}
}

func TestAssignColorsSimple(t *testing.T) {
	shape := NewShape()
	c := NewContour()
	c.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{10, 0}))
	c.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{5, 10}))
	c.AddEdge(NewLineEdge(Vec2{5, 10}, Vec2{0, 0}))
	shape.AddContour(c)

	// A threshold of pi detects no corners, so the contour is split into
	// three synthetic splines, one edge each, colored in palette order.
	AssignColors(shape, math.Pi)

	want := []EdgeColor{ColorCyan, ColorMagenta, ColorYellow}
	for i, e := range shape.Contours[0].Edges {
		if e.Color != want[i] {
			t.Errorf("Edge %d color = %v, want %v", i, e.Color, want[i])
		}
	}
}

func TestAssignColorsWithCorners(t *testing.T) {
	shape := NewShape()
	c := NewContour()
	c.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{10, 0}))
	c.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{10, 10}))
	c.AddEdge(NewLineEdge(Vec2{10, 10}, Vec2{0, 10}))
	c.AddEdge(NewLineEdge(Vec2{0, 10}, Vec2{0, 0}))
	shape.AddContour(c)

	AssignColors(shape, math.Pi/4)

	for i, e := range shape.Contours[0].Edges {
		if e.Color == ColorBlack {
			t.Errorf("Edge %d has ColorBlack, expected a valid color", i)
		}
	}
}

func TestAssignColorsSingleEdge(t *testing.T) {
	shape := NewShape()
	c := NewContour()
	c.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{10, 0}))
	shape.AddContour(c)

	// A lone edge is subdivided into three sub-edges; the first takes
	// the first palette color.
	AssignColors(shape, math.Pi/3)

	if shape.Contours[0].Edges[0].Color != ColorCyan {
		t.Errorf("Single edge color = %v, want ColorCyan", shape.Contours[0].Edges[0].Color)
	}
}

func TestAssignColorsSeedCarriesAcrossContours(t *testing.T) {
	shape := NewShape()

	square := NewContour()
	square.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{10, 0}))
	square.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{10, 10}))
	square.AddEdge(NewLineEdge(Vec2{10, 10}, Vec2{0, 10}))
	square.AddEdge(NewLineEdge(Vec2{0, 10}, Vec2{0, 0}))
	shape.AddContour(square)

	// A single-edge contour colors its three subdivisions starting
	// wherever the running seed says, making the seed directly
	// observable on its first sub-edge.
	tail := NewContour()
	tail.AddEdge(NewLineEdge(Vec2{20, 0}, Vec2{30, 0}))
	shape.AddContour(tail)

	AssignColors(shape, math.Pi/4)

	// The square consumes all three palette colors across its four
	// corner-bounded edges (colorPalette[0..2] plus a repeat to avoid a
	// cyclic clash), ending on magenta; the next contour's sequence
	// must continue from yellow rather than resetting to cyan.
	got := shape.Contours[1].Edges[0].Color
	if got == ColorCyan {
		t.Errorf("second contour restarted at cyan; color seed did not carry across contours")
	}
	if got != ColorYellow {
		t.Errorf("second contour first sub-edge color = %v, want %v (seed carried from square's last spline)", got, ColorYellow)
	}
}

func TestAssignColorsEmpty(t *testing.T) {
	shape := NewShape()
	c := NewContour()
	shape.AddContour(c)

	AssignColors(shape, math.Pi/3) // must not panic
}

func TestEdgeSelectors(t *testing.T) {
	tests := []struct {
		selector func(EdgeColor) bool
		color    EdgeColor
		want     bool
	}{
		{SelectRed, ColorRed, true},
		{SelectRed, ColorGreen, false},
		{SelectRed, ColorWhite, true},
		{SelectGreen, ColorGreen, true},
		{SelectGreen, ColorRed, false},
		{SelectGreen, ColorCyan, true},
		{SelectBlue, ColorBlue, true},
		{SelectBlue, ColorMagenta, true},
		{SelectBlue, ColorYellow, false},
	}

	for i, tt := range tests {
		got := tt.selector(tt.color)
		if got != tt.want {
			t.Errorf("Test %d: selector(%v) = %v, want %v", i, tt.color, got, tt.want)
		}
	}
}

func BenchmarkAssignColors(b *testing.B) {
	shape := NewShape()
	c := NewContour()
	c.AddEdge(NewLineEdge(Vec2{0, 0}, Vec2{10, 0}))
	c.AddEdge(NewLineEdge(Vec2{10, 0}, Vec2{10, 10}))
	c.AddEdge(NewLineEdge(Vec2{10, 10}, Vec2{0, 10}))
	c.AddEdge(NewLineEdge(Vec2{0, 10}, Vec2{0, 0}))
	shape.AddContour(c)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := range c.Edges {
			c.Edges[j].Color = ColorWhite
		}
		AssignColors(shape, math.Pi/3)
	}
}
