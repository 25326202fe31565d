// Package outline adapts a path-command stream (the kind a font rasterizer
// or any other vector source emits) into an msdf.Shape. It knows nothing
// about font files or glyph IDs; it only understands MoveTo/LineTo/QuadTo/
// CubicTo commands, which is the boundary spec.md draws around the MSDF
// generator's input (§6 Input Shape).
package outline

import "github.com/gogpu/msdfgen/msdf"

// Op is a single path-drawing command.
type Op uint8

const (
	// MoveTo starts a new contour at Points[0]. The contour implicitly
	// closes back to this point when the next MoveTo (or the stream's
	// end) is reached.
	MoveTo Op = iota
	// LineTo draws a straight segment to Points[0].
	LineTo
	// QuadTo draws a quadratic curve through control Points[0] to
	// target Points[1].
	QuadTo
	// CubicTo draws a cubic curve through controls Points[0], Points[1]
	// to target Points[2].
	CubicTo
)

// Segment is one command in a path-command stream.
type Segment struct {
	Op     Op
	Points [3]msdf.Vec2
}

// Build converts a path-command stream into a Shape. Each MoveTo starts a
// new contour; a contour that hasn't been explicitly closed back to its
// start point with a LineTo is closed implicitly when the next MoveTo (or
// the end of segments) is reached, matching how TrueType/PostScript
// outlines are normally emitted.
func Build(segments []Segment) *msdf.Shape {
	shape := msdf.NewShape()

	var current *msdf.Contour
	var contourStart, cursor msdf.Vec2

	closeCurrent := func() {
		if current == nil || len(current.Edges) == 0 {
			return
		}
		if cursor != contourStart {
			current.AddEdge(msdf.NewLineEdge(cursor, contourStart))
		}
		shape.AddContour(current)
	}

	for _, seg := range segments {
		switch seg.Op {
		case MoveTo:
			closeCurrent()
			current = msdf.NewContour()
			contourStart = seg.Points[0]
			cursor = seg.Points[0]
		case LineTo:
			if current == nil {
				continue
			}
			current.AddEdge(msdf.NewLineEdge(cursor, seg.Points[0]))
			cursor = seg.Points[0]
		case QuadTo:
			if current == nil {
				continue
			}
			current.AddEdge(msdf.NewQuadraticEdge(cursor, seg.Points[0], seg.Points[1]))
			cursor = seg.Points[1]
		case CubicTo:
			if current == nil {
				continue
			}
			current.AddEdge(msdf.NewCubicEdge(cursor, seg.Points[0], seg.Points[1], seg.Points[2]))
			cursor = seg.Points[2]
		}
	}
	closeCurrent()

	shape.CalculateBounds()
	return shape
}
