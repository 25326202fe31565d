package msdf

import "math"

// Contour represents a single closed contour of edges. A glyph typically
// consists of one outer contour plus zero or more hole contours.
type Contour struct {
	// Edges is the list of edges that form this contour, in travel order.
	Edges []Edge

	// Winding is the signed area of the contour (shoelace formula).
	// Positive means counter-clockwise, negative clockwise.
	Winding float64
}

// NewContour creates an empty contour.
func NewContour() *Contour {
	return &Contour{Edges: make([]Edge, 0)}
}

// AddEdge appends an edge to the contour.
func (c *Contour) AddEdge(e Edge) {
	c.Edges = append(c.Edges, e)
}

// Bounds returns the bounding box of all edges in the contour.
func (c *Contour) Bounds() Rect {
	if len(c.Edges) == 0 {
		return Rect{}
	}
	bounds := c.Edges[0].Bounds()
	for i := 1; i < len(c.Edges); i++ {
		bounds = bounds.Union(c.Edges[i].Bounds())
	}
	return bounds
}

// CalculateWinding computes and stores the signed area via the shoelace
// formula: sum of cross(p0, p1) over each edge's endpoints, halved.
func (c *Contour) CalculateWinding() {
	var area float64
	for i := range c.Edges {
		p0 := c.Edges[i].StartPoint()
		p1 := c.Edges[i].EndPoint()
		area += p0.Cross(p1)
	}
	c.Winding = area / 2
}

// IsClockwise returns true if the contour winds clockwise.
func (c *Contour) IsClockwise() bool { return c.Winding < 0 }

// Clone creates a deep copy of the contour.
func (c *Contour) Clone() *Contour {
	clone := &Contour{Edges: make([]Edge, len(c.Edges)), Winding: c.Winding}
	for i := range c.Edges {
		clone.Edges[i] = c.Edges[i].Clone()
	}
	return clone
}

// reverse flips the contour's direction of travel: edges are reordered
// back to front and each edge's own control points are reversed, then
// Winding is recomputed. Used by orientContours to correct a contour
// whose stored winding doesn't match its containment-derived role.
func (c *Contour) reverse() {
	n := len(c.Edges)
	reversed := make([]Edge, n)
	for i, e := range c.Edges {
		reversed[n-1-i] = e.Reverse()
	}
	c.Edges = reversed
	c.CalculateWinding()
}

// containsPoint reports whether p lies inside the contour, using a
// horizontal ray cast to the right and the non-zero winding rule. Used
// by orientContours to determine nesting depth between contours.
func (c *Contour) containsPoint(p Vec2) bool {
	crossings := 0
	for i := range c.Edges {
		crossings += edgeRayCrossings(&c.Edges[i], p)
	}
	return crossings != 0
}

// edgeRayCrossings counts the signed number of times a rightward
// horizontal ray from p crosses e, using the half-open parameter interval
// (0, 1] so a vertex shared by two adjacent edges is counted exactly once.
func edgeRayCrossings(e *Edge, p Vec2) int {
	crossings := 0
	switch e.Type {
	case EdgeLine:
		p0, p1 := e.Points[0], e.Points[1]
		dy := p1.Y - p0.Y
		if dy == 0 {
			return 0
		}
		t := (p.Y - p0.Y) / dy
		if t > 0 && t <= 1 {
			x := p0.X + t*(p1.X-p0.X)
			if x > p.X {
				crossings += crossingSign(dy)
			}
		}
	case EdgeQuadratic:
		p0, p1, p2 := e.Points[0], e.Points[1], e.Points[2]
		a := p0.Y - 2*p1.Y + p2.Y
		b := 2 * (p1.Y - p0.Y)
		c := p0.Y - p.Y
		for _, t := range solveQuadratic(a, b, c) {
			if t > 0 && t <= 1 {
				if x := evaluateQuadratic(p0, p1, p2, t).X; x > p.X {
					if dy := quadraticDerivative(p0, p1, p2, t).Y; dy != 0 {
						crossings += crossingSign(dy)
					}
				}
			}
		}
	case EdgeCubic:
		p0, p1, p2, p3 := e.Points[0], e.Points[1], e.Points[2], e.Points[3]
		a := -p0.Y + 3*p1.Y - 3*p2.Y + p3.Y
		b := 3*p0.Y - 6*p1.Y + 3*p2.Y
		c := -3*p0.Y + 3*p1.Y
		d := p0.Y - p.Y
		for _, t := range solveCubic(a, b, c, d) {
			if t > 0 && t <= 1 {
				if x := evaluateCubic(p0, p1, p2, p3, t).X; x > p.X {
					if dy := cubicDerivative(p0, p1, p2, p3, t).Y; dy != 0 {
						crossings += crossingSign(dy)
					}
				}
			}
		}
	}
	return crossings
}

func crossingSign(dy float64) int {
	if dy > 0 {
		return 1
	}
	return -1
}

// Shape represents a complete glyph shape consisting of one or more
// contours, optionally with holes.
type Shape struct {
	Contours []*Contour
	Bounds   Rect
}

// NewShape creates an empty shape.
func NewShape() *Shape {
	return &Shape{Contours: make([]*Contour, 0)}
}

// AddContour appends a contour to the shape.
func (s *Shape) AddContour(c *Contour) {
	s.Contours = append(s.Contours, c)
}

// CalculateBounds computes and stores the overall bounding box.
func (s *Shape) CalculateBounds() {
	if len(s.Contours) == 0 {
		s.Bounds = Rect{}
		return
	}
	s.Bounds = s.Contours[0].Bounds()
	for i := 1; i < len(s.Contours); i++ {
		s.Bounds = s.Bounds.Union(s.Contours[i].Bounds())
	}
}

// Validate checks that every contour is closed (its last edge's endpoint
// coincides with its first edge's start point).
func (s *Shape) Validate() bool {
	for _, contour := range s.Contours {
		if len(contour.Edges) == 0 {
			continue
		}
		first := contour.Edges[0].StartPoint()
		last := contour.Edges[len(contour.Edges)-1].EndPoint()
		if math.Abs(first.X-last.X) > 1e-6 || math.Abs(first.Y-last.Y) > 1e-6 {
			return false
		}
	}
	return true
}

// EdgeCount returns the total number of edges across all contours.
func (s *Shape) EdgeCount() int {
	count := 0
	for _, c := range s.Contours {
		count += len(c.Edges)
	}
	return count
}

// Normalize removes degenerate (near-zero-length) edges and drops any
// contour left with no edges as a result, then recomputes Bounds. Run
// once, before orientContours and AssignColors, so an input shape that
// differs only in incidental zero-length segments produces an identical
// field (§8 scenario S5).
func (s *Shape) Normalize() {
	var survivors []*Contour
	for _, c := range s.Contours {
		kept := c.Edges[:0:0]
		for _, e := range c.Edges {
			if e.StartPoint().Sub(e.EndPoint()).LengthSquared() < 1e-12 {
				continue
			}
			kept = append(kept, e)
		}
		c.Edges = kept
		if len(c.Edges) > 0 {
			survivors = append(survivors, c)
		}
	}
	s.Contours = survivors
	s.CalculateBounds()
}

// orientContours implements §4.2: each contour's expected winding sign is
// determined by the parity of how many other contours contain it (even
// containment count, including the outermost contour's own count of
// zero, winds counter-clockwise; odd winds clockwise, marking a hole).
// Any contour whose actual winding doesn't match is reversed in place.
func orientContours(shape *Shape) {
	contours := shape.Contours
	if len(contours) == 0 {
		return
	}
	for _, c := range contours {
		c.CalculateWinding()
	}
	for i, c := range contours {
		if len(c.Edges) == 0 {
			continue
		}
		testPoint := c.Edges[0].StartPoint()
		containment := 0
		for j, other := range contours {
			if j == i {
				continue
			}
			if other.containsPoint(testPoint) {
				containment++
			}
		}
		wantCCW := containment%2 == 0
		isCCW := c.Winding > 0
		if wantCCW != isCCW {
			c.reverse()
		}
	}
}
