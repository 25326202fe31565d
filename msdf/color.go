package msdf

// colorPalette is the fixed three-color cycle edge coloring draws from.
var colorPalette = [3]EdgeColor{ColorCyan, ColorMagenta, ColorYellow}

// paletteIndex returns c's position in colorPalette, or 0 if c isn't in it.
func paletteIndex(c EdgeColor) int {
	for i, p := range colorPalette {
		if p == c {
			return i
		}
	}
	return 0
}

// AssignColors runs the §4.3 edge-coloring pass over every contour in the
// shape: corners are detected, each contour is partitioned into splines
// bounded by those corners, and each spline is assigned one of
// {cyan, magenta, yellow} so that the channel combination changes at
// every real or implicit corner. The color seed carries across contours:
// per §4.3, a contour's spline sequence picks up where the previous
// contour's left off rather than restarting at cyan, so two contours
// sharing a boundary pixel (an outer contour and a nested hole, say)
// don't coincidentally repeat the same channel combination there.
func AssignColors(shape *Shape, angleThreshold float64) {
	seed := 0
	for _, contour := range shape.Contours {
		seed = assignContourColors(contour, angleThreshold, seed)
	}
}

// assignContourColors colors the edges of a single contour, starting its
// spline sequence at colorPalette[seed], and returns the seed the next
// contour's sequence should continue from.
func assignContourColors(contour *Contour, angleThreshold float64, seed int) int {
	n := len(contour.Edges)
	if n == 0 {
		return seed
	}
	if n == 1 {
		return assignSingleEdgeColors(contour, seed)
	}

	corners := detectCorners(contour, angleThreshold)
	k := len(corners)

	// Too few edges to express 3 distinct splines at existing edge
	// boundaries: manufacture more boundaries by bisecting the longest
	// edge until there's room, without introducing any new corners.
	if k < 2 && n < 3 {
		expandToMinimumEdges(contour, 3)
		n = len(contour.Edges)
		corners = detectCorners(contour, angleThreshold)
		k = len(corners)
	}

	var splitStarts []int
	switch {
	case k == 0:
		// Fully smooth contour: three synthetic splines at roughly
		// equal edge-count thirds.
		splitStarts = dedupeInts([]int{0, n / 3, (2 * n) / 3})
	case k == 1:
		// Exactly one real corner ("teardrop"): keep it as one spline
		// boundary and manufacture two more at roughly equal thirds of
		// the remaining run.
		c := corners[0]
		splitStarts = dedupeInts([]int{c, (c + n/3) % n, (c + (2*n)/3) % n})
	default:
		splitStarts = corners
	}

	colors := splineColors(len(splitStarts), seed)
	for s, start := range splitStarts {
		end := splitStarts[(s+1)%len(splitStarts)]
		for i := start; i != end; i = (i + 1) % n {
			contour.Edges[i].Color = colors[s]
		}
	}

	applyChannelDiversity(contour)

	return (paletteIndex(colors[len(colors)-1]) + 1) % 3
}

// assignSingleEdgeColors handles a one-edge contour (e.g. a single closed
// cubic loop) by physically subdividing it at t = 1/3, 2/3 into three
// sub-edges, one per channel color, starting at colorPalette[seed]. It
// returns the seed the next contour should continue from.
func assignSingleEdgeColors(contour *Contour, seed int) int {
	e := contour.Edges[0]
	sub0 := e.Subdivide(0, 1.0/3)
	sub1 := e.Subdivide(1.0/3, 2.0/3)
	sub2 := e.Subdivide(2.0/3, 1)
	sub0.Color = colorPalette[seed%3]
	sub1.Color = colorPalette[(seed+1)%3]
	sub2.Color = colorPalette[(seed+2)%3]
	contour.Edges = []Edge{sub0, sub1, sub2}
	return (seed + 3) % 3
}

// expandToMinimumEdges bisects the contour's longest edge, repeatedly,
// until it has at least minEdges edges. Bisection preserves the curve
// exactly (no corner is introduced at the new joint, since the tangent
// is continuous there by construction).
func expandToMinimumEdges(contour *Contour, minEdges int) {
	for len(contour.Edges) < minEdges {
		longest, longestLen := 0, -1.0
		for i, e := range contour.Edges {
			if l := e.EndPoint().Sub(e.StartPoint()).LengthSquared(); l > longestLen {
				longestLen, longest = l, i
			}
		}
		e := contour.Edges[longest]
		left := e.Subdivide(0, 0.5)
		right := e.Subdivide(0.5, 1)

		edges := make([]Edge, 0, len(contour.Edges)+1)
		edges = append(edges, contour.Edges[:longest]...)
		edges = append(edges, left, right)
		edges = append(edges, contour.Edges[longest+1:]...)
		contour.Edges = edges
	}
}

// detectCorners returns, for each vertex between consecutive edges where
// a corner is detected, the index of the edge immediately following that
// vertex (i.e. the edge index where a new spline begins).
func detectCorners(contour *Contour, angleThreshold float64) []int {
	n := len(contour.Edges)
	var corners []int
	for i := 0; i < n; i++ {
		prev := &contour.Edges[i]
		next := &contour.Edges[(i+1)%n]
		if isCorner(prev, next, angleThreshold) {
			corners = append(corners, (i+1)%n)
		}
	}
	return corners
}

// isCorner reports a corner between two adjacent edges per §4.3: either
// their tangents turn by more than angleThreshold, or (an implicit
// corner) both edges are curved and their curvature signs disagree, even
// when the tangent turn itself is small.
func isCorner(prev, next *Edge, angleThreshold float64) bool {
	dirOut := prev.DirectionAt(1).Normalized()
	dirIn := next.DirectionAt(0).Normalized()
	if AngleBetween(dirOut, dirIn) > angleThreshold {
		return true
	}

	cs1, cs2 := prev.CurvatureSign(), next.CurvatureSign()
	return cs1 != 0 && cs2 != 0 && cs1 != cs2
}

// splineColors returns m colors from {cyan, magenta, yellow}, cycling in
// order starting at colorPalette[seed], such that no two cyclically-
// adjacent entries match. A plain cycle of period 3 only fails this when
// m is at least 4 and leaves a remainder of 1 when divided by 3 (the last
// entry would otherwise equal the first); in that case the last entry is
// replaced by whichever palette color differs from both its neighbor and
// the first entry.
func splineColors(m, seed int) []EdgeColor {
	colors := make([]EdgeColor, m)
	for i := range colors {
		colors[i] = colorPalette[(seed+i)%3]
	}
	if m >= 4 && m%3 == 1 {
		prev := colors[m-2]
		for _, c := range colorPalette {
			if c != prev && c != colors[0] {
				colors[m-1] = c
				break
			}
		}
	}
	return colors
}

// dedupeInts returns the input with adjacent and wrap-around duplicates
// collapsed, preserving order. Used when n/3 and 2n/3 boundaries collide
// for small edge counts.
func dedupeInts(in []int) []int {
	var out []int
	for _, v := range in {
		dup := false
		for _, u := range out {
			if u == v {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

// channelDiversityStride bounds how many consecutive edges a single
// spline may keep one solid color before the coloring pass interjects a
// detour through the rest of the palette. This addresses an open
// question spec.md leaves to implementation judgement: a very long
// smooth arc (a near-full circle modeled as one giant corner-free
// contour, subdivided into three broad thirds) would otherwise present
// only one channel combination across dozens of pixels in a row, which
// is unnecessary for correctness but empirically makes the downstream
// error-correction pass (§4.5) less effective at that arc's scale. The
// stride value is not derived from spec.md; it is chosen to be larger
// than any corner-bounded spline would realistically need while still
// triggering on genuinely long runs.
const channelDiversityStride = 32

// applyChannelDiversity breaks up any single-color edge run longer than
// channelDiversityStride edges into chunks cycling through the full
// three-color palette, starting with the run's original color so the
// boundary with the previous spline is unaffected.
func applyChannelDiversity(contour *Contour) {
	n := len(contour.Edges)
	if n <= channelDiversityStride {
		return
	}
	for i := 0; i < n; {
		color := contour.Edges[i].Color
		j := i
		for j < n && contour.Edges[j].Color == color {
			j++
		}
		if j-i > channelDiversityStride {
			palette := diversityPalette(color)
			for idx := i; idx < j; idx++ {
				contour.Edges[idx].Color = palette[((idx-i)/channelDiversityStride)%len(palette)]
			}
		}
		i = j
	}
}

// diversityPalette returns a 3-color rotation starting with first.
func diversityPalette(first EdgeColor) [3]EdgeColor {
	all := [3]EdgeColor{ColorCyan, ColorMagenta, ColorYellow}
	out := [3]EdgeColor{first}
	n := 1
	for _, c := range all {
		if c != first {
			out[n] = c
			n++
		}
	}
	return out
}

// EdgeSelectorFunc reports whether an edge's color participates in a
// given output channel.
type EdgeSelectorFunc func(color EdgeColor) bool

// SelectRed reports whether color includes the red channel.
func SelectRed(color EdgeColor) bool { return color.HasRed() }

// SelectGreen reports whether color includes the green channel.
func SelectGreen(color EdgeColor) bool { return color.HasGreen() }

// SelectBlue reports whether color includes the blue channel.
func SelectBlue(color EdgeColor) bool { return color.HasBlue() }
