package msdf

import "math"

// stencil marks each pixel PROTECTED (never touched by Pass C) or ERROR
// (flagged by Pass B as a likely rendering artifact and due for
// correction). A pixel starts neither and may only ever gain one mark.
type stencil struct {
	protected []bool
	flagged   []bool
	width     int
}

func newStencil(width, height int) *stencil {
	return &stencil{
		protected: make([]bool, width*height),
		flagged:   make([]bool, width*height),
		width:     width,
	}
}

func (s *stencil) index(x, y int) int { return y*s.width + x }

func (s *stencil) protect(x, y int) { s.protected[s.index(x, y)] = true }

func (s *stencil) isProtected(x, y int) bool { return s.protected[s.index(x, y)] }

func (s *stencil) flag(x, y int) { s.flagged[s.index(x, y)] = true }

func (s *stencil) isFlagged(x, y int) bool { return s.flagged[s.index(x, y)] }

// correctErrors runs the §4.5 three-pass error-correction stencil over
// result in place: Pass A protects pixels near corners (and, along an
// edge, pixels where the three channels already agree) from correction;
// Pass B flags every remaining pixel whose channels disagree in a way
// that would render as a visible notch or gap rather than a genuine
// corner; Pass C replaces each flagged, unprotected pixel's channels with
// their own median, which is idempotent and never introduces a new
// extremum.
func correctErrors(result *MSDF, shape *Shape, angleThreshold float64, thresholds CorrectionThresholds) {
	st := newStencil(result.Width, result.Height)

	protectNearCorners(result, shape, st, angleThreshold)
	protectAgreeingPixels(result, st, thresholds)
	flagClashingPixels(result, st, thresholds)
	applyCorrections(result, st)
}

// cornerProtectionRadiusPx bounds how far (in pixels) from a detected
// corner a pixel is protected from Pass C correction: a 7x7 box (§4.5
// Pass A) around the corner's rasterized position, since the three
// channels are expected to legitimately disagree sharply there by
// design.
const cornerProtectionRadiusPx = 3

// protectNearCorners marks PROTECTED every pixel within
// cornerProtectionRadiusPx of a detected corner vertex's rasterized
// position, since the three channels are expected to disagree sharply
// there by design.
func protectNearCorners(result *MSDF, shape *Shape, st *stencil, angleThreshold float64) {
	for _, contour := range shape.Contours {
		n := len(contour.Edges)
		for i := 0; i < n; i++ {
			prev := &contour.Edges[i]
			next := &contour.Edges[(i+1)%n]
			if !isCorner(prev, next, angleThreshold) {
				continue
			}
			corner := next.StartPoint()
			px, py := result.OutlineToPixel(corner.X, corner.Y)
			cx, cy := int(math.Round(px)), int(math.Round(py))
			for dy := -cornerProtectionRadiusPx; dy <= cornerProtectionRadiusPx; dy++ {
				for dx := -cornerProtectionRadiusPx; dx <= cornerProtectionRadiusPx; dx++ {
					x, y := cx+dx, cy+dy
					if x >= 0 && x < result.Width && y >= 0 && y < result.Height {
						st.protect(x, y)
					}
				}
			}
		}
	}
}

// protectAgreeingPixels marks PROTECTED every pixel where the three
// channels already agree closely (within the Agreement threshold is too
// coarse for this purpose; an exact single-byte median match is used
// instead), since a pixel whose channels already coincide cannot be
// harboring a gap or notch artifact — unless its 8-neighborhood shows an
// inside/outside clash of its own, in which case this pixel sits right
// at a genuine multi-edge junction and Pass B must still be allowed to
// evaluate it (§4.5 Pass A's junction-artifact exception).
func protectAgreeingPixels(result *MSDF, st *stencil, thresholds CorrectionThresholds) {
	const midpoint = 127.0
	for y := 0; y < result.Height; y++ {
		for x := 0; x < result.Width; x++ {
			if st.isProtected(x, y) {
				continue
			}
			r, g, b := result.GetPixel(x, y)
			if r != g || g != b {
				continue
			}
			if neighborsClashAtJunction(result, x, y, midpoint, thresholds.Agreement) {
				continue
			}
			st.protect(x, y)
		}
	}
}

// neighborsClashAtJunction reports whether any of (x,y)'s 8 neighbors
// itself shows an inside/outside channel clash, which marks (x,y) as
// sitting adjacent to a genuine edge junction rather than deep inside a
// uniform region.
func neighborsClashAtJunction(result *MSDF, x, y int, midpoint, agreement float64) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= result.Width || ny < 0 || ny >= result.Height {
				continue
			}
			nr, ng, nb := result.GetPixel(nx, ny)
			if channelsStraddleMidpoint(float64(nr), float64(ng), float64(nb), midpoint, agreement) {
				return true
			}
		}
	}
	return false
}

// flagClashingPixels implements Pass B: every unprotected pixel is
// compared against its channel median for three kinds of disagreement.
// An inside/outside clash is when the channels straddle the 127 midpoint
// by more than Agreement apart. A gap-artifact spike is when two channels
// agree within Agreement of each other but the third diverges from their
// average by more than Outlier. A threshold-boundary disagreement is when
// the channels fall on both sides of the midpoint, at least two of them
// sit within NearThreshold of it, and the spread across all three
// exceeds Agreement, which tends to show up as flicker right on a contour.
func flagClashingPixels(result *MSDF, st *stencil, thresholds CorrectionThresholds) {
	const midpoint = 127.0
	for y := 0; y < result.Height; y++ {
		for x := 0; x < result.Width; x++ {
			if st.isProtected(x, y) {
				continue
			}
			r, g, b := result.GetPixel(x, y)
			rf, gf, bf := float64(r), float64(g), float64(b)

			if insideOutsideClash(result, x, y, midpoint, thresholds.Agreement) {
				st.flag(x, y)
				continue
			}
			if gapArtifact(rf, gf, bf, thresholds.Agreement, thresholds.Outlier) {
				st.flag(x, y)
				continue
			}
			if thresholdBoundaryDisagreement(rf, gf, bf, midpoint, thresholds.NearThreshold, thresholds.Agreement) {
				st.flag(x, y)
			}
		}
	}
}

// channelsStraddleMidpoint reports whether the three channel values
// disagree on which side of the midpoint (inside/outside) they fall, by
// more than agreement.
func channelsStraddleMidpoint(r, g, b, midpoint, agreement float64) bool {
	above := 0
	below := 0
	for _, v := range [3]float64{r, g, b} {
		if v > midpoint+agreement {
			above++
		} else if v < midpoint-agreement {
			below++
		}
	}
	return above > 0 && below > 0
}

// insideOutsideClash reports whether pixel (x,y)'s own channels straddle
// the midpoint by more than agreement, AND at least one cardinal
// neighbor in each direction corroborates an actual inside/outside
// boundary at this point (§4.5 Pass B criterion 1): one neighbor reading
// unambiguously inside and another reading unambiguously outside. A
// pixel whose own channels clash but whose neighborhood shows no such
// boundary is an isolated fluctuation, not the artifact this check
// exists to catch.
func insideOutsideClash(result *MSDF, x, y int, midpoint, agreement float64) bool {
	r, g, b := result.GetPixel(x, y)
	if !channelsStraddleMidpoint(float64(r), float64(g), float64(b), midpoint, agreement) {
		return false
	}
	return cardinalBoundarySupport(result, x, y, midpoint, agreement)
}

// cardinalBoundarySupport reports whether, among (x,y)'s four cardinal
// neighbors, at least one reads unambiguously inside (median above
// midpoint+agreement) and at least one other reads unambiguously
// outside (median below midpoint-agreement).
func cardinalBoundarySupport(result *MSDF, x, y int, midpoint, agreement float64) bool {
	dirs := [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	insideNeighbor, outsideNeighbor := false, false
	for _, d := range dirs {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= result.Width || ny < 0 || ny >= result.Height {
			continue
		}
		nr, ng, nb := result.GetPixel(nx, ny)
		nm := float64(median3Byte(nr, ng, nb))
		if nm > midpoint+agreement {
			insideNeighbor = true
		} else if nm < midpoint-agreement {
			outsideNeighbor = true
		}
	}
	return insideNeighbor && outsideNeighbor
}

// gapArtifact reports whether two channels closely agree while the third
// spikes away from their average, the signature of a thin gap or notch
// that shouldn't exist given the shape's actual geometry at that point.
func gapArtifact(r, g, b, agreement, outlier float64) bool {
	vals := [3]float64{r, g, b}
	for i := 0; i < 3; i++ {
		a, bb, c := vals[i], vals[(i+1)%3], vals[(i+2)%3]
		if math.Abs(a-bb) <= agreement {
			avg := (a + bb) / 2
			if math.Abs(c-avg) > outlier {
				return true
			}
		}
	}
	return false
}

// thresholdBoundaryDisagreement reports whether at least two channels sit
// within nearThreshold of the midpoint while the spread between the
// highest and lowest of all three channels exceeds agreement, which tends
// to flicker right at a contour edge.
// Per §4.5 Pass B criterion 3, this only applies when the channels
// actually disagree about inside/outside; three channels that are merely
// all close to the midpoint but on the same side of it (e.g. all
// comfortably "inside") are not a boundary disagreement no matter how
// spread out they are relative to each other.
func thresholdBoundaryDisagreement(r, g, b, midpoint, nearThreshold, agreement float64) bool {
	if !signDisagreement(r, g, b, midpoint) {
		return false
	}

	vals := [3]float64{r, g, b}
	near := 0
	for _, v := range vals {
		if math.Abs(v-midpoint) <= nearThreshold {
			near++
		}
	}
	if near < 2 {
		return false
	}
	maxV, minV := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v > maxV {
			maxV = v
		}
		if v < minV {
			minV = v
		}
	}
	return maxV-minV > agreement
}

// signDisagreement reports whether the three channels fall on both sides
// of the midpoint (as opposed to channelsStraddleMidpoint's stronger
// more-than-agreement-apart test): at least one channel strictly above,
// and at least one strictly below.
func signDisagreement(r, g, b, midpoint float64) bool {
	above, below := false, false
	for _, v := range [3]float64{r, g, b} {
		if v > midpoint {
			above = true
		} else if v < midpoint {
			below = true
		}
	}
	return above && below
}

// applyCorrections implements Pass C: every flagged, unprotected pixel
// has all three channels replaced with their shared median, collapsing
// the disagreement without introducing a value none of the three
// channels already held.
func applyCorrections(result *MSDF, st *stencil) {
	for y := 0; y < result.Height; y++ {
		for x := 0; x < result.Width; x++ {
			if !st.isFlagged(x, y) || st.isProtected(x, y) {
				continue
			}
			r, g, b := result.GetPixel(x, y)
			m := median3Byte(r, g, b)
			result.SetPixel(x, y, m, m, m)
		}
	}
}

// median3Byte returns the median of three bytes.
func median3Byte(a, b, c byte) byte {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return b
}
