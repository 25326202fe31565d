package msdf

import (
	"math"
	"sync"
)

// Generator turns a Shape into an MSDF bitmap per a fixed Config.
type Generator struct {
	config Config
}

// NewGenerator creates a generator with the given configuration.
func NewGenerator(config Config) *Generator { return &Generator{config: config} }

// DefaultGenerator creates a generator with DefaultConfig.
func DefaultGenerator() *Generator { return NewGenerator(DefaultConfig()) }

// Config returns the generator's configuration.
func (g *Generator) Config() Config { return g.config }

// SetConfig updates the generator's configuration.
func (g *Generator) SetConfig(config Config) { g.config = config }

// Generate computes an MSDF for shape. A nil shape, or one with no
// contours, or whose bounds collapse to nothing once normalized,
// produces a valid all-background bitmap and a nil error (§7:
// DegenerateShape is non-fatal). CorruptedOutline is returned as a
// *GenerationError when the shape's contours don't close.
func (g *Generator) Generate(shape *Shape) (*MSDF, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	if shape == nil || len(shape.Contours) == 0 {
		Logger().Warn("msdf: degenerate shape, no contours")
		return g.generateEmpty(), nil
	}

	shape.Normalize()
	if !shape.Validate() {
		return nil, &GenerationError{Kind: CorruptedOutline, Reason: "a contour does not close"}
	}
	if len(shape.Contours) == 0 || shape.EdgeCount() == 0 {
		Logger().Warn("msdf: degenerate shape, no edges after normalization")
		return g.generateEmpty(), nil
	}

	orientContours(shape)
	AssignColors(shape, g.config.AngleThreshold)
	shape.CalculateBounds()

	if shape.Bounds.IsEmpty() {
		Logger().Warn("msdf: degenerate shape, empty bounds")
		return g.generateEmpty(), nil
	}

	var scale, translateX, translateY float64
	padding := g.config.Padding
	bounds := shape.Bounds.Expand(padding)
	if g.config.MSDFGenAutoframe {
		scale, translateX, translateY = autoframeTransform(bounds, g.config.Size, padding)
	} else {
		scale, translateX, translateY = conservativeTransform(bounds, g.config.Size, padding)
	}

	result := &MSDF{
		Data:       make([]byte, g.config.Size*g.config.Size*3),
		Width:      g.config.Size,
		Height:     g.config.Size,
		Bounds:     bounds,
		Scale:      scale,
		TranslateX: translateX,
		TranslateY: translateY,
	}

	g.generateDistanceField(result, shape)

	if g.config.ErrorCorrection {
		correctErrors(result, shape, g.config.AngleThreshold, g.config.CorrectionThresholds)
	}

	Logger().Debug("msdf: generated",
		"contours", len(shape.Contours),
		"edges", shape.EdgeCount(),
		"size", g.config.Size,
		"scale", scale,
	)

	return result, nil
}

// generateEmpty returns a fully-outside bitmap of the configured size.
func (g *Generator) generateEmpty() *MSDF {
	size := g.config.Size
	return &MSDF{
		Data:   make([]byte, size*size*3),
		Width:  size,
		Height: size,
		Bounds: Rect{},
		Scale:  1.0,
	}
}

// autoframeTransform computes the msdfgen-compatible scale/translate: the
// padded bounds are uniformly scaled to fit the bitmap and the result is
// centered.
func autoframeTransform(bounds Rect, size int, padding float64) (scale, translateX, translateY float64) {
	scale = calculateScale(bounds, size, padding)
	occupiedW := bounds.Width() * scale
	occupiedH := bounds.Height() * scale
	translateX = (float64(size) - occupiedW) / 2
	translateY = (float64(size) - occupiedH) / 2
	return
}

// conservativeTransform computes a scale/translate pair that keeps the
// glyph strictly inside the bitmap even after floating-point rounding: the
// fitted scale is shrunk by a small safety margin and the shape is
// anchored at exactly `padding` pixels from the top-left corner rather
// than centered, so the unused margin always falls on the bottom-right
// side, where rounding error can only eat into slack padding instead of
// pushing content past the bitmap edge.
func conservativeTransform(bounds Rect, size int, padding float64) (scale, translateX, translateY float64) {
	const safetyMargin = 0.999
	scale = calculateScale(bounds, size, padding) * safetyMargin
	translateX = padding
	translateY = padding
	return
}

// calculateScale fits bounds into a size x size square leaving padding on
// each axis, using the smaller of the two per-axis scales.
func calculateScale(bounds Rect, size int, padding float64) float64 {
	available := float64(size) - 2*padding
	if available <= 0 {
		available = float64(size)
	}

	w, h := bounds.Width(), bounds.Height()
	switch {
	case w <= 0 && h <= 0:
		return 1.0
	case w > 0 && h > 0:
		return min(available/w, available/h)
	case w > 0:
		return available / w
	default:
		return available / h
	}
}

// generateDistanceField fills result's pixel data, splitting rows across
// a small worker pool. Each pixel is independent, so there's no
// synchronization beyond the final join.
func (g *Generator) generateDistanceField(result *MSDF, shape *Shape) {
	size := g.config.Size
	const numWorkers = 4
	rowsPerWorker := (size + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, size)
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			g.processRows(result, shape, start, end)
		}(start, end)
	}
	wg.Wait()
}

// processRows evaluates the MSDF for pixel rows [startRow, endRow).
func (g *Generator) processRows(result *MSDF, shape *Shape, startRow, endRow int) {
	size := result.Width
	rangePx := g.config.Range

	for y := startRow; y < endRow; y++ {
		for x := 0; x < size; x++ {
			ox, oy := result.PixelToOutline(float64(x)+0.5, float64(y)+0.5)
			q := Vec2{X: ox, Y: oy}

			r := channelDistance(shape, q, SelectRed)
			gr := channelDistance(shape, q, SelectGreen)
			b := channelDistance(shape, q, SelectBlue)

			result.SetPixel(x, y,
				distanceToPixel(r.Distance, rangePx, result.Scale),
				distanceToPixel(gr.Distance, rangePx, result.Scale),
				distanceToPixel(b.Distance, rangePx, result.Scale),
			)
		}
	}
}

// channelDistance implements §4.4 steps 3-4: the nearest edge carrying
// this channel is found across every contour's edge pool (ignoring
// overall shape winding), then its distance is converted to a
// pseudo-distance if the closest point landed exactly on an endpoint.
func channelDistance(shape *Shape, q Vec2, selector EdgeSelectorFunc) SignedDistance {
	best, bestEdge, bestParam := Infinite(), (*Edge)(nil), 0.0

	consider := func(e *Edge) {
		sd, param := e.SignedDistanceParam(q)
		if sd.IsCloserThan(best) {
			best, bestEdge, bestParam = sd, e, param
		}
	}

	for _, contour := range shape.Contours {
		for i := range contour.Edges {
			if e := &contour.Edges[i]; selector(e.Color) {
				consider(e)
			}
		}
	}
	if bestEdge == nil {
		// No edge carries this channel; shouldn't happen with proper
		// coloring, but fall back to the full edge pool so the channel
		// still reports a sane distance instead of +Inf.
		for _, contour := range shape.Contours {
			for i := range contour.Edges {
				consider(&contour.Edges[i])
			}
		}
	}
	if bestEdge != nil {
		best = bestEdge.DistanceToPseudoDistance(best, q, bestParam)
	}
	return best
}

// distanceToPixel maps a signed distance (outline units, negative inside)
// to a byte: 0 is fully outside, 255 fully inside, 128 is the edge.
func distanceToPixel(distance, rangePx, scale float64) byte {
	distPx := distance * scale
	normalized := 0.5 - distPx/rangePx
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}
	return byte(math.Round(normalized * 255))
}

// GenerateBatch generates MSDFs for several shapes concurrently.
func (g *Generator) GenerateBatch(shapes []*Shape) ([]*MSDF, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	results := make([]*MSDF, len(shapes))
	var wg sync.WaitGroup
	var errMu sync.Mutex
	var firstError error

	for i, shape := range shapes {
		wg.Add(1)
		go func(idx int, s *Shape) {
			defer wg.Done()
			msdf, err := g.Generate(s)
			if err != nil {
				errMu.Lock()
				if firstError == nil {
					firstError = err
				}
				errMu.Unlock()
				return
			}
			results[idx] = msdf
		}(i, shape)
	}
	wg.Wait()

	if firstError != nil {
		return nil, firstError
	}
	return results, nil
}

// GenerationMetrics summarizes the shape and bitmap a generation run
// produced. Distinct from Metrics (config.go), which describes a glyph's
// em-normalized layout metrics rather than this run's bitmap statistics.
type GenerationMetrics struct {
	Width, Height int
	Scale         float64
	Bounds        Rect
	NumContours   int
	NumEdges      int
}

// GenerateWithMetrics generates an MSDF and returns GenerationMetrics
// alongside it.
func (g *Generator) GenerateWithMetrics(shape *Shape) (*MSDF, *GenerationMetrics, error) {
	if err := g.config.Validate(); err != nil {
		return nil, nil, err
	}

	if shape == nil || len(shape.Contours) == 0 {
		msdf := g.generateEmpty()
		return msdf, &GenerationMetrics{Width: msdf.Width, Height: msdf.Height, Scale: msdf.Scale}, nil
	}

	numContours, numEdges := len(shape.Contours), shape.EdgeCount()

	msdf, err := g.Generate(shape)
	if err != nil {
		return nil, nil, err
	}

	return msdf, &GenerationMetrics{
		Width:       msdf.Width,
		Height:      msdf.Height,
		Scale:       msdf.Scale,
		Bounds:      msdf.Bounds,
		NumContours: numContours,
		NumEdges:    numEdges,
	}, nil
}

// GeneratorPool lets concurrent callers reuse Generator values.
type GeneratorPool struct {
	pool   sync.Pool
	config Config
}

// NewGeneratorPool creates a pool of generators sharing config.
func NewGeneratorPool(config Config) *GeneratorPool {
	return &GeneratorPool{
		config: config,
		pool: sync.Pool{
			New: func() interface{} { return NewGenerator(config) },
		},
	}
}

// Get retrieves a generator from the pool.
func (p *GeneratorPool) Get() *Generator { return p.pool.Get().(*Generator) }

// Put returns a generator to the pool, resetting its config first in
// case a caller mutated it.
func (p *GeneratorPool) Put(g *Generator) {
	g.config = p.config
	p.pool.Put(g)
}

// Generate generates an MSDF using a pooled generator.
func (p *GeneratorPool) Generate(shape *Shape) (*MSDF, error) {
	gen := p.Get()
	defer p.Put(gen)
	return gen.Generate(shape)
}
