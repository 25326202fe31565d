// Command msdfgen renders a multi-channel signed distance field for a
// single hand-described shape and writes it as a PNG. It exists to
// demonstrate the msdf package end to end; it does not parse font files.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/gogpu/msdfgen/internal/outline"
	"github.com/gogpu/msdfgen/msdf"
)

func main() {
	var (
		size    = flag.Int("size", 32, "output bitmap edge length in pixels")
		padding = flag.Float64("padding", 2, "pixel padding around the shape")
		rng     = flag.Float64("range", 4, "pixel distance spanning one full byte range")
		shape   = flag.String("shape", "circle", "built-in demo shape: circle, square, teardrop")
		output  = flag.String("output", "msdf.png", "output PNG path")
	)
	flag.Parse()

	cfg := msdf.DefaultConfig()
	cfg.Size = *size
	cfg.Padding = *padding
	cfg.Range = *rng

	segments, ok := demoShapes[*shape]
	if !ok {
		log.Fatalf("unknown shape %q (want one of: circle, square, teardrop)", *shape)
	}

	gen := msdf.NewGenerator(cfg)
	result, err := gen.Generate(outline.Build(segments()))
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	if err := writePNG(*output, result); err != nil {
		log.Fatalf("write png: %v", err)
	}
	log.Printf("wrote %s (%dx%d)", *output, result.Width, result.Height)
}

// demoShapes are small hand-built outlines used to exercise the generator
// without a font parser.
var demoShapes = map[string]func() []outline.Segment{
	"circle":   circleSegments,
	"square":   squareSegments,
	"teardrop": teardropSegments,
}

func squareSegments() []outline.Segment {
	return []outline.Segment{
		{Op: outline.MoveTo, Points: [3]msdf.Vec2{{X: 0, Y: 0}}},
		{Op: outline.LineTo, Points: [3]msdf.Vec2{{X: 100, Y: 0}}},
		{Op: outline.LineTo, Points: [3]msdf.Vec2{{X: 100, Y: 100}}},
		{Op: outline.LineTo, Points: [3]msdf.Vec2{{X: 0, Y: 100}}},
		{Op: outline.LineTo, Points: [3]msdf.Vec2{{X: 0, Y: 0}}},
	}
}

// circleSegments approximates a circle with four cubic quadrants, the
// standard kappa-constant construction.
func circleSegments() []outline.Segment {
	const r = 50.0
	const k = 0.5522847498 * r
	c := msdf.Vec2{X: 50, Y: 50}
	pt := func(x, y float64) msdf.Vec2 { return msdf.Vec2{X: c.X + x, Y: c.Y + y} }

	return []outline.Segment{
		{Op: outline.MoveTo, Points: [3]msdf.Vec2{pt(r, 0)}},
		{Op: outline.CubicTo, Points: [3]msdf.Vec2{pt(r, k), pt(k, r), pt(0, r)}},
		{Op: outline.CubicTo, Points: [3]msdf.Vec2{pt(-k, r), pt(-r, k), pt(-r, 0)}},
		{Op: outline.CubicTo, Points: [3]msdf.Vec2{pt(-r, -k), pt(-k, -r), pt(0, -r)}},
		{Op: outline.CubicTo, Points: [3]msdf.Vec2{pt(k, -r), pt(r, -k), pt(r, 0)}},
	}
}

// teardropSegments is a single closed cubic loop with exactly one sharp
// corner, exercising the coloring pass's k==1 regime.
func teardropSegments() []outline.Segment {
	return []outline.Segment{
		{Op: outline.MoveTo, Points: [3]msdf.Vec2{{X: 50, Y: 0}}},
		{Op: outline.CubicTo, Points: [3]msdf.Vec2{{X: 110, Y: 60}, {X: 90, Y: 100}, {X: 50, Y: 100}}},
		{Op: outline.CubicTo, Points: [3]msdf.Vec2{{X: 10, Y: 100}, {X: -10, Y: 60}, {X: 50, Y: 0}}},
	}
}

func writePNG(path string, m *msdf.MSDF) error {
	img := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			r, g, b := m.GetPixel(x, y)
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
