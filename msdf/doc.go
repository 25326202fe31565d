// Package msdf computes multi-channel signed distance fields for glyph
// shapes. An MSDF encodes a glyph's outline as three overlapping ordinary
// distance fields, one per RGB channel, so that the median of the three
// channels reconstructs a single field with sharp corners even after
// bilinear texture magnification, something a single-channel SDF can't do
// without beveling every corner.
//
// # How it works
//
//  1. A caller-supplied Shape (contours of line/quadratic/cubic edges) is
//     normalized, oriented, and its edges are colored so the channel
//     combination changes at every corner.
//  2. For each output pixel, Generate independently finds the
//     closest-edge distance per channel, using pseudo-distance near
//     contour endpoints so colors stay consistent across a corner.
//  3. Distances are mapped to bytes and an error-correction pass fixes
//     pixels where the three channels disagree in a way that would
//     produce a visible artifact rather than a corner.
//
// Generate is a pure function: no file I/O, no font parsing, no GPU
// calls. Building a Shape from a real font file and packing many MSDFs
// into an atlas texture are the responsibility of other packages.
//
// # Usage
//
//	cfg := msdf.DefaultConfig()
//	cfg.Size = 64
//
//	gen := msdf.NewGenerator(cfg)
//	result, err := gen.Generate(shape)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// result.Data is 3*Size*Size bytes of row-major RGB.
//
// # Shader-side reconstruction
//
//	fn median3(v: vec3<f32>) -> f32 {
//	    return max(min(v.r, v.g), min(max(v.r, v.g), v.b));
//	}
//
//	@fragment
//	fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
//	    let msdf = textureSample(msdf_tex, samp, uv).rgb;
//	    let sd = median3(msdf) - 0.5;
//	    let alpha = clamp(sd * px_range / length(fwidth(uv)) + 0.5, 0.0, 1.0);
//	    return vec4<f32>(color.rgb, color.a * alpha);
//	}
package msdf
