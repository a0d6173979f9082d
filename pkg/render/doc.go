// Package render provides output conversion for rendered diagrams.
//
// # Overview
//
// The engine itself produces a render model, not pixels. This package and
// its subpackage turn a model into files for inspection:
//
//   - Node-link debug export (in [nodelink] subpackage)
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(m, nodelink.Options{}))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/mindscape/pkg/render/nodelink
package render
