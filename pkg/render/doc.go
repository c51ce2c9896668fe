// Package render converts rendered SVG to other image formats.
//
// The [nodelink] subpackage draws a solution path as a Graphviz chain and
// renders it to SVG in-process. [ToPDF] and [ToPNG] convert that SVG with the
// external rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// [nodelink]: github.com/matzehuels/flipstack/pkg/render/nodelink
package render
