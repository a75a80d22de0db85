// Package render turns star maps into images.
//
// The [nodelink] subpackage draws a map as a Graphviz diagram with a route
// highlighted. This package holds the format conversion shared by renderers:
// [ToPDF] and [ToPNG] convert SVG using the external rsvg-convert tool (from
// librsvg).
//
//	dot := nodelink.ToDOT(doc, route, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/starpath/pkg/render/nodelink
package render
