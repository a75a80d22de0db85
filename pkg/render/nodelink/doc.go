// Package nodelink renders star maps as node-link diagrams.
//
// # Overview
//
// Planets are drawn as ellipses and routes as undirected edges labelled with
// their cost. When a route is supplied its planets and legs are highlighted,
// which makes the chosen path easy to follow on a dense map.
//
// # Usage
//
// Convert a document to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(doc, res.NodeIDs, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
