package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/starpath/pkg/io"
	"github.com/matzehuels/starpath/pkg/render"
)

// DefaultHighlight is the color used for route planets and legs.
const DefaultHighlight = "#e4572e"

// Options configures node-link diagram rendering.
type Options struct {
	// HideCosts omits the cost labels on edges.
	HideCosts bool

	// Highlight is the color of the route. Empty means DefaultHighlight.
	Highlight string

	// Layout selects the Graphviz engine attribute ("neato", "dot", ...).
	// Empty means "neato", which suits undirected maps.
	Layout string
}

// ToDOT converts a star map to Graphviz DOT. Nodes listed in route, in
// order, are highlighted together with the edges joining consecutive route
// nodes. A nil route draws the plain map.
func ToDOT(doc io.Document, route []int, opts Options) string {
	color := opts.Highlight
	if color == "" {
		color = DefaultHighlight
	}
	engine := opts.Layout
	if engine == "" {
		engine = "neato"
	}

	onRoute := make(map[int]bool, len(route))
	legs := make(map[[2]int]bool, len(route))
	for i, n := range route {
		onRoute[n] = true
		if i > 0 {
			legs[leg(route[i-1], n)] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", engine)
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [color=grey50, fontsize=10];\n")
	buf.WriteString("\n")

	for i, n := range doc.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", n.Label)}
		if onRoute[i] {
			attrs = append(attrs, fmt.Sprintf("color=%q", color), "penwidth=2.5", "fontcolor=black")
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", i, strings.Join(attrs, ", "))
	}

	// Duplicate pairs collapse to one edge carrying the last cost.
	costs := make(map[[2]int]float64, len(doc.Edges))
	var order [][2]int
	for _, e := range doc.Edges {
		k := leg(e.Source, e.Target)
		if _, seen := costs[k]; !seen {
			order = append(order, k)
		}
		costs[k] = e.Cost
	}

	buf.WriteString("\n")
	for _, k := range order {
		var attrs []string
		if !opts.HideCosts {
			attrs = append(attrs, fmt.Sprintf("label=%q", strconv.FormatFloat(costs[k], 'g', -1, 64)))
		}
		if legs[k] {
			attrs = append(attrs, fmt.Sprintf("color=%q", color), "penwidth=3")
		}
		fmt.Fprintf(&buf, "  n%d -- n%d", k[0], k[1])
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// leg normalizes an undirected pair.
func leg(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// RenderSVG renders a DOT graph to SVG using Graphviz. A graph-level
// layout attribute selects the engine; otherwise dot is used.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	if m := layoutRe.FindStringSubmatch(dot); m != nil {
		gv.SetLayout(graphviz.Layout(m[1]))
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	layoutRe  = regexp.MustCompile(`(?m)^\s*layout=(\w+);`)
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the SVG scales from its viewBox
// origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
