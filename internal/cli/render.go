package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/starpath/pkg/errors"
	"github.com/matzehuels/starpath/pkg/pipeline"
	"github.com/matzehuels/starpath/pkg/render/nodelink"
)

// Output formats for rendered maps.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"
)

// pngScale renders PNG maps at twice the SVG resolution.
const pngScale = 2.0

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path
	format    string // dot, svg, png, pdf; empty means from the extension
	layout    string // Graphviz layout engine
	color     string // route highlight color
	from      string // highlight the route starting here
	to        string // highlight the route ending here
	hideCosts bool   // omit edge costs
	neo4j     bool   // load the map from Neo4j
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [map]",
		Short: "Render a star map as DOT, SVG, PNG or PDF",
		Long: `Render a star map as a node-link diagram.

With --from and --to the cheapest route between the two planets is
highlighted. PNG and PDF output require rsvg-convert (librsvg).`,
		Example: `  starpath render solar.json -o solar.svg
  starpath render solar.json --from Earth --to Pluto -o route.png
  starpath render --neo4j -f dot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.runRender(cmd.Context(), path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <map>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, png, pdf (default svg)")
	cmd.Flags().StringVar(&opts.layout, "layout", "neato", "Graphviz layout engine (neato, dot, fdp, circo, ...)")
	cmd.Flags().StringVar(&opts.color, "color", nodelink.DefaultHighlight, "route highlight color")
	cmd.Flags().StringVar(&opts.from, "from", "", "highlight the route from this planet")
	cmd.Flags().StringVar(&opts.to, "to", "", "highlight the route to this planet")
	cmd.Flags().BoolVar(&opts.hideCosts, "hide-costs", false, "omit route costs")
	cmd.Flags().BoolVar(&opts.neo4j, "neo4j", false, "load the star map from Neo4j")
	cmd.MarkFlagsRequiredTogether("from", "to")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	if path == "" && !opts.neo4j {
		return errs.New(errs.ErrCodeInvalidInput, "no star map given: pass a file or --neo4j")
	}

	output := opts.output
	format, err := outputFormat(output, opts.format)
	if err != nil {
		return err
	}
	if format == "" {
		format = formatSVG
	}
	if output == "" {
		base := appName
		if path != "" {
			base = strings.TrimSuffix(path, filepath.Ext(path))
		}
		output = base + "." + format
	}

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	doc, err := c.loadMap(ctx, runner, path, opts.neo4j, false)
	if err != nil {
		return err
	}

	var route []int
	if opts.from != "" {
		res, err := runner.Navigate(ctx, doc, pipeline.Options{Source: opts.from, Target: opts.to, Logger: logger})
		if err != nil {
			return err
		}
		if !res.Found {
			printWarning("No path from %s to %s, rendering the plain map", opts.from, opts.to)
		}
		route = res.NodeIDs
	}

	prog := newProgress(logger)
	dot := nodelink.ToDOT(doc, route, nodelink.Options{
		HideCosts: opts.hideCosts,
		Highlight: opts.color,
		Layout:    opts.layout,
	})
	if err := writeMap(dot, format, output); err != nil {
		return err
	}
	prog.done("Rendered " + format)

	printSuccess("Rendered %d planets", len(doc.Nodes))
	printFile(output)
	return nil
}

// outputFormat returns the explicit format, or the one implied by the
// output file extension. Both empty yields "".
func outputFormat(output, format string) (string, error) {
	if format == "" && output != "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "gv" {
			format = formatDOT
		}
	}
	if format == "" {
		return "", nil
	}
	if err := errs.ValidateFormat(format, formatDOT, formatSVG, formatPNG, formatPDF); err != nil {
		return "", err
	}
	return format, nil
}

// writeMap renders dot in format and writes it to path.
func writeMap(dot, format, path string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case formatDOT:
		data = []byte(dot)
	case formatPNG:
		data, err = nodelink.RenderPNG(dot, pngScale)
	case formatPDF:
		data, err = nodelink.RenderPDF(dot)
	default:
		data, err = nodelink.RenderSVG(dot)
	}
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "render %s", format)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
