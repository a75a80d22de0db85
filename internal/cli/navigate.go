package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/starpath/pkg/errors"
	spio "github.com/matzehuels/starpath/pkg/io"
	"github.com/matzehuels/starpath/pkg/pipeline"
	"github.com/matzehuels/starpath/pkg/render/nodelink"
	"github.com/matzehuels/starpath/pkg/source/graphdb"
)

// navigateOpts holds the command-line flags for the navigate command.
type navigateOpts struct {
	graph       string // star map file (.json or .toml)
	neo4j       bool   // load the map from the configured Neo4j database
	jsonOut     bool   // print the result as JSON
	output      string // render the map with the route to this file
	format      string // output format; empty means from the file extension
	hideCosts   bool   // omit edge costs in the rendered map
	noCache     bool   // disable the route and map cache
	refresh     bool   // ignore cached entries but update them
	interactive bool   // pick missing planets from a list
}

func (c *CLI) navigateCommand() *cobra.Command {
	var opts navigateOpts

	cmd := &cobra.Command{
		Use:     "navigate [source] [target]",
		Aliases: []string{"nav"},
		Short:   "Find the cheapest route between two planets",
		Long: `Find the cheapest route between two planets of a star map.

Exits with status 1 when the target cannot be reached from the source.`,
		Example: `  starpath navigate -g solar.json Earth Mars
  starpath navigate -g solar.toml Earth Pluto --json
  starpath navigate -g solar.json Earth Mars -o route.svg
  starpath navigate --neo4j -i`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.interactive {
				return cobra.MaximumNArgs(2)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNavigate(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.graph, "graph", "g", "", "star map file (.json or .toml)")
	cmd.Flags().BoolVar(&opts.neo4j, "neo4j", false, "load the star map from Neo4j")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "render the map with the route to a file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, png, pdf (default from extension)")
	cmd.Flags().BoolVar(&opts.hideCosts, "hide-costs", false, "omit route costs in the rendered map")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick planets from a list")
	cmd.MarkFlagsMutuallyExclusive("graph", "neo4j")
	_ = cmd.MarkFlagFilename("graph", "json", "toml")

	return cmd
}

func (c *CLI) runNavigate(ctx context.Context, w io.Writer, args []string, opts navigateOpts) error {
	logger := loggerFromContext(ctx)

	format, err := outputFormat(opts.output, opts.format)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	doc, err := c.loadMap(ctx, runner, opts.graph, opts.neo4j, opts.refresh)
	if err != nil {
		return err
	}

	source, target, err := resolvePlanets(doc, args, opts.interactive)
	if err != nil {
		return err
	}

	res, err := runner.Navigate(ctx, doc, pipeline.Options{
		Source:  source,
		Target:  target,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	if opts.output != "" {
		dot := nodelink.ToDOT(doc, res.NodeIDs, nodelink.Options{HideCosts: opts.hideCosts})
		if err := writeMap(dot, format, opts.output); err != nil {
			return err
		}
		logger.Debug("wrote map", "path", opts.output, "format", format)
	}

	if opts.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printRoute(w, res)
	}

	if !res.Found {
		return ErrNoPath
	}
	return nil
}

// loadMap reads the star map from a file or from Neo4j.
func (c *CLI) loadMap(ctx context.Context, runner *pipeline.Runner, path string, fromNeo4j, refresh bool) (spio.Document, error) {
	logger := loggerFromContext(ctx)

	if !fromNeo4j {
		if path == "" {
			return spio.Document{}, errs.New(errs.ErrCodeInvalidInput, "no star map given: use --graph FILE or --neo4j")
		}
		doc, err := spio.ImportFile(path)
		if err != nil {
			return spio.Document{}, err
		}
		logger.Debug("loaded map", "path", path, "planets", len(doc.Nodes), "routes", len(doc.Edges))
		return doc, nil
	}

	cfg, err := c.config()
	if err != nil {
		return spio.Document{}, err
	}
	opts := graphdb.Options{
		URI:        cfg.Neo4j.URI,
		Username:   cfg.Neo4j.Username,
		Password:   cfg.Neo4j.Password,
		Database:   cfg.Neo4j.Database,
		NodesQuery: cfg.Neo4j.NodesQuery,
		EdgesQuery: cfg.Neo4j.EdgesQuery,
	}

	prog := newProgress(logger)
	spin := newSpinner(ctx, os.Stderr, "Loading star map from "+opts.URI)
	spin.Start()
	doc, hit, err := runner.LoadMapWithCacheInfo(ctx, opts.URI, opts.NodesQuery+"\n"+opts.EdgesQuery, refresh,
		func(ctx context.Context) (spio.Document, error) {
			q, err := graphdb.Connect(ctx, opts)
			if err != nil {
				return spio.Document{}, err
			}
			defer q.Close(ctx)
			return graphdb.Load(ctx, q, opts)
		})
	spin.Stop()
	if err != nil {
		return spio.Document{}, err
	}
	if hit {
		logger.Debug("map cache hit", "uri", opts.URI)
	}
	prog.done(fmt.Sprintf("Loaded %d planets from %s", len(doc.Nodes), opts.URI))
	return doc, nil
}

// resolvePlanets returns the source and target labels, asking for the
// missing ones when interactive is set.
func resolvePlanets(doc spio.Document, args []string, interactive bool) (string, string, error) {
	var source, target string
	if len(args) > 0 {
		source = args[0]
	}
	if len(args) > 1 {
		target = args[1]
	}
	if !interactive {
		return source, target, nil
	}

	labels := make([]string, len(doc.Nodes))
	for i, n := range doc.Nodes {
		labels[i] = n.Label
	}

	var err error
	if source == "" {
		if source, err = pickPlanet("Select departure", labels); err != nil {
			return "", "", err
		}
	}
	if target == "" {
		if target, err = pickPlanet("Select destination from "+source, labels); err != nil {
			return "", "", err
		}
	}
	return source, target, nil
}

// printRoute prints a result in the classic navigator format.
func printRoute(w io.Writer, res *pipeline.Result) {
	if !res.Found {
		fmt.Fprintln(w, "No path found!")
		return
	}
	fmt.Fprintf(w, "Path found!:\n\t%s\n", strings.Join(res.Path, " -> "))
	fmt.Fprintf(w, "Costs: %f\n", res.Cost)
}
