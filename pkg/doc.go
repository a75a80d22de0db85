// Package pkg provides the core libraries for starpath route planning.
//
// # Overview
//
// Starpath finds the cheapest route between two planets of a star map: an
// undirected graph whose edges carry non-negative travel costs. The pkg
// directory is organized into four main areas:
//
//  1. [graph], [search] - Domain logic (adjacency maps, best-first search)
//  2. [io], [source/graphdb] - Star map documents (JSON, TOML, Neo4j)
//  3. [cache], [store], [observability] - Infrastructure (route cache, history, hooks)
//  4. [pipeline], [render/nodelink] - Orchestration and map rendering
//
// # Architecture
//
// The typical data flow through starpath:
//
//	JSON/TOML file or Neo4j
//	         ↓
//	    [io] package (document, labels, validation)
//	         ↓
//	    [graph] package (adjacency map)
//	         ↓
//	    [search] package (cheapest path or not found)
//	         ↓
//	    [pipeline] package (cache, history, logging)
//	         ↓
//	    text, JSON, or DOT/SVG/PNG/PDF output
//
// # Quick Start
//
// Load a map and navigate it:
//
//	import (
//	    "github.com/matzehuels/starpath/pkg/io"
//	    "github.com/matzehuels/starpath/pkg/search"
//	)
//
//	doc, _ := io.ImportFile("solar.json")
//	from, _ := doc.ID("Earth")
//	to, _ := doc.ID("Mars")
//
//	path, found := search.Search(doc.Graph(), from, to)
//	if found {
//	    fmt.Println(doc.Labels(path.Nodes), path.Cost)
//	}
//
// Or let a [pipeline.Runner] add caching and history:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, store.NewNullStore(), nil)
//	res, err := runner.Navigate(ctx, doc, pipeline.Options{Source: "Earth", Target: "Mars"})
//
// # Command Line
//
// The cmd/starpath binary wraps these packages:
//
//	starpath navigate -g solar.json Earth Mars
//	starpath render solar.json --from Earth --to Mars -o route.svg
//	starpath serve --map solar.json
package pkg
