// Package io reads and writes star map documents.
//
// # Overview
//
// A star map document is the on-disk form of a navigation graph: a list of
// named planets and a list of weighted, undirected routes between them. The
// search core works on integer node identifiers; this package owns the
// mapping between those identifiers and human-readable labels.
//
// # JSON Format
//
// The format has two top-level arrays:
//
//	{
//	  "nodes": [
//	    {"label": "Earth"},
//	    {"label": "Mars"},
//	    {"label": "Ceres"}
//	  ],
//	  "edges": [
//	    {"source": 0, "target": 1, "cost": 1.5},
//	    {"source": 1, "target": 2, "cost": 0.7}
//	  ]
//	}
//
// A node's identifier is its position in the "nodes" array. Edges reference
// nodes by that position and are undirected; listing the same pair twice, in
// either direction, keeps the last cost.
//
// # TOML Format
//
// The same document may be written as TOML using arrays of tables:
//
//	[[nodes]]
//	label = "Earth"
//
//	[[nodes]]
//	label = "Mars"
//
//	[[edges]]
//	source = 0
//	target = 1
//	cost = 1.5
//
// [ImportFile] picks the decoder from the file extension (".toml" for TOML,
// anything else for JSON).
//
// # Validation
//
// Decoding never validates. Call [Document.Validate] before handing a
// document to the search: it rejects out-of-range endpoints, negative or
// non-finite costs, and empty or duplicate labels. Edge failures are reported
// as [errors.EdgeError] values carrying the offending record's index.
//
// [errors.EdgeError]: github.com/matzehuels/starpath/pkg/errors.EdgeError
package io
