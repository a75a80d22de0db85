// Package graphdb loads star maps from a Neo4j database.
//
// Planets are nodes with a name property and routes are relationships with
// a cost property. The default queries expect:
//
//	(:Planet {name: "Earth"})-[:ROUTE {cost: 1.5}]->(:Planet {name: "Mars"})
//
// Relationship direction is ignored; every route is undirected once loaded.
// Both queries can be overridden through [Options].
//
// The Bolt connection is created with the official driver, so the same code
// works against Neo4j and any Bolt-compatible server.
package graphdb
