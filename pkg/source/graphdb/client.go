package graphdb

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	errs "github.com/matzehuels/starpath/pkg/errors"
)

// Record is one result row keyed by column name.
type Record map[string]any

// Querier runs read-only Cypher queries.
type Querier interface {
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) ([]Record, error)
	Close(ctx context.Context) error
}

// Options configures the connection and the queries used by [Load].
type Options struct {
	URI      string
	Username string
	Password string
	Database string

	// NodesQuery must return a "label" column. Empty means DefaultNodesQuery.
	NodesQuery string
	// EdgesQuery must return "source", "target" and "cost" columns.
	// Empty means DefaultEdgesQuery.
	EdgesQuery string
}

// Default queries.
const (
	DefaultNodesQuery = `MATCH (p:Planet) RETURN p.name AS label ORDER BY label`
	DefaultEdgesQuery = `MATCH (a:Planet)-[r:ROUTE]->(b:Planet) RETURN a.name AS source, b.name AS target, r.cost AS cost ORDER BY source, target`
)

func (o Options) nodesQuery() string {
	if o.NodesQuery == "" {
		return DefaultNodesQuery
	}
	return o.NodesQuery
}

func (o Options) edgesQuery() string {
	if o.EdgesQuery == "" {
		return DefaultEdgesQuery
	}
	return o.EdgesQuery
}

// Connect opens a Bolt driver and verifies connectivity.
// A blank username selects no authentication.
func Connect(ctx context.Context, opts Options) (Querier, error) {
	if err := errs.ValidateURI(opts.URI, "neo4j", "neo4j+s", "neo4j+ssc", "bolt", "bolt+s", "bolt+ssc"); err != nil {
		return nil, err
	}

	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI, auth)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "create neo4j driver")
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "verify neo4j connectivity")
	}

	return &client{driver: driver, database: opts.Database}, nil
}

type client struct {
	driver   neo4j.DriverWithContext
	database string
}

func (c *client) ExecuteRead(ctx context.Context, cypher string, params map[string]any) ([]Record, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	res, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}

	var records []Record
	for res.Next(ctx) {
		rec := res.Record()
		record := make(Record, len(rec.Keys))
		for _, key := range rec.Keys {
			value, _ := rec.Get(key)
			record[key] = value
		}
		records = append(records, record)
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	return records, nil
}

func (c *client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}
