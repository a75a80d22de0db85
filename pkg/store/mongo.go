package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/matzehuels/starpath/pkg/errors"
)

// CollectionRoutes is the collection MongoStore writes to.
const CollectionRoutes = "routes"

// connectTimeout bounds the initial connect and ping.
const connectTimeout = 10 * time.Second

// MongoStore keeps route history in MongoDB. It is safe for concurrent use.
type MongoStore struct {
	client *mongo.Client
	routes *mongo.Collection
}

// NewMongoStore connects to uri, pings the server, and ensures the
// created_at index on the routes collection of database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if err := errs.ValidateURI(uri, "mongodb", "mongodb+srv"); err != nil {
		return nil, err
	}
	if database == "" {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "mongo database name cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "mongo connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "mongo ping")
	}

	s := &MongoStore{
		client: client,
		routes: client.Database(database).Collection(CollectionRoutes),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.routes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "map_hash", Value: 1}, {Key: "source", Value: 1}, {Key: "target", Value: 1}}},
	})
	if err != nil {
		return errs.Wrap(errs.ErrCodeNetwork, err, "create indexes")
	}
	return nil
}

// Save upserts r by ID.
func (s *MongoStore) Save(ctx context.Context, r *Route) error {
	_, err := s.routes.ReplaceOne(ctx, bson.M{"_id": r.ID}, r, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save route %s: %w", r.ID, err)
	}
	return nil
}

// Get retrieves a route by ID. Returns nil, nil if it does not exist.
func (s *MongoStore) Get(ctx context.Context, id string) (*Route, error) {
	var r Route
	err := s.routes.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get route %s: %w", id, err)
	}
	return &r, nil
}

// Recent returns up to limit routes, newest first.
func (s *MongoStore) Recent(ctx context.Context, limit int) ([]Route, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(normalizeLimit(limit)))

	cur, err := s.routes.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	var routes []Route
	if err := cur.All(ctx, &routes); err != nil {
		return nil, fmt.Errorf("decode routes: %w", err)
	}
	return routes, nil
}

// Close disconnects from the server.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
