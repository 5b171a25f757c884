// Package database is the MongoDB gateway: one client handle, opened once at
// startup and shared by every request, exposing per-collection CRUD calls.
//
// The gateway is constructed explicitly and passed to the repositories;
// nothing in this package is global.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

// ErrNotFound is returned by FindOne when no document matches.
var ErrNotFound = errors.New("database: document not found")

// Options configures Connect.
type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// FindOptions narrows a Find call. Zero values mean "no restriction".
type FindOptions struct {
	Projection any
	Sort       any
	Skip       int64
	Limit      int64
}

// UpdateResult mirrors the driver's update result in the shape clients of
// the HTTP API receive.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    any   `json:"upsertedId"`
}

// DeleteResult mirrors the driver's delete result.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Gateway wraps a connected client and its database.
type Gateway struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, opts Options) (*Gateway, error) {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	if opts.MaxPoolSize == 0 {
		opts.MaxPoolSize = 100
	}

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetConnectTimeout(opts.ConnectTimeout).
		SetServerSelectionTimeout(opts.ConnectTimeout).
		SetMaxPoolSize(opts.MaxPoolSize)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &Gateway{client: client, db: client.Database(opts.Database)}, nil
}

// Collection returns the named collection handle.
func (g *Gateway) Collection(name string) *mongo.Collection {
	return g.db.Collection(name)
}

// Ping checks the primary is reachable.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (g *Gateway) Close(ctx context.Context) error {
	return g.client.Disconnect(ctx)
}

// Find decodes every document matching filter into out (a pointer to a slice).
func (g *Gateway) Find(ctx context.Context, collection string, filter any, fo FindOptions, out any) error {
	defer metrics.ObserveDBQuery(collection, "find", time.Now())

	opts := options.Find()
	if fo.Projection != nil {
		opts.SetProjection(fo.Projection)
	}
	if fo.Sort != nil {
		opts.SetSort(fo.Sort)
	}
	if fo.Skip > 0 {
		opts.SetSkip(fo.Skip)
	}
	if fo.Limit > 0 {
		opts.SetLimit(fo.Limit)
	}

	cur, err := g.Collection(collection).Find(ctx, orEmpty(filter), opts)
	if err != nil {
		return fmt.Errorf("database: find %s: %w", collection, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("database: decode %s: %w", collection, err)
	}
	return nil
}

// FindOne decodes the first document matching filter into out.
func (g *Gateway) FindOne(ctx context.Context, collection string, filter, projection any, out any) error {
	defer metrics.ObserveDBQuery(collection, "find_one", time.Now())

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	err := g.Collection(collection).FindOne(ctx, orEmpty(filter), opts).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("database: find one %s: %w", collection, err)
	}
	return nil
}

// Count returns the number of documents matching filter.
func (g *Gateway) Count(ctx context.Context, collection string, filter any) (int64, error) {
	defer metrics.ObserveDBQuery(collection, "count", time.Now())

	n, err := g.Collection(collection).CountDocuments(ctx, orEmpty(filter))
	if err != nil {
		return 0, fmt.Errorf("database: count %s: %w", collection, err)
	}
	return n, nil
}

// InsertOne stores doc and returns its generated ObjectID. Driver errors stay
// in the chain so DuplicateKeyField can inspect them.
func (g *Gateway) InsertOne(ctx context.Context, collection string, doc any) (primitive.ObjectID, error) {
	defer metrics.ObserveDBQuery(collection, "insert", time.Now())

	res, err := g.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("database: insert %s: %w", collection, err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("database: insert %s: unexpected id type %T", collection, res.InsertedID)
	}
	return id, nil
}

// UpdateOne applies update to the first document matching filter.
func (g *Gateway) UpdateOne(ctx context.Context, collection string, filter, update any) (UpdateResult, error) {
	defer metrics.ObserveDBQuery(collection, "update", time.Now())

	res, err := g.Collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("database: update %s: %w", collection, err)
	}
	return UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

// DeleteOne removes the first document matching filter.
func (g *Gateway) DeleteOne(ctx context.Context, collection string, filter any) (DeleteResult, error) {
	defer metrics.ObserveDBQuery(collection, "delete", time.Now())

	res, err := g.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("database: delete %s: %w", collection, err)
	}
	return DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func orEmpty(filter any) any {
	if filter == nil {
		return bson.D{}
	}
	return filter
}
