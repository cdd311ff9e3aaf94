package store

import (
	"context"
	"time"

	"overlayapi/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type collection interface {
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

type database interface {
	RunCommand(ctx context.Context, runCommand interface{}, opts ...*options.RunCmdOptions) *mongo.SingleResult
}

type client interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Disconnect(ctx context.Context) error
}

// MongoStore reads records from a MongoDB collection.
type MongoStore struct {
	client     client
	database   database
	collection collection
	timeout    time.Duration
}

func NewMongoStore(c *mongo.Client, config models.MongoDBStoreConfiguration, timeout time.Duration) *MongoStore {
	db := c.Database(config.Database)
	return &MongoStore{
		client:     c,
		database:   db,
		collection: db.Collection(config.Collection),
		timeout:    timeout,
	}
}

func mongoFilter(f models.RecordFilter) bson.M {
	filter := bson.M{}

	if f.Txid != nil {
		filter["txid"] = *f.Txid
	}

	if f.CreatedAfter != nil || f.CreatedBefore != nil {
		createdAt := bson.M{}
		if f.CreatedAfter != nil {
			createdAt["$gte"] = f.CreatedAfter.UTC()
		}
		if f.CreatedBefore != nil {
			createdAt["$lte"] = f.CreatedBefore.UTC()
		}
		filter["createdAt"] = createdAt
	}

	return filter
}

func mongoFindOptions(page models.Page) *options.FindOptions {
	direction := -1
	if page.Order == models.SortAscending {
		direction = 1
	}

	return options.Find().
		SetSort(bson.D{
			{Key: "createdAt", Value: direction},
			{Key: "txid", Value: direction},
			{Key: "outputIndex", Value: direction},
		}).
		SetSkip(int64(page.Skip)).
		SetLimit(int64(page.Limit)).
		SetProjection(bson.M{"_id": 0, "txid": 1, "outputIndex": 1, "createdAt": 1})
}

func (s *MongoStore) Count(ctx context.Context, filter models.RecordFilter) (int64, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	count, err := s.collection.CountDocuments(ctx, mongoFilter(filter))
	if err != nil {
		return 0, unavailable(ctx, "count records", err)
	}
	return count, nil
}

func (s *MongoStore) Find(ctx context.Context, filter models.RecordFilter, page models.Page) ([]models.Record, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	cur, err := s.collection.Find(ctx, mongoFilter(filter), mongoFindOptions(page))
	if err != nil {
		return nil, unavailable(ctx, "find records", err)
	}
	defer cur.Close(ctx)

	records := []models.Record{}
	if err = cur.All(ctx, &records); err != nil {
		return nil, unavailable(ctx, "decode records", err)
	}
	return records, nil
}

type mongoDBStats struct {
	Collections int64 `bson:"collections"`
	Indexes     int64 `bson:"indexes"`
	StorageSize int64 `bson:"storageSize"`
}

func (s *MongoStore) Metadata(ctx context.Context) (models.DatabaseStats, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var stats mongoDBStats
	err := s.database.RunCommand(ctx, bson.D{{Key: "dbStats", Value: 1}}).Decode(&stats)
	if err != nil {
		return models.DatabaseStats{}, unavailable(ctx, "database stats", err)
	}

	return models.DatabaseStats{
		Collections: stats.Collections,
		Indexes:     stats.Indexes,
		StorageSize: stats.StorageSize,
	}, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return unavailable(ctx, "ping", err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
