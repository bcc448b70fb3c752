package storage

import (
	"context"
	"fmt"

	blockmodel "github.com/Roll-Play/votechain/pkg/models/block"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStorage struct {
	client *mongo.Client
	db     *mongo.Database
	init   bool
}

func NewMongoStorage(ctx context.Context, uri, database string) (*MongoStorage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStorage{
		client: client,
		db:     client.Database(database),
	}, nil
}

func (ms *MongoStorage) DB() *mongo.Database {
	return ms.db
}

// Init creates the indexes the ledger relies on. Safe to call more than once.
func (ms *MongoStorage) Init(ctx context.Context) error {
	if ms.init {
		return nil
	}

	indexes := []struct {
		collection string
		opts       mongo.IndexModel
	}{
		{
			collection: blockmodel.BlockCollectionName,
			opts: mongo.IndexModel{
				Keys:    bson.D{{Key: "index", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for _, index := range indexes {
		if _, err := ms.db.Collection(index.collection).Indexes().CreateOne(ctx, index.opts); err != nil {
			return fmt.Errorf("create index on %s: %w", index.collection, err)
		}
	}

	ms.init = true
	return nil
}

func (ms *MongoStorage) Close(ctx context.Context) error {
	return ms.client.Disconnect(ctx)
}
