package blockmodel

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const BlockCollectionName = "block"

type VoteRecord struct {
	ID          string    `json:"id" bson:"id"`
	VoterID     string    `json:"voterId" bson:"voter_id"`
	CandidateID string    `json:"candidateId" bson:"candidate_id"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
	Signature   string    `json:"signature,omitempty" bson:"signature,omitempty"`
}

type BlockRecord struct {
	Index        int          `json:"index" bson:"index"`
	Timestamp    string       `json:"timestamp" bson:"timestamp"`
	Transactions []VoteRecord `json:"transactions" bson:"transactions"`
	Hash         string       `json:"hash" bson:"hash"`
	PrevHash     string       `json:"prevHash" bson:"prev_hash"`
	Nonce        int          `json:"nonce" bson:"nonce"`
	Difficulty   int          `json:"difficulty" bson:"difficulty"`
}

type BlockModel struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func New(db *mongo.Database) *BlockModel {
	return &BlockModel{
		db:         db,
		collection: db.Collection(BlockCollectionName),
	}
}

func (bm *BlockModel) Append(ctx context.Context, record BlockRecord) error {
	if record.Transactions == nil {
		record.Transactions = []VoteRecord{}
	}

	_, err := bm.collection.InsertOne(ctx, record)
	return err
}

func (bm *BlockModel) All(ctx context.Context) ([]BlockRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "index", Value: 1}})

	cursor, err := bm.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	records := make([]BlockRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].Transactions == nil {
			records[i].Transactions = []VoteRecord{}
		}
	}

	return records, nil
}
