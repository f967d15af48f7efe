package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoSlotCollection = "slots"

type slotDocument struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoSlot stores one document per key in the 'slots' collection.
type MongoSlot struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoSlot(ctx context.Context, uri, database string) (*MongoSlot, error) {
	clientOptions := options.Client().ApplyURI(uri).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return &MongoSlot{
		client:     client,
		collection: client.Database(database).Collection(mongoSlotCollection),
	}, nil
}

func (s *MongoSlot) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var doc slotDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read slot %s from mongo: %w", key, err)
	}
	return doc.Value, true, nil
}

func (s *MongoSlot) Write(ctx context.Context, key string, value []byte) error {
	update := bson.M{"$set": bson.M{"value": value, "updatedAt": time.Now().UTC()}}
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write slot %s to mongo: %w", key, err)
	}
	return nil
}

func (s *MongoSlot) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
