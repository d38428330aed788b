package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"comics/reading"
)

const readsCollection = "story_reads"

var _ reading.ReadStore = ReadRepository{}

// ReadRepository records story reads in MongoDB, one document per
// (user, story) pair.
type ReadRepository struct{}

func (ReadRepository) Count(ctx context.Context, userID string) (int, error) {
	n, err := GetCollection(readsCollection).CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (ReadRepository) MarkRead(ctx context.Context, userID, storyID string) error {
	filter := bson.M{"user_id": userID, "story_id": storyID}
	update := bson.M{"$setOnInsert": bson.M{
		"user_id":  userID,
		"story_id": storyID,
		"read_at":  time.Now().UTC(),
	}}
	_, err := GetCollection(readsCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func readIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "story_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}
