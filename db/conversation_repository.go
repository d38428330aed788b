package db

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"comics/assistant"
	"comics/db/models"
)

const conversationsCollection = "conversations"

var _ assistant.Transcript = ConversationRepository{}

// ConversationRepository stores assistant transcripts in MongoDB.
type ConversationRepository struct{}

// Append saves turns in order. Empty turns are skipped.
func (ConversationRepository) Append(ctx context.Context, turns ...assistant.Turn) error {
	var docs []interface{}
	for _, t := range turns {
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		docs = append(docs, toConversationDocument(t))
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := GetCollection(conversationsCollection).InsertMany(ctx, docs)
	return err
}

// History retrieves paginated conversation history
func (ConversationRepository) History(ctx context.Context, sessionID string, limit, offset int) ([]assistant.Turn, int64, error) {
	collection := GetCollection(conversationsCollection)
	filter := bson.M{"session_id": sessionID}

	// Count total messages
	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "index", Value: 1}}).
		SetSkip(int64(offset))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []models.ConversationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	turns := make([]assistant.Turn, 0, len(docs))
	for _, d := range docs {
		turns = append(turns, fromConversationDocument(d))
	}
	return turns, total, nil
}

func toConversationDocument(t assistant.Turn) models.ConversationDocument {
	return models.ConversationDocument{
		SessionID: t.SessionID,
		Role:      t.Role,
		Content:   t.Content,
		Timestamp: t.Timestamp,
		Index:     t.Index,
	}
}

func fromConversationDocument(d models.ConversationDocument) assistant.Turn {
	return assistant.Turn{
		SessionID: d.SessionID,
		Role:      d.Role,
		Content:   d.Content,
		Index:     d.Index,
		Timestamp: d.Timestamp,
	}
}

func conversationIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "index", Value: 1}}},
		{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	}
}
