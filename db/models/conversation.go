package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConversationDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	SessionID string             `bson:"session_id"`
	Role      string             `bson:"role"` // "user" or "bot"
	Content   string             `bson:"content"`
	Timestamp time.Time          `bson:"timestamp"`
	Index     int                `bson:"index"` // Position in conversation
}

type ReadDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	UserID  string             `bson:"user_id"`
	StoryID string             `bson:"story_id"`
	ReadAt  time.Time          `bson:"read_at"`
}
