package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	client   *mongo.Client
	database *mongo.Database
)

// InitMongoDB initializes the MongoDB connection
func InitMongoDB(uri, dbName string, log *zap.Logger) error {
	if uri == "" {
		return errors.New("MONGODB_URI environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	database = client.Database(dbName)

	log.Info("connected to MongoDB", zap.String("database", dbName))
	return nil
}

// GetCollection returns a MongoDB collection
func GetCollection(collectionName string) *mongo.Collection {
	return database.Collection(collectionName)
}

// GetClient returns the MongoDB client
func GetClient() *mongo.Client {
	return client
}

// Close closes the MongoDB connection
func Close() error {
	if client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return client.Disconnect(ctx)
	}
	return nil
}

// CreateIndexes creates necessary indexes for performance
func CreateIndexes(log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := GetCollection(conversationsCollection).Indexes().CreateMany(ctx, conversationIndexes()); err != nil {
		log.Warn("failed to create conversation indexes", zap.Error(err))
	}
	if _, err := GetCollection(readsCollection).Indexes().CreateMany(ctx, readIndexes()); err != nil {
		log.Warn("failed to create read indexes", zap.Error(err))
	}
}
