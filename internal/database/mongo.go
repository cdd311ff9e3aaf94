package database

import (
	"context"
	"fmt"
	"time"

	"overlayapi/internal/configuration"
	"overlayapi/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// InitMongo connects to MongoDB and verifies the primary is reachable.
func InitMongo(ctx context.Context, config models.MongoDBStoreConfiguration) (*mongo.Client, error) {
	selectionTimeout := time.Duration(config.ServerSelectionTimeout) * time.Second

	clientOptions := options.Client().
		ApplyURI(config.URI).
		SetServerSelectionTimeout(selectionTimeout).
		SetAppName(configuration.AppName)
	if config.MaxPoolSize > 0 {
		clientOptions.SetMaxPoolSize(config.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, selectionTimeout)
	defer cancel()
	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}
