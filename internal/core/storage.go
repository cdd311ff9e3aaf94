package core

import (
	"context"
	"time"

	"overlayapi/internal/cache"
	"overlayapi/internal/configuration"
	"overlayapi/internal/database"
	"overlayapi/internal/models"
	"overlayapi/internal/store"

	"go.uber.org/zap"
)

func NewRecordStore(ctx context.Context, config models.StoreConfiguration) store.IRecordStore {
	timeout := time.Duration(config.Timeout) * time.Second

	switch config.Type {
	case configuration.ProviderMongoDB:
		client, err := database.InitMongo(ctx, *config.MongoDB)
		if err != nil {
			zap.L().Fatal("Failed to initialize record store", zap.String("type", config.Type), zap.Error(err))
		}
		return store.NewMongoStore(client, *config.MongoDB, timeout)
	case configuration.ProviderPostgres, configuration.ProviderSQLite:
		db, err := database.InitDB(config)
		if err != nil {
			zap.L().Fatal("Failed to initialize record store", zap.String("type", config.Type), zap.Error(err))
		}
		return store.NewSQLStore(db, *config.SQL, timeout)
	case configuration.ProviderFilesystem:
		index, err := store.NewFilesystemStore(*config.Filesystem, timeout)
		if err != nil {
			zap.L().Fatal("Failed to initialize record store", zap.String("type", config.Type), zap.Error(err))
		}
		return index
	default:
		zap.L().Fatal("Unsupported record store", zap.String("type", config.Type))
		return nil
	}
}

// NewCache returns nil when no cache is configured.
func NewCache(config models.CacheConfiguration) cache.ICache {
	c, err := cache.NewCache(config)
	if err != nil {
		zap.L().Fatal("Failed to initialize cache", zap.String("type", config.Type), zap.Error(err))
	}
	return c
}
