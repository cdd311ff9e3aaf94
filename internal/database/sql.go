package database

import (
	"fmt"

	"overlayapi/internal/configuration"
	"overlayapi/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the SQL record database. The schema is owned by the ingestion side
// and is never migrated here.
func InitDB(config models.StoreConfiguration) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.Type {
	case configuration.ProviderPostgres:
		dialector = postgres.Open(config.SQL.DSN)
	case configuration.ProviderSQLite:
		dialector = sqlite.Open(config.SQL.DSN)
	default:
		return nil, fmt.Errorf("unsupported sql store type %q", config.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", config.Type, err)
	}
	return db, nil
}
