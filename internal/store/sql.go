package store

import (
	"context"
	"fmt"
	"time"

	"overlayapi/internal/models"

	"gorm.io/gorm"
)

// SQLStore reads records from a relational table through gorm. Postgres and SQLite
// are supported.
type SQLStore struct {
	db      *gorm.DB
	table   string
	timeout time.Duration
}

func NewSQLStore(db *gorm.DB, config models.SQLStoreConfiguration, timeout time.Duration) *SQLStore {
	return &SQLStore{db: db, table: config.Table, timeout: timeout}
}

func applySQLFilter(db *gorm.DB, f models.RecordFilter) *gorm.DB {
	if f.Txid != nil {
		db = db.Where("txid = ?", *f.Txid)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", f.CreatedAfter.UTC())
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at <= ?", f.CreatedBefore.UTC())
	}
	return db
}

func sqlOrder(order models.SortOrder) string {
	if order == models.SortAscending {
		return "created_at ASC, txid ASC, output_index ASC"
	}
	return "created_at DESC, txid DESC, output_index DESC"
}

func (s *SQLStore) records(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table(s.table)
}

func (s *SQLStore) Count(ctx context.Context, filter models.RecordFilter) (int64, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var count int64
	if err := applySQLFilter(s.records(ctx), filter).Count(&count).Error; err != nil {
		return 0, unavailable(ctx, "count records", err)
	}
	return count, nil
}

func (s *SQLStore) Find(ctx context.Context, filter models.RecordFilter, page models.Page) ([]models.Record, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	records := []models.Record{}
	err := applySQLFilter(s.records(ctx), filter).
		Select("txid", "output_index", "created_at").
		Order(sqlOrder(page.Order)).
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&records).Error
	if err != nil {
		return nil, unavailable(ctx, "find records", err)
	}
	return records, nil
}

var sqlMetadataQueries = map[string]struct {
	tables  string
	indexes string
	size    string
}{
	"postgres": {
		tables:  "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema()",
		indexes: "SELECT COUNT(*) FROM pg_indexes WHERE schemaname = current_schema()",
		size:    "SELECT pg_database_size(current_database())",
	},
	"sqlite": {
		tables:  "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'",
		indexes: "SELECT COUNT(*) FROM sqlite_master WHERE type = 'index'",
		size:    "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()",
	},
}

func (s *SQLStore) Metadata(ctx context.Context) (models.DatabaseStats, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	dialect := s.db.Dialector.Name()
	queries, ok := sqlMetadataQueries[dialect]
	if !ok {
		return models.DatabaseStats{}, fmt.Errorf("unsupported dialect %q", dialect)
	}

	var stats models.DatabaseStats
	db := s.db.WithContext(ctx)
	if err := db.Raw(queries.tables).Scan(&stats.Collections).Error; err != nil {
		return models.DatabaseStats{}, unavailable(ctx, "count tables", err)
	}
	if err := db.Raw(queries.indexes).Scan(&stats.Indexes).Error; err != nil {
		return models.DatabaseStats{}, unavailable(ctx, "count indexes", err)
	}
	if err := db.Raw(queries.size).Scan(&stats.StorageSize).Error; err != nil {
		return models.DatabaseStats{}, unavailable(ctx, "database size", err)
	}
	return stats, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err != nil {
		return unavailable(ctx, "ping", err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return unavailable(ctx, "ping", err)
	}
	return nil
}

func (s *SQLStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
