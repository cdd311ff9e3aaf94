package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"overlayapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureBase = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func fixtureTxid(i int) string {
	return fmt.Sprintf("%064x", i+1)
}

// fixtureRecords returns 25 records, one per hour going back from fixtureBase.
func fixtureRecords() []models.Record {
	records := make([]models.Record, 0, 25)
	for i := 0; i < 25; i++ {
		records = append(records, models.Record{
			Txid:        fixtureTxid(i),
			OutputIndex: i % 3,
			CreatedAt:   fixtureBase.Add(-time.Duration(i) * time.Hour),
		})
	}
	return records
}

func ptr[T any](v T) *T {
	return &v
}

// testRecordStore runs the behaviour every IRecordStore backed by a real engine
// must share.
func testRecordStore(t *testing.T, newStore func(t *testing.T, records []models.Record) IRecordStore) {
	ctx := context.Background()

	t.Run("count ignores pagination", func(t *testing.T) {
		s := newStore(t, fixtureRecords())

		count, err := s.Count(ctx, models.RecordFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(25), count)

		records, err := s.Find(ctx, models.RecordFilter{}, models.Page{Limit: 10, Order: models.SortDescending})
		require.NoError(t, err)
		assert.Len(t, records, 10)
	})

	t.Run("find orders by creation time descending", func(t *testing.T) {
		s := newStore(t, fixtureRecords())

		records, err := s.Find(ctx, models.RecordFilter{}, models.Page{Limit: 3, Order: models.SortDescending})
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, fixtureTxid(0), records[0].Txid)
		assert.Equal(t, fixtureTxid(1), records[1].Txid)
		assert.Equal(t, fixtureTxid(2), records[2].Txid)
		assert.True(t, fixtureBase.Equal(records[0].CreatedAt))
	})

	t.Run("find orders ascending and skips", func(t *testing.T) {
		s := newStore(t, fixtureRecords())

		records, err := s.Find(ctx, models.RecordFilter{}, models.Page{Limit: 2, Skip: 1, Order: models.SortAscending})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, fixtureTxid(23), records[0].Txid)
		assert.Equal(t, fixtureTxid(22), records[1].Txid)
		assert.Equal(t, 22%3, records[1].OutputIndex)
	})

	t.Run("skip past the end returns an empty page", func(t *testing.T) {
		s := newStore(t, fixtureRecords())

		records, err := s.Find(ctx, models.RecordFilter{}, models.Page{Limit: 10, Skip: 1000, Order: models.SortDescending})
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("txid filter matches exactly", func(t *testing.T) {
		s := newStore(t, fixtureRecords())
		filter := models.RecordFilter{Txid: ptr(fixtureTxid(4))}

		count, err := s.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		records, err := s.Find(ctx, filter, models.Page{Limit: 5, Order: models.SortDescending})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, fixtureTxid(4), records[0].Txid)
		assert.Equal(t, 1, records[0].OutputIndex)
	})

	t.Run("date range is inclusive on both ends", func(t *testing.T) {
		s := newStore(t, fixtureRecords())
		filter := models.RecordFilter{
			CreatedAfter:  ptr(fixtureBase.Add(-5 * time.Hour)),
			CreatedBefore: ptr(fixtureBase.Add(-2 * time.Hour)),
		}

		count, err := s.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})

	t.Run("one-sided range", func(t *testing.T) {
		s := newStore(t, fixtureRecords())

		count, err := s.Count(ctx, models.RecordFilter{CreatedBefore: ptr(fixtureBase.Add(-20 * time.Hour))})
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})

	t.Run("txid and range are combined", func(t *testing.T) {
		s := newStore(t, fixtureRecords())

		count, err := s.Count(ctx, models.RecordFilter{
			Txid:         ptr(fixtureTxid(10)),
			CreatedAfter: ptr(fixtureBase.Add(-5 * time.Hour)),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("future start date matches nothing", func(t *testing.T) {
		s := newStore(t, fixtureRecords())
		filter := models.RecordFilter{CreatedAfter: ptr(time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC))}

		count, err := s.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		records, err := s.Find(ctx, filter, models.Page{Limit: 50, Order: models.SortDescending})
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("metadata and ping", func(t *testing.T) {
		s := newStore(t, fixtureRecords())

		require.NoError(t, s.Ping(ctx))

		stats, err := s.Metadata(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, stats.Collections, int64(1))
		assert.GreaterOrEqual(t, stats.Indexes, int64(1))
		assert.Positive(t, stats.StorageSize)
	})
}
