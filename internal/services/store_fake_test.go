package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"overlayapi/internal/models"
	"overlayapi/internal/store"
)

// memoryStore is an in-memory IRecordStore.
type memoryStore struct {
	mu      sync.Mutex
	records []models.Record
	err     error
	pingErr error
	pages   []models.Page
}

func (s *memoryStore) matches(r models.Record, f models.RecordFilter) bool {
	if f.Txid != nil && r.Txid != *f.Txid {
		return false
	}
	if f.CreatedAfter != nil && r.CreatedAt.Before(*f.CreatedAfter) {
		return false
	}
	if f.CreatedBefore != nil && r.CreatedAt.After(*f.CreatedBefore) {
		return false
	}
	return true
}

func (s *memoryStore) Count(_ context.Context, filter models.RecordFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	var n int64
	for _, r := range s.records {
		if s.matches(r, filter) {
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) Find(_ context.Context, filter models.RecordFilter, page models.Page) ([]models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = append(s.pages, page)
	if s.err != nil {
		return nil, s.err
	}

	matched := []models.Record{}
	for _, r := range s.records {
		if s.matches(r, filter) {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		less := matched[i].CreatedAt.Before(matched[j].CreatedAt)
		if page.Order == models.SortDescending {
			return !less && !matched[i].CreatedAt.Equal(matched[j].CreatedAt)
		}
		return less
	})

	if page.Skip >= len(matched) {
		return []models.Record{}, nil
	}
	matched = matched[page.Skip:]
	if len(matched) > page.Limit {
		matched = matched[:page.Limit]
	}
	return matched, nil
}

func (s *memoryStore) Metadata(context.Context) (models.DatabaseStats, error) {
	if s.err != nil {
		return models.DatabaseStats{}, s.err
	}
	return models.DatabaseStats{Collections: 1, Indexes: 3, StorageSize: int64(len(s.records)) * 128}, nil
}

func (s *memoryStore) Ping(context.Context) error {
	return s.pingErr
}

func (s *memoryStore) Close(context.Context) error {
	return nil
}

var _ store.IRecordStore = (*memoryStore)(nil)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func nowFunc() time.Time { return fixedNow }

func txid(i int) string {
	return fmt.Sprintf("%064x", i+1)
}

// hourlyRecords returns n records, one per hour, the newest one hour before fixedNow.
func hourlyRecords(n int) []models.Record {
	records := make([]models.Record, 0, n)
	for i := range n {
		records = append(records, models.Record{
			Txid:        txid(i),
			OutputIndex: i % 3,
			CreatedAt:   fixedNow.Add(-time.Duration(i+1) * time.Hour),
		})
	}
	return records
}
