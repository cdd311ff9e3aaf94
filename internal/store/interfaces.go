package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"overlayapi/internal/models"
)

// ErrUnavailable marks any failure talking to the record store, including timeouts.
var ErrUnavailable = errors.New("record store unavailable")

// IRecordStore is the read-only view of the record collection. Implementations are
// safe for concurrent use and bound every call by their configured timeout.
type IRecordStore interface {
	// Count returns the number of records matching filter, ignoring pagination.
	Count(ctx context.Context, filter models.RecordFilter) (int64, error)
	// Find returns one page of records matching filter ordered by creation time.
	Find(ctx context.Context, filter models.RecordFilter, page models.Page) ([]models.Record, error)
	// Metadata describes the underlying database.
	Metadata(ctx context.Context) (models.DatabaseStats, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// unavailable wraps a driver error. When the call's context has expired the context
// error is kept in the chain so IsTimeout can tell timeouts apart.
func unavailable(ctx context.Context, operation string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	return fmt.Errorf("%s: %w: %w", operation, ErrUnavailable, err)
}

// IsTimeout reports whether a store error was caused by the store timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
