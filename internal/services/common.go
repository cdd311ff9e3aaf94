package services

import (
	"context"
	"errors"
	"time"

	apierrors "overlayapi/internal/errors"
	"overlayapi/internal/store"

	"go.uber.org/zap"
)

// storeFailure logs err and hides it behind STORE_UNAVAILABLE. Calls cancelled
// because a sibling call already failed are not logged again.
func storeFailure(logger *zap.Logger, operation string, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		logger.Debug("Record store call cancelled", zap.String("operation", operation))
	case store.IsTimeout(err):
		logger.Error("Record store timed out", zap.String("operation", operation), zap.Error(err))
	default:
		logger.Error("Record store failed", zap.String("operation", operation), zap.Error(err))
	}
	return apierrors.NewStoreUnavailableError()
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}
	return now().UTC()
}
