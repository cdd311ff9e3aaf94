package services

import (
	"context"
	"time"

	"overlayapi/internal/handlers"
	m "overlayapi/internal/middlewares"
	"overlayapi/internal/models"
	"overlayapi/internal/stats"
	"overlayapi/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AdminService struct {
	Store  store.IRecordStore
	Secret string
	Now    func() time.Time
}

func (s AdminService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(m.AdminAuthenticate(s.Secret))

	r.Get("/stats", handlers.GetHandler(s.GetStats))
	r.Get("/health", handlers.GetHandler(s.GetHealth))

	return r
}

func (s AdminService) GetStats(ctx context.Context, logger *zap.Logger) (models.AdminStatsResponse, error) {
	now := clock(s.Now)
	var response models.AdminStatsResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.Store.Count(gctx, models.RecordFilter{})
		if err != nil {
			return storeFailure(logger, "admin.count", err)
		}
		response.TotalRecords = total
		return nil
	})
	g.Go(func() error {
		metadata, err := s.Store.Metadata(gctx)
		if err != nil {
			return storeFailure(logger, "admin.metadata", err)
		}
		response.DatabaseStats = metadata
		return nil
	})
	g.Go(func() error {
		counts, err := stats.NewAggregator(s.Store).Compute(gctx, now, stats.AdminWindows)
		if err != nil {
			return storeFailure(logger, "admin.activity", err)
		}
		response.RecentActivity = counts.RecentActivity()
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.AdminStatsResponse{}, err
	}

	return response, nil
}

// GetHealth reports store connectivity. An unreachable store is a result, not an error.
func (s AdminService) GetHealth(ctx context.Context, logger *zap.Logger) (models.HealthResponse, error) {
	status := models.DatabaseConnected
	if err := s.Store.Ping(ctx); err != nil {
		logger.Warn("Record store health check failed", zap.Error(err))
		status = models.DatabaseDisconnected
	}

	return models.HealthResponse{
		Database:  status,
		Timestamp: clock(s.Now).Format(time.RFC3339),
	}, nil
}
