package services

import (
	"context"
	"time"

	"overlayapi/internal/configuration"
	"overlayapi/internal/handlers"
	"overlayapi/internal/models"
	"overlayapi/internal/query"
	"overlayapi/internal/stats"
	"overlayapi/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type DashboardService struct {
	Store store.IRecordStore
	Now   func() time.Time
}

func (s DashboardService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", handlers.GetHandler(s.GetDashboard))

	return r
}

// GetDashboard returns the total record count, the newest records and the public
// trailing-window statistics.
func (s DashboardService) GetDashboard(ctx context.Context, logger *zap.Logger) (models.DashboardResponse, error) {
	now := clock(s.Now)
	response := models.DashboardResponse{}

	var recent []models.Record
	var counts stats.Counts

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.Store.Count(gctx, models.RecordFilter{})
		if err != nil {
			return storeFailure(logger, "dashboard.count", err)
		}
		response.TotalRecords = total
		return nil
	})
	g.Go(func() error {
		records, err := s.Store.Find(gctx, models.RecordFilter{}, query.RecentPage(configuration.DashboardRecentLimit))
		if err != nil {
			return storeFailure(logger, "dashboard.recent", err)
		}
		recent = records
		return nil
	})
	g.Go(func() error {
		result, err := stats.NewAggregator(s.Store).Compute(gctx, now, stats.DashboardWindows)
		if err != nil {
			return storeFailure(logger, "dashboard.statistics", err)
		}
		counts = result
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.DashboardResponse{}, err
	}

	response.RecentRecords = models.Summaries(recent)
	response.Statistics = counts.Dashboard()
	return response, nil
}
