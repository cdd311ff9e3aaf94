package services

import (
	"context"
	"net/http"

	apierrors "overlayapi/internal/errors"
	"overlayapi/internal/handlers"
	m "overlayapi/internal/middlewares"
	"overlayapi/internal/models"
	"overlayapi/internal/query"
	"overlayapi/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type RecordService struct {
	Store store.IRecordStore
}

func (s RecordService) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(m.ValidateQuery(query.ParseQuerySpec)).
		Get("/", handlers.GetWithQueryHandler(s.QueryRecords))

	return r
}

// QueryRecords returns one page of matching records. Count is the number of records
// matching the filter, regardless of limit and skip.
func (s RecordService) QueryRecords(
	ctx context.Context,
	logger *zap.Logger,
	spec query.QuerySpec,
) (models.RecordsResponse, error) {
	if !spec.Valid() {
		return models.RecordsResponse{}, apierrors.NewAPIError(http.StatusInternalServerError, apierrors.ErrInternal)
	}

	filter := query.BuildFilter(spec)
	page := query.BuildPage(spec)

	var count int64
	var records []models.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.Store.Count(gctx, filter)
		if err != nil {
			return storeFailure(logger, "records.count", err)
		}
		count = n
		return nil
	})
	g.Go(func() error {
		found, err := s.Store.Find(gctx, filter, page)
		if err != nil {
			return storeFailure(logger, "records.find", err)
		}
		records = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.RecordsResponse{}, err
	}

	logger.Debug("Records query served",
		zap.Int64("count", count),
		zap.Int("returned", len(records)),
		zap.Int("limit", page.Limit),
		zap.Int("skip", page.Skip),
	)

	return models.RecordsResponse{
		Records: models.Summaries(records),
		Count:   count,
		Query:   spec.Echo(),
	}, nil
}
