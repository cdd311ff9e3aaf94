package handlers

import (
	"context"
	"net/http"

	apierrors "overlayapi/internal/errors"
	"overlayapi/internal/helpers"
	"overlayapi/internal/models"

	"go.uber.org/zap"
)

// Logger returns the request-scoped logger, or the global one outside a request.
func Logger(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(models.LoggerKey{}).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.L()
}

func GetHandler[R any](fn func(context.Context, *zap.Logger) (R, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := Logger(r.Context())
		data, err := fn(r.Context(), logger)
		if err != nil {
			helpers.RespondWithAPIError(w, logger, err)
			return
		}
		helpers.RespondWithJSON(w, http.StatusOK, data)
	}
}

// GetWithQueryHandler expects the query to be placed in the context by ValidateQuery.
func GetWithQueryHandler[Q any, R any](fn func(context.Context, *zap.Logger, Q) (R, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := Logger(r.Context())
		query, ok := r.Context().Value(models.QueryKey{}).(Q)
		if !ok {
			helpers.RespondWithAPIError(w, logger, apierrors.NewAPIError(http.StatusInternalServerError, apierrors.ErrInternal))
			return
		}
		data, err := fn(r.Context(), logger, query)
		if err != nil {
			helpers.RespondWithAPIError(w, logger, err)
			return
		}
		helpers.RespondWithJSON(w, http.StatusOK, data)
	}
}
