package middlewares

import (
	"context"
	"net/http"
	"time"

	"overlayapi/internal/models"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Logger attaches a request-scoped logger to the context and logs every completed request.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		logger := zap.L().With(zap.String("request_id", requestID))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			}
			if status >= http.StatusInternalServerError {
				logger.Warn("Request failed", fields...)
				return
			}
			logger.Info("Request completed", fields...)
		}()

		ctx := context.WithValue(r.Context(), models.LoggerKey{}, logger)
		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}
