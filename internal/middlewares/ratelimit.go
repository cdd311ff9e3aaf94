package middlewares

import (
	"net"
	"net/http"
	"strconv"

	"overlayapi/internal/cache"
	apierrors "overlayapi/internal/errors"
	"overlayapi/internal/handlers"
	"overlayapi/internal/helpers"

	"go.uber.org/zap"
)

// RateLimit allows requestsPerMinute requests per client address. Cache failures
// let the request through.
func RateLimit(c cache.ICache, requestsPerMinute int) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			retryAfter, err := c.GetRateLimit(r.Context(), clientAddress(r), requestsPerMinute)
			if err != nil {
				handlers.Logger(r.Context()).Warn("Rate limit check failed", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if retryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				helpers.RespondWithError(w, http.StatusTooManyRequests, apierrors.ErrRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientAddress strips the port that RemoteAddr carries unless chi's RealIP
// already replaced it.
func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
