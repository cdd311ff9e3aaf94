package middlewares

import (
	"context"
	"net/http"
	"net/url"

	"overlayapi/internal/handlers"
	"overlayapi/internal/helpers"
	"overlayapi/internal/models"
)

// ValidateQuery parses the URL query with parse and stores the result for
// handlers.GetWithQueryHandler. A parse error is rendered as is.
func ValidateQuery[T any](parse func(url.Values) (T, error)) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query, err := parse(r.URL.Query())
			if err != nil {
				helpers.RespondWithAPIError(w, handlers.Logger(r.Context()), err)
				return
			}

			ctx := context.WithValue(r.Context(), models.QueryKey{}, query)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
