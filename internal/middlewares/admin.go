package middlewares

import (
	"context"
	"net/http"

	apierrors "overlayapi/internal/errors"
	"overlayapi/internal/helpers"
	"overlayapi/internal/models"
)

// AdminAuthenticate guards the admin routes with the pre-shared secret. Every
// failure produces the same response so callers cannot tell them apart.
func AdminAuthenticate(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			token, ok := helpers.BearerToken(r.Header.Get("Authorization"))
			if !ok || !helpers.TokenMatches(token, secret) {
				helpers.RespondWithError(w, http.StatusUnauthorized, apierrors.ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), models.AuthContextKey{}, models.AuthContext{Authenticated: true})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}
