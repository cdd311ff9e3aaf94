package models

// LoggerKey holds the request-scoped *zap.Logger.
type LoggerKey struct{}

// QueryKey holds the validated query of a request.
type QueryKey struct{}

// AuthContextKey holds the AuthContext of an authenticated admin request.
type AuthContextKey struct{}

// AuthContext is the outcome of the admin gate for one request.
type AuthContext struct {
	Authenticated bool
}
