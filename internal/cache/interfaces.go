package cache

import "context"

type ICache interface {
	// GetRateLimit counts one request for identifier in the current fixed window and
	// returns the seconds to wait when more than requestsPerMinute were seen, else 0.
	GetRateLimit(ctx context.Context, identifier string, requestsPerMinute int) (int, error)

	Close() error
}
