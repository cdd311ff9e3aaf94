package cache

import (
	"context"
	"crypto/tls"
	"fmt"

	"overlayapi/internal/configuration"
	"overlayapi/internal/models"

	"github.com/redis/rueidis"
)

type RueidisCache struct {
	client rueidis.Client
}

// NewCache connects to the configured cache. It returns nil when no cache is configured.
func NewCache(config models.CacheConfiguration) (ICache, error) {
	switch config.Type {
	case configuration.ProviderRedis:
		c, err := newRueidisCache(
			config.Redis.Hosts,
			config.Redis.Password,
			config.Redis.TLSEnabled,
			config.Redis.TLSServerName,
			"redis",
		)
		if err != nil {
			return nil, err
		}
		return c, nil
	case configuration.ProviderValkey:
		c, err := newRueidisCache(
			config.Valkey.Hosts,
			config.Valkey.Password,
			config.Valkey.TLSEnabled,
			config.Valkey.TLSServerName,
			"valkey",
		)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, nil
	}
}

func newRueidisCache(
	hosts []string,
	password string,
	tlsEnabled bool,
	tlsServerName,
	errorContext string,
) (*RueidisCache, error) {
	clientOption := rueidis.ClientOption{
		InitAddress: hosts,
		Password:    password,
	}

	if tlsEnabled {
		clientOption.TLSConfig = &tls.Config{
			ServerName: tlsServerName,
			MinVersion: tls.VersionTLS12,
		}
	}

	client, err := rueidis.NewClient(clientOption)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", errorContext, err)
	}
	return &RueidisCache{client: client}, nil
}

func (r *RueidisCache) GetRateLimit(ctx context.Context, identifier string, requestsPerMinute int) (int, error) {
	key := fmt.Sprintf(configuration.CacheAppRateLimitKey, identifier)
	count, err := r.client.Do(ctx, r.client.B().Incr().Key(key).Build()).AsInt64()
	if err != nil {
		return 0, err
	}

	if count == 1 {
		expireErr := r.client.Do(ctx, r.client.B().Expire().Key(key).Seconds(configuration.CacheRateLimitWindow).Build()).
			Error()
		if expireErr != nil {
			return 0, expireErr
		}
	}

	if int(count) > requestsPerMinute {
		retryAfter, ttlErr := r.client.Do(ctx, r.client.B().Ttl().Key(key).Build()).AsInt64()
		if ttlErr != nil {
			return 0, ttlErr
		}
		// A key without expiry reports -1.
		if retryAfter < 1 {
			retryAfter = 1
		}
		return int(retryAfter), nil
	}

	return 0, nil
}

func (r *RueidisCache) Close() error {
	r.client.Close()
	return nil
}
