package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	snapshotKey = "leaderboard:last-good"
	themeKey    = "leaderboard:theme"

	// The last-good snapshot outlives one publish cycle (8h) so it can
	// bridge a broken publish.
	snapshotTTL = 24 * time.Hour
)

// CacheService is the Redis layer: it keeps the last successfully fetched
// raw snapshot (an extra fallback tier) and the persisted theme preference.
// If Redis is unconfigured or unreachable, every operation is a no-op.
type CacheService struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewCacheService connects to Redis. A missing URL or failed connection
// degrades to a disabled cache rather than an error.
func NewCacheService(redisURL string, log zerolog.Logger) *CacheService {
	log = log.With().Str("component", "cache").Logger()

	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, cache and theme persistence disabled")
		return &CacheService{log: log}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis: invalid URL, cache disabled")
		return &CacheService{log: log}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, cache disabled")
		return &CacheService{log: log}
	}

	log.Info().Msg("redis: connected")
	return &CacheService{rdb: rdb, log: log}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetSnapshot returns the cached raw snapshot, or nil when absent/disabled.
func (c *CacheService) GetSnapshot(ctx context.Context) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetSnapshot stores the raw bytes of a snapshot that fetched and
// normalized successfully.
func (c *CacheService) SetSnapshot(ctx context.Context, data []byte) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, snapshotKey, data, snapshotTTL).Err()
}

// GetTheme returns the persisted theme preference, "" when unset.
func (c *CacheService) GetTheme(ctx context.Context) (string, error) {
	if c.rdb == nil {
		return "", nil
	}
	v, err := c.rdb.Get(ctx, themeKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	return v, err
}

// SetTheme persists the theme preference. No TTL: it survives restarts.
func (c *CacheService) SetTheme(ctx context.Context, theme string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, themeKey, theme, 0).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
