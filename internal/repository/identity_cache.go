package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const identityKeyPrefix = "taskmanager:identity:"

// IdentityCache remembers which internal user ID an external identity
// resolved to, so that a request doesn't need a users lookup every time.
// A nil client turns every method into a no-op.
type IdentityCache struct {
	logger zerolog.Logger
	redis  *redis.Client
	ttl    time.Duration
}

func NewIdentityCache(logger zerolog.Logger, client *redis.Client, ttl time.Duration) *IdentityCache {
	if ttl < 0 {
		ttl = 0
	}
	return &IdentityCache{
		logger: logger,
		redis:  client,
		ttl:    ttl,
	}
}

func identityCacheKey(externalID string) string {
	return identityKeyPrefix + externalID
}

func (c *IdentityCache) Lookup(ctx context.Context, externalID string) (int64, bool) {
	if c == nil || c.redis == nil {
		return 0, false
	}

	raw, err := c.redis.Get(ctx, identityCacheKey(externalID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().
				Err(err).
				Str("external_id", externalID).
				Msg("failed to read identity cache")
		}
		return 0, false
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("external_id", externalID).
			Msg("dropping malformed identity cache entry")
		_ = c.redis.Del(ctx, identityCacheKey(externalID)).Err()
		return 0, false
	}
	return userID, true
}

func (c *IdentityCache) Remember(ctx context.Context, externalID string, userID int64) {
	if c == nil || c.redis == nil {
		return
	}

	err := c.redis.Set(ctx, identityCacheKey(externalID), strconv.FormatInt(userID, 10), c.ttl).Err()
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("external_id", externalID).
			Msg("failed to write identity cache")
	}
}

func (c *IdentityCache) Forget(ctx context.Context, externalID string) {
	if c == nil || c.redis == nil {
		return
	}

	err := c.redis.Del(ctx, identityCacheKey(externalID)).Err()
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("external_id", externalID).
			Msg("failed to evict identity cache")
	}
}
