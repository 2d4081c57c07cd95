package app

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/adanyl0v/go-task-tracker/internal/config"
)

var globalRedisClient *redis.Client

// MustConnectRedis connects the identity cache backend. It is a no-op
// when REDIS_ADDR is unset.
func MustConnectRedis() {
	cfg := config.Global().Redis
	if cfg.Addr == "" {
		globalLogger.Info().Msg("redis address not set, identity cache disabled")
		return
	}

	globalRedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err := globalRedisClient.Ping(ctx).Err()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping redis")
		panic(err)
	}
	globalLogger.Info().
		Str("addr", cfg.Addr).
		Msg("connected to redis")
}

func DisconnectRedis() {
	if globalRedisClient == nil {
		return
	}

	err := globalRedisClient.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close redis client")
		return
	}
	globalLogger.Info().Msg("disconnected from redis")
}
