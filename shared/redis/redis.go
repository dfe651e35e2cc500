package redis

import (
	"context"
	"fmt"
	"jobboard/global_models/global_cache"
	"jobboard/shared/config"
	"log/slog"

	"github.com/go-redis/redis/v8"
)

// NewRedisCache создаёт клиента redis, проверяет подключение и возвращает адаптер кэша
func NewRedisCache(ctx context.Context, cfg *config.RedisConfig) (global_cache.Cache, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config is nil")
	}

	options := cfg.ToRedisOptions()
	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	slog.Info("connected to redis", "addr", options.Addr, "db", options.DB)

	return NewCacheAdapter(client), nil
}
