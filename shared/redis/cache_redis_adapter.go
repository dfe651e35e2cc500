package redis

import (
	"context"
	"errors"
	"jobboard/global_models/global_cache"
	"time"

	"github.com/go-redis/redis/v8"
)

var _ global_cache.Cache = (*CacheRedisAdapter)(nil)

// адаптер redis под интерфейс global_cache.Cache
type CacheRedisAdapter struct {
	client redis.Cmdable
	closer func() error
}

// конструктор адаптера поверх готового клиента
func NewCacheAdapter(client *redis.Client) *CacheRedisAdapter {
	return &CacheRedisAdapter{client: client, closer: client.Close}
}

// запись значения с TTL; ttl <= 0 - без срока жизни
func (r *CacheRedisAdapter) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	if expiration < 0 {
		expiration = 0
	}
	return r.client.Set(ctx, key, value, expiration).Err()
}

// чтение значения; redis.Nil превращается в global_cache.ErrCacheMiss
func (r *CacheRedisAdapter) GetBytes(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, global_cache.ErrCacheMiss
	}
	return val, err
}

func (r *CacheRedisAdapter) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// INCR - атомарный счётчик на стороне redis
func (r *CacheRedisAdapter) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

func (r *CacheRedisAdapter) Close() error {
	if r.closer != nil {
		return r.closer()
	}
	return nil
}
