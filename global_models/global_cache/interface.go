package global_cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss - ключ отсутствует или истёк
var ErrCacheMiss = errors.New("cache miss")

// Cache - абстракция key-value хранилища для кэша чтения
type Cache interface {
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	GetBytes(ctx context.Context, key string) ([]byte, error) // ErrCacheMiss если ключа нет
	Delete(ctx context.Context, key string) error

	// атомарный счётчик, используется для версий тегов
	Incr(ctx context.Context, key string) (int64, error)

	Close() error
}
