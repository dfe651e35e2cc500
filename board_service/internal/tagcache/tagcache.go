// кэш чтения с инвалидацией по тегам ("jobs", "job-<slug>", "companies").
// Ключ записи содержит текущие версии её тегов, Invalidate увеличивает версию,
// и старые записи просто перестают читаться, пока не истечёт их TTL
package tagcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"jobboard/global_models/global_cache"
)

const keyPrefix = "jobboard:"

// общие теги записей
const (
	TagJobs       = "jobs"
	TagCompanies  = "companies"
	TagCategories = "categories"
)

// Cache - кэш с тегами поверх global_cache.Cache (redis или память)
type Cache struct {
	backend global_cache.Cache
	ttl     time.Duration
	logger  *slog.Logger
}

// конструктор кэша
func New(backend global_cache.Cache, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{backend: backend, ttl: ttl, logger: logger}
}

func tagKey(tag string) string {
	return keyPrefix + "tag:" + tag
}

// JobTag - тег одной вакансии
func JobTag(slug string) string {
	return "job-" + slug
}

// version - текущая версия тега, отсутствующий тег имеет версию 0
func (c *Cache) version(ctx context.Context, tag string) (int64, error) {
	raw, err := c.backend.GetBytes(ctx, tagKey(tag))
	if errors.Is(err, global_cache.ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

// Key собирает ключ записи из имени и версий тегов
func (c *Cache) Key(ctx context.Context, name string, tags ...string) (string, error) {
	var sb strings.Builder
	sb.WriteString(keyPrefix + "entry:" + name)
	for _, tag := range tags {
		v, err := c.version(ctx, tag)
		if err != nil {
			return "", fmt.Errorf("failed to read tag version %s: %w", tag, err)
		}
		sb.WriteString("|" + tag + "@" + strconv.FormatInt(v, 10))
	}
	return sb.String(), nil
}

// Invalidate делает недействительными все записи с указанными тегами
func (c *Cache) Invalidate(ctx context.Context, tags ...string) error {
	var errs []error
	for _, tag := range tags {
		if _, err := c.backend.Incr(ctx, tagKey(tag)); err != nil {
			errs = append(errs, fmt.Errorf("failed to bump tag %s: %w", tag, err))
		}
	}
	return errors.Join(errs...)
}

// Remember возвращает запись из кэша или вызывает load и кэширует результат.
// load сообщает, можно ли кэшировать результат (деградированные данные кэшировать нельзя).
// Ошибки кэша не ломают чтение: они логируются, и данные берутся из load
func Remember[T any](ctx context.Context, c *Cache, name string, tags []string, load func(ctx context.Context) (T, bool, error)) (T, error) {
	if c == nil {
		v, _, err := load(ctx)
		return v, err
	}

	key, err := c.Key(ctx, name, tags...)
	if err != nil {
		c.logger.WarnContext(ctx, "cache key unavailable", "name", name, "error", err)
		v, _, err := load(ctx)
		return v, err
	}

	if raw, err := c.backend.GetBytes(ctx, key); err == nil {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		c.logger.WarnContext(ctx, "cache entry is corrupted", "key", key)
	} else if !errors.Is(err, global_cache.ErrCacheMiss) {
		c.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}

	v, cacheable, err := load(ctx)
	if err != nil || !cacheable {
		return v, err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.WarnContext(ctx, "cache encode failed", "key", key, "error", err)
		return v, nil
	}
	if err := c.backend.Set(ctx, key, raw, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
	return v, nil
}
