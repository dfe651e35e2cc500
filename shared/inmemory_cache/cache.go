package inmemory_cache

import (
	"context"
	"fmt"
	"hash/fnv"
	"jobboard/global_models/global_cache"
	"strconv"
	"time"
)

var _ global_cache.Cache = (*InmemoryShardedCache)(nil)

// конструктор кэша с указанным количеством шардов и интервалом очистки
func NewInmemoryShardedCache(numShards int, cleanUpInterval time.Duration) (*InmemoryShardedCache, error) {
	if numShards <= 0 {
		return nil, fmt.Errorf("numShards must be positive, got %d", numShards)
	}
	if numShards > 1000 {
		return nil, fmt.Errorf("numShards is too large: %d", numShards)
	}
	if cleanUpInterval < 0 {
		return nil, fmt.Errorf("cleanUpInterval must be non-negative, got %v", cleanUpInterval)
	}

	cache := &InmemoryShardedCache{
		shards:    make([]*Shard, numShards),
		numShards: numShards,
		stopChan:  make(chan struct{}),
	}
	for i := range cache.shards {
		cache.shards[i] = &Shard{Items: map[string]CacheItem{}}
	}

	// очистка запускается только при положительном интервале
	if cleanUpInterval > 0 {
		go cache.cleanUp(cleanUpInterval)
	}

	return cache, nil
}

// шард по fnv-хэшу ключа
func (c *InmemoryShardedCache) getShard(key string) *Shard {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	return c.shards[hash.Sum32()%uint32(c.numShards)]
}

// Set записывает значение с TTL; ttl <= 0 - без срока жизни
func (c *InmemoryShardedCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	item := CacheItem{value: stored}
	if ttl > 0 {
		item.expTime = time.Now().Add(ttl)
	}

	shard := c.getShard(key)
	shard.mu.Lock()
	shard.Items[key] = item
	shard.mu.Unlock()
	return nil
}

// GetBytes возвращает копию значения или global_cache.ErrCacheMiss
func (c *InmemoryShardedCache) GetBytes(_ context.Context, key string) ([]byte, error) {
	shard := c.getShard(key)
	shard.mu.RLock()
	item, ok := shard.Items[key]
	shard.mu.RUnlock()

	if !ok || item.expired(time.Now()) {
		return nil, global_cache.ErrCacheMiss
	}
	if item.value == nil {
		// счётчик хранится числом, отдаём строковое представление как redis
		return []byte(strconv.FormatInt(item.counter, 10)), nil
	}
	return append([]byte(nil), item.value...), nil
}

// Delete удаляет ключ (отсутствие ключа - не ошибка)
func (c *InmemoryShardedCache) Delete(_ context.Context, key string) error {
	shard := c.getShard(key)
	shard.mu.Lock()
	delete(shard.Items, key)
	shard.mu.Unlock()
	return nil
}

// Incr атомарно увеличивает счётчик ключа на 1, отсутствующий ключ считается нулём
func (c *InmemoryShardedCache) Incr(_ context.Context, key string) (int64, error) {
	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	item, ok := shard.Items[key]
	if !ok || item.expired(time.Now()) {
		item = CacheItem{}
	}
	if item.value != nil {
		n, err := strconv.ParseInt(string(item.value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value of %s is not an integer", key)
		}
		item.counter = n
		item.value = nil
	}
	item.counter++
	shard.Items[key] = item
	return item.counter, nil
}

// Close останавливает фоновую очистку
func (c *InmemoryShardedCache) Close() error {
	c.stopOnce.Do(func() { close(c.stopChan) })
	return nil
}

// Len - количество элементов во всех шардах (включая ещё не вычищенные просроченные)
func (c *InmemoryShardedCache) Len() int {
	total := 0
	for _, shard := range c.shards {
		shard.mu.RLock()
		total += len(shard.Items)
		shard.mu.RUnlock()
	}
	return total
}
