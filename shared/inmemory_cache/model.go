package inmemory_cache

import (
	"sync"
	"time"
)

// шардированный inmemory кэш, используется как кэш чтения когда redis не настроен
type InmemoryShardedCache struct {
	shards    []*Shard
	numShards int
	stopOnce  sync.Once
	stopChan  chan struct{}
}

// отдельный шард: мапа элементов и мьютекс на неё
type Shard struct {
	Items map[string]CacheItem
	mu    sync.RWMutex
}

// элемент кэша; нулевой expTime - бессрочный элемент (счётчики версий тегов)
type CacheItem struct {
	value   []byte
	counter int64
	expTime time.Time
}

func (i CacheItem) expired(now time.Time) bool {
	return !i.expTime.IsZero() && now.After(i.expTime)
}
