package inmemory_cache

import "time"

// периодическая очистка просроченных элементов до вызова Close
func (c *InmemoryShardedCache) cleanUp(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanUpExpired(time.Now())
		case <-c.stopChan:
			return
		}
	}
}

// удаление элементов, у которых истёк TTL на момент now
func (c *InmemoryShardedCache) cleanUpExpired(now time.Time) {
	for _, shard := range c.shards {
		shard.mu.Lock()
		for key, item := range shard.Items {
			if item.expired(now) {
				delete(shard.Items, key)
			}
		}
		shard.mu.Unlock()
	}
}
