package dashboard

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru/v2"
)

const localCacheSize = 256

// Cache is a two-tier response cache: a small in-process LRU in front of
// Redis. Both tiers hold the marshaled Stats payload under the same key and
// expire on TTL; there is no explicit invalidation, so dashboards can lag
// writes by at most the TTL.
type Cache struct {
	client *redis.Client
	local  *lru.Cache[string, localEntry]
	ttl    time.Duration
}

type localEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewCache creates a dashboard cache. client may be nil to run on the local
// tier alone (dev mode without Redis).
func NewCache(client *redis.Client, ttl time.Duration) (*Cache, error) {
	local, err := lru.New[string, localEntry](localCacheSize)
	if err != nil {
		return nil, err
	}
	return &Cache{client: client, local: local, ttl: ttl}, nil
}

// Get returns the cached payload for key, checking the local tier first.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if entry, ok := c.local.Get(key); ok {
		if time.Now().Before(entry.expiresAt) {
			return entry.payload, true
		}
		c.local.Remove(key)
	}

	if c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and transport errors both degrade to a miss.
		return nil, false
	}
	c.local.Add(key, localEntry{payload: payload, expiresAt: time.Now().Add(c.ttl)})
	return payload, true
}

// Set stores the payload in both tiers. Redis errors are ignored; a cache
// write failure must never fail the request.
func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	c.local.Add(key, localEntry{payload: payload, expiresAt: time.Now().Add(c.ttl)})
	if c.client != nil {
		c.client.Set(ctx, key, payload, c.ttl)
	}
}
