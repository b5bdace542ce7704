package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// LayeredCache keeps a small in-process level in front of redis. Reads hit
// the local level first; writes and invalidations go through both. When redis
// is unreachable the local level still serves whatever it holds.
type LayeredCache struct {
	local  *gocache.Cache
	remote *RedisCache

	localHits   atomic.Int64
	remoteHits  atomic.Int64
	misses      atomic.Int64
	remoteFails atomic.Int64
}

// LocalTTL bounds how stale the in-process level may get relative to redis.
const LocalTTL = 30 * time.Second

func NewLayeredCache(remote *RedisCache) *LayeredCache {
	return &LayeredCache{
		local:  gocache.New(LocalTTL, 2*LocalTTL),
		remote: remote,
	}
}

// Get unmarshals the cached value for key into dest. The local level stores
// the marshaled bytes so both levels share one representation.
func (c *LayeredCache) Get(key string, dest interface{}) error {
	if raw, found := c.local.Get(key); found {
		if data, ok := raw.([]byte); ok {
			if err := unmarshalCached(data, dest); err == nil {
				c.localHits.Add(1)
				return nil
			}
		}
		c.local.Delete(key)
	}

	err := c.remote.Get(key, dest)
	if err == nil {
		c.remoteHits.Add(1)
		if data, merr := marshalCached(dest); merr == nil {
			c.local.Set(key, data, LocalTTL)
		}
		return nil
	}
	if err == ErrCacheMiss {
		c.misses.Add(1)
		return ErrCacheMiss
	}
	c.remoteFails.Add(1)
	return err
}

func (c *LayeredCache) Set(key string, value interface{}, expiration time.Duration) error {
	if data, err := marshalCached(value); err == nil {
		ttl := expiration
		if ttl <= 0 || ttl > LocalTTL {
			ttl = LocalTTL
		}
		c.local.Set(key, data, ttl)
	}

	if err := c.remote.Set(key, value, expiration); err != nil {
		c.remoteFails.Add(1)
		return err
	}
	return nil
}

func (c *LayeredCache) Delete(key string) error {
	c.local.Delete(key)
	return c.remote.Delete(key)
}

// DeletePattern drops matching keys from redis and flushes the whole local
// level. The local level is small and short-lived, so a flush is cheaper than
// pattern matching it.
func (c *LayeredCache) DeletePattern(pattern string) error {
	c.local.Flush()
	return c.remote.DeletePattern(pattern)
}

func (c *LayeredCache) Health() error {
	return c.remote.Health()
}

func (c *LayeredCache) Stats() map[string]interface{} {
	stats := c.remote.Stats()
	stats["local_items"] = c.local.ItemCount()
	stats["local_hits"] = c.localHits.Load()
	stats["remote_hits"] = c.remoteHits.Load()
	stats["misses"] = c.misses.Load()
	stats["remote_failures"] = c.remoteFails.Load()
	return stats
}
