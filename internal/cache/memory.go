package cache

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// MemoryCache is an in-process cache backed by freecache.
type MemoryCache struct {
	cache *freecache.Cache
}

func NewMemoryCache(sizeMB int) *MemoryCache {
	return &MemoryCache{
		cache: freecache.NewCache(sizeMB * 1024 * 1024),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	value, err := c.cache.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Warnf("memory cache get [%s]: %s", key, err)
		}
		return nil, false
	}
	return value, true
}

// Set stores the value; a ttl below one second is rounded up, zero means no expiry.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	expireSeconds := 0
	if ttl > 0 {
		expireSeconds = int(math.Ceil(ttl.Seconds()))
	}
	return c.cache.Set([]byte(key), value, expireSeconds)
}

func (c *MemoryCache) EntryCount() int64 {
	return c.cache.EntryCount()
}
