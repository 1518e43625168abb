package cache

import (
	"context"
	"errors"
	"time"

	pkgcache "RunSight/pkg/cache"
)

// LayeredBytesCache adapts the generic layered cache (memory L1, Redis L2)
// to the BytesCache API used by the insight handlers.
type LayeredBytesCache struct {
	svc pkgcache.Service
}

func NewLayeredBytesCache(svc pkgcache.Service) *LayeredBytesCache {
	return &LayeredBytesCache{svc: svc}
}

func (c *LayeredBytesCache) GetBytes(key string) ([]byte, bool, error) {
	var s string
	err := c.svc.Get(context.Background(), key, &s)
	if err != nil {
		if errors.Is(err, pkgcache.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(s), true, nil
}

func (c *LayeredBytesCache) SetBytes(key string, value []byte, ttl time.Duration) error {
	return c.svc.Set(context.Background(), key, string(value), ttl)
}

func (c *LayeredBytesCache) DeleteBytes(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.svc.Delete(context.Background(), keys...)
}

var _ BytesCache = (*LayeredBytesCache)(nil)
