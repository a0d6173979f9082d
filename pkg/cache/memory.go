package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// MemoryCache is a bounded in-process cache. Entries are admitted and
// evicted by ristretto's TinyLFU policy, with cost equal to the value size
// in bytes.
type MemoryCache struct {
	mu     sync.RWMutex
	store  *ristretto.Cache[string, []byte]
	closed bool
}

// NewMemoryCache creates a cache holding at most maxBytes of values and
// tracking roughly maxEntries distinct keys for admission.
func NewMemoryCache(maxEntries int, maxBytes int64) (*MemoryCache, error) {
	if maxEntries <= 0 || maxBytes <= 0 {
		return nil, fmt.Errorf("memory cache: limits must be positive (entries=%d bytes=%d)", maxEntries, maxBytes)
	}
	store, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: int64(maxEntries) * 10,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("memory cache: %w", err)
	}
	return &MemoryCache{store: store}, nil
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, false, ErrClosed
	}
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

// Set stores a value. The write is visible to Get once Set returns; the
// cache may still reject it under memory pressure.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	c.store.SetWithTTL(key, data, int64(len(data)), ttl)
	c.store.Wait()
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	c.store.Del(key)
	return nil
}

// Close stops ristretto's background goroutines. It is safe to call twice.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		c.store.Close()
	}
	return nil
}

var _ Cache = (*MemoryCache)(nil)
