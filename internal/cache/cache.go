package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Store is a JSON value cache with prefix invalidation. GetJSON reports a
// miss as (false, nil).
//
// Every prefix carries a generation that Invalidate bumps. Callers put the
// generation read before loading a value into that value's key, so a load
// that raced an invalidation is written under a key nobody reads again.
type Store interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
	Generation(ctx context.Context, prefix string) (int64, error)
	Invalidate(ctx context.Context, prefix string) error
}

// Cache is the in-process Store used when no Redis address is configured.
type Cache struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time
	m   map[string]entry
	gen map[string]int64
}

type entry struct {
	val []byte
	exp time.Time
}

var _ Store = (*Cache)(nil)

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Cache{
		ttl: ttl,
		now: time.Now,
		m:   make(map[string]entry),
		gen: make(map[string]int64),
	}
}

func (c *Cache) get(key string) ([]byte, bool) {
	now := c.now()
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !now.Before(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false
	}

	return e.val, true
}

func (c *Cache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c.get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores the encoded value, so later mutation of v never leaks into
// the cache.
func (c *Cache) SetJSON(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.m[key] = entry{val: b, exp: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

func (c *Cache) Generation(_ context.Context, prefix string) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen[prefix], nil
}

func (c *Cache) Invalidate(_ context.Context, prefix string) error {
	c.mu.Lock()
	c.gen[prefix]++
	for k := range c.m {
		if strings.HasPrefix(k, prefix) {
			delete(c.m, k)
		}
	}
	c.mu.Unlock()
	return nil
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
