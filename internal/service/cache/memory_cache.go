package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// MemoryCache is an in-process BytesCache backed by ristretto.
type MemoryCache struct {
	c *ristretto.Cache
}

// MemoryConfig sizes the in-process cache.
type MemoryConfig struct {
	MaxEntries int64
	MaxBytes   int64
}

func NewMemoryCache(cfg MemoryConfig) (*MemoryCache, error) {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 1_000
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 1 << 20
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.MaxEntries * 10,
		MaxCost:     cfg.MaxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("ristretto: %w", err)
	}
	return &MemoryCache{c: c}, nil
}

func (m *MemoryCache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return b, true, nil
}

// SetBytes stores value and waits for the write buffer to drain, so a
// following GetBytes observes it.
func (m *MemoryCache) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if !m.c.SetWithTTL(key, value, int64(len(value)), ttl) {
		return fmt.Errorf("cache rejected key %q", key)
	}
	m.c.Wait()
	return nil
}

func (m *MemoryCache) Close() error {
	m.c.Close()
	return nil
}
