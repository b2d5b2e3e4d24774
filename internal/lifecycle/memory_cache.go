package lifecycle

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-memory LocalCache for tests and ephemeral sessions.
type MemoryCache struct {
	mu      sync.RWMutex
	records map[string]*CacheRecord
	now     func() time.Time
}

var _ LocalCache = (*MemoryCache)(nil)

// NewMemoryCache constructs an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		records: make(map[string]*CacheRecord),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, businessID string) (*CacheRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.records[businessID]
	if !ok {
		return nil, ErrCacheMiss
	}
	return record.Clone(), nil
}

func (c *MemoryCache) Put(_ context.Context, record *CacheRecord) error {
	if record == nil || record.BusinessID == "" {
		return ErrCacheMiss
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := record.Clone()
	stored.UpdatedAt = c.now()
	c.records[record.BusinessID] = stored
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, businessID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.records, businessID)
	return nil
}
