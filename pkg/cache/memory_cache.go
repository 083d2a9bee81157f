package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value  string
	expiry time.Time
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache returns a process-local Cache. Expired entries are dropped lazily on read.
func NewMemoryCache() Cache {
	return newMemoryCache(time.Now)
}

func newMemoryCache(now func() time.Time) *memoryCache {
	return &memoryCache{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

func (m *memoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	var expiry time.Time
	if ttl > 0 {
		expiry = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiry: expiry}
	m.mu.Unlock()
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", ErrMiss
	}

	if !entry.expiry.IsZero() && !m.now().Before(entry.expiry) {
		m.mu.Lock()
		// re-check, a writer may have replaced it meanwhile
		if cur, ok := m.entries[key]; ok && cur.expiry.Equal(entry.expiry) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return "", ErrMiss
	}

	return entry.value, nil
}

func (m *memoryCache) Del(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}
