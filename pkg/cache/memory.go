package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time // zero means no expiration
}

// Memory is an in-process LRU cache with per-entry TTL. When it reaches
// capacity the least recently used entry is evicted.
type Memory struct {
	capacity int
	items    map[string]*list.Element
	eviction *list.List
	mu       sync.Mutex
	now      func() time.Time
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithMemoryClock overrides the time source used for expiration.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory creates a cache holding at most capacity entries.
// The capacity must be positive, otherwise it panics.
func NewMemory(capacity int, opts ...MemoryOption) *Memory {
	if capacity <= 0 {
		panic("cache: memory capacity must be positive")
	}
	m := &Memory{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get marks the entry as recently used. Expired entries are dropped on read.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	entry := elem.Value.(*memoryEntry)
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.removeElement(elem)
		return nil, false, nil
	}
	m.eviction.MoveToFront(elem)
	return entry.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}

	if elem, ok := m.items[key]; ok {
		m.eviction.MoveToFront(elem)
		entry := elem.Value.(*memoryEntry)
		entry.value = val
		entry.expiresAt = expiresAt
		return nil
	}

	elem := m.eviction.PushFront(&memoryEntry{key: key, value: val, expiresAt: expiresAt})
	m.items[key] = elem

	if m.eviction.Len() > m.capacity {
		if oldest := m.eviction.Back(); oldest != nil {
			m.removeElement(oldest)
		}
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.items[key]; ok {
		m.removeElement(elem)
	}
	return nil
}

// Len includes entries that expired but were not read since.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eviction.Len()
}

// Must be called with lock held.
func (m *Memory) removeElement(elem *list.Element) {
	m.eviction.Remove(elem)
	delete(m.items, elem.Value.(*memoryEntry).key)
}
