package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

// WithDefaultTTL sets the expiration used when Set is called with a zero TTL.
// Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(c *memoryConfig) {
		c.defaultTTL = d
	}
}

// WithCleanupInterval sets how often the janitor removes expired entries.
// Zero disables the janitor; expired entries are then dropped lazily on read.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(c *memoryConfig) {
		c.cleanupInterval = d
	}
}

// WithMaxEntries caps the cache size; the least recently used entry is
// evicted when full. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(c *memoryConfig) {
		c.maxEntries = max(n, 0)
	}
}

type entry[V any] struct {
	expiresAt time.Time // zero = never expires
	value     V
	key       string
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is an in-memory cache with TTL expiration and optional LRU eviction.
// The most recently used entries sit at the front of the list.
type Memory[V any] struct {
	items    map[string]*list.Element
	eviction *list.List
	cfg      memoryConfig
	done     chan struct{}
	mu       sync.Mutex
	closed   bool
}

// NewMemory creates a new in-memory cache.
//
// Example:
//
//	c := cache.NewMemory[sage.Summary](cache.WithMaxEntries(48))
//	defer c.Close()
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	cfg := memoryConfig{
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Memory[V]{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		cfg:      cfg,
		done:     make(chan struct{}),
	}

	if m.cfg.cleanupInterval > 0 {
		go m.janitor()
	}

	return m
}

// Get retrieves a value by key and marks it as recently used.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	if m.closed {
		return zero, ErrClosed
	}

	elem, ok := m.items[key]
	if !ok {
		return zero, ErrNotFound
	}

	e := elem.Value.(*entry[V])
	if e.expired(time.Now()) {
		m.remove(elem)
		return zero, ErrNotFound
	}

	m.eviction.MoveToFront(elem)
	return e.value, nil
}

// Set stores a value with the given TTL.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.cfg.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*entry[V])
		e.value = value
		e.expiresAt = expiresAt
		m.eviction.MoveToFront(elem)
		return nil
	}

	if m.cfg.maxEntries > 0 && len(m.items) >= m.cfg.maxEntries {
		if oldest := m.eviction.Back(); oldest != nil {
			m.remove(oldest)
		}
	}

	m.items[key] = m.eviction.PushFront(&entry[V]{key: key, value: value, expiresAt: expiresAt})
	return nil
}

// Delete removes a key from the cache.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if elem, ok := m.items[key]; ok {
		m.remove(elem)
	}
	return nil
}

// Len returns the number of stored entries, including expired ones not yet
// collected.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the janitor and marks the cache as closed. Close is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	return nil
}

func (m *Memory[V]) janitor() {
	ticker := time.NewTicker(m.cfg.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

func (m *Memory[V]) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for elem := m.eviction.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*entry[V]).expired(now) {
			m.remove(elem)
		}
		elem = prev
	}
}

// remove drops elem. Caller must hold the mutex.
func (m *Memory[V]) remove(elem *list.Element) {
	m.eviction.Remove(elem)
	delete(m.items, elem.Value.(*entry[V]).key)
}

var _ Cache[any] = (*Memory[any])(nil)
