package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// entry represents a cache entry with value and expiration.
type entry struct {
	key       string
	value     string
	expiresAt time.Time
	element   *list.Element
}

// Memory is an in-process LRU store with TTL.
type Memory struct {
	capacity  int
	ttl       time.Duration
	entries   map[string]*entry
	evictList *list.List
	mu        sync.Mutex
	now       func() time.Time

	cleanupStop chan struct{}
	closeOnce   sync.Once
}

// NewMemory creates a memory store. A background goroutine drops expired
// entries; Close stops it.
func NewMemory(capacity int, ttl time.Duration) *Memory {
	if capacity < 1 {
		capacity = 1
	}
	m := &Memory{
		capacity:    capacity,
		ttl:         ttl,
		entries:     make(map[string]*entry),
		evictList:   list.New(),
		now:         time.Now,
		cleanupStop: make(chan struct{}),
	}

	go m.cleanupLoop()

	return m
}

func (m *Memory) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Cleanup()
		case <-m.cleanupStop:
			return
		}
	}
}

// Get retrieves a live value and marks it most recently used.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}

	if m.expired(e) {
		m.removeEntry(e)
		return "", false, nil
	}

	m.evictList.MoveToFront(e.element)
	return e.value, true, nil
}

// Set adds or refreshes a value, evicting the least recently used entry
// when over capacity.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[key]; ok {
		e.value = value
		e.expiresAt = m.expiry()
		m.evictList.MoveToFront(e.element)
		return nil
	}

	e := &entry{key: key, value: value, expiresAt: m.expiry()}
	e.element = m.evictList.PushFront(e)
	m.entries[key] = e

	for m.evictList.Len() > m.capacity {
		if oldest := m.evictList.Back(); oldest != nil {
			m.removeEntry(oldest.Value.(*entry))
		}
	}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Cleanup removes all expired entries.
func (m *Memory) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if m.expired(e) {
			m.removeEntry(e)
		}
	}
}

// Close stops the cleanup goroutine.
func (m *Memory) Close() error {
	m.closeOnce.Do(func() { close(m.cleanupStop) })
	return nil
}

// A zero TTL means entries never expire.
func (m *Memory) expiry() time.Time {
	if m.ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(m.ttl)
}

func (m *Memory) expired(e *entry) bool {
	return !e.expiresAt.IsZero() && m.now().After(e.expiresAt)
}

func (m *Memory) removeEntry(e *entry) {
	m.evictList.Remove(e.element)
	delete(m.entries, e.key)
}
