package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// sweepEvery bounds how many writes may pass between sweeps of expired
// entries. Expired items are already invisible to reads; the sweep only
// reclaims their memory, which matters for long-running redis-less
// deployments serving varied query parameters.
const sweepEvery = 256

// MemoryStore is an in-process Store used in tests and in deployments that
// run without Redis. It is not suitable behind a horizontally scaled
// deployment: entries and invalidations stay local to the process.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[string]memoryItem
	writes int

	// now is swappable so TTL behavior can be tested without sleeping.
	now func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()

	if !ok || s.now().After(item.expiresAt) {
		return nil, ErrNotFound
	}

	value := make([]byte, len(item.value))
	copy(value, item.value)
	return value, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	s.items[key] = memoryItem{
		value:     stored,
		expiresAt: s.now().Add(ttl),
	}
	s.writes++
	if s.writes >= sweepEvery {
		s.writes = 0
		s.sweepLocked()
	}
	s.mu.Unlock()
	return nil
}

// sweepLocked drops every expired entry. Callers must hold the write lock.
func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for key, item := range s.items {
		if now.After(item.expiresAt) {
			delete(s.items, key)
		}
	}
}

func (s *MemoryStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.items, key)
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Scan(ctx context.Context, prefix string) ([]string, error) {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key, item := range s.items {
		if strings.HasPrefix(key, prefix) && now.Before(item.expiresAt) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Len returns the number of live entries.
func (s *MemoryStore) Len() int {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, item := range s.items {
		if now.Before(item.expiresAt) {
			n++
		}
	}
	return n
}
