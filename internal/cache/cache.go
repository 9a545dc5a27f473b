// Package cache provides the TTL response cache used by the listing
// endpoints.
package cache

import (
	"sync"
	"time"
)

// Store is the cache surface handlers depend on. Backed by Memory in
// production; tests may substitute their own.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
	Clear() int
	Len() int
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process TTL store. Expired entries are dropped on
// read and by Sweep.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry), now: time.Now}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	item, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.now().After(item.expiresAt) {
		m.Delete(key)
		return nil, false
	}
	return item.value, true
}

func (m *Memory) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.mu.Lock()
	m.entries[key] = entry{value: value, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
}

func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Clear drops every entry and reports how many were removed.
func (m *Memory) Clear() int {
	m.mu.Lock()
	removed := len(m.entries)
	m.entries = make(map[string]entry)
	m.mu.Unlock()
	return removed
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Sweep removes expired entries. Called periodically from the server's
// maintenance loop.
func (m *Memory) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, item := range m.entries {
		if now.After(item.expiresAt) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}
