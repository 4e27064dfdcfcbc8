package cache

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// memoryEntry carries the serialized payload and its absolute deadline.
// An entry is never returned once now > expireAt, even before the sweep
// physically removes it.
type memoryEntry struct {
	payload  []byte
	expireAt time.Time
}

// memoryTier is the in-process fallback map. Guarded by a single RWMutex:
// entries are feed snapshots and mirrored articles, not a hot path worth
// sharding. The periodic sweep is the only writer that removes entries
// outside explicit overwrite or delete.
type memoryTier struct {
	mu      sync.RWMutex
	clock   clock.Clock
	entries map[string]memoryEntry
}

func newMemoryTier(clk clock.Clock) *memoryTier {
	return &memoryTier{
		clock:   clk,
		entries: make(map[string]memoryEntry),
	}
}

func (m *memoryTier) get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, found := m.entries[key]
	if !found || m.clock.Now().After(entry.expireAt) {
		return nil, false
	}
	return entry.payload, true
}

func (m *memoryTier) set(key string, payload []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		payload:  payload,
		expireAt: m.clock.Now().Add(ttl),
	}
}

func (m *memoryTier) remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

func (m *memoryTier) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memoryEntry)
}

func (m *memoryTier) len() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.entries))
}

func (m *memoryTier) contains(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, found := m.entries[key]
	return found
}

// sweep evicts entries whose deadline has passed and reports how many.
func (m *memoryTier) sweep() (evicted int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	for key, entry := range m.entries {
		if now.After(entry.expireAt) {
			delete(m.entries, key)
			evicted++
		}
	}
	return evicted
}
