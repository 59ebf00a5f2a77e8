// Package requestlog captures recent request/response data for
// inspection through the debug endpoint. It is distinct from operational
// logging (which uses log/slog): entries here are served back to test
// harnesses, not written to stderr.
package requestlog

import (
	"sync"
	"time"
)

// Entry captures the details of a single handled request.
type Entry struct {
	Timestamp  time.Time `json:"timestamp"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Status     int       `json:"status"`
	RemoteAddr string    `json:"remote_addr"`
	DurationMs int64     `json:"duration_ms"`
}

// MemoryStore keeps a bounded in-memory window of recent entries.
// When the capacity is exceeded the oldest entries are discarded.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
	max     int
}

// DefaultCapacity is the entry window used when no capacity is given.
const DefaultCapacity = 1000

// NewMemoryStore creates a store holding at most max entries.
func NewMemoryStore(max int) *MemoryStore {
	if max <= 0 {
		max = DefaultCapacity
	}
	return &MemoryStore{max: max}
}

// Log records an entry, evicting the oldest if the store is full.
func (s *MemoryStore) Log(e *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, e)
	if len(s.entries) > s.max {
		s.entries = s.entries[len(s.entries)-s.max:]
	}
}

// Recent returns up to n of the most recent entries, oldest first.
func (s *MemoryStore) Recent(n int) []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]*Entry, n)
	copy(out, s.entries[len(s.entries)-n:])
	return out
}

// Count returns the number of entries currently held.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear removes all entries.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}
