// Package metrics tracks process-wide request counters for the debug
// endpoint. Counters are monotonically increasing and reset only on
// process restart.
package metrics

import (
	"sync"
	"sync/atomic"
)

// Counters records request counts keyed by "METHOD /route".
type Counters struct {
	mu     sync.RWMutex
	counts map[string]*atomic.Int64
}

// NewCounters creates an empty counter set.
func NewCounters() *Counters {
	return &Counters{
		counts: make(map[string]*atomic.Int64),
	}
}

// Inc increments the counter for the given method and route.
func (c *Counters) Inc(method, route string) {
	key := method + " " + route

	c.mu.RLock()
	counter, ok := c.counts[key]
	c.mu.RUnlock()

	if !ok {
		c.mu.Lock()
		// Re-check under the write lock; another goroutine may have
		// created the counter in the meantime.
		counter, ok = c.counts[key]
		if !ok {
			counter = &atomic.Int64{}
			c.counts[key] = counter
		}
		c.mu.Unlock()
	}

	counter.Add(1)
}

// Snapshot returns a copy of all current counts.
func (c *Counters) Snapshot() map[string]int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]int64, len(c.counts))
	for key, counter := range c.counts {
		out[key] = counter.Load()
	}
	return out
}
