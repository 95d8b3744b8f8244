// internal/feedback/cache.go
//
// Memo table for Compute, keyed by the exact (guess, secret) pair.
//
// Characteristics:
//   - Entries are never evicted: the code for a fixed pair never changes.
//   - Swapped arguments are a different key (feedback is not symmetric).
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Hit/miss counters are kept per cache so callers can inspect behaviour.
//   - A Memo reads through to the cache but keeps new codes to itself until
//     Merge, so parallel scorers never write to the shared table.
//   - A snapshot can be written to and read back from disk with encoding/gob.

package feedback

import (
	"encoding/gob"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

type pair struct {
	Guess, Secret string
}

// Cache memoizes Compute results. The zero value is not usable; call NewCache.
type Cache struct {
	mu      sync.RWMutex
	entries map[pair]Code

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats is a point-in-time view of a cache.
type Stats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// Source yields the feedback code for a (guess, secret) pair.
type Source interface {
	Feedback(guess, secret string) Code
}

// NewCache constructs an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[pair]Code)}
}

// Feedback returns Compute(guess, secret), consulting the cache first.
func (c *Cache) Feedback(guess, secret string) Code {
	key := pair{guess, secret}

	c.mu.RLock()
	code, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		cacheHits.Inc()
		return code
	}

	c.misses.Add(1)
	cacheMisses.Inc()
	code = Compute(guess, secret)

	c.mu.Lock()
	c.entries[key] = code
	c.mu.Unlock()
	return code
}

// Lookup returns the memoized code for the pair, if any. It neither
// computes nor counts.
func (c *Cache) Lookup(guess, secret string) (Code, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	code, ok := c.entries[pair{guess, secret}]
	return code, ok
}

// Memo is a single-goroutine overlay on a Cache. The zero value is not
// usable; call Cache.Memo.
type Memo struct {
	cache  *Cache
	local  map[pair]Code
	hits   uint64
	misses uint64
}

// Memo starts an overlay that reads c but never writes to it.
func (c *Cache) Memo() *Memo {
	return &Memo{cache: c, local: make(map[pair]Code)}
}

// Feedback returns Compute(guess, secret) from the overlay, the underlying
// cache, or a fresh computation kept in the overlay.
func (m *Memo) Feedback(guess, secret string) Code {
	key := pair{guess, secret}
	if code, ok := m.local[key]; ok {
		m.hits++
		return code
	}
	if code, ok := m.cache.Lookup(guess, secret); ok {
		m.hits++
		return code
	}
	m.misses++
	code := Compute(guess, secret)
	m.local[key] = code
	return code
}

// Merge folds the codes and lookup counts of every memo into c under a
// single write lock.
func (c *Cache) Merge(memos ...*Memo) {
	var hits, misses uint64
	c.mu.Lock()
	for _, m := range memos {
		if m == nil {
			continue
		}
		for k, v := range m.local {
			c.entries[k] = v
		}
		hits += m.hits
		misses += m.misses
	}
	c.mu.Unlock()

	c.hits.Add(hits)
	c.misses.Add(misses)
	cacheHits.Add(float64(hits))
	cacheMisses.Add(float64(misses))
}

// Len returns the number of memoized pairs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns entry count and lookup counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

// Save writes every entry to w as a gob stream.
func (c *Cache) Save(w io.Writer) error {
	c.mu.RLock()
	snapshot := make(map[pair]Code, len(c.entries))
	for k, v := range c.entries {
		snapshot[k] = v
	}
	c.mu.RUnlock()

	if err := gob.NewEncoder(w).Encode(snapshot); err != nil {
		return fmt.Errorf("encode feedback cache: %w", err)
	}
	return nil
}

// Load merges a gob stream written by Save into the cache. Entries are
// trusted as-is and are not recomputed.
func (c *Cache) Load(r io.Reader) error {
	var snapshot map[pair]Code
	if err := gob.NewDecoder(r).Decode(&snapshot); err != nil {
		return fmt.Errorf("decode feedback cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range snapshot {
		c.entries[k] = v
	}
	return nil
}
