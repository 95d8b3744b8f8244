// internal/store/memory.go
//
// In-memory implementation of the Store interface for solver sessions.
//
// Characteristics:
//   - Stores *solver.Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Update runs its callback under the write lock, which is how handlers
//     mutate a session without racing each other.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordle-assist/internal/solver"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for solver sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *solver.Session) error

	// Get retrieves a session by ID. Callers must not mutate the result;
	// use Update for that.
	Get(ctx context.Context, id string) (*solver.Session, error)

	// Update runs fn with exclusive access to the session.
	Update(ctx context.Context, id string, fn func(*solver.Session) error) error

	// Delete removes a session. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*solver.Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*solver.Session)}
}

func (m *memory) Save(ctx context.Context, s *solver.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*solver.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Update(ctx context.Context, id string, fn func(*solver.Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	return fn(s)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
