// internal/store/memory.go
//
// In-memory session store for the solver API.
//
// Characteristics:
//   - Stores *Session values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Each Session carries its own mutex; solvers are not safe for concurrent use.
//   - Last-use times are atomic, so Get and Sweep never block on a running search.
//   - Sessions idle longer than a TTL are removed by Sweep.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Session is one solver in use by an API client.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex // serialises solver access
	solver   *solver.Solver
	lastUsed atomic.Int64 // unix nanos, read without mu
}

// NewSession wraps s in a session with the given ID.
func NewSession(id string, s *solver.Solver) *Session {
	now := time.Now()
	sess := &Session{ID: id, CreatedAt: now, solver: s}
	sess.lastUsed.Store(now.UnixNano())
	return sess
}

// Do runs fn with exclusive access to the session's solver.
func (s *Session) Do(fn func(*solver.Solver) error) error {
	s.lastUsed.Store(time.Now().UnixNano())
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.solver)
}

// idleSince returns the last time the session was used.
func (s *Session) idleSince() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}

// Store defines the persistence interface for solver sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Sweep removes sessions idle for longer than ttl and returns how many were removed.
	Sweep(ctx context.Context, ttl time.Duration) (int, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions map
	sessions map[string]*Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// Delete removes the session if present.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Sweep drops sessions whose last use is older than ttl.
func (m *memory) Sweep(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := time.Now().Add(-ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}
