// internal/store/memory.go
//
// In-memory session store for solver games.
// Sessions are never persisted: they are lost when the process restarts.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - The store-wide RWMutex guards only the map. Each session has its own
//     RWMutex, since a Game is not safe for concurrent use; ranking one
//     session never blocks another.
//   - Sessions idle for longer than the TTL are dropped by Sweep.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle-solver/internal/game"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the interface for game sessions.
type Store interface {
	// Save adds or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// View calls fn with the game under the session's read lock.
	View(ctx context.Context, id string, fn func(*game.Game) error) error

	// Update calls fn with the game under the session's write lock.
	Update(ctx context.Context, id string, fn func(*game.Game) error) error

	// Len is the number of live sessions.
	Len() int
}

type entry struct {
	mu   sync.RWMutex // guards g
	g    *game.Game
	seen time.Time // guarded by Memory.mu
}

// Memory is a map-based Store.
type Memory struct {
	mu    sync.RWMutex
	games map[string]*entry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore constructs an empty store. ttl <= 0 keeps sessions forever.
func NewMemoryStore(ttl time.Duration) *Memory {
	return &Memory{games: make(map[string]*entry), ttl: ttl, now: time.Now}
}

func (m *Memory) Save(_ context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = &entry{g: g, seen: m.now()}
	return nil
}

func (m *Memory) View(_ context.Context, id string, fn func(*game.Game) error) error {
	e, err := m.touch(id)
	if err != nil {
		return err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.g)
}

// Update holds only the session's lock while fn runs, so a slow move delays
// other requests for the same session and nothing else.
func (m *Memory) Update(_ context.Context, id string, fn func(*game.Game) error) error {
	e, err := m.touch(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.g)
}

// touch looks up a session and marks it as used now.
func (m *Memory) touch(id string) (*entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.seen = m.now()
	return e, nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Sweep drops sessions not used within the TTL and returns how many.
func (m *Memory) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-m.ttl)
	n := 0
	for id, e := range m.games {
		if e.seen.Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Memory) RunSweeper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}
