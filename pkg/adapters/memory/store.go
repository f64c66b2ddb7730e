package memory

import (
	"context"
	"sync"

	"github.com/aretw0/fable/pkg/ports"
	"github.com/aretw0/fable/pkg/schema"
	"github.com/aretw0/fable/pkg/state"
)

// Store implements ports.StateStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]map[string]any
	mu   sync.RWMutex
}

var _ ports.StateStore = (*Store)(nil)

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]map[string]any),
	}
}

// Save persists a snapshot of the state in memory.
// Snapshot already copies, so the caller can keep mutating its instance.
func (s *Store) Save(ctx context.Context, sessionID string, st *state.State) error {
	snapshot := st.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = snapshot
	return nil
}

// Load rebuilds a state from the stored snapshot, re-validating every
// declared name through the schema's construction path.
func (s *Store) Load(ctx context.Context, sessionID string, sc *schema.Schema) (*state.State, error) {
	s.mu.RLock()
	snapshot, ok := s.data[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, ports.ErrSessionNotFound
	}

	// Copy on read so a failed construction can't leak store internals.
	values := make(map[string]any, len(snapshot))
	for k, v := range snapshot {
		values[k] = v
	}
	return state.New(sc, values)
}

// Delete removes the session snapshot.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns the stored session IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}
