package ports

import (
	"context"
	"errors"

	"github.com/aretw0/fable/pkg/schema"
	"github.com/aretw0/fable/pkg/state"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// StateStore persists state snapshots between story invocations.
//
// Stores hold values, not schemas: Load rebuilds the state through the
// validating construction path of the supplied schema, so a snapshot that no
// longer satisfies the contract fails with the validator's own error.
type StateStore interface {
	// Save persists the state snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, st *state.State) error

	// Load retrieves the snapshot for a session ID and rebinds it to sc.
	// Returns ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string, sc *schema.Schema) (*state.State, error)

	// Delete removes the snapshot for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the session IDs with a stored snapshot.
	List(ctx context.Context) ([]string, error)
}
