package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/fable/pkg/ports"
	"github.com/aretw0/fable/pkg/state"
)

// StateStoreContractTest is a reusable test suite that verifies an adapter
// complies with ports.StateStore.
func StateStoreContractTest(t *testing.T, store ports.StateStore) {
	t.Helper()
	ctx := context.Background()

	seed := func(t *testing.T, id string, values map[string]any) {
		t.Helper()
		st, err := state.New(nil, values)
		if err != nil {
			t.Fatalf("unexpected error building state: %v", err)
		}
		if err := store.Save(ctx, id, st); err != nil {
			t.Fatalf("unexpected error saving %s: %v", id, err)
		}
	}

	t.Run("Load_Success", func(t *testing.T) {
		seed(t, "contract-a", map[string]any{"value": "a"})

		loaded, err := store.Load(ctx, "contract-a", nil)
		if err != nil {
			t.Fatalf("unexpected error loading: %v", err)
		}
		got, err := loaded.Get("value")
		if err != nil {
			t.Fatalf("unexpected error reading value: %v", err)
		}
		if got != "a" {
			t.Errorf("value mismatch. got %q, want %q", got, "a")
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-session", nil)
		if !errors.Is(err, ports.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Save_Overwrites", func(t *testing.T) {
		seed(t, "contract-b", map[string]any{"value": "old"})
		seed(t, "contract-b", map[string]any{"value": "new"})

		loaded, err := store.Load(ctx, "contract-b", nil)
		if err != nil {
			t.Fatalf("unexpected error loading: %v", err)
		}
		got, _ := loaded.Get("value")
		if got != "new" {
			t.Errorf("expected overwritten value, got %q", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		seed(t, "contract-c", map[string]any{"value": "c"})
		if err := store.Delete(ctx, "contract-c"); err != nil {
			t.Fatalf("unexpected error deleting: %v", err)
		}
		if _, err := store.Load(ctx, "contract-c", nil); !errors.Is(err, ports.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		seed(t, "contract-d", map[string]any{"value": "d"})

		sessions, err := store.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing: %v", err)
		}
		lookup := make(map[string]bool, len(sessions))
		for _, id := range sessions {
			lookup[id] = true
		}
		if !lookup["contract-d"] {
			t.Error("session contract-d missing from list")
		}
	})
}
