package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fable/pkg/adapters/memory"
	"github.com/aretw0/fable/pkg/ports"
	porttests "github.com/aretw0/fable/pkg/ports/tests"
	"github.com/aretw0/fable/pkg/schema"
	"github.com/aretw0/fable/pkg/state"
)

func TestStore_Contract(t *testing.T) {
	porttests.StateStoreContractTest(t, memory.NewStore())
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	sc := schema.MustNew(schema.NewVariable("count", schema.Int()))
	st, err := state.New(sc, map[string]any{"count": 1, "label": "raw"})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "sess-1", st))

	loaded, err := store.Load(ctx, "sess-1", sc)
	require.NoError(t, err)

	count, err := loaded.Get("count")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	label, err := loaded.Get("label")
	require.NoError(t, err)
	assert.Equal(t, "raw", label)
}

func TestStore_LoadRevalidates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	// Saved without a contract; loaded against one that rejects the value.
	st, err := state.New(nil, map[string]any{"count": "many"})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "sess-1", st))

	strict := schema.MustNew(schema.NewVariable("count", schema.Int()))
	_, err = store.Load(ctx, "sess-1", strict)
	assert.Error(t, err)
}

func TestStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	st, err := state.New(nil, map[string]any{"a": 1})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "sess-1", st))

	// Mutating the saved instance afterwards must not affect the store.
	require.NoError(t, st.Set("a", 99))

	loaded, err := store.Load(ctx, "sess-1", nil)
	require.NoError(t, err)
	a, err := loaded.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, a)
}

func TestStore_NotFoundAndDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	_, err := store.Load(ctx, "missing", nil)
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	st, err := state.New(nil, map[string]any{"a": 1})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "sess-1", st))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err = store.Load(ctx, "sess-1", nil)
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	st, err := state.New(nil, nil)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "a", st))
	require.NoError(t, store.Save(ctx, "b", st))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, sessions)
}
