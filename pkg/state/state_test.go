package state_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fable/pkg/schema"
	"github.com/aretw0/fable/pkg/state"
)

func paymentSchema(t *testing.T) *schema.Schema {
	t.Helper()
	sc, err := schema.New(
		schema.NewVariable("amount", schema.Int()),
		schema.NewVariable("currency", schema.String()),
	)
	require.NoError(t, err)
	return sc
}

func TestSet_ValidatedWrite(t *testing.T) {
	t.Run("Identity Validator Stores Value Unchanged", func(t *testing.T) {
		st, err := state.New(paymentSchema(t), nil)
		require.NoError(t, err)

		require.NoError(t, st.Set("currency", "EUR"))
		got, err := st.Get("currency")
		require.NoError(t, err)
		assert.Equal(t, "EUR", got)
	})

	t.Run("Normalizing Validator Stores Replacement", func(t *testing.T) {
		st, err := state.New(paymentSchema(t), nil)
		require.NoError(t, err)

		// JSON-ish input: a whole float64 is normalized to int64.
		require.NoError(t, st.Set("amount", float64(42)))
		got, err := st.Get("amount")
		require.NoError(t, err)
		assert.Equal(t, int64(42), got)
	})

	t.Run("Failure Leaves State Untouched", func(t *testing.T) {
		st, err := state.New(paymentSchema(t), map[string]any{"amount": 10})
		require.NoError(t, err)

		err = st.Set("amount", "not a number")
		require.Error(t, err)

		got, err := st.Get("amount")
		require.NoError(t, err)
		assert.Equal(t, int64(10), got, "prior value must survive a failed assignment")
	})

	t.Run("Failure On Never-Set Attribute Keeps It Absent", func(t *testing.T) {
		st, err := state.New(paymentSchema(t), nil)
		require.NoError(t, err)

		require.Error(t, st.Set("amount", "nope"))
		assert.False(t, st.Has("amount"))
	})

	t.Run("Undeclared Passthrough", func(t *testing.T) {
		st, err := state.New(paymentSchema(t), nil)
		require.NoError(t, err)

		payload := map[string]any{"anything": []int{1, 2}}
		require.NoError(t, st.Set("scratch", payload))
		got, err := st.Get("scratch")
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})
}

func TestNew_InitialValuesAreValidated(t *testing.T) {
	t.Run("Declared Initial Values Normalized", func(t *testing.T) {
		st, err := state.New(paymentSchema(t), map[string]any{
			"amount":   float64(7),
			"currency": "USD",
			"note":     "undeclared, kept raw",
		})
		require.NoError(t, err)

		amount, err := st.Get("amount")
		require.NoError(t, err)
		assert.Equal(t, int64(7), amount)

		note, err := st.Get("note")
		require.NoError(t, err)
		assert.Equal(t, "undeclared, kept raw", note)
	})

	t.Run("Invalid Initial Value Fails Construction", func(t *testing.T) {
		_, err := state.New(paymentSchema(t), map[string]any{"amount": "NaN"})
		require.Error(t, err)
	})

	t.Run("Validator Error Is Not Wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		sc, err := schema.New(schema.NewVariable("x", func(any) (any, error) { return nil, boom }))
		require.NoError(t, err)

		_, err = state.New(sc, map[string]any{"x": 1})
		assert.Equal(t, boom, err)
	})
}

func TestGet_Undefined(t *testing.T) {
	st, err := state.New(nil, nil)
	require.NoError(t, err)

	_, err = st.Get("ghost")
	var undef *state.UndefinedError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "ghost", undef.Name)

	_, ok := st.Lookup("ghost")
	assert.False(t, ok)
}

func TestSnapshot_Isolation(t *testing.T) {
	st, err := state.New(nil, map[string]any{"a": 1})
	require.NoError(t, err)

	snap := st.Snapshot()
	snap["a"] = 99
	snap["b"] = "injected"

	got, err := st.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.False(t, st.Has("b"))
}

func TestKeys(t *testing.T) {
	st, err := state.New(nil, map[string]any{"b": 1, "a": 2})
	require.NoError(t, err)
	require.NoError(t, st.Set("c", 3))

	assert.Equal(t, []string{"a", "b", "c"}, st.Keys())
}

func ExampleState_Set() {
	sc := schema.MustNew(schema.NewVariable("retries", schema.Int()))
	st, _ := state.New(sc, nil)

	_ = st.Set("retries", float64(3)) // normalized to int64
	v, _ := st.Get("retries")
	fmt.Printf("%T %v\n", v, v)
	// Output: int64 3
}
