package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fable/internal/loader"
	"github.com/aretw0/fable/pkg/state"
	"github.com/aretw0/fable/pkg/story"
)

const checkoutYAML = `
name: checkout
contract:
  amount: int
  invoice: string
steps:
  - reserve
  - name: billing
    steps:
      - charge
      - receipt
  - notify
`

func TestParse(t *testing.T) {
	t.Run("Full Blueprint", func(t *testing.T) {
		bp, err := loader.Parse([]byte(checkoutYAML))
		require.NoError(t, err)

		assert.Equal(t, "checkout", bp.Name)
		require.NotNil(t, bp.Contract)
		assert.Equal(t, []string{"amount", "invoice"}, bp.Contract.Names())

		require.Len(t, bp.Steps, 3)
		assert.Equal(t, "reserve", bp.Steps[0].Name)
		assert.Empty(t, bp.Steps[0].Steps)
		assert.Equal(t, "billing", bp.Steps[1].Name)
		require.Len(t, bp.Steps[1].Steps, 2)
		assert.Equal(t, "charge", bp.Steps[1].Steps[0].Name)
	})

	t.Run("No Contract", func(t *testing.T) {
		bp, err := loader.Parse([]byte("name: simple\nsteps: [one]"))
		require.NoError(t, err)
		assert.Nil(t, bp.Contract)
	})

	t.Run("Missing Name", func(t *testing.T) {
		_, err := loader.Parse([]byte("steps: [one]"))
		assert.ErrorContains(t, err, "missing a story name")
	})

	t.Run("Unknown Contract Type", func(t *testing.T) {
		_, err := loader.Parse([]byte("name: s\ncontract:\n  x: complex\nsteps: [one]"))
		assert.ErrorContains(t, err, "contract")
	})

	t.Run("Empty Step Identifier", func(t *testing.T) {
		_, err := loader.Parse([]byte(`name: s` + "\n" + `steps: [""]`))
		assert.ErrorContains(t, err, "identifier is empty")
	})

	t.Run("Nested Story Without Name", func(t *testing.T) {
		_, err := loader.Parse([]byte("name: s\nsteps:\n  - steps: [one]"))
		assert.ErrorContains(t, err, "missing a name")
	})

	t.Run("Nested Story Without Steps", func(t *testing.T) {
		_, err := loader.Parse([]byte("name: s\nsteps:\n  - name: sub"))
		assert.ErrorContains(t, err, "has no steps")
	})

	t.Run("Wrong Step Type", func(t *testing.T) {
		_, err := loader.Parse([]byte("name: s\nsteps: [42]"))
		assert.ErrorContains(t, err, "must be a string or a nested story")
	})

	t.Run("Invalid YAML", func(t *testing.T) {
		_, err := loader.Parse([]byte("name: [unclosed"))
		assert.ErrorContains(t, err, "invalid blueprint yaml")
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(checkoutYAML), 0o644))

	bp, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "checkout", bp.Name)

	_, err = loader.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read blueprint")
}

func TestBind(t *testing.T) {
	record := func(name string, trail *[]string) story.StepFunc {
		return func(ctx context.Context, st *state.State) error {
			*trail = append(*trail, name)
			return nil
		}
	}

	t.Run("Nested Stories Assembled Bottom-Up", func(t *testing.T) {
		bp, err := loader.Parse([]byte(checkoutYAML))
		require.NoError(t, err)

		var trail []string
		assembled, err := bp.Bind(story.Collaborators{
			"reserve": record("reserve", &trail),
			"charge":  record("charge", &trail),
			"receipt": record("receipt", &trail),
			"notify":  record("notify", &trail),
		})
		require.NoError(t, err)

		st, err := state.New(bp.Contract, map[string]any{"amount": 10})
		require.NoError(t, err)
		require.NoError(t, assembled.Run(context.Background(), st))

		assert.Equal(t, []string{"reserve", "charge", "receipt", "notify"}, trail)

		outline := assembled.Outline()
		require.Len(t, outline, 3)
		assert.Equal(t, story.KindStory, outline[1].Kind)
	})

	t.Run("Missing Collaborator", func(t *testing.T) {
		bp, err := loader.Parse([]byte(checkoutYAML))
		require.NoError(t, err)

		var trail []string
		_, err = bp.Bind(story.Collaborators{
			"reserve": record("reserve", &trail),
			"notify":  record("notify", &trail),
		})
		var missing *story.MissingCollaboratorError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "billing", missing.Story)
	})
}
