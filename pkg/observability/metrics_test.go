package observability_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fable/pkg/observability"
	"github.com/aretw0/fable/pkg/state"
	"github.com/aretw0/fable/pkg/story"
)

func TestMetrics_RunOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	ok, err := story.MustDefine("ok", "s1").Bind(story.Collaborators{
		"s1": func(ctx context.Context, st *state.State) error { return nil },
	}, story.WithHooks(metrics.Hooks()))
	require.NoError(t, err)

	failing, err := story.MustDefine("failing", "s1").Bind(story.Collaborators{
		"s1": func(ctx context.Context, st *state.State) error { return errors.New("boom") },
	}, story.WithHooks(metrics.Hooks()))
	require.NoError(t, err)

	st, err := state.New(nil, nil)
	require.NoError(t, err)

	require.NoError(t, ok.Run(context.Background(), st))
	require.NoError(t, ok.Run(context.Background(), st))
	require.Error(t, failing.Run(context.Background(), st))

	expected := `
		# HELP fable_story_runs_total Total number of story runs by outcome
		# TYPE fable_story_runs_total counter
		fable_story_runs_total{outcome="completed",story="ok"} 2
		fable_story_runs_total{outcome="failed",story="failing"} 1
	`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected), "fable_story_runs_total")
	assert.NoError(t, err)
}

func TestMetrics_StepDurations(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	st, err := state.New(nil, nil)
	require.NoError(t, err)

	seq, err := story.MustDefine("seq", "s1", "s2").Bind(story.Collaborators{
		"s1": func(ctx context.Context, st *state.State) error { return nil },
		"s2": func(ctx context.Context, st *state.State) error { return nil },
	}, story.WithHooks(metrics.Hooks()))
	require.NoError(t, err)

	require.NoError(t, seq.Run(context.Background(), st))

	// One series per step label pair.
	count, err := testutil.GatherAndCount(reg, "fable_step_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
