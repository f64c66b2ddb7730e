package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/fable/pkg/story"
)

// Metrics holds the Prometheus collectors for story execution.
type Metrics struct {
	runs         *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors on reg.
// Pass prometheus.DefaultRegisterer for the process-global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fable_story_runs_total",
				Help: "Total number of story runs by outcome",
			},
			[]string{"story", "outcome"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "fable_step_duration_seconds",
				Help: "Duration of story step executions",
			},
			[]string{"story", "step"},
		),
	}
	reg.MustRegister(m.runs, m.stepDuration)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
// Pass the result to story.WithHooks when binding.
func (m *Metrics) Hooks() story.LifecycleHooks {
	return story.LifecycleHooks{
		OnStoryEnd: func(_ context.Context, e *story.StoryEvent) {
			outcome := "completed"
			if e.Err != nil {
				outcome = "failed"
			}
			m.runs.WithLabelValues(e.Story, outcome).Inc()
		},
		OnStepEnd: func(_ context.Context, e *story.StepEvent) {
			m.stepDuration.WithLabelValues(e.Story, e.Step).Observe(e.Duration.Seconds())
		},
	}
}
