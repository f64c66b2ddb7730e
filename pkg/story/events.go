package story

import (
	"context"
	"time"
)

// StoryEvent marks the start or end of a story execution.
type StoryEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Story     string    `json:"story"`
	Err       error     `json:"-"` // Set on OnStoryEnd when the run failed
}

// StepEvent marks the start or end of a single step.
type StepEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Story     string        `json:"story"`
	Step      string        `json:"step"`
	Duration  time.Duration `json:"duration"` // Set on OnStepEnd
	Err       error         `json:"-"`        // Set on OnStepEnd when the step failed
}

// LifecycleHooks defines callbacks for story observability.
// Nested stories fire their own events; nil callbacks are skipped.
type LifecycleHooks struct {
	OnStoryStart func(context.Context, *StoryEvent)
	OnStoryEnd   func(context.Context, *StoryEvent)
	OnStepStart  func(context.Context, *StepEvent)
	OnStepEnd    func(context.Context, *StepEvent)
}

func (s *Story) emitStoryStart(ctx context.Context) {
	if s.hooks.OnStoryStart == nil {
		return
	}
	s.hooks.OnStoryStart(ctx, &StoryEvent{Timestamp: time.Now(), Story: s.name})
}

func (s *Story) emitStoryEnd(ctx context.Context, err error) {
	if s.hooks.OnStoryEnd == nil {
		return
	}
	s.hooks.OnStoryEnd(ctx, &StoryEvent{Timestamp: time.Now(), Story: s.name, Err: err})
}

func (s *Story) emitStepStart(ctx context.Context, step string) {
	if s.hooks.OnStepStart == nil {
		return
	}
	s.hooks.OnStepStart(ctx, &StepEvent{Timestamp: time.Now(), Story: s.name, Step: step})
}

func (s *Story) emitStepEnd(ctx context.Context, step string, d time.Duration, err error) {
	if s.hooks.OnStepEnd == nil {
		return
	}
	s.hooks.OnStepEnd(ctx, &StepEvent{
		Timestamp: time.Now(),
		Story:     s.name,
		Step:      step,
		Duration:  d,
		Err:       err,
	})
}
