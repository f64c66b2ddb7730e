package story

import (
	"context"
	"time"

	"github.com/aretw0/fable/pkg/state"
)

// awaiter resolves a suspension point's outcome channel. Run passes nil,
// which turns any suspension point into a SuspensionError at the moment it
// is reached; Start passes a driver that waits on the channel.
type awaiter func(ctx context.Context, outcome <-chan error) error

// Run executes the story's steps in order against st, blocking until the
// story completes or a step fails. The first error halts execution,
// including any enclosing stories, and is returned exactly as the step or
// validator raised it; state mutations made before the failing step remain.
//
// Run requires every step to resolve immediately: reaching a suspension
// point is a SuspensionError, reported lazily at that step, not eagerly.
func (s *Story) Run(ctx context.Context, st *state.State) error {
	return s.execute(ctx, st, nil)
}

// Start executes the story on a new goroutine and returns an Invocation
// handle. Unlike Run, suspension points are legal: the loop parks on each
// outcome channel and resumes when it delivers. Cancelling ctx abandons an
// in-flight suspension point; the state keeps whatever was written up to
// the last completed step.
//
// The invocation owns st until Done is closed; sharing a state instance
// across concurrent invocations is unsupported.
func (s *Story) Start(ctx context.Context, st *state.State) *Invocation {
	inv := &Invocation{story: s.name, done: make(chan struct{})}
	go func() {
		defer close(inv.done)
		inv.err = s.execute(ctx, st, awaitOutcome)
	}()
	return inv
}

func awaitOutcome(ctx context.Context, outcome <-chan error) error {
	select {
	case err := <-outcome:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// execute is the single step loop shared by both entry points; they differ
// only in the awaiter that drives suspension points.
func (s *Story) execute(ctx context.Context, st *state.State, await awaiter) error {
	s.emitStoryStart(ctx)
	err := s.runSteps(ctx, st, await)
	s.emitStoryEnd(ctx, err)
	return err
}

func (s *Story) runSteps(ctx context.Context, st *state.State, await awaiter) error {
	for _, stp := range s.steps {
		s.logger.DebugContext(ctx, "step start", "story", s.name, "step", stp.name, "kind", stp.kind)
		started := time.Now()
		s.emitStepStart(ctx, stp.name)

		var err error
		switch stp.kind {
		case KindCall:
			err = stp.call(ctx, st)
		case KindAwait:
			if await == nil {
				err = &SuspensionError{Story: s.name, Step: stp.name}
			} else {
				err = await(ctx, stp.await(ctx, st))
			}
		case KindStory:
			// The sub-story runs as a contiguous block on the same state,
			// firing its own lifecycle events.
			err = stp.sub.execute(ctx, st, await)
		}

		s.emitStepEnd(ctx, stp.name, time.Since(started), err)
		if err != nil {
			s.logger.DebugContext(ctx, "step failed", "story", s.name, "step", stp.name, "err", err)
			return err
		}
	}
	return nil
}

// Invocation is the handle for a story started through Start.
type Invocation struct {
	story string
	done  chan struct{}
	err   error
}

// Story returns the name of the invoked story.
func (i *Invocation) Story() string { return i.story }

// Done returns a channel closed when the invocation completes or fails.
func (i *Invocation) Done() <-chan struct{} { return i.done }

// Err returns the invocation's outcome. It is nil until Done is closed.
func (i *Invocation) Err() error {
	select {
	case <-i.done:
		return i.err
	default:
		return nil
	}
}

// Wait blocks until the invocation finishes and returns its outcome.
func (i *Invocation) Wait() error {
	<-i.done
	return i.err
}
