package story

import (
	"context"

	"github.com/aretw0/fable/pkg/state"
)

// StepFunc is a plain collaborator: invoked synchronously, it reads and
// mutates the shared state and returns the step's outcome.
type StepFunc func(ctx context.Context, st *state.State) error

// AwaitFunc is a suspending collaborator: it kicks off work and returns a
// channel that delivers the step's outcome when the work completes. Only the
// Start entry point may drive it.
type AwaitFunc func(ctx context.Context, st *state.State) <-chan error

// StepKind identifies how a bound step executes.
type StepKind string

const (
	KindCall  StepKind = "call"  // Plain synchronous call
	KindAwait StepKind = "await" // Suspension point
	KindStory StepKind = "story" // Nested sub-story
)

// step is the tagged variant a collaborator resolves to at bind time.
// Exactly one of call, await, sub is set, according to kind.
type step struct {
	name  string
	kind  StepKind
	call  StepFunc
	await AwaitFunc
	sub   *Story
}

// resolveStep classifies a bound collaborator. The kind is decided once,
// here, not re-discovered per invocation.
func resolveStep(storyName, slot string, collaborator any) (step, error) {
	switch c := collaborator.(type) {
	case StepFunc:
		return step{name: slot, kind: KindCall, call: c}, nil
	case func(ctx context.Context, st *state.State) error:
		return step{name: slot, kind: KindCall, call: c}, nil
	case AwaitFunc:
		return step{name: slot, kind: KindAwait, await: c}, nil
	case func(ctx context.Context, st *state.State) <-chan error:
		return step{name: slot, kind: KindAwait, await: c}, nil
	case *Story:
		if c == nil {
			return step{}, &CollaboratorError{Story: storyName, Slot: slot, Value: c}
		}
		return step{name: slot, kind: KindStory, sub: c}, nil
	default:
		return step{}, &CollaboratorError{Story: storyName, Slot: slot, Value: collaborator}
	}
}

// StepInfo describes one bound step for introspection (CLI, HTTP adapter).
// Steps is populated for nested stories only.
type StepInfo struct {
	Name  string     `json:"name"`
	Kind  StepKind   `json:"kind"`
	Steps []StepInfo `json:"steps,omitempty"`
}
