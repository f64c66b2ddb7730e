package story

import (
	"io"
	"log/slog"
)

// Definition fixes a story's name and its ordered list of step identifiers.
// It carries no behavior: the same Definition can be bound many times with
// different collaborators (production vs. test doubles).
type Definition struct {
	name  string
	steps []string
}

// Define declares a story as an ordered list of step identifiers.
func Define(name string, steps ...string) (*Definition, error) {
	if name == "" {
		return nil, &DefinitionError{Reason: "story name is empty"}
	}
	for _, s := range steps {
		if s == "" {
			return nil, &DefinitionError{Story: name, Reason: "step identifier is empty"}
		}
	}
	d := &Definition{name: name, steps: make([]string, len(steps))}
	copy(d.steps, steps)
	return d, nil
}

// MustDefine is like Define but panics on error.
// Intended for package-level story declarations.
func MustDefine(name string, steps ...string) *Definition {
	d, err := Define(name, steps...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the story name.
func (d *Definition) Name() string { return d.name }

// Steps returns the declared step identifiers in order.
func (d *Definition) Steps() []string {
	out := make([]string, len(d.steps))
	copy(out, d.steps)
	return out
}

// Collaborators maps step identifiers to their implementations. A value must
// be a StepFunc, an AwaitFunc (or a bare func of either signature), or a
// nested *Story. Entries that match no step identifier are ignored.
type Collaborators map[string]any

// Option configures a bound Story.
type Option func(*Story)

// WithLogger sets a structured logger for step-level debug logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Story) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHooks registers lifecycle hooks fired around the story and each step.
func WithHooks(hooks LifecycleHooks) Option {
	return func(s *Story) {
		s.hooks = hooks
	}
}

// Bind resolves every declared step identifier against the supplied
// collaborators, producing an executable Story. A step identifier with no
// collaborator is a MissingCollaboratorError; a collaborator of an
// unsupported type is a CollaboratorError. Both are reported here, before
// any step runs. The resulting Story is immutable.
func (d *Definition) Bind(collaborators Collaborators, opts ...Option) (*Story, error) {
	s := &Story{
		name:   d.name,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.steps = make([]step, 0, len(d.steps))
	for _, slot := range d.steps {
		collaborator, ok := collaborators[slot]
		if !ok {
			return nil, &MissingCollaboratorError{Story: d.name, Slot: slot}
		}
		stp, err := resolveStep(d.name, slot, collaborator)
		if err != nil {
			return nil, err
		}
		s.steps = append(s.steps, stp)
	}
	return s, nil
}

// Story is a bound, executable step sequence. Its step list and
// collaborators are fixed at construction.
type Story struct {
	name   string
	steps  []step
	hooks  LifecycleHooks
	logger *slog.Logger
}

// Name returns the story name.
func (s *Story) Name() string { return s.name }

// Outline describes the bound steps, recursing into nested stories.
func (s *Story) Outline() []StepInfo {
	out := make([]StepInfo, len(s.steps))
	for i, stp := range s.steps {
		info := StepInfo{Name: stp.name, Kind: stp.kind}
		if stp.kind == KindStory {
			info.Steps = stp.sub.Outline()
		}
		out[i] = info
	}
	return out
}
