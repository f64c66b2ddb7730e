package story

import "fmt"

// DefinitionError reports an invalid story declaration.
type DefinitionError struct {
	Story  string // Empty if the name itself is the problem
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Story == "" {
		return fmt.Sprintf("story: %s", e.Reason)
	}
	return fmt.Sprintf("story %q: %s", e.Story, e.Reason)
}

// MissingCollaboratorError reports a declared step identifier with no
// collaborator supplied at bind time.
type MissingCollaboratorError struct {
	Story string
	Slot  string
}

func (e *MissingCollaboratorError) Error() string {
	return fmt.Sprintf("story %q: no collaborator bound for step %q", e.Story, e.Slot)
}

// CollaboratorError reports a collaborator whose type is not a StepFunc,
// AwaitFunc, or *Story.
type CollaboratorError struct {
	Story string
	Slot  string
	Value any
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("story %q: collaborator %q has unsupported type %T", e.Story, e.Slot, e.Value)
}

// SuspensionError reports a suspension point reached through the blocking
// entry point. It is raised at the step where the suspension is attempted.
type SuspensionError struct {
	Story string
	Step  string
}

func (e *SuspensionError) Error() string {
	return fmt.Sprintf("story %q: step %q is a suspension point; use Start instead of Run", e.Story, e.Step)
}
