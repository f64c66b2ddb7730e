// Package story implements the step-sequencing executor.
//
// A Definition fixes a named, ordered list of step identifiers. Binding a
// Definition to its collaborators produces a Story: each identifier resolves,
// once, to a plain call, a suspension point, or a nested sub-story. A Story
// executes its steps strictly in declaration order against one shared
// state.State, stopping at the first failure.
//
// Two entry points run the same step loop. Run blocks and requires every
// step to resolve immediately; Start drives the loop in a goroutine and
// waits on suspension points, returning an Invocation handle. For a story
// without suspension points the two are interchangeable.
package story
