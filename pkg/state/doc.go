// Package state provides the mutable, schema-bound container shared by the
// steps of a story execution.
//
// Writes to names declared in the bound schema are intercepted and validated;
// the stored value is always the validator's output, never a raw input.
// Writes to undeclared names pass through unchecked. The container performs
// no locking: it is owned by a single story invocation at a time.
package state
