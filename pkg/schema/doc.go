// Package schema defines validated state contracts for stories.
//
// A Schema is an immutable, ordered set of Variables. Each Variable binds a
// field name to a Validator, a pure function that accepts, normalizes, or
// rejects a raw value. Two independently defined schemas can be merged with
// Union to build a contract that satisfies the combined requirements of
// multiple stories.
package schema
