package state

import (
	"fmt"
	"sort"

	"github.com/aretw0/fable/pkg/schema"
)

// State is the shared container a story's steps read and mutate.
// Not safe for concurrent mutation; each invocation owns its instance.
type State struct {
	schema *schema.Schema
	values map[string]any
}

// New creates a State bound to the given schema and assigns each initial
// value through the validating Set path. Declared names are therefore
// validated at construction time, with the same error a later assignment
// would produce. Keys are assigned in sorted order so a multi-key failure
// is deterministic.
func New(sc *schema.Schema, initial map[string]any) (*State, error) {
	st := &State{
		schema: sc,
		values: make(map[string]any, len(initial)),
	}

	keys := make([]string, 0, len(initial))
	for k := range initial {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := st.Set(k, initial[k]); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Set assigns a value to name. If name is declared in the schema, the value
// is passed through its validator first and the normalized result is stored;
// a validator failure is returned unchanged and the state is left untouched.
// Undeclared names are stored as-is.
func (s *State) Set(name string, raw any) error {
	if v, ok := s.schema.Lookup(name); ok {
		validated, err := v.Validate(raw)
		if err != nil {
			return err
		}
		s.values[name] = validated
		return nil
	}
	s.values[name] = raw
	return nil
}

// Get returns the last value stored under name.
// Reading a name that was never assigned is an UndefinedError.
func (s *State) Get(name string) (any, error) {
	value, ok := s.values[name]
	if !ok {
		return nil, &UndefinedError{Name: name}
	}
	return value, nil
}

// Lookup returns the value stored under name and whether it was ever set.
func (s *State) Lookup(name string) (any, bool) {
	value, ok := s.values[name]
	return value, ok
}

// Has reports whether name has been assigned.
func (s *State) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Keys returns the assigned names in sorted order.
func (s *State) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Schema returns the schema this state is bound to.
func (s *State) Schema() *schema.Schema {
	return s.schema
}

// Snapshot returns a copy of the current values so callers (stores, HTTP
// adapters) can't mutate the container by reference.
func (s *State) Snapshot() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// UndefinedError reports a read of a name that was never assigned and not
// supplied at construction.
type UndefinedError struct {
	Name string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("state: attribute %q is not defined", e.Name)
}
