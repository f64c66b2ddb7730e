package schema

// Validator accepts a raw value and returns it unchanged or replaced by a
// normalized form. A returned error is surfaced to the caller exactly as
// produced; the engine never wraps it.
type Validator func(value any) (any, error)

// Variable binds a field name to a Validator.
type Variable struct {
	name     string
	validate Validator
}

// NewVariable declares a variable for use in a Schema.
func NewVariable(name string, validate Validator) Variable {
	return Variable{name: name, validate: validate}
}

// Name returns the declared field name.
func (v Variable) Name() string { return v.name }

// Validate runs the bound validator against a raw value.
func (v Variable) Validate(raw any) (any, error) {
	return v.validate(raw)
}

// Schema is an immutable, ordered mapping of names to Variables.
// The zero value (or nil) declares nothing; every name passes through.
type Schema struct {
	names []string
	vars  map[string]Variable
}

// New builds a Schema from the given variables, preserving declaration order.
func New(vars ...Variable) (*Schema, error) {
	s := &Schema{
		names: make([]string, 0, len(vars)),
		vars:  make(map[string]Variable, len(vars)),
	}
	for _, v := range vars {
		if v.name == "" {
			return nil, &DeclarationError{Reason: "variable name is empty"}
		}
		if v.validate == nil {
			return nil, &DeclarationError{Name: v.name, Reason: "validator is nil"}
		}
		if _, exists := s.vars[v.name]; exists {
			return nil, &DeclarationError{Name: v.name, Reason: "declared twice"}
		}
		s.names = append(s.names, v.name)
		s.vars[v.name] = v
	}
	return s, nil
}

// MustNew is like New but panics on a declaration error.
// Intended for package-level schema declarations.
func MustNew(vars ...Variable) *Schema {
	s, err := New(vars...)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the Variable declared under name, if any.
func (s *Schema) Lookup(name string) (Variable, bool) {
	if s == nil {
		return Variable{}, false
	}
	v, ok := s.vars[name]
	return v, ok
}

// Names returns the declared names in declaration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of declared variables.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Union merges two schemas into a new one whose declared set is the union of
// both, ordered left operand first. Neither operand is mutated. A name
// declared by both operands is a CollisionError: silently preferring one
// validator over the other would hide a contract conflict.
func Union(a, b *Schema) (*Schema, error) {
	merged := &Schema{
		names: make([]string, 0, a.Len()+b.Len()),
		vars:  make(map[string]Variable, a.Len()+b.Len()),
	}
	for _, s := range []*Schema{a, b} {
		if s == nil {
			continue
		}
		for _, name := range s.names {
			if _, exists := merged.vars[name]; exists {
				return nil, &CollisionError{Name: name}
			}
			merged.names = append(merged.names, name)
			merged.vars[name] = s.vars[name]
		}
	}
	return merged, nil
}
