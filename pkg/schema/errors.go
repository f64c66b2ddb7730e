package schema

import "fmt"

// DeclarationError reports an invalid variable declaration in New.
type DeclarationError struct {
	Name   string // Field name, if known
	Reason string
}

func (e *DeclarationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("schema: %s", e.Reason)
	}
	return fmt.Sprintf("schema: variable %q: %s", e.Name, e.Reason)
}

// CollisionError reports a name declared by both operands of a Union.
type CollisionError struct {
	Name string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("schema union: variable %q is declared by both operands", e.Name)
}
