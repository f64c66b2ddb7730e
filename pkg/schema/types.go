package schema

import (
	"fmt"
	"reflect"
	"sort"
)

// --- Built-in Validators ---
//
// Built-ins normalize as well as check: Int collapses every integer kind
// (and whole JSON floats) to int64, Float collapses numerics to float64.
// This keeps values read back from a state container predictable regardless
// of where the raw value came from (code, YAML, JSON request bodies).

// String accepts string values.
func String() Validator {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", value)
		}
		return s, nil
	}
}

// Int accepts integer values, normalizing to int64.
func Int() Validator {
	return func(value any) (any, error) {
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int8:
			return int64(v), nil
		case int16:
			return int64(v), nil
		case int32:
			return int64(v), nil
		case int64:
			return v, nil
		case float64:
			// Accept floats that are whole numbers (from JSON unmarshaling)
			if v == float64(int64(v)) {
				return int64(v), nil
			}
			return nil, fmt.Errorf("expected int, got float (not a whole number)")
		default:
			return nil, fmt.Errorf("expected int, got %T", value)
		}
	}
}

// Float accepts numeric values, normalizing to float64.
func Float() Validator {
	return func(value any) (any, error) {
		switch v := value.(type) {
		case float32:
			return float64(v), nil
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int8:
			return float64(v), nil
		case int16:
			return float64(v), nil
		case int32:
			return float64(v), nil
		case int64:
			return float64(v), nil
		default:
			return nil, fmt.Errorf("expected float, got %T", value)
		}
	}
}

// Bool accepts boolean values.
func Bool() Validator {
	return func(value any) (any, error) {
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", value)
		}
		return b, nil
	}
}

// Slice accepts slices whose elements pass the given validator,
// normalizing to []any of the element validator's outputs.
func Slice(elem Validator) Validator {
	return func(value any) (any, error) {
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, fmt.Errorf("expected slice, got %T", value)
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			normalized, err := elem(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = normalized
		}
		return out, nil
	}
}

// ParseType converts a string type name to a Validator.
// Supports basic types: "string", "int", "float", "bool", "[string]", "[int]", etc.
func ParseType(typeStr string) (Validator, error) {
	// Handle slice types: [string], [int], etc.
	if len(typeStr) > 2 && typeStr[0] == '[' && typeStr[len(typeStr)-1] == ']' {
		elem, err := ParseType(typeStr[1 : len(typeStr)-1])
		if err != nil {
			return nil, err
		}
		return Slice(elem), nil
	}

	switch typeStr {
	case "string":
		return String(), nil
	case "int":
		return Int(), nil
	case "float":
		return Float(), nil
	case "bool":
		return Bool(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}

// ParseTypeMap converts a map of field names to type strings into a Schema.
// Example: {"invoice": "string", "retries": "int"}
// Fields are declared in sorted name order so the result is deterministic.
func ParseTypeMap(typeMap map[string]string) (*Schema, error) {
	names := make([]string, 0, len(typeMap))
	for name := range typeMap {
		names = append(names, name)
	}
	sort.Strings(names)

	vars := make([]Variable, 0, len(names))
	for _, name := range names {
		v, err := ParseType(typeMap[name])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		vars = append(vars, NewVariable(name, v))
	}
	return New(vars...)
}
