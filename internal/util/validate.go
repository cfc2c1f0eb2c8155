package util

import (
	"fmt"
	"sort"
)

// ValidationError represents an argument validation failure with the field
// that caused it.
type ValidationError struct {
	Field   string `json:"field"`   // Argument that failed validation
	Message string `json:"message"` // Human-readable error message
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for argument %q: %s", e.Field, e.Message)
}

// ValidateArguments checks args against a declared argument schema (argument
// name -> description). Matching is strict two-way: every schema key must be
// present in args, and args may not contain keys outside the schema. Values
// are not type-checked; the schema declares names only.
//
// Keys are inspected in sorted order so the reported field is deterministic
// when multiple arguments are invalid.
func ValidateArguments(args map[string]any, schema map[string]string) error {
	for _, name := range sortedKeys(schema) {
		if _, ok := args[name]; !ok {
			return &ValidationError{Field: name, Message: "required argument is missing"}
		}
	}
	for _, name := range sortedArgKeys(args) {
		if _, ok := schema[name]; !ok {
			return &ValidationError{Field: name, Message: "argument is not declared in the schema"}
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedArgKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
