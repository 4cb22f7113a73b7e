// Package jsonschema checks decoded response data against JSON Schema
// documents.
package jsonschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationErrors represents a collection of validation errors
type ValidationErrors []error

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	parts := make([]string, len(ve))
	for i, err := range ve {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}

// Schema is a compiled JSON Schema.
type Schema struct {
	name   string
	schema *jsonschema.Schema
}

// Compile compiles a schema document given as JSON text.
func Compile(name string, doc []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()

	resource := "schema.json"
	if err := compiler.AddResource(resource, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("invalid schema %q: %w", name, err)
	}

	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %q: %w", name, err)
	}

	return &Schema{name: name, schema: compiled}, nil
}

// CompileValue compiles a schema held as a decoded value, e.g. a map read
// from a YAML collection file.
func CompileValue(name string, doc any) (*Schema, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %q: %w", name, err)
	}
	return Compile(name, b)
}

// Name returns the name the schema was compiled under.
func (s *Schema) Name() string {
	return s.name
}

// Validate checks data against the schema and returns every violation,
// or nil when data is valid.
func (s *Schema) Validate(data any) ValidationErrors {
	normalized, err := normalize(data)
	if err != nil {
		return ValidationErrors{err}
	}

	err = s.schema.Validate(normalized)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return collect(validationErr)
	}
	return ValidationErrors{err}
}

// normalize round-trips data through encoding/json so Go numeric types
// and structs reach the validator in their JSON form.
func normalize(data any) (any, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}

// collect flattens a validation error tree, keeping only the leaves that
// carry a message.
func collect(err *jsonschema.ValidationError) ValidationErrors {
	var out ValidationErrors
	if len(err.Causes) == 0 && err.Message != "" {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		out = append(out, fmt.Errorf("validation error at %s: %s", location, err.Message))
	}
	for _, cause := range err.Causes {
		out = append(out, collect(cause)...)
	}
	return out
}
