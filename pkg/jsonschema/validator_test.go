package jsonschema

import (
	"strings"
	"testing"
)

const userSchema = `{
	"type": "object",
	"properties": {
		"name": { "type": "string" },
		"age": { "type": "integer", "minimum": 0 }
	},
	"required": ["name"]
}`

func TestSchema_Validate(t *testing.T) {
	schema, err := Compile("user", []byte(userSchema))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	tests := []struct {
		name        string
		data        any
		expectValid bool
		contains    string
	}{
		{
			name:        "Valid object",
			data:        map[string]any{"name": "John Doe", "age": float64(30)},
			expectValid: true,
		},
		{
			name:        "Go int values are accepted",
			data:        map[string]any{"name": "John Doe", "age": 30},
			expectValid: true,
		},
		{
			name:     "Missing required property",
			data:     map[string]any{"age": 30},
			contains: "name",
		},
		{
			name:     "Wrong type",
			data:     map[string]any{"name": 42},
			contains: "/name",
		},
		{
			name:     "Below minimum",
			data:     map[string]any{"name": "x", "age": -1},
			contains: "/age",
		},
		{
			name:     "Not an object",
			data:     []any{"a"},
			contains: "validation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := schema.Validate(tt.data)
			if tt.expectValid {
				if errs != nil {
					t.Errorf("Expected valid, got %v", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatalf("Expected validation errors, got none")
			}
			if !strings.Contains(errs.Error(), tt.contains) {
				t.Errorf("Expected errors to mention %q, got %q", tt.contains, errs.Error())
			}
		})
	}
}

func TestCompile_InvalidSchema(t *testing.T) {
	if _, err := Compile("broken", []byte(`{"type": `)); err == nil {
		t.Errorf("Expected error for malformed schema")
	}
	if _, err := Compile("bad-type", []byte(`{"type": "banana"}`)); err == nil {
		t.Errorf("Expected error for unknown type")
	}
}

func TestCompileValue(t *testing.T) {
	schema, err := CompileValue("list", map[string]any{
		"type":     "array",
		"minItems": 1,
	})
	if err != nil {
		t.Fatalf("CompileValue() error = %v", err)
	}
	if schema.Name() != "list" {
		t.Errorf("Name() = %q, want list", schema.Name())
	}
	if errs := schema.Validate([]any{1}); errs != nil {
		t.Errorf("Expected valid, got %v", errs)
	}
	if errs := schema.Validate([]any{}); errs == nil {
		t.Errorf("Expected minItems violation")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	var none ValidationErrors
	if none.Error() != "" {
		t.Errorf("Expected empty string, got %q", none.Error())
	}
}
