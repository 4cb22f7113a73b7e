package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Collection is the top-level structure of a collection file.
type Collection struct {
	// Client holds the global configuration shared by every model
	Client ClientSettings `json:"client" yaml:"client"`

	// Environments override the base URL and headers and supply variables
	Environments map[string]Environment `json:"environments,omitempty" yaml:"environments,omitempty"`

	// Models maps a model name to its endpoints
	Models map[string]ModelSpec `json:"models" yaml:"models"`

	// Schemas are JSON Schema documents referenced by endpoints
	Schemas map[string]any `json:"schemas,omitempty" yaml:"schemas,omitempty"`

	path string
}

// ClientSettings mirrors restful.Config and restful.Options.
type ClientSettings struct {
	BaseURL string            `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Params  map[string]any    `json:"params,omitempty" yaml:"params,omitempty"`
	Timeout Duration          `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// CleanResponse defaults to true when omitted
	CleanResponse *bool `json:"cleanResponse,omitempty" yaml:"cleanResponse,omitempty"`

	// AcceptAnyStatus treats every status code as a successful response
	AcceptAnyStatus bool `json:"acceptAnyStatus,omitempty" yaml:"acceptAnyStatus,omitempty"`
}

// Environment represents an environment configuration with base URL and headers.
type Environment struct {
	BaseURL   string            `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	Headers   map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Variables map[string]string `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// ModelSpec is a model as written in a collection file.
type ModelSpec struct {
	Endpoints map[string]EndpointSpec `json:"endpoints" yaml:"endpoints"`
}

// EndpointSpec is an endpoint as written in a collection file.
type EndpointSpec struct {
	Method  string            `json:"method,omitempty" yaml:"method,omitempty"`
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Params  map[string]any    `json:"params,omitempty" yaml:"params,omitempty"`
	Body    any               `json:"body,omitempty" yaml:"body,omitempty"`
	Timeout Duration          `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// Transform is a JSONPath selecting the part of the response kept as data
	Transform string `json:"transform,omitempty" yaml:"transform,omitempty"`

	// Schema names an entry of Collection.Schemas the data must satisfy
	Schema string `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Load reads and parses a collection file.
func Load(path string) (*Collection, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("collection file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading collection file: %w", err)
	}

	return Parse(data, path)
}

// Parse parses collection data. The format follows the extension of path:
// .json is decoded as JSON, anything else as YAML.
func Parse(data []byte, path string) (*Collection, error) {
	var col Collection

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &col); err != nil {
			return nil, fmt.Errorf("failed to parse JSON collection: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &col); err != nil {
			return nil, fmt.Errorf("failed to parse YAML collection: %w", err)
		}
	}

	col.path = path
	return &col, nil
}

// Path returns the file the collection was loaded from.
func (c *Collection) Path() string {
	return c.path
}

// Dir returns the directory containing the collection file.
func (c *Collection) Dir() string {
	return filepath.Dir(c.path)
}
