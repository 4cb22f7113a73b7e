package restful

import (
	"time"

	"github.com/wesleyorama2/restful/internal/merge"
)

// Params are call parameters sent as the query string of a request.
type Params map[string]any

// TransformFunc reshapes the decoded response data of an endpoint.
type TransformFunc func(data any) any

// Model is a named group of endpoints.
type Model struct {
	Name      string              `json:"name" yaml:"name"`
	Endpoints map[string]Endpoint `json:"endpoints" yaml:"endpoints"`
}

// Endpoint describes one REST operation. Zero fields fall back to the
// client's global configuration.
type Endpoint struct {
	Method  string            `json:"method,omitempty" yaml:"method,omitempty"`
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Params  Params            `json:"params,omitempty" yaml:"params,omitempty"`
	Body    any               `json:"body,omitempty" yaml:"body,omitempty"`
	Timeout time.Duration     `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// ValidateStatus decides which status codes count as success.
	// Nil inherits the client setting, which defaults to 2xx only.
	ValidateStatus func(code int) bool `json:"-" yaml:"-"`

	// Transform, when set, replaces the response data with its result.
	Transform TransformFunc `json:"-" yaml:"-"`
}

func (e Endpoint) clone() Endpoint {
	e.Headers = merge.Strings(e.Headers)
	e.Params = merge.Clone(e.Params)
	e.Body = merge.Value(e.Body)
	return e
}
