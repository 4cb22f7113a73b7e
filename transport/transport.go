package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Transport performs one HTTP exchange.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Func adapts an ordinary function to the Transport interface.
type Func func(ctx context.Context, req *Request) (*Response, error)

// Do calls f(ctx, req).
func (f Func) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Request is the fully merged request configuration handed to a Transport.
type Request struct {
	Method  string            `json:"method" yaml:"method"`
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Params  map[string]any    `json:"params,omitempty" yaml:"params,omitempty"`
	Body    any               `json:"body,omitempty" yaml:"body,omitempty"`
	Timeout time.Duration     `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Timing holds the phases of a completed exchange.
type Timing struct {
	DNSLookup    time.Duration `json:"dnsLookup" yaml:"dnsLookup"`
	TCPConnect   time.Duration `json:"tcpConnect" yaml:"tcpConnect"`
	TLSHandshake time.Duration `json:"tlsHandshake" yaml:"tlsHandshake"`
	ServerTime   time.Duration `json:"serverTime" yaml:"serverTime"`
	Total        time.Duration `json:"total" yaml:"total"`
	ConnReused   bool          `json:"connReused" yaml:"connReused"`
}

// Response is the raw result of an exchange.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte
	Request    *Request
	Timing     Timing
}

// Decode returns the body as a JSON value when it parses as JSON, the raw
// text when it does not, and nil when the body is empty.
func (r *Response) Decode() any {
	if len(r.Body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return string(r.Body)
	}
	return v
}

// IsSuccess returns true if the response status code is in the 2xx range
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
