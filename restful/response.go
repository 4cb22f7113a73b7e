package restful

import (
	"net/http"

	"github.com/wesleyorama2/restful/status"
	"github.com/wesleyorama2/restful/transport"
)

// Response is a normalized endpoint response. With CleanResponse enabled
// only Data and Status are populated.
type Response struct {
	Data       any                `json:"data" yaml:"data"`
	Status     status.Descriptor  `json:"status" yaml:"status"`
	StatusText string             `json:"statusText,omitempty" yaml:"statusText,omitempty"`
	Headers    http.Header        `json:"headers,omitempty" yaml:"headers,omitempty"`
	Request    *transport.Request `json:"request,omitempty" yaml:"request,omitempty"`
	Timing     *transport.Timing  `json:"timing,omitempty" yaml:"timing,omitempty"`
}

// Clean reports whether the response carries no transport metadata.
func (r *Response) Clean() bool {
	return r.StatusText == "" && r.Headers == nil && r.Request == nil && r.Timing == nil
}

// Wrapped is the status part produced by ResponseWrapper.
type Wrapped struct {
	Status status.Descriptor `json:"status" yaml:"status"`
}

// ResponseWrapper builds the status descriptor for a raw response. A nil
// response is described as code 0.
func ResponseWrapper(raw *transport.Response) Wrapped {
	if raw == nil {
		return Wrapped{Status: status.Describe(0)}
	}
	return Wrapped{Status: status.Describe(raw.StatusCode)}
}
