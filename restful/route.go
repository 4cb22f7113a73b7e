package restful

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wesleyorama2/restful/internal/merge"
	"github.com/wesleyorama2/restful/transport"
)

var errNoResponse = errors.New("transport returned no response")

// Route is a registered endpoint bound to its resolved configuration, the
// client's options and the client's transport.
type Route struct {
	model     string
	name      string
	endpoint  Endpoint
	options   *Options
	transport transport.Transport
	logger    zerolog.Logger
}

// Model returns the name of the model the route belongs to.
func (r *Route) Model() string {
	return r.model
}

// Name returns the endpoint name.
func (r *Route) Name() string {
	return r.name
}

// Endpoint returns a copy of the resolved endpoint configuration.
func (r *Route) Endpoint() Endpoint {
	return r.endpoint.clone()
}

// Method returns the HTTP method the route is sent with.
func (r *Route) Method() string {
	if r.endpoint.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(r.endpoint.Method)
}

// URL returns the resolved URL.
func (r *Route) URL() string {
	return r.endpoint.URL
}

// Execute is an alias for Request.
func (r *Route) Execute(ctx context.Context, params Params) (*Response, error) {
	return r.Request(ctx, params)
}

// Request sends the endpoint with params deep-merged over its configured
// params and returns the normalized response.
func (r *Route) Request(ctx context.Context, params Params) (*Response, error) {
	query, err := merge.Params(r.endpoint.Params, params)
	if err != nil {
		return nil, err
	}

	req := &transport.Request{
		Method:  r.Method(),
		URL:     r.endpoint.URL,
		Headers: merge.Strings(r.endpoint.Headers),
		Params:  query,
		Body:    merge.Value(r.endpoint.Body),
		Timeout: r.endpoint.Timeout,
	}

	log := r.logger.With().
		Str("model", r.model).
		Str("endpoint", r.name).
		Str("method", req.Method).
		Str("url", req.URL).
		Logger()

	start := time.Now()
	raw, err := r.transport.Do(ctx, req)
	if err == nil && raw == nil {
		err = errNoResponse
	}
	if err != nil {
		log.Warn().Err(err).Msg("request failed")
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}

	validate := r.endpoint.ValidateStatus
	if validate == nil {
		validate = transport.DefaultValidateStatus
	}
	if !validate(raw.StatusCode) {
		log.Warn().Int("status", raw.StatusCode).Msg("status rejected")
		return nil, &TransportError{
			Method: req.Method,
			URL:    req.URL,
			Err:    &transport.StatusError{Code: raw.StatusCode, Status: raw.Status, Body: raw.Body},
		}
	}

	resp := &Response{
		Data:       raw.Decode(),
		StatusText: raw.Status,
		Headers:    raw.Headers,
		Request:    raw.Request,
		Timing:     &raw.Timing,
	}
	resp.Status = ResponseWrapper(raw).Status

	if r.options.CleanResponse {
		resp = &Response{Data: resp.Data, Status: resp.Status}
	}

	if r.endpoint.Transform != nil {
		resp.Data = r.endpoint.Transform(resp.Data)
	}

	log.Debug().
		Int("status", resp.Status.Code).
		Dur("elapsed", time.Since(start)).
		Msg("request complete")

	return resp, nil
}
