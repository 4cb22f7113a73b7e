package restful

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wesleyorama2/restful/internal/merge"
	"github.com/wesleyorama2/restful/transport"
)

// Config is the global transport configuration shared by every endpoint
// of a Client.
type Config struct {
	// BaseURL is prefixed verbatim to every endpoint URL.
	BaseURL string            `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Params  Params            `json:"params,omitempty" yaml:"params,omitempty"`

	// Timeout bounds each request. Zero falls back to the transport's
	// default (30s for transport.New).
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// ValidateStatus decides which status codes count as success.
	// Nil means 2xx only.
	ValidateStatus func(code int) bool `json:"-" yaml:"-"`
}

func (c Config) clone() Config {
	c.Headers = merge.Strings(c.Headers)
	c.Params = merge.Clone(c.Params)
	return c
}

// DefaultConfig is the configuration every Client starts from.
func DefaultConfig() Config {
	return Config{
		Headers: map[string]string{"Accept": "application/json"},
	}
}

// Options are behavioral flags shared by every endpoint of a Client.
type Options struct {
	// CleanResponse drops transport metadata, leaving only data and status.
	CleanResponse bool `json:"cleanResponse" yaml:"cleanResponse"`
}

// DefaultOptions returns the options a Client uses unless overridden.
func DefaultOptions() Options {
	return Options{CleanResponse: true}
}

// Option is a function that configures a Client
type Option func(*Client)

// WithOptions replaces the behavioral options.
func WithOptions(opts Options) Option {
	return func(c *Client) {
		*c.options = opts
	}
}

// WithCleanResponse sets whether responses are reduced to data and status.
func WithCleanResponse(clean bool) Option {
	return func(c *Client) {
		c.options.CleanResponse = clean
	}
}

// WithTransport sets the HTTP client collaborator.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithLogger sets the logger used for registration and dispatch events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// Client holds the global configuration and the model registry.
type Client struct {
	config    Config
	options   *Options
	transport transport.Transport
	logger    zerolog.Logger

	mu  sync.RWMutex
	api map[string]map[string]*Route
}

// New creates a Client whose configuration is DefaultConfig deep-merged
// with cfg.
func New(cfg Config, options ...Option) *Client {
	merged := DefaultConfig()
	// both sides are Config, so the merge cannot fail on types
	_ = merge.Into(&merged, cfg.clone())

	opts := DefaultOptions()
	c := &Client{
		config:  merged,
		options: &opts,
		logger:  zerolog.Nop(),
		api:     make(map[string]map[string]*Route),
	}

	for _, option := range options {
		option(c)
	}

	if c.transport == nil {
		c.transport = transport.New(transport.WithLogger(c.logger))
	}

	return c
}

// Config returns a copy of the merged global configuration.
func (c *Client) Config() Config {
	return c.config.clone()
}

// Options returns the behavioral options.
func (c *Client) Options() Options {
	return *c.options
}

// MapURL prefixes path with the configured base URL. No separator is
// inserted or removed.
func (c *Client) MapURL(path string) string {
	if c.config.BaseURL == "" {
		return path
	}
	return c.config.BaseURL + path
}

// AddModel registers every endpoint of model under model.Name. The model
// itself is not modified.
func (c *Client) AddModel(model *Model) error {
	if model == nil {
		return &ConfigurationError{Reason: "model object has not been provided"}
	}
	if model.Name == "" {
		return &ConfigurationError{Reason: "model name missing, a name is required to namespace the endpoints"}
	}

	routes := make(map[string]*Route, len(model.Endpoints))
	for name, ep := range model.Endpoints {
		resolved, err := c.resolve(ep)
		if err != nil {
			return &ConfigurationError{Model: model.Name, Reason: fmt.Sprintf("endpoint %q: %v", name, err)}
		}
		routes[name] = &Route{
			model:     model.Name,
			name:      name,
			endpoint:  resolved,
			options:   c.options,
			transport: c.transport,
			logger:    c.logger,
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.api[model.Name]; exists {
		return &ConfigurationError{Model: model.Name, Reason: "model already registered"}
	}
	c.api[model.Name] = routes

	c.logger.Debug().
		Str("model", model.Name).
		Int("endpoints", len(routes)).
		Msg("model registered")

	return nil
}

// resolve merges an endpoint over the global configuration and maps its URL.
func (c *Client) resolve(ep Endpoint) (Endpoint, error) {
	resolved := Endpoint{
		Headers:        merge.Strings(c.config.Headers),
		Params:         merge.Clone(c.config.Params),
		Timeout:        c.config.Timeout,
		ValidateStatus: c.config.ValidateStatus,
	}

	ep = ep.clone()
	ep.URL = c.MapURL(ep.URL)

	if err := merge.Into(&resolved, ep); err != nil {
		return Endpoint{}, err
	}
	return resolved, nil
}

// Route returns the registered route for model and endpoint.
func (c *Client) Route(model, endpoint string) (*Route, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	routes, ok := c.api[model]
	if !ok {
		return nil, fmt.Errorf("restful: %w: %s", ErrModelNotFound, model)
	}
	route, ok := routes[endpoint]
	if !ok {
		return nil, fmt.Errorf("restful: %w: %s.%s", ErrEndpointNotFound, model, endpoint)
	}
	return route, nil
}

// Request dispatches the named endpoint with params.
func (c *Client) Request(ctx context.Context, model, endpoint string, params Params) (*Response, error) {
	route, err := c.Route(model, endpoint)
	if err != nil {
		return nil, err
	}
	return route.Request(ctx, params)
}

// Models returns the registered model names in sorted order.
func (c *Client) Models() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.api))
	for name := range c.api {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Endpoints returns the endpoint names of model in sorted order, or nil
// when the model is not registered.
func (c *Client) Endpoints(model string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	routes, ok := c.api[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(routes))
	for name := range routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
