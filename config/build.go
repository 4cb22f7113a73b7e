package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wesleyorama2/restful/pkg/jsonpath"
	"github.com/wesleyorama2/restful/pkg/jsonschema"
	"github.com/wesleyorama2/restful/restful"
	"github.com/wesleyorama2/restful/transport"
)

// NewClient builds a restful.Client from the collection for the named
// environment (empty for none) and registers every model. Options are
// applied after the collection's own settings.
func (c *Collection) NewClient(env string, options ...restful.Option) (*restful.Client, error) {
	cfg, opts, err := c.ClientConfig(env)
	if err != nil {
		return nil, err
	}

	client := restful.New(cfg, append([]restful.Option{restful.WithOptions(opts)}, options...)...)

	vars := c.variables(env)
	for _, name := range c.ModelNames() {
		model, err := c.model(name, vars)
		if err != nil {
			return nil, err
		}
		if err := client.AddModel(model); err != nil {
			return nil, err
		}
	}

	return client, nil
}

// ClientConfig resolves the global configuration for the named environment.
func (c *Collection) ClientConfig(env string) (restful.Config, restful.Options, error) {
	settings := c.Client
	headers := make(map[string]string, len(settings.Headers))
	for k, v := range settings.Headers {
		headers[k] = v
	}

	if env != "" {
		e, ok := c.Environments[env]
		if !ok {
			return restful.Config{}, restful.Options{}, fmt.Errorf("environment not found: %s", env)
		}
		if e.BaseURL != "" {
			settings.BaseURL = e.BaseURL
		}
		for k, v := range e.Headers {
			headers[k] = v
		}
	}

	vars := c.variables(env)
	cfg := restful.Config{
		BaseURL: Substitute(settings.BaseURL, vars),
		Headers: substituteStrings(headers, vars),
		Params:  substituteParams(settings.Params, vars),
		Timeout: settings.Timeout.Duration,
	}
	if settings.AcceptAnyStatus {
		cfg.ValidateStatus = transport.AcceptAnyStatus
	}

	opts := restful.DefaultOptions()
	if settings.CleanResponse != nil {
		opts.CleanResponse = *settings.CleanResponse
	}

	return cfg, opts, nil
}

// ModelNames returns the model names in sorted order.
func (c *Collection) ModelNames() []string {
	names := make([]string, 0, len(c.Models))
	for name := range c.Models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema compiles the schema attached to an endpoint. It returns nil when
// the endpoint has none.
func (c *Collection) Schema(model, endpoint string) (*jsonschema.Schema, error) {
	ep, ok := c.Models[model].Endpoints[endpoint]
	if !ok {
		return nil, fmt.Errorf("endpoint not found: %s.%s", model, endpoint)
	}
	if ep.Schema == "" {
		return nil, nil
	}
	doc, ok := c.Schemas[ep.Schema]
	if !ok {
		return nil, fmt.Errorf("unknown schema: %s", ep.Schema)
	}
	return jsonschema.CompileValue(ep.Schema, doc)
}

// CheckSchema validates data against the endpoint's schema. Endpoints
// without a schema always pass.
func (c *Collection) CheckSchema(model, endpoint string, data any) error {
	schema, err := c.Schema(model, endpoint)
	if err != nil {
		return err
	}
	if schema == nil {
		return nil
	}
	if errs := schema.Validate(data); errs != nil {
		return fmt.Errorf("schema %s: %w", schema.Name(), errs)
	}
	return nil
}

func (c *Collection) model(name string, vars map[string]string) (*restful.Model, error) {
	spec := c.Models[name]
	model := &restful.Model{
		Name:      name,
		Endpoints: make(map[string]restful.Endpoint, len(spec.Endpoints)),
	}

	for epName, ep := range spec.Endpoints {
		endpoint := restful.Endpoint{
			Method:  strings.ToUpper(ep.Method),
			URL:     Substitute(ep.URL, vars),
			Headers: substituteStrings(ep.Headers, vars),
			Params:  substituteParams(ep.Params, vars),
			Body:    substituteValue(ep.Body, vars),
			Timeout: ep.Timeout.Duration,
		}
		if ep.Transform != "" {
			if err := jsonpath.Check(ep.Transform); err != nil {
				return nil, fmt.Errorf("models.%s.endpoints.%s.transform: %w", name, epName, err)
			}
			endpoint.Transform = jsonpath.Transform(ep.Transform)
		}
		model.Endpoints[epName] = endpoint
	}

	return model, nil
}

func (c *Collection) variables(env string) map[string]string {
	if env == "" {
		return nil
	}
	return c.Environments[env].Variables
}

// Substitute replaces {{name}} placeholders with values from vars.
func Substitute(input string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(input, "{{") {
		return input
	}
	result := input
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

func substituteStrings(m map[string]string, vars map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = Substitute(v, vars)
	}
	return out
}

func substituteParams(m map[string]any, vars map[string]string) restful.Params {
	if m == nil {
		return nil
	}
	out := make(restful.Params, len(m))
	for k, v := range m {
		out[k] = substituteValue(v, vars)
	}
	return out
}

func substituteValue(v any, vars map[string]string) any {
	switch t := v.(type) {
	case string:
		return Substitute(t, vars)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = substituteValue(e, vars)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = substituteValue(e, vars)
		}
		return out
	default:
		return v
	}
}
