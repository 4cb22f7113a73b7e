package restful

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/restful/transport"
)

func TestNew_Defaults(t *testing.T) {
	c := New(Config{})

	assert.Equal(t, map[string]string{"Accept": "application/json"}, c.Config().Headers)
	assert.True(t, c.Options().CleanResponse)
	assert.Empty(t, c.Models())
}

func TestNew_MergesConfig(t *testing.T) {
	c := New(Config{
		BaseURL: "https://api.example.com",
		Headers: map[string]string{"Authorization": "Bearer t"},
	}, WithCleanResponse(false))

	cfg := c.Config()
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, map[string]string{
		"Accept":        "application/json",
		"Authorization": "Bearer t",
	}, cfg.Headers)
	assert.False(t, c.Options().CleanResponse)
}

func TestNew_CallerOverridesDefaultHeader(t *testing.T) {
	c := New(Config{Headers: map[string]string{"Accept": "text/plain"}})
	assert.Equal(t, "text/plain", c.Config().Headers["Accept"])
}

func TestNew_WithOptions(t *testing.T) {
	c := New(Config{}, WithOptions(Options{CleanResponse: false}))
	assert.False(t, c.Options().CleanResponse)
}

func TestClient_MapURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		path     string
		expected string
	}{
		{name: "No base URL", path: "/users", expected: "/users"},
		{name: "Base URL", baseURL: "https://api.example.com", path: "/users", expected: "https://api.example.com/users"},
		{name: "No separator inserted", baseURL: "https://api.example.com", path: "users", expected: "https://api.example.comusers"},
		{name: "No separator removed", baseURL: "https://api.example.com/", path: "/users", expected: "https://api.example.com//users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Config{BaseURL: tt.baseURL})
			if got := c.MapURL(tt.path); got != tt.expected {
				t.Errorf("MapURL(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestClient_AddModel_Invalid(t *testing.T) {
	c := New(Config{})

	err := c.AddModel(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidModel))
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))

	err = c.AddModel(&Model{Endpoints: map[string]Endpoint{"list": {URL: "/users"}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidModel))
	assert.Contains(t, err.Error(), "model name missing")
	assert.Empty(t, c.Models())
}

func TestClient_AddModel_Duplicate(t *testing.T) {
	c := New(Config{})
	require.NoError(t, c.AddModel(&Model{Name: "users", Endpoints: map[string]Endpoint{"list": {URL: "/users"}}}))

	err := c.AddModel(&Model{Name: "users", Endpoints: map[string]Endpoint{"get": {URL: "/users/1"}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidModel))
	assert.Equal(t, []string{"list"}, c.Endpoints("users"))
}

func TestClient_AddModel_ResolvesEndpoints(t *testing.T) {
	c := New(Config{
		BaseURL: "https://api.example.com",
		Headers: map[string]string{"X-Client": "restful"},
		Params:  Params{"locale": "en"},
	})

	err := c.AddModel(&Model{
		Name: "users",
		Endpoints: map[string]Endpoint{
			"list":   {Method: "GET", URL: "/users", Params: Params{"limit": 10}},
			"create": {Method: "POST", URL: "/users", Headers: map[string]string{"X-Client": "admin"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"users"}, c.Models())
	assert.Equal(t, []string{"create", "list"}, c.Endpoints("users"))

	list, err := c.Route("users", "list")
	require.NoError(t, err)
	create, err := c.Route("users", "create")
	require.NoError(t, err)

	listEp := list.Endpoint()
	createEp := create.Endpoint()

	assert.Equal(t, "GET", listEp.Method)
	assert.Equal(t, "POST", createEp.Method)
	assert.Equal(t, "https://api.example.com/users", listEp.URL)
	assert.Equal(t, "https://api.example.com/users", createEp.URL)

	assert.Equal(t, "application/json", listEp.Headers["Accept"])
	assert.Equal(t, "application/json", createEp.Headers["Accept"])
	assert.Equal(t, "restful", listEp.Headers["X-Client"])
	assert.Equal(t, "admin", createEp.Headers["X-Client"])

	assert.Equal(t, Params{"locale": "en", "limit": 10}, listEp.Params)
	assert.Equal(t, Params{"locale": "en"}, createEp.Params)

	assert.Equal(t, "users", list.Model())
	assert.Equal(t, "list", list.Name())
	assert.Equal(t, "POST", create.Method())
}

func TestClient_AddModel_DoesNotMutateCaller(t *testing.T) {
	c := New(Config{BaseURL: "https://api.example.com"})
	model := &Model{
		Name:      "users",
		Endpoints: map[string]Endpoint{"list": {URL: "/users", Headers: map[string]string{"X-A": "1"}}},
	}

	require.NoError(t, c.AddModel(model))

	assert.Equal(t, "/users", model.Endpoints["list"].URL)
	assert.Equal(t, map[string]string{"X-A": "1"}, model.Endpoints["list"].Headers)
}

func TestClient_AddModel_NoEndpoints(t *testing.T) {
	c := New(Config{})
	require.NoError(t, c.AddModel(&Model{Name: "empty"}))

	assert.Equal(t, []string{"empty"}, c.Models())
	_, err := c.Route("empty", "list")
	assert.True(t, errors.Is(err, ErrEndpointNotFound))
}

func TestClient_Route_NotFound(t *testing.T) {
	c := New(Config{})

	_, err := c.Route("ghost", "list")
	assert.True(t, errors.Is(err, ErrModelNotFound))

	_, err = c.Request(context.Background(), "ghost", "list", nil)
	assert.True(t, errors.Is(err, ErrModelNotFound))
	assert.Nil(t, c.Endpoints("ghost"))
}

func TestClient_RouteIsImmutable(t *testing.T) {
	c := New(Config{}, WithTransport(transport.Func(func(context.Context, *transport.Request) (*transport.Response, error) {
		return &transport.Response{StatusCode: 200}, nil
	})))
	require.NoError(t, c.AddModel(&Model{Name: "m", Endpoints: map[string]Endpoint{"e": {URL: "/e", Params: Params{"a": 1}}}}))

	route, err := c.Route("m", "e")
	require.NoError(t, err)

	ep := route.Endpoint()
	ep.Params["a"] = 2
	ep.Headers["Accept"] = "text/html"

	again := route.Endpoint()
	assert.Equal(t, 1, again.Params["a"])
	assert.Equal(t, "application/json", again.Headers["Accept"])
}
