package restful

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/restful/transport"
)

// newUserServer serves a tiny users API used across the dispatch tests.
func newUserServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Echo-Query", r.URL.RawQuery)
		w.Header().Set("X-Echo-Accept", r.Header.Get("Accept"))

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/users":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"items":[{"id":1,"name":"Ada"},{"id":2,"name":"Linus"}],"total":2}`))
		case r.Method == http.MethodPost && r.URL.Path == "/users":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":3}`))
		case r.URL.Path == "/text":
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("pong"))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
		}
	}))
}

func newUserClient(t *testing.T, baseURL string, options ...Option) *Client {
	t.Helper()
	c := New(Config{BaseURL: baseURL, Timeout: 5 * time.Second}, options...)
	err := c.AddModel(&Model{
		Name: "users",
		Endpoints: map[string]Endpoint{
			"list":    {Method: "GET", URL: "/users", Params: Params{"limit": 10}},
			"create":  {Method: "POST", URL: "/users", Body: map[string]any{"name": "Grace"}},
			"missing": {URL: "/missing"},
			"text":    {URL: "/text"},
			"names": {URL: "/users", Transform: func(data any) any {
				items := data.(map[string]any)["items"].([]any)
				names := make([]any, 0, len(items))
				for _, item := range items {
					names = append(names, item.(map[string]any)["name"])
				}
				return names
			}},
		},
	})
	require.NoError(t, err)
	return c
}

func TestRoute_Request_CleanResponse(t *testing.T) {
	server := newUserServer(t)
	defer server.Close()

	c := newUserClient(t, server.URL)
	resp, err := c.Request(context.Background(), "users", "list", nil)
	require.NoError(t, err)

	assert.True(t, resp.Clean())
	assert.Equal(t, 200, resp.Status.Code)
	assert.Equal(t, "OK", resp.Status.Definition)
	assert.True(t, resp.Status.IsOK)

	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(2), data["total"])

	encoded, err := json.Marshal(resp)
	require.NoError(t, err)
	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &keys))
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, "data")
	assert.Contains(t, keys, "status")
}

func TestRoute_Request_RawResponse(t *testing.T) {
	server := newUserServer(t)
	defer server.Close()

	c := newUserClient(t, server.URL, WithCleanResponse(false))
	resp, err := c.Request(context.Background(), "users", "list", Params{"page": 2})
	require.NoError(t, err)

	assert.False(t, resp.Clean())
	assert.Equal(t, "limit=10&page=2", resp.Headers.Get("X-Echo-Query"))
	assert.Equal(t, "application/json", resp.Headers.Get("X-Echo-Accept"))
	assert.Equal(t, "200 OK", resp.StatusText)
	require.NotNil(t, resp.Request)
	assert.Equal(t, server.URL+"/users", resp.Request.URL)
	require.NotNil(t, resp.Timing)

	encoded, err := json.Marshal(resp)
	require.NoError(t, err)
	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &keys))
	assert.Greater(t, len(keys), 2)
	assert.Contains(t, keys, "headers")
	assert.Contains(t, keys, "request")
}

func TestRoute_Request_ParamsOverride(t *testing.T) {
	server := newUserServer(t)
	defer server.Close()

	c := newUserClient(t, server.URL, WithCleanResponse(false))
	route, err := c.Route("users", "list")
	require.NoError(t, err)

	resp, err := route.Request(context.Background(), Params{"limit": 50})
	require.NoError(t, err)
	assert.Equal(t, "limit=50", resp.Headers.Get("X-Echo-Query"))

	// the route keeps its configured params for the next call
	resp, err = route.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "limit=10", resp.Headers.Get("X-Echo-Query"))
}

func TestRoute_Request_Created(t *testing.T) {
	server := newUserServer(t)
	defer server.Close()

	c := newUserClient(t, server.URL)
	resp, err := c.Request(context.Background(), "users", "create", nil)
	require.NoError(t, err)

	assert.True(t, resp.Status.IsCreated)
	assert.False(t, resp.Status.IsOK)
	assert.Equal(t, map[string]any{"id": float64(3)}, resp.Data)
}

func TestRoute_Request_Transform(t *testing.T) {
	server := newUserServer(t)
	defer server.Close()

	c := newUserClient(t, server.URL)
	resp, err := c.Request(context.Background(), "users", "names", nil)
	require.NoError(t, err)

	assert.Equal(t, []any{"Ada", "Linus"}, resp.Data)
}

func TestRoute_Request_TextBody(t *testing.T) {
	server := newUserServer(t)
	defer server.Close()

	c := newUserClient(t, server.URL)
	resp, err := c.Request(context.Background(), "users", "text", nil)
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Data)
}

func TestRoute_Request_RejectedStatus(t *testing.T) {
	server := newUserServer(t)
	defer server.Close()

	c := newUserClient(t, server.URL)
	resp, err := c.Request(context.Background(), "users", "missing", nil)
	require.Error(t, err)
	assert.Nil(t, resp)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "GET", transportErr.Method)
	assert.True(t, strings.HasSuffix(transportErr.URL, "/missing"))

	var statusErr *transport.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestRoute_Request_AcceptAnyStatus(t *testing.T) {
	server := newUserServer(t)
	defer server.Close()

	c := New(Config{BaseURL: server.URL, ValidateStatus: transport.AcceptAnyStatus})
	require.NoError(t, c.AddModel(&Model{Name: "m", Endpoints: map[string]Endpoint{"missing": {URL: "/missing"}}}))

	resp, err := c.Request(context.Background(), "m", "missing", nil)
	require.NoError(t, err)
	assert.True(t, resp.Status.IsNotFound)
	assert.Equal(t, "Not Found", resp.Status.Definition)
	assert.Equal(t, map[string]any{"error": "not found"}, resp.Data)
}

func TestRoute_Request_TransportFailure(t *testing.T) {
	cause := errors.New("connection refused")
	c := New(Config{}, WithTransport(transport.Func(func(context.Context, *transport.Request) (*transport.Response, error) {
		return nil, cause
	})))
	require.NoError(t, c.AddModel(&Model{Name: "m", Endpoints: map[string]Endpoint{"e": {URL: "/e"}}}))

	resp, err := c.Request(context.Background(), "m", "e", nil)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "connection refused")

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
	assert.True(t, errors.Is(err, cause))
}

func TestRoute_Request_NilResponse(t *testing.T) {
	c := New(Config{}, WithTransport(transport.Func(func(context.Context, *transport.Request) (*transport.Response, error) {
		return nil, nil
	})))
	require.NoError(t, c.AddModel(&Model{Name: "m", Endpoints: map[string]Endpoint{"e": {URL: "/e"}}}))

	resp, err := c.Request(context.Background(), "m", "e", nil)
	assert.Nil(t, resp)
	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestRoute_Request_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	require.NoError(t, c.AddModel(&Model{Name: "m", Endpoints: map[string]Endpoint{
		"slow": {URL: "/", Timeout: 20 * time.Millisecond},
	}}))

	_, err := c.Request(context.Background(), "m", "slow", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestRoute_Request_SendsMergedRequest(t *testing.T) {
	var got *transport.Request
	c := New(Config{
		BaseURL: "https://api.example.com",
		Headers: map[string]string{"Authorization": "Bearer t"},
		Params:  Params{"filter": map[string]any{"active": true}},
	}, WithTransport(transport.Func(func(_ context.Context, req *transport.Request) (*transport.Response, error) {
		got = req
		return &transport.Response{StatusCode: 200, Body: []byte(`{}`)}, nil
	})))
	require.NoError(t, c.AddModel(&Model{Name: "m", Endpoints: map[string]Endpoint{
		"e": {Method: "delete", URL: "/things/1"},
	}}))

	_, err := c.Request(context.Background(), "m", "e", Params{"filter": map[string]any{"role": "admin"}})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "DELETE", got.Method)
	assert.Equal(t, "https://api.example.com/things/1", got.URL)
	assert.Equal(t, "Bearer t", got.Headers["Authorization"])
	assert.Equal(t, "application/json", got.Headers["Accept"])
	assert.Equal(t, map[string]any{"filter": map[string]any{"active": true, "role": "admin"}}, got.Params)
}

func TestRoute_Request_TypedNestedParams(t *testing.T) {
	var got *transport.Request
	c := New(Config{
		Params: Params{"filter": map[string]string{"a": "1"}},
	}, WithTransport(transport.Func(func(_ context.Context, req *transport.Request) (*transport.Response, error) {
		got = req
		return &transport.Response{StatusCode: 200}, nil
	})))
	require.NoError(t, c.AddModel(&Model{Name: "m", Endpoints: map[string]Endpoint{
		"e":     {URL: "/e"},
		"typed": {URL: "/typed", Params: Params{"filter": map[string]any{"c": "3"}, "ids": []int{1, 2}}},
	}}))

	_, err := c.Request(context.Background(), "m", "e", Params{"filter": map[string]any{"b": "2"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"filter": map[string]any{"a": "1", "b": "2"}}, got.Params)

	_, err = c.Request(context.Background(), "m", "typed", Params{"filter": map[string]string{"a": "9"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"filter": map[string]any{"a": "9", "c": "3"},
		"ids":    []any{1, 2},
	}, got.Params)
}

func TestRoute_Request_Concurrent(t *testing.T) {
	server := newUserServer(t)
	defer server.Close()

	c := newUserClient(t, server.URL)
	route, err := c.Route("users", "list")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			_, err := route.Request(context.Background(), Params{"page": page})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, Params{"limit": 10}, route.Endpoint().Params)
}

func TestResponseWrapper(t *testing.T) {
	w := ResponseWrapper(&transport.Response{StatusCode: 403})
	assert.True(t, w.Status.IsForbidden)
	assert.Equal(t, "Forbidden", w.Status.Definition)

	assert.Equal(t, 0, ResponseWrapper(nil).Status.Code)
}
