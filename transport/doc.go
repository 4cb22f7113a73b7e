// Package transport is the HTTP client collaborator the restful layer
// delegates every network call to.
//
// The contract is a single method:
//
//	type Transport interface {
//	    Do(ctx context.Context, req *Request) (*Response, error)
//	}
//
// Any implementation honoring it can be plugged into a restful.Client.
// The default implementation, Client, is built on go-resty and records
// per-request timing (DNS, TCP, TLS, server processing, total):
//
//	t := transport.New(
//	    transport.WithTimeout(10*time.Second),
//	    transport.WithHeader("User-Agent", "restful"),
//	)
//
//	resp, err := t.Do(ctx, &transport.Request{
//	    Method: "GET",
//	    URL:    "https://api.example.com/users",
//	    Params: map[string]any{"limit": 10},
//	})
//
// Client is safe for concurrent use by multiple goroutines.
package transport
