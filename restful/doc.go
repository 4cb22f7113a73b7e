// Package restful lets callers describe REST APIs as named models, each a
// set of endpoints sharing one base configuration, and call them to get
// normalized responses back.
//
// Basic Usage:
//
//	client := restful.New(restful.Config{
//	    BaseURL: "https://api.example.com",
//	    Headers: map[string]string{"Authorization": "Bearer token"},
//	})
//
//	err := client.AddModel(&restful.Model{
//	    Name: "users",
//	    Endpoints: map[string]restful.Endpoint{
//	        "list": {Method: "GET", URL: "/users"},
//	        "get":  {Method: "GET", URL: "/users/1", Transform: pickName},
//	    },
//	})
//
//	resp, err := client.Request(ctx, "users", "list", restful.Params{"limit": 10})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Status.Code, resp.Status.Definition, resp.Data)
//
// Every endpoint URL is prefixed with the base URL when the model is
// registered, and every endpoint carries the global headers and params
// merged underneath its own. Responses are reduced to their data and
// status descriptor unless the client is built with
// WithCleanResponse(false), in which case headers, the request echo and
// timing are kept as well.
//
// Any transport failure, including a status code rejected by
// ValidateStatus, is reported as a *TransportError.
//
// Thread Safety:
//
// Registration and lookups are guarded by a read-write lock. A Route never
// changes after registration, so any number of goroutines may call
// Request on the same Route at once.
package restful
