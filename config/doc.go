// Package config loads restful collection files: declarative descriptions
// of a client, its target environments, its models and the JSON Schemas
// their responses are checked against.
//
// A collection is YAML (or JSON, chosen by file extension):
//
//	client:
//	  baseUrl: https://api.example.com
//	  headers:
//	    Authorization: Bearer {{token}}
//	  timeout: 10s
//
//	environments:
//	  staging:
//	    baseUrl: https://staging.example.com
//	    variables:
//	      token: abc123
//
//	models:
//	  users:
//	    endpoints:
//	      list:
//	        method: GET
//	        url: /users
//	        params: {limit: 10}
//	        transform: $.items
//	        schema: userList
//
//	schemas:
//	  userList:
//	    type: array
//
// Basic Usage:
//
//	col, err := config.Load("restful.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if errs := config.Validate(col); len(errs) > 0 {
//	    log.Fatal(errs[0])
//	}
//
//	client, err := col.NewClient("staging")
//	resp, err := client.Request(ctx, "users", "list", nil)
//
// Variable Substitution:
//
// {{name}} placeholders in the base URL, endpoint URLs, headers and string
// params are replaced with the selected environment's variables when the
// client is built. Unknown placeholders are left as they are.
package config
