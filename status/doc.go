// Package status holds the static HTTP status table and the status
// descriptor attached to every normalized response.
//
// A descriptor carries the numeric code, its human-readable definition
// (empty when the code is not in the table) and equality flags for the
// codes callers branch on most often:
//
//	d := status.Describe(404)
//	if d.IsNotFound {
//	    fmt.Println(d.Definition) // "Not Found"
//	}
package status
