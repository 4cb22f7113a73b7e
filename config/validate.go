package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wesleyorama2/restful/pkg/jsonpath"
	"github.com/wesleyorama2/restful/pkg/jsonschema"
)

var validMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

// ValidationError represents a collection validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate checks the collection and returns every problem found, sorted
// by path.
func Validate(col *Collection) []ValidationError {
	var errs []ValidationError

	if len(col.Models) == 0 {
		errs = append(errs, ValidationError{
			Path:    "models",
			Message: "at least one model is required",
		})
	}

	for name, model := range col.Models {
		for epName, ep := range model.Endpoints {
			prefix := fmt.Sprintf("models.%s.endpoints.%s", name, epName)

			if ep.URL == "" {
				errs = append(errs, ValidationError{Path: prefix + ".url", Message: "url is required"})
			}

			if ep.Method != "" && !stringInSlice(strings.ToUpper(ep.Method), validMethods) {
				errs = append(errs, ValidationError{
					Path:    prefix + ".method",
					Message: fmt.Sprintf("invalid method: %s", ep.Method),
				})
			}

			if ep.Transform != "" {
				if err := jsonpath.Check(ep.Transform); err != nil {
					errs = append(errs, ValidationError{Path: prefix + ".transform", Message: err.Error()})
				}
			}

			if ep.Schema != "" {
				if _, ok := col.Schemas[ep.Schema]; !ok {
					errs = append(errs, ValidationError{
						Path:    prefix + ".schema",
						Message: fmt.Sprintf("unknown schema: %s", ep.Schema),
					})
				}
			}
		}
	}

	for name, env := range col.Environments {
		for key := range env.Variables {
			if key == "" {
				errs = append(errs, ValidationError{
					Path:    fmt.Sprintf("environments.%s.variables", name),
					Message: "variable name cannot be empty",
				})
			}
		}
	}

	for name, doc := range col.Schemas {
		if _, err := jsonschema.CompileValue(name, doc); err != nil {
			errs = append(errs, ValidationError{Path: "schemas." + name, Message: err.Error()})
		}
	}

	sort.Slice(errs, func(i, j int) bool {
		if errs[i].Path == errs[j].Path {
			return errs[i].Message < errs[j].Message
		}
		return errs[i].Path < errs[j].Path
	})
	return errs
}

// stringInSlice checks if a string is in a slice
func stringInSlice(str string, slice []string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
