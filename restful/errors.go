package restful

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidModel matches every ConfigurationError returned by AddModel.
	ErrInvalidModel = errors.New("invalid model")

	// ErrModelNotFound is returned when looking up an unregistered model.
	ErrModelNotFound = errors.New("model not found")

	// ErrEndpointNotFound is returned when looking up an unregistered endpoint.
	ErrEndpointNotFound = errors.New("endpoint not found")
)

// ConfigurationError reports a model that cannot be registered.
type ConfigurationError struct {
	Model  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("restful: model %q: %s", e.Model, e.Reason)
	}
	return "restful: " + e.Reason
}

// Is makes errors.Is(err, ErrInvalidModel) true for any ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidModel
}

// TransportError wraps every failure of the transport layer: network
// errors, timeouts and status codes rejected by ValidateStatus alike.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("restful: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
