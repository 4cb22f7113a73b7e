package transport

import (
	"fmt"
	"net/http"
)

// StatusError reports a response whose status code was rejected by the
// caller's status validation.
type StatusError struct {
	Code   int
	Status string
	Body   []byte
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("request failed with status %s", e.Status)
	}
	return fmt.Sprintf("request failed with status code %d", e.Code)
}

// DefaultValidateStatus accepts 2xx codes only.
func DefaultValidateStatus(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

// AcceptAnyStatus accepts every status code.
func AcceptAnyStatus(int) bool {
	return true
}
