package client

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested article does not exist.
// Use errors.Is() to check.
var ErrNotFound = errors.New("duodex: not found")

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("duodex: http %d: %s", e.StatusCode, e.Message)
}

// Is makes 404 replies match ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}
