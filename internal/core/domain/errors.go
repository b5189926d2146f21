package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrProductNotFound = errors.New("product not found")

// A TransportError reports an unreachable repository collaborator or a
// non-success HTTP status. A failed call never corrupts local state.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// A ValidationError blocks an admin save before any network call.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}
