package searchclient

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport means the request could not be sent or the response
	// could not be read.
	ErrTransport = errors.New("search transport failure")
	// ErrMalformedResponse means a successful response did not decode as JSON.
	ErrMalformedResponse = errors.New("malformed search response")
)

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("search request failed with status %d", e.StatusCode)
}
