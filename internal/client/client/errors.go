package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}

// ClientError reports a 4xx status.
func (e *StatusError) ClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

func malformed(what string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, what)
	}
	return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, what, err)
}
