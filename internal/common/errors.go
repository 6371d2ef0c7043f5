package common

import "errors"

var (
	// ErrNoSession is returned when an operation needs a signed-in user.
	ErrNoSession = errors.New("not signed in")

	// ErrClosed is returned by pipelines whose owning screen is gone.
	ErrClosed = errors.New("closed")
)
