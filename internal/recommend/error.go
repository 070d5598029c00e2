package recommend

import "errors"

var (
	// ErrBusy: a query is already outstanding; one at a time.
	ErrBusy = errors.New("recommendation request already in flight")
	// ErrEmptyQuery: nothing to ask.
	ErrEmptyQuery = errors.New("empty query")
	// ErrNotConfigured: no API key was provided to the completer.
	ErrNotConfigured = errors.New("recommendation service not configured")
	// ErrEmptyCompletion: the service answered without any text.
	ErrEmptyCompletion = errors.New("empty completion")
)
