package pipeline

import "errors"

var (
	// ErrMalformedRecord marks rows with missing or inconsistent raw fields.
	ErrMalformedRecord = errors.New("malformed ride record")
	// ErrInvalidGeometry marks rows whose coordinates fall outside the valid
	// latitude/longitude ranges.
	ErrInvalidGeometry = errors.New("coordinates outside valid ranges")
)
