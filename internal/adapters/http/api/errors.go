package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrMissingTitle = errors.New("missing title")
	ErrBodyTooLarge = errors.New("request body too large")
)
