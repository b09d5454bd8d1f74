package model

import "errors"

// Sentinel kinds for model decoding errors.
var (
	ErrNotATable = errors.New("value is not a table")
)
