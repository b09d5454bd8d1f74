package htmlout

import "errors"

// Sentinel kinds for rendering errors.
var (
	ErrRender = errors.New("html render failed")
)
