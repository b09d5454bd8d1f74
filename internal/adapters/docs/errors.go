package docs

import "errors"

// Sentinel kinds for pipeline errors.
var (
	ErrUnknownComponent   = errors.New("unknown component")
	ErrUndefinedReference = errors.New("undefined reference")
	ErrUnsupportedData    = errors.New("unsupported data file")
	ErrDuplicateImport    = errors.New("duplicate import name")
	ErrMalformedComponent = errors.New("malformed component tag")
	ErrPageNotFound       = errors.New("page not found")
	ErrPagesRootNotFound  = errors.New("pages root not found")
)
