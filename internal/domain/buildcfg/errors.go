package buildcfg

import "errors"

// Sentinel error kinds for this package.
var (
	ErrNoPageExtensions = errors.New("no page extensions configured")
	ErrExternalImport   = errors.New("import resolves outside the pages root")
	ErrEmptyImport      = errors.New("empty import path")
)
