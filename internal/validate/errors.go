package validate

import "errors"

// Sentinel errors for validation.
var (
	ErrProjectNotFound = errors.New("project directory not found")
	ErrParseHTML       = errors.New("parsing HTML")
	ErrWriteLog        = errors.New("writing validation log")
)
