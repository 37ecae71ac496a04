package render

import "errors"

// Sentinel errors for rendering.
var (
	ErrNilDocument = errors.New("document is nil")
	ErrWrite       = errors.New("serializing document failed")
	ErrPackage     = errors.New("malformed DOCX package")
)
