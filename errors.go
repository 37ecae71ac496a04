package md2docx

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown    = errors.New("markdown content cannot be empty")
	ErrRender           = errors.New("DOCX rendering failed")
	ErrDiagramSetup     = errors.New("preparing diagram rendering failed")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrInvalidFont      = errors.New("invalid font name")
)
