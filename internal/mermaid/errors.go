package mermaid

import "errors"

// Sentinel errors for diagram rasterization.
var (
	ErrEmptySource     = errors.New("diagram source is empty")
	ErrCommandNotFound = errors.New("mermaid CLI not found")
	ErrRenderFailed    = errors.New("mermaid CLI failed")
	ErrTimeout         = errors.New("mermaid CLI timed out")
	ErrNoOutput        = errors.New("mermaid CLI produced no image")
	ErrCacheDir        = errors.New("cannot use diagram cache directory")
)
