package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrThemeNotFound indicates the requested Mermaid theme does not exist.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrPuppeteerNotFound indicates the requested launch profile does not exist.
	ErrPuppeteerNotFound = errors.New("puppeteer profile not found")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrInvalidJSON indicates an asset file is not a JSON object.
	ErrInvalidJSON = errors.New("asset is not valid JSON")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
