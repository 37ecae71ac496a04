// Package assets provides the Mermaid theme and headless-browser launch
// configurations passed to the Mermaid CLI.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in themes)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter. Materialize writes the
// resolved pair to a directory so the CLI can read them with -c and -p.
//
// # Directory Structure
//
//	{basePath}/
//	├── themes/
//	│   └── {name}.json          # Mermaid config (e.g., neutral.json)
//	└── puppeteer/
//	    └── {name}.json          # Puppeteer launch options (e.g., no-sandbox.json)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
