// Package mermaid turns Mermaid diagram source into PNG files by running the
// Mermaid CLI (mmdc).
//
// Rendered images are cached by the SHA-256 of the source, so a diagram that
// appears twice, or in an unchanged document, is rendered once. Every run is
// bounded by a timeout and executes in its own process group; on timeout the
// CLI and the headless browser it started are killed together.
package mermaid
