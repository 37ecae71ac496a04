// Package render lays out a parsed document as a DOCX package.
//
// The body is built with go-docx. A second pass over the zip package adds
// what go-docx does not model: the running header and footer, the table of
// contents field, outline-level heading styles and the update-fields setting.
//
// Section order is fixed: cover, table of contents, revision history, body.
package render
