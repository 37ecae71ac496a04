// Package validate checks the referential integrity of a generated project:
// iframe and link targets in the HTML UI flow, relative links in Markdown
// documents, and any external validator scripts the project ships.
//
// Validators report problems instead of returning them as errors. An error
// means the validator could not run at all (unreadable tree, cancelled
// context); a broken reference is a failed report.
package validate
