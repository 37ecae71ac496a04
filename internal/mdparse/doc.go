// Package mdparse turns the Markdown dialect used by IEC 62304 documents into
// a flat list of structural blocks.
//
// The parser is line based and never fails:
//   - ATX headings of level 1 to 5, with page-break planning
//   - pipe tables, code fences and list or quote paragraphs
//   - requirement records such as "#### SRS-AUTH-001 User Login" with their
//     bold-labelled fields and acceptance criteria
//   - document preambles (cover metadata, table of contents, revision history)
//
// Field labels are matched through a synonym table covering English and
// Chinese spellings, normalized with NFKC and case folding.
package mdparse
