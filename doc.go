// Package md2docx converts IEC 62304 style regulatory Markdown documents
// (SRS, SDD, STP and friends) into Word DOCX packages.
//
// # Quick Start
//
//	conv, err := md2docx.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2docx.Input{Markdown: source})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("srs.docx", result.DOCX, 0o644)
//
// # Document Layout
//
// The source is split into a preamble, a table-of-contents marker, an
// optional revision history and the body. The output has:
//
//  1. A cover page built from the preamble (title, subtitle, version,
//     author, organization, date)
//  2. A table of contents field that Word fills in when the file is opened
//  3. A revision history page, when the source has one
//  4. The body, with a page break before each main numbered section
//
// Requirement records such as "#### SRS-AUTH-001 User Login" become
// two-column tables with one row per field and a bulleted
// acceptance-criteria row. Mermaid code blocks are rendered to PNG by the
// Mermaid CLI (mmdc) and embedded; when that fails the diagram source is
// embedded as a code block instead and a warning is logged.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2docx.NewConverter(
//	    md2docx.WithLabels(md2docx.LabelsFor("zh")),
//	    md2docx.WithFonts(md2docx.Fonts{CJK: "Microsoft YaHei"}),
//	    md2docx.WithCacheDir("/var/cache/md2docx"),
//	    md2docx.WithNoSandbox(true),
//	)
//
// Pass WithRasterizer(nil) to skip the Mermaid CLI entirely.
package md2docx
