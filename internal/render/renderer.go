package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/rs/zerolog"

	"github.com/alnah/go-md2docx/internal/mdparse"
)

// tocMarker is written where the table of contents field goes and replaced
// during post-processing.
const tocMarker = "@@MD2DOCX_TOC@@"

// Result is a rendered document.
type Result struct {
	DOCX             []byte
	Diagrams         int // diagrams rendered as images
	DiagramFallbacks int // diagrams rendered as source text
	// DiagramErrors holds the rasterizer failures behind the fallbacks.
	DiagramErrors    []error
}

// Renderer builds one DOCX document. It is not reusable.
type Renderer struct {
	w         *docx.Docx
	opts      Options
	fonts     Fonts
	labels    Labels
	log       zerolog.Logger
	pageBreak bool // the next paragraph starts a new page
	result    Result
}

// Render lays out doc and returns the serialized package. No bytes are
// returned unless the whole package was built.
func Render(ctx context.Context, doc *mdparse.Document, opts Options) (*Result, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	r := newRenderer(opts)

	title := opts.Title
	if title == "" {
		title = doc.Cover.Title
	}

	r.cover(doc.Cover, title)
	r.tableOfContents()
	if doc.Revision != nil {
		r.revisionHistory(doc.Revision)
	}
	r.pageBreak = true
	if err := r.body(ctx, doc.Body); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := r.w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	out, err := patchPackage(buf.Bytes(), packagePatch{
		Title:  title,
		Fonts:  r.fonts,
		Labels: r.labels,
	})
	if err != nil {
		return nil, err
	}

	r.result.DOCX = out
	return &r.result, nil
}

func newRenderer(opts Options) *Renderer {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Renderer{
		w:      docx.New().WithDefaultTheme(),
		opts:   opts,
		fonts:  opts.Fonts.withDefaults(),
		labels: opts.Labels.Merge(DefaultLabels()),
		log:    log,
	}
}

// paragraph starts a paragraph, carrying a pending page break into it so the
// new page does not begin with an empty line.
func (r *Renderer) paragraph() *docx.Paragraph {
	p := r.w.AddParagraph()
	if r.pageBreak {
		p.AddPageBreaks()
		r.pageBreak = false
	}
	return p
}

// flushBreak emits a pending page break on its own, before a table.
func (r *Renderer) flushBreak() {
	if r.pageBreak {
		r.w.AddParagraph().AddPageBreaks()
		r.pageBreak = false
	}
}

func (r *Renderer) cover(c mdparse.CoverInfo, title string) {
	for range 6 {
		r.w.AddParagraph()
	}
	if title != "" {
		r.addText(r.paragraph().Justification("center"), title, runStyle{size: sizeTitle, bold: true})
	}
	if c.Subtitle != "" {
		r.addText(r.paragraph().Justification("center"), c.Subtitle, runStyle{size: sizeSubtitle})
	}
	r.w.AddParagraph()
	r.w.AddParagraph()

	meta := []struct{ label, value string }{
		{r.labels.Version, c.Version},
		{r.labels.Author, c.Author},
		{r.labels.Organization, c.Organization},
		{r.labels.Date, c.Date},
	}
	for _, m := range meta {
		if m.value == "" {
			continue
		}
		p := r.paragraph().Justification("center")
		r.addText(p, m.label+": ", runStyle{size: sizeMeta, bold: true})
		r.addText(p, m.value, runStyle{size: sizeMeta})
	}
	r.pageBreak = true
}

func (r *Renderer) tableOfContents() {
	r.addText(r.paragraph().Justification("center"), r.labels.TOCTitle, runStyle{size: sizeSection, bold: true})
	r.w.AddParagraph().AddText(tocMarker)
	r.pageBreak = true
}

func (r *Renderer) revisionHistory(t *mdparse.Table) {
	r.addText(r.paragraph().Justification("center"), r.labels.RevisionTitle, runStyle{size: sizeSection, bold: true})
	r.table(t)
	r.pageBreak = true
}

func (r *Renderer) body(ctx context.Context, blocks []mdparse.Block) error {
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch b := b.(type) {
		case *mdparse.Heading:
			r.heading(b)
		case *mdparse.Paragraph:
			r.para(b)
		case *mdparse.Table:
			r.table(b)
		case *mdparse.CodeBlock:
			if b.IsDiagram() {
				r.diagram(ctx, b)
			} else {
				r.code(b)
			}
		case *mdparse.RequirementRecord:
			r.requirement(b)
		}
	}
	return nil
}

func (r *Renderer) heading(h *mdparse.Heading) {
	if h.PageBreakBefore {
		r.pageBreak = true
	}
	level := min(max(h.Level, 1), len(headingSizes)-1)
	p := r.paragraph().Style(fmt.Sprintf("Heading%d", level))
	r.addText(p, h.Text, runStyle{size: headingSizes[level], bold: true})
}

func (r *Renderer) para(pg *mdparse.Paragraph) {
	p := r.paragraph()
	base := runStyle{size: sizeBody}
	switch pg.List {
	case mdparse.ListBullet:
		r.addText(p, strings.Repeat("    ", pg.Indent)+"• ", base)
	case mdparse.ListQuote:
		base.color = colorQuote
		r.addText(p, "│ ", base)
	}
	r.addInline(p, pg.Runs, base)
}
