package mdparse

import "strings"

// Block is one structural unit of a parsed document.
// The set of implementations is closed: Heading, Paragraph, Table, CodeBlock
// and RequirementRecord.
type Block interface {
	block()
}

// Heading is an ATX heading of level 1 to 5.
type Heading struct {
	Level           int
	Text            string
	PageBreakBefore bool
}

// ListKind distinguishes plain paragraphs from list items and quotes.
type ListKind int

const (
	ListNone ListKind = iota
	ListBullet
	ListQuote
)

// Paragraph is a single source line split into styled runs.
type Paragraph struct {
	Runs   []InlineRun
	List   ListKind
	Indent int // nesting level for bullets, 0 = top level
}

// Text returns the concatenated run text.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Table is a pipe table. Rows may be shorter or longer than Headers;
// the renderer pads to the widest row.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Columns returns the number of columns needed to hold every row.
func (t *Table) Columns() int {
	n := len(t.Headers)
	for _, r := range t.Rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

// CodeBlock is the literal content of a fenced block.
type CodeBlock struct {
	Language string
	Text     string
}

// IsDiagram reports whether the block holds Mermaid source.
func (c *CodeBlock) IsDiagram() bool {
	return strings.EqualFold(c.Language, "mermaid")
}

// InlineRun is a styled fragment of paragraph text.
type InlineRun struct {
	Text      string
	Bold      bool
	Monospace bool
}

// FieldKey is the canonical slot a requirement field label maps to.
type FieldKey string

const (
	FieldDescription        FieldKey = "description"
	FieldRationale          FieldKey = "rationale"
	FieldPriority           FieldKey = "priority"
	FieldSafetyClass        FieldKey = "safety_class"
	FieldVerification       FieldKey = "verification"
	FieldAcceptanceCriteria FieldKey = "acceptance_criteria"
	FieldOther              FieldKey = "other"
)

// Field is one labelled value of a requirement record.
// Label keeps the surface text as written in the source.
type Field struct {
	Key   FieldKey
	Label string
	Value string
}

// RequirementRecord is a heading of the form "SRS-AUTH-001 Name" together
// with the bold-labelled fields and acceptance criteria that follow it.
type RequirementRecord struct {
	ID                 string
	Name               string
	Fields             []Field
	AcceptanceCriteria []string
}

// Get returns the first field stored under key.
func (r *RequirementRecord) Get(key FieldKey) (Field, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// set stores a field, replacing the value of an earlier field with the same
// key and label so the original position is kept.
func (r *RequirementRecord) set(f Field) int {
	for i := range r.Fields {
		if r.Fields[i].Key == f.Key && (f.Key != FieldOther || r.Fields[i].Label == f.Label) {
			r.Fields[i].Value = f.Value
			return i
		}
	}
	r.Fields = append(r.Fields, f)
	return len(r.Fields) - 1
}

func (*Heading) block()           {}
func (*Paragraph) block()         {}
func (*Table) block()             {}
func (*CodeBlock) block()         {}
func (*RequirementRecord) block() {}

// CoverInfo holds the title page metadata taken from the document preamble.
type CoverInfo struct {
	Title        string
	Subtitle     string
	Version      string
	Author       string
	Organization string
	Date         string
}

// Document is the result of ParseDocument.
type Document struct {
	Cover    CoverInfo
	TOCLines []string // source table of contents, regenerated by the renderer
	Revision *Table   // nil when the source has no revision history
	Body     []Block
}
