package mdparse_test

import (
	"reflect"
	"testing"

	"github.com/alnah/go-md2docx/internal/mdparse"
)

// ---------------------------------------------------------------------------
// TestParse_SectionWithParagraphAndTable - Mixed content scenario
// ---------------------------------------------------------------------------

func TestParse_SectionWithParagraphAndTable(t *testing.T) {
	t.Parallel()

	src := "## 1. Intro\n\nSome **bold** and `code` text.\n\n| A | B |\n|---|---|\n| 1 | 2 |\n"
	blocks := mdparse.Parse(src)

	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3: %#v", len(blocks), blocks)
	}

	h, ok := blocks[0].(*mdparse.Heading)
	if !ok {
		t.Fatalf("blocks[0] = %T, want *Heading", blocks[0])
	}
	if h.Level != 2 || h.Text != "1. Intro" || !h.PageBreakBefore {
		t.Errorf("heading = %+v, want level 2 %q with page break", *h, "1. Intro")
	}

	p, ok := blocks[1].(*mdparse.Paragraph)
	if !ok {
		t.Fatalf("blocks[1] = %T, want *Paragraph", blocks[1])
	}
	wantRuns := []mdparse.InlineRun{
		{Text: "Some "},
		{Text: "bold", Bold: true},
		{Text: " and "},
		{Text: "code", Monospace: true},
		{Text: " text."},
	}
	if !reflect.DeepEqual(p.Runs, wantRuns) {
		t.Errorf("runs = %#v, want %#v", p.Runs, wantRuns)
	}

	tbl, ok := blocks[2].(*mdparse.Table)
	if !ok {
		t.Fatalf("blocks[2] = %T, want *Table", blocks[2])
	}
	if !reflect.DeepEqual(tbl.Headers, []string{"A", "B"}) {
		t.Errorf("headers = %v, want [A B]", tbl.Headers)
	}
	if !reflect.DeepEqual(tbl.Rows, [][]string{{"1", "2"}}) {
		t.Errorf("rows = %v, want [[1 2]]", tbl.Rows)
	}
}

// ---------------------------------------------------------------------------
// TestParse_Headings - Heading recognition
// ---------------------------------------------------------------------------

func TestParse_Headings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantLevel int
		wantText  string
		wantNone  bool
	}{
		{name: "level 1", input: "# Title", wantLevel: 1, wantText: "Title"},
		{name: "level 5", input: "##### Deep", wantLevel: 5, wantText: "Deep"},
		{name: "closing hashes", input: "## Scope ##", wantLevel: 2, wantText: "Scope"},
		{name: "trailing spaces", input: "### Notes   ", wantLevel: 3, wantText: "Notes"},
		{name: "empty heading dropped", input: "##", wantNone: true},
		{name: "empty heading with space dropped", input: "## ", wantNone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocks := mdparse.Parse(tt.input)
			if tt.wantNone {
				if len(blocks) != 0 {
					t.Errorf("Parse(%q) = %#v, want no blocks", tt.input, blocks)
				}
				return
			}
			if len(blocks) != 1 {
				t.Fatalf("Parse(%q) returned %d blocks, want 1", tt.input, len(blocks))
			}
			h, ok := blocks[0].(*mdparse.Heading)
			if !ok {
				t.Fatalf("Parse(%q)[0] = %T, want *Heading", tt.input, blocks[0])
			}
			if h.Level != tt.wantLevel || h.Text != tt.wantText {
				t.Errorf("Parse(%q) = level %d %q, want level %d %q", tt.input, h.Level, h.Text, tt.wantLevel, tt.wantText)
			}
		})
	}
}

func TestParse_SixHashesIsParagraph(t *testing.T) {
	t.Parallel()

	blocks := mdparse.Parse("###### too deep")
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if _, ok := blocks[0].(*mdparse.Paragraph); !ok {
		t.Errorf("blocks[0] = %T, want *Paragraph", blocks[0])
	}
}

// ---------------------------------------------------------------------------
// TestParse_CodeBlocks - Fenced code
// ---------------------------------------------------------------------------

func TestParse_CodeBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantLang string
		wantText string
		diagram  bool
	}{
		{
			name:     "go block",
			input:    "```go\nfunc main() {}\n```",
			wantLang: "go",
			wantText: "func main() {}",
		},
		{
			name:     "no language",
			input:    "```\nplain\n  indented\n```",
			wantText: "plain\n  indented",
		},
		{
			name:     "mermaid is a diagram",
			input:    "```mermaid\ngraph TD\n  A-->B\n```",
			wantLang: "mermaid",
			wantText: "graph TD\n  A-->B",
			diagram:  true,
		},
		{
			name:     "markdown inside fence stays literal",
			input:    "```\n# not a heading\n| a | b |\n```",
			wantText: "# not a heading\n| a | b |",
		},
		{
			name:     "unterminated fence runs to end",
			input:    "```sh\necho hi\necho bye",
			wantLang: "sh",
			wantText: "echo hi\necho bye",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocks := mdparse.Parse(tt.input)
			if len(blocks) != 1 {
				t.Fatalf("got %d blocks, want 1: %#v", len(blocks), blocks)
			}
			cb, ok := blocks[0].(*mdparse.CodeBlock)
			if !ok {
				t.Fatalf("blocks[0] = %T, want *CodeBlock", blocks[0])
			}
			if cb.Language != tt.wantLang {
				t.Errorf("Language = %q, want %q", cb.Language, tt.wantLang)
			}
			if cb.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", cb.Text, tt.wantText)
			}
			if cb.IsDiagram() != tt.diagram {
				t.Errorf("IsDiagram() = %v, want %v", cb.IsDiagram(), tt.diagram)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParse_Tables - Pipe tables
// ---------------------------------------------------------------------------

func TestParse_Tables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		wantHeaders []string
		wantRows    [][]string
		wantBlocks  int
	}{
		{
			name:        "aligned separator",
			input:       "| Name | Size |\n|:-----|-----:|\n| a | 1 |\n| b | 2 |",
			wantHeaders: []string{"Name", "Size"},
			wantRows:    [][]string{{"a", "1"}, {"b", "2"}},
			wantBlocks:  1,
		},
		{
			name:        "escaped pipe",
			input:       "| Expr |\n|---|\n| a \\| b |",
			wantHeaders: []string{"Expr"},
			wantRows:    [][]string{{"a | b"}},
			wantBlocks:  1,
		},
		{
			name:        "ragged rows kept",
			input:       "| A | B |\n|---|---|\n| 1 |\n| 1 | 2 | 3 |",
			wantHeaders: []string{"A", "B"},
			wantRows:    [][]string{{"1"}, {"1", "2", "3"}},
			wantBlocks:  1,
		},
		{
			name:        "table ends at text line",
			input:       "| A |\n|---|\n| 1 |\nafter",
			wantHeaders: []string{"A"},
			wantRows:    [][]string{{"1"}},
			wantBlocks:  2,
		},
		{
			name:        "header only",
			input:       "| A | B |",
			wantHeaders: []string{"A", "B"},
			wantBlocks:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocks := mdparse.Parse(tt.input)
			if len(blocks) != tt.wantBlocks {
				t.Fatalf("got %d blocks, want %d: %#v", len(blocks), tt.wantBlocks, blocks)
			}
			tbl, ok := blocks[0].(*mdparse.Table)
			if !ok {
				t.Fatalf("blocks[0] = %T, want *Table", blocks[0])
			}
			if !reflect.DeepEqual(tbl.Headers, tt.wantHeaders) {
				t.Errorf("Headers = %q, want %q", tbl.Headers, tt.wantHeaders)
			}
			if !reflect.DeepEqual(tbl.Rows, tt.wantRows) {
				t.Errorf("Rows = %q, want %q", tbl.Rows, tt.wantRows)
			}
		})
	}
}

func TestTable_Columns(t *testing.T) {
	t.Parallel()

	tbl := &mdparse.Table{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"1"}, {"1", "2", "3"}},
	}
	if got := tbl.Columns(); got != 3 {
		t.Errorf("Columns() = %d, want 3", got)
	}
}

// ---------------------------------------------------------------------------
// TestParse_Paragraphs - Lists, quotes and line handling
// ---------------------------------------------------------------------------

func TestParse_Paragraphs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		wantText   string
		wantList   mdparse.ListKind
		wantIndent int
	}{
		{name: "plain", input: "hello world", wantText: "hello world"},
		{name: "dash bullet", input: "- item", wantText: "item", wantList: mdparse.ListBullet},
		{name: "star bullet", input: "* item", wantText: "item", wantList: mdparse.ListBullet},
		{name: "nested bullet", input: "    - child", wantText: "child", wantList: mdparse.ListBullet, wantIndent: 2},
		{name: "tab nested bullet", input: "\t- child", wantText: "child", wantList: mdparse.ListBullet, wantIndent: 2},
		{name: "quote", input: "> note", wantText: "note", wantList: mdparse.ListQuote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocks := mdparse.Parse(tt.input)
			if len(blocks) != 1 {
				t.Fatalf("got %d blocks, want 1", len(blocks))
			}
			p, ok := blocks[0].(*mdparse.Paragraph)
			if !ok {
				t.Fatalf("blocks[0] = %T, want *Paragraph", blocks[0])
			}
			if p.Text() != tt.wantText {
				t.Errorf("Text() = %q, want %q", p.Text(), tt.wantText)
			}
			if p.List != tt.wantList {
				t.Errorf("List = %v, want %v", p.List, tt.wantList)
			}
			if p.Indent != tt.wantIndent {
				t.Errorf("Indent = %d, want %d", p.Indent, tt.wantIndent)
			}
		})
	}
}

func TestParse_OneParagraphPerLine(t *testing.T) {
	t.Parallel()

	blocks := mdparse.Parse("first line\r\nsecond line\rthird line")
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}
	for i, want := range []string{"first line", "second line", "third line"} {
		p := blocks[i].(*mdparse.Paragraph)
		if p.Text() != want {
			t.Errorf("blocks[%d].Text() = %q, want %q", i, p.Text(), want)
		}
	}
}

func TestParse_RulesAndBlanksDropped(t *testing.T) {
	t.Parallel()

	blocks := mdparse.Parse("\n\n---\n***\n- - -\n\n")
	if len(blocks) != 0 {
		t.Errorf("got %#v, want no blocks", blocks)
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	if blocks := mdparse.Parse(""); len(blocks) != 0 {
		t.Errorf("Parse(\"\") = %#v, want empty", blocks)
	}
}

// ---------------------------------------------------------------------------
// TestParse_Reentrant - Independent calls share no state
// ---------------------------------------------------------------------------

func TestParse_Reentrant(t *testing.T) {
	t.Parallel()

	src := "## 1. A\n```go\nx\n```\n#### SRS-A-001 Thing\n**Priority:** P1\n"
	want := mdparse.Parse(src)

	done := make(chan []mdparse.Block, 8)
	for range 8 {
		go func() { done <- mdparse.Parse(src) }()
	}
	for range 8 {
		if got := <-done; !reflect.DeepEqual(got, want) {
			t.Errorf("concurrent Parse differs: %#v vs %#v", got, want)
		}
	}
}
