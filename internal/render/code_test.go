package render_test

import (
	"strings"
	"testing"

	"github.com/alnah/go-md2docx/internal/render"
)

// ---------------------------------------------------------------------------
// TestHighlightLines - Token text is preserved
// ---------------------------------------------------------------------------

func TestHighlightLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lang string
		src  string
	}{
		{"go", "go", "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}"},
		{"python", "python", "def f(x):\n    return x * 2"},
		{"unknown language", "no-such-lexer", "a := b\nc"},
		{"no language", "", "plain text"},
		{"trailing newline", "go", "var x = 1\n"},
		{"cjk", "yaml", "名称: 测试\nvalue: 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := render.HighlightLines(tt.lang, tt.src)
			want := strings.Split(tt.src, "\n")
			if len(got) != len(want) {
				t.Fatalf("got %d lines, want %d", len(got), len(want))
			}
			for i, segs := range got {
				if line := strings.Join(segs, ""); line != want[i] {
					t.Errorf("line %d = %q, want %q", i, line, want[i])
				}
			}
		})
	}
}

func TestHighlightLines_SplitsTokens(t *testing.T) {
	t.Parallel()

	got := render.HighlightLines("go", "func main() {}")
	if len(got) != 1 || len(got[0]) < 2 {
		t.Errorf("HighlightLines = %q, want several segments on one line", got)
	}
}
