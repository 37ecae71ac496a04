package render

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fumiama/go-docx"
	"github.com/fumiama/imgsz"

	"github.com/alnah/go-md2docx/internal/mdparse"
)

const highlightStyle = "github"

// codeLine is one line of a code block split into coloured segments.
type codeLine []codeSegment

type codeSegment struct {
	text  string
	color string // RRGGBB, empty for default
	bold  bool
}

// HighlightLines tokenises src with the chroma lexer for lang and returns one
// entry per source line. Without a lexer every line is a single plain
// segment. The concatenated segment text always equals the source line.
func HighlightLines(lang, src string) [][]string {
	lines := highlight(lang, src, true)
	out := make([][]string, len(lines))
	for i, l := range lines {
		for _, s := range l {
			out[i] = append(out[i], s.text)
		}
	}
	return out
}

func highlight(lang, src string, enabled bool) []codeLine {
	plain := func() []codeLine {
		var out []codeLine
		for _, l := range strings.Split(src, "\n") {
			out = append(out, codeLine{{text: l}})
		}
		return out
	}

	if !enabled || lang == "" {
		return plain()
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return plain()
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, src)
	if err != nil {
		return plain()
	}
	style := styles.Get(highlightStyle)

	var out []codeLine
	for _, tokens := range chroma.SplitTokensIntoLines(it.Tokens()) {
		var line codeLine
		for _, tok := range tokens {
			text := strings.TrimSuffix(tok.Value, "\n")
			if text == "" {
				continue
			}
			entry := style.Get(tok.Type)
			seg := codeSegment{text: text, bold: entry.Bold == chroma.Yes}
			if entry.Colour.IsSet() {
				seg.color = strings.TrimPrefix(entry.Colour.String(), "#")
			}
			line = append(line, seg)
		}
		out = append(out, line)
	}
	// Lexers add or swallow a final newline; keep the source line count.
	want := strings.Count(src, "\n") + 1
	for len(out) < want {
		out = append(out, codeLine{})
	}
	return out[:want]
}

// code writes one shaded monospace paragraph per source line.
func (r *Renderer) code(cb *mdparse.CodeBlock) {
	for _, line := range highlight(cb.Language, cb.Text, r.opts.Highlight) {
		p := r.paragraph()
		if len(line) == 0 {
			r.addText(p, " ", runStyle{size: sizeCode, mono: true, shade: colorCodeShade})
			continue
		}
		for i, seg := range line {
			text := seg.text
			if i == 0 {
				text = keepIndent(text)
			}
			r.addText(p, text, runStyle{
				size:  sizeCode,
				mono:  true,
				bold:  seg.bold,
				color: seg.color,
				shade: colorCodeShade,
			})
		}
	}
}

// keepIndent turns leading spaces and tabs into no-break spaces, which Word
// does not collapse.
func keepIndent(s string) string {
	trimmed := strings.TrimLeft(s, " \t")
	n := len(s) - len(trimmed)
	if n == 0 {
		return s
	}
	indent := strings.ReplaceAll(s[:n], "\t", "    ")
	return strings.Repeat(" ", len(indent)) + trimmed
}

// diagram embeds the rasterized diagram, or falls back to the source text
// when the rasterizer is missing or fails.
func (r *Renderer) diagram(ctx context.Context, cb *mdparse.CodeBlock) {
	if r.opts.Rasterizer == nil {
		r.fallback(cb, nil)
		return
	}
	path, err := r.opts.Rasterizer.Rasterize(ctx, cb.Text)
	if err != nil {
		r.fallback(cb, err)
		return
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path returned by the rasterizer
	if err != nil {
		r.fallback(cb, err)
		return
	}
	size, _, err := imgsz.DecodeSize(bytes.NewReader(data))
	if err != nil {
		r.fallback(cb, err)
		return
	}

	p := r.paragraph().Justification("center")
	run, err := p.AddInlineDrawing(data)
	if err != nil {
		r.fallback(cb, err)
		return
	}
	cx, cy := FitImage(size.Width, size.Height, MaxImageWidth, MaxImageHeight)
	for _, child := range run.Children {
		if d, ok := child.(*docx.Drawing); ok && d.Inline != nil {
			d.Inline.Size(cx, cy)
		}
	}
	r.result.Diagrams++
}

func (r *Renderer) fallback(cb *mdparse.CodeBlock, err error) {
	r.result.DiagramFallbacks++
	ev := r.log.Warn()
	if err != nil {
		r.result.DiagramErrors = append(r.result.DiagramErrors, err)
		ev = ev.Err(err)
	}
	ev.Int("lines", strings.Count(cb.Text, "\n")+1).Msg("diagram not rendered, embedding source text")
	r.code(&mdparse.CodeBlock{Language: "", Text: cb.Text})
}
