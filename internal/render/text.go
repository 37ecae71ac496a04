package render

import (
	"strconv"

	"github.com/fumiama/go-docx"

	"github.com/alnah/go-md2docx/internal/mdparse"
)

// Font sizes in half-points.
const (
	sizeTitle    = 56
	sizeSubtitle = 36
	sizeMeta     = 24
	sizeSection  = 32
	sizeBody     = 22
	sizeTable    = 20
	sizeCode     = 18
	sizeHeader   = 18
)

var headingSizes = [...]int{0, 36, 32, 28, 26, 24}

// Colours as RRGGBB.
const (
	colorRequirementHeader = "1F4E79"
	colorHeaderText        = "FFFFFF"
	colorTableHeader       = "D9E2F3"
	colorLabelCell         = "F2F2F2"
	colorCodeShade         = "F5F5F5"
	colorQuote             = "595959"
)

// IsCJK reports whether r is a CJK Unified Ideograph.
func IsCJK(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// HasCJK reports whether s contains any CJK Unified Ideograph.
func HasCJK(s string) bool {
	for _, r := range s {
		if IsCJK(r) {
			return true
		}
	}
	return false
}

type runStyle struct {
	size  int
	bold  bool
	mono  bool
	color string
	shade string
}

// addText appends a run, picking the font by script: monospace text keeps the
// code font, text containing CJK ideographs uses the CJK font for every slot,
// anything else uses the Latin font with the CJK font as East Asian fallback.
func (r *Renderer) addText(p *docx.Paragraph, text string, st runStyle) *docx.Run {
	run := p.AddText(text)
	if st.size > 0 {
		run.Size(strconv.Itoa(st.size))
	}
	switch {
	case st.mono:
		run.Font(r.fonts.Mono, r.fonts.CJK, r.fonts.Mono, "")
	case HasCJK(text):
		run.Font(r.fonts.CJK, r.fonts.CJK, r.fonts.CJK, "eastAsia")
	default:
		run.Font(r.fonts.Latin, r.fonts.CJK, r.fonts.Latin, "")
	}
	if st.bold {
		run.Bold()
	}
	if st.color != "" {
		run.Color(st.color)
	}
	if st.shade != "" {
		run.Shade("clear", "auto", st.shade)
	}
	return run
}

// addInline writes parsed inline runs with base as the default style.
func (r *Renderer) addInline(p *docx.Paragraph, runs []mdparse.InlineRun, base runStyle) {
	for _, in := range runs {
		st := base
		st.bold = st.bold || in.Bold
		if in.Monospace {
			st.mono = true
			st.shade = colorCodeShade
		}
		r.addText(p, in.Text, st)
	}
}
