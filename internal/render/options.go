package render

import (
	"github.com/rs/zerolog"

	"github.com/alnah/go-md2docx/internal/mdparse"
	"github.com/alnah/go-md2docx/internal/mermaid"
)

// Options control a single Render call.
type Options struct {
	Title      string // header text; falls back to the cover title
	Fonts      Fonts
	Labels     Labels
	Rasterizer mermaid.Rasterizer // nil renders diagrams as source text
	Highlight  bool               // colour code blocks with chroma
	Logger     *zerolog.Logger    // nil = discard
}

// Fonts names the typefaces used for Latin, CJK and monospace text.
type Fonts struct {
	Latin string
	CJK   string
	Mono  string
}

// DefaultFonts returns the fonts used when none are configured.
func DefaultFonts() Fonts {
	return Fonts{Latin: "Calibri", CJK: "SimSun", Mono: "Consolas"}
}

func (f Fonts) withDefaults() Fonts {
	d := DefaultFonts()
	if f.Latin == "" {
		f.Latin = d.Latin
	}
	if f.CJK == "" {
		f.CJK = d.CJK
	}
	if f.Mono == "" {
		f.Mono = d.Mono
	}
	return f
}

// Labels holds every fixed string the renderer writes.
type Labels struct {
	Version            string
	Author             string
	Organization       string
	Date               string
	TOCTitle           string
	TOCHint            string
	RevisionTitle      string
	Description        string
	Rationale          string
	Priority           string
	SafetyClass        string
	Verification       string
	AcceptanceCriteria string
	// Footer reads PagePrefix N PageInfix M PageSuffix.
	PagePrefix string
	PageInfix  string
	PageSuffix string
}

// DefaultLabels returns English labels.
func DefaultLabels() Labels {
	return Labels{
		Version:            "Version",
		Author:             "Author",
		Organization:       "Organization",
		Date:               "Date",
		TOCTitle:           "Table of Contents",
		TOCHint:            "Right-click here and choose Update Field to build the table of contents.",
		RevisionTitle:      "Revision History",
		Description:        "Description",
		Rationale:          "Rationale",
		Priority:           "Priority",
		SafetyClass:        "Safety Class",
		Verification:       "Verification",
		AcceptanceCriteria: "Acceptance Criteria",
		PagePrefix:         "Page ",
		PageInfix:          " of ",
	}
}

// ChineseLabels returns Simplified Chinese labels.
func ChineseLabels() Labels {
	return Labels{
		Version:            "版本",
		Author:             "作者",
		Organization:       "单位",
		Date:               "日期",
		TOCTitle:           "目录",
		TOCHint:            "右键单击此处并选择“更新域”以生成目录。",
		RevisionTitle:      "修订历史",
		Description:        "描述",
		Rationale:          "理由",
		Priority:           "优先级",
		SafetyClass:        "安全等级",
		Verification:       "验证方法",
		AcceptanceCriteria: "验收标准",
		PagePrefix:         "第 ",
		PageInfix:          " 页，共 ",
		PageSuffix:         " 页",
	}
}

// LabelsFor returns the label set for a language tag ("en", "zh").
// Unknown tags get English.
func LabelsFor(lang string) Labels {
	switch lang {
	case "zh", "zh-CN", "zh-Hans", "cn":
		return ChineseLabels()
	}
	return DefaultLabels()
}

// Merge fills the empty fields of l from base.
func (l Labels) Merge(base Labels) Labels {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&l.Version, base.Version)
	fill(&l.Author, base.Author)
	fill(&l.Organization, base.Organization)
	fill(&l.Date, base.Date)
	fill(&l.TOCTitle, base.TOCTitle)
	fill(&l.TOCHint, base.TOCHint)
	fill(&l.RevisionTitle, base.RevisionTitle)
	fill(&l.Description, base.Description)
	fill(&l.Rationale, base.Rationale)
	fill(&l.Priority, base.Priority)
	fill(&l.SafetyClass, base.SafetyClass)
	fill(&l.Verification, base.Verification)
	fill(&l.AcceptanceCriteria, base.AcceptanceCriteria)
	// Page strings may be legitimately empty, so they are only taken from
	// base as a group.
	if l.PagePrefix == "" && l.PageInfix == "" && l.PageSuffix == "" {
		l.PagePrefix, l.PageInfix, l.PageSuffix = base.PagePrefix, base.PageInfix, base.PageSuffix
	}
	return l
}

// Field returns the display label for a requirement field. Unrecognised
// fields keep the label written in the source.
func (l Labels) Field(f mdparse.Field) string {
	switch f.Key {
	case mdparse.FieldDescription:
		return l.Description
	case mdparse.FieldRationale:
		return l.Rationale
	case mdparse.FieldPriority:
		return l.Priority
	case mdparse.FieldSafetyClass:
		return l.SafetyClass
	case mdparse.FieldVerification:
		return l.Verification
	case mdparse.FieldAcceptanceCriteria:
		return l.AcceptanceCriteria
	}
	return f.Label
}
