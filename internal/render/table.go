package render

import (
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/mattn/go-runewidth"

	"github.com/alnah/go-md2docx/internal/mdparse"
)

// ColumnWeights returns the display width of the widest cell in each
// column, header included. CJK characters count as two cells. Every weight
// is at least 1.
func ColumnWeights(t *mdparse.Table) []int {
	weights := make([]int, t.Columns())
	measure := func(row []string) {
		for i, cell := range row {
			weights[i] = max(weights[i], runewidth.StringWidth(cell))
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	for i := range weights {
		weights[i] = max(weights[i], 1)
	}
	return weights
}

func (r *Renderer) table(t *mdparse.Table) {
	cols := t.Columns()
	if cols == 0 {
		return
	}
	r.flushBreak()

	widths := ColumnWidths(ColumnWeights(t), ContentWidth, MinColumnWidth)
	tbl := r.w.AddTableTwips(make([]int64, len(t.Rows)+1), widths, ContentWidth, nil)

	for i, row := range tbl.TableRows {
		src := t.Headers
		if i > 0 {
			src = t.Rows[i-1]
		}
		for j, cell := range row.TableCells {
			text := ""
			if j < len(src) {
				text = src[j]
			}
			st := runStyle{size: sizeTable}
			if i == 0 {
				cell.Shade("clear", "auto", colorTableHeader)
				st.bold = true
			}
			r.addInline(cell.AddParagraph(), mdparse.ParseInline(text), st)
		}
	}
}

// FieldOrder returns the populated fields of rec in display order:
// description, rationale, priority, safety class, any other fields in source
// order, then verification.
func FieldOrder(rec *mdparse.RequirementRecord) []mdparse.Field {
	rank := func(k mdparse.FieldKey) int {
		switch k {
		case mdparse.FieldDescription:
			return 0
		case mdparse.FieldRationale:
			return 1
		case mdparse.FieldPriority:
			return 2
		case mdparse.FieldSafetyClass:
			return 3
		case mdparse.FieldVerification:
			return 5
		}
		return 4
	}

	var out []mdparse.Field
	for want := 0; want <= 5; want++ {
		for _, f := range rec.Fields {
			if rank(f.Key) == want && strings.TrimSpace(f.Value) != "" {
				out = append(out, f)
			}
		}
	}
	return out
}

func (r *Renderer) requirement(rec *mdparse.RequirementRecord) {
	r.flushBreak()

	fields := FieldOrder(rec)
	rows := 1 + len(fields)
	if len(rec.AcceptanceCriteria) > 0 {
		rows++
	}
	widths := []int64{requirementLabelWidth, ContentWidth - requirementLabelWidth}
	tbl := r.w.AddTableTwips(make([]int64, rows), widths, ContentWidth, nil)

	head := tbl.TableRows[0].TableCells
	header := runStyle{size: sizeTable, bold: true, color: colorHeaderText}
	head[0].Shade("clear", "auto", colorRequirementHeader)
	head[1].Shade("clear", "auto", colorRequirementHeader)
	r.addText(head[0].AddParagraph(), rec.ID, header)
	r.addText(head[1].AddParagraph(), rec.Name, header)

	for i, f := range fields {
		cells := tbl.TableRows[i+1].TableCells
		r.labelCell(cells[0], r.labels.Field(f))
		for _, line := range strings.Split(f.Value, "\n") {
			r.addInline(cells[1].AddParagraph(), mdparse.ParseInline(line), runStyle{size: sizeTable})
		}
	}

	if len(rec.AcceptanceCriteria) > 0 {
		cells := tbl.TableRows[rows-1].TableCells
		r.labelCell(cells[0], r.labels.AcceptanceCriteria)
		for _, c := range rec.AcceptanceCriteria {
			p := cells[1].AddParagraph()
			r.addText(p, "• ", runStyle{size: sizeTable})
			r.addInline(p, mdparse.ParseInline(c), runStyle{size: sizeTable})
		}
	}

	// Keeps consecutive requirement tables from merging into one.
	r.w.AddParagraph()
}

func (r *Renderer) labelCell(cell *docx.WTableCell, label string) {
	cell.Shade("clear", "auto", colorLabelCell)
	r.addText(cell.AddParagraph(), label, runStyle{size: sizeTable, bold: true})
}
