package mdparse

import "strings"

// isTableRow reports whether a trimmed line is pipe-delimited on both ends.
func isTableRow(trimmed string) bool {
	return len(trimmed) >= 2 && trimmed[0] == '|' && trimmed[len(trimmed)-1] == '|'
}

// isSeparatorRow matches "|---|:--:|" style rows.
func isSeparatorRow(trimmed string) bool {
	return strings.Contains(trimmed, "-") && strings.Trim(trimmed, "|-: \t") == ""
}

// scanTable reads the header row already consumed by the caller and every
// following pipe row. The first non-pipe line is left for the next scan.
func (s *scanner) scanTable(header string) *Table {
	t := &Table{Headers: splitRow(header)}
	for !s.done() {
		trimmed := strings.TrimSpace(s.peek())
		if !isTableRow(trimmed) {
			break
		}
		s.pos++
		if isSeparatorRow(trimmed) {
			continue
		}
		t.Rows = append(t.Rows, splitRow(trimmed))
	}
	return t
}

// splitRow splits a pipe row into trimmed cells. "\|" stays inside a cell.
func splitRow(trimmed string) []string {
	inner := trimmed[1 : len(trimmed)-1]
	var (
		cells []string
		cell  strings.Builder
	)
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		switch {
		case c == '\\' && i+1 < len(inner) && inner[i+1] == '|':
			cell.WriteByte('|')
			i++
		case c == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(c)
		}
	}
	return append(cells, strings.TrimSpace(cell.String()))
}
