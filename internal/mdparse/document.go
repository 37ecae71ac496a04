package mdparse

import (
	"regexp"
	"strings"
)

var (
	numberedHeading = regexp.MustCompile(`^#{1,5}\s+\d+[.\s]`)
	plainMetaLine   = regexp.MustCompile(`^([^:：*|#\[]{1,40}?)\s*[:：]\s*(.+)$`)
)

// ParseDocument splits a regulatory document into its preamble (cover
// metadata), source table of contents, revision history and body.
//
// The preamble is everything before the table-of-contents marker. Without a
// marker the whole source is body and only the title is taken from the first
// level-1 heading.
func ParseDocument(source string) *Document {
	lines := splitLines(source)
	doc := &Document{}

	marker := findTOCMarker(lines)
	if marker < 0 {
		doc.Cover.Title = firstTitle(lines)
		doc.Body = parseLines(lines)
		return doc
	}

	doc.Cover = parsePreamble(lines[:marker])
	rest := lines[marker+1:]

	i := 0
	for ; i < len(rest); i++ {
		trimmed := strings.TrimSpace(rest[i])
		if _, _, ok := parseHeading(trimmed); ok {
			break
		}
		if trimmed != "" && !rulePattern.MatchString(trimmed) {
			doc.TOCLines = append(doc.TOCLines, trimmed)
		}
	}

	if i < len(rest) && isRevisionHeading(rest[i]) {
		i++
		for i < len(rest) {
			trimmed := strings.TrimSpace(rest[i])
			if isTableRow(trimmed) {
				s := &scanner{lines: rest, pos: i + 1}
				doc.Revision = s.scanTable(trimmed)
				i = s.pos
				break
			}
			if _, _, ok := parseHeading(trimmed); ok {
				break
			}
			i++
		}
	}

	doc.Body = parseLines(rest[i:])
	return doc
}

// markerText strips heading hashes and emphasis so "## **目录**" compares as "目录".
func markerText(line string) string {
	t := strings.TrimSpace(line)
	t = strings.TrimLeft(t, "#")
	return strings.Trim(strings.TrimSpace(t), "*_ ")
}

// findTOCMarker returns the index of the table-of-contents marker line, or
// -1. The search stops at the first numbered heading: a marker after the body
// has started is an ordinary line.
func findTOCMarker(lines []string) int {
	inCode := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if fencePattern.MatchString(trimmed) || (inCode && trimmed == "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		if numberedHeading.MatchString(trimmed) {
			return -1
		}
		if t := markerText(trimmed); t != "" {
			if _, ok := tocMarkers.lookup(t); ok {
				return i
			}
		}
	}
	return -1
}

func isRevisionHeading(line string) bool {
	_, text, ok := parseHeading(strings.TrimSpace(line))
	if !ok {
		return false
	}
	_, found := revisionMarkers.lookup(strings.Trim(text, "*_ "))
	return found
}

func firstTitle(lines []string) string {
	for _, line := range lines {
		if level, text, ok := parseHeading(strings.TrimSpace(line)); ok && level == 1 {
			return stripEmphasis(text)
		}
	}
	return ""
}

// parsePreamble reads cover metadata: the first H1 is the title, the first
// H2 the subtitle, and "Label: value" lines, bold-labelled lines or two-cell
// table rows fill the remaining slots.
func parsePreamble(lines []string) CoverInfo {
	var c CoverInfo
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || rulePattern.MatchString(trimmed) {
			continue
		}
		if level, text, ok := parseHeading(trimmed); ok {
			switch {
			case level == 1 && c.Title == "":
				c.Title = stripEmphasis(text)
			case level == 2 && c.Subtitle == "":
				c.Subtitle = stripEmphasis(text)
			}
			continue
		}
		if isTableRow(trimmed) {
			if cells := splitRow(trimmed); len(cells) == 2 {
				setCover(&c, stripEmphasis(cells[0]), stripEmphasis(cells[1]))
			}
			continue
		}
		if label, value, ok := parseMetaLine(trimmed); ok && value != "" {
			setCover(&c, label, value)
		}
	}
	return c
}

// parseMetaLine accepts "**Version:** 1.0", "- Version: 1.0" and
// "Version: 1.0".
func parseMetaLine(trimmed string) (label, value string, ok bool) {
	if label, value, ok := parseFieldLine(trimmed); ok {
		return label, stripEmphasis(value), true
	}
	if m := bulletPattern.FindStringSubmatch(trimmed); m != nil {
		trimmed = strings.TrimSpace(m[2])
	}
	m := plainMetaLine.FindStringSubmatch(trimmed)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), stripEmphasis(m[2]), true
}

func stripEmphasis(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "*_"))
}
