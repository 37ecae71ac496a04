package mdparse

import (
	"regexp"
	"sort"
)

var (
	boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)
	codePattern = regexp.MustCompile("`([^`]+)`")
)

type span struct {
	start, end int // whole match, including markers
	text       string
	bold       bool
	mono       bool
}

// ParseInline splits a line into plain, bold and monospace runs.
// Bold and code matches are found independently, ordered by start offset and
// taken left to right; a match overlapping an earlier one is dropped and its
// markers stay literal.
func ParseInline(line string) []InlineRun {
	var spans []span
	for _, m := range boldPattern.FindAllStringSubmatchIndex(line, -1) {
		spans = append(spans, span{start: m[0], end: m[1], text: line[m[2]:m[3]], bold: true})
	}
	for _, m := range codePattern.FindAllStringSubmatchIndex(line, -1) {
		spans = append(spans, span{start: m[0], end: m[1], text: line[m[2]:m[3]], mono: true})
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var runs []InlineRun
	pos := 0
	for _, s := range spans {
		if s.start < pos {
			continue
		}
		if s.start > pos {
			runs = append(runs, InlineRun{Text: line[pos:s.start]})
		}
		runs = append(runs, InlineRun{Text: s.text, Bold: s.bold, Monospace: s.mono})
		pos = s.end
	}
	if pos < len(line) {
		runs = append(runs, InlineRun{Text: line[pos:]})
	}
	return runs
}
