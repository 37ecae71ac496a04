package mdparse

import "regexp"

var mainSectionPattern = regexp.MustCompile(`^\d+[.\s]`)

// IsMainSection reports whether h is a numbered level-2 heading such as
// "1. Introduction".
func IsMainSection(h *Heading) bool {
	return h.Level == 2 && mainSectionPattern.MatchString(h.Text)
}

// planPageBreaks sets PageBreakBefore on headings.
//
// Headings are grouped into maximal runs with no content between them. Only
// the first heading of a group may break: always for level 1 and main
// sections, and for levels 3 and 4 when the group holds more than one
// heading. A lone sub-heading never forces a break.
func planPageBreaks(blocks []Block) {
	for i := 0; i < len(blocks); {
		first, ok := blocks[i].(*Heading)
		if !ok {
			i++
			continue
		}
		j := i + 1
		for ; j < len(blocks); j++ {
			h, ok := blocks[j].(*Heading)
			if !ok {
				break
			}
			h.PageBreakBefore = false
		}
		first.PageBreakBefore = breaksBefore(first, j-i)
		i = j
	}
}

func breaksBefore(h *Heading, groupSize int) bool {
	switch {
	case h.Level == 1:
		return true
	case IsMainSection(h):
		return true
	case groupSize > 1 && h.Level >= 3 && h.Level <= 4:
		return true
	}
	return false
}
