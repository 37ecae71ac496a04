package mdparse

import (
	"regexp"
	"strings"
)

var (
	fieldPattern     = regexp.MustCompile(`^(?:[-*]\s+)?\*\*([^*]+?)\*\*\s*(.*)$`)
	criterionPattern = regexp.MustCompile(`^[-*]\s+(?:\[[ xX]\]\s*)?(.*)$`)
)

// requirementName strips the separator between an ID and its name.
func requirementName(rest string) string {
	return strings.TrimSpace(strings.TrimLeft(rest, " \t:：-–—"))
}

// parseFieldLine recognises "**Label:** value" and "**Label**: value",
// with an ASCII or full-width colon.
func parseFieldLine(trimmed string) (label, value string, ok bool) {
	m := fieldPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", "", false
	}
	label, rest := strings.TrimSpace(m[1]), m[2]
	switch {
	case strings.HasSuffix(label, ":") || strings.HasSuffix(label, "："):
		label = strings.TrimSpace(strings.TrimRight(label, ":："))
	case strings.HasPrefix(rest, ":"):
		rest = rest[len(":"):]
	case strings.HasPrefix(rest, "："):
		rest = rest[len("："):]
	default:
		return "", "", false
	}
	if label == "" {
		return "", "", false
	}
	return label, strings.TrimSpace(rest), true
}

// scanRequirement consumes the lines of a requirement record. The record
// ends before a heading, a code fence, a table row or a line that belongs to
// no field (all left unread), or at a horizontal rule (consumed).
func (s *scanner) scanRequirement(id, name string) *RequirementRecord {
	rec := &RequirementRecord{ID: id, Name: name}
	active := -1
	inCriteria := false

	for !s.done() {
		trimmed := strings.TrimSpace(s.peek())
		if anyHeadingPattern.MatchString(trimmed) ||
			fencePattern.MatchString(trimmed) ||
			isTableRow(trimmed) {
			break
		}
		if rulePattern.MatchString(trimmed) {
			s.pos++
			break
		}
		if trimmed == "" {
			s.pos++
			continue
		}

		// Inside the criteria list every bullet is a criterion, even one
		// that starts with a bold label.
		if inCriteria {
			if m := criterionPattern.FindStringSubmatch(trimmed); m != nil {
				s.pos++
				if c := strings.TrimSpace(m[1]); c != "" {
					rec.AcceptanceCriteria = append(rec.AcceptanceCriteria, c)
				}
				continue
			}
		}

		if label, value, ok := parseFieldLine(trimmed); ok {
			s.pos++
			key := LookupField(label)
			if key == FieldAcceptanceCriteria {
				inCriteria, active = true, -1
				if value != "" {
					rec.AcceptanceCriteria = append(rec.AcceptanceCriteria, value)
				}
				continue
			}
			inCriteria = false
			active = rec.set(Field{Key: key, Label: label, Value: value})
			continue
		}

		// Prose after the criteria list, or before any field, is body text.
		if active < 0 {
			break
		}
		s.pos++
		f := &rec.Fields[active]
		if f.Value == "" {
			f.Value = trimmed
		} else {
			f.Value += "\n" + trimmed
		}
	}
	return rec
}
