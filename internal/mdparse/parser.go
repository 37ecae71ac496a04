package mdparse

import (
	"regexp"
	"strings"
)

var (
	fencePattern       = regexp.MustCompile("^```\\s*([^`\\s]*)\\s*$")
	headingPattern     = regexp.MustCompile(`^(#{1,5})(?:\s+(.*?))?\s*$`)
	anyHeadingPattern  = regexp.MustCompile(`^#{1,5}\s`)
	closingHashes      = regexp.MustCompile(`\s+#+$`)
	rulePattern        = regexp.MustCompile(`^(?:-[ \t]*){3,}$|^(?:\*[ \t]*){3,}$`)
	requirementPattern = regexp.MustCompile(`^((?:SRS|SWD|SDD|STC|REQ)-[A-Za-z0-9_]+-\d+)\b(.*)$`)
	bulletPattern      = regexp.MustCompile(`^(\s*)[-*+]\s+(.*)$`)
	quotePattern       = regexp.MustCompile(`^\s*>\s?(.*)$`)
)

// scanner walks source lines once. Every Parse call owns its scanner;
// nothing is shared between calls.
type scanner struct {
	lines []string
	pos   int
}

func newScanner(lines []string) *scanner {
	return &scanner{lines: lines}
}

func (s *scanner) done() bool { return s.pos >= len(s.lines) }

func (s *scanner) peek() string { return s.lines[s.pos] }

func (s *scanner) next() string {
	line := s.lines[s.pos]
	s.pos++
	return line
}

// Parse turns Markdown source into blocks. It never fails: anything it does
// not recognise becomes paragraph text.
func Parse(source string) []Block {
	return parseLines(splitLines(source))
}

func parseLines(lines []string) []Block {
	s := newScanner(lines)
	var blocks []Block
	for !s.done() {
		if b := s.scanBlock(); b != nil {
			blocks = append(blocks, b)
		}
	}
	planPageBreaks(blocks)
	return blocks
}

// splitLines normalizes line endings and splits on newlines.
func splitLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	return strings.Split(source, "\n")
}

// scanBlock consumes one or more lines and returns the block they form,
// or nil for blank lines and rules.
func (s *scanner) scanBlock() Block {
	line := s.next()
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		return nil
	case fencePattern.MatchString(trimmed):
		return s.scanCode(fencePattern.FindStringSubmatch(trimmed)[1])
	case isTableRow(trimmed):
		return s.scanTable(trimmed)
	case rulePattern.MatchString(trimmed):
		return nil
	}

	if level, text, ok := parseHeading(trimmed); ok {
		if text == "" {
			return nil
		}
		if level >= 3 {
			if m := requirementPattern.FindStringSubmatch(text); m != nil {
				return s.scanRequirement(m[1], requirementName(m[2]))
			}
		}
		return &Heading{Level: level, Text: text}
	}

	return newParagraph(line)
}

// parseHeading recognises "# text" through "##### text".
func parseHeading(trimmed string) (level int, text string, ok bool) {
	m := headingPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return 0, "", false
	}
	text = closingHashes.ReplaceAllString(m[2], "")
	if strings.Trim(text, "#") == "" {
		text = ""
	}
	return len(m[1]), strings.TrimSpace(text), true
}

// scanCode collects lines up to the closing fence. An unterminated fence
// ends at the last line.
func (s *scanner) scanCode(lang string) *CodeBlock {
	var body []string
	for !s.done() {
		line := s.next()
		if strings.TrimSpace(line) == "```" {
			break
		}
		body = append(body, line)
	}
	return &CodeBlock{Language: lang, Text: strings.Join(body, "\n")}
}

func newParagraph(line string) *Paragraph {
	p := &Paragraph{}
	text := strings.TrimSpace(line)
	if m := bulletPattern.FindStringSubmatch(line); m != nil {
		p.List = ListBullet
		p.Indent = indentLevel(m[1])
		text = strings.TrimSpace(m[2])
	} else if m := quotePattern.FindStringSubmatch(line); m != nil {
		p.List = ListQuote
		text = strings.TrimSpace(m[1])
	}
	p.Runs = ParseInline(text)
	return p
}

// indentLevel converts leading whitespace to a list nesting level.
func indentLevel(prefix string) int {
	w := 0
	for _, r := range prefix {
		if r == '\t' {
			w += 4
			continue
		}
		w++
	}
	return w / 2
}
