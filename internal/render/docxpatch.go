package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Package part names and OOXML identifiers.
const (
	partContentTypes = "[Content_Types].xml"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partSettings     = "word/settings.xml"
	partHeader       = "word/md2docx-header.xml"
	partFooter       = "word/md2docx-footer.xml"

	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	relTypeBase  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	ctWordprefix = "application/vnd.openxmlformats-officedocument.wordprocessingml."

	// Relationship IDs must be numeric for go-docx to read the package back,
	// and stay clear of the ones it allocates from rId1 upwards.
	relIDHeader   = "rId9001"
	relIDFooter   = "rId9002"
	relIDSettings = "rId9003"
	relIDStyles   = "rId9004"
)

// packagePatch is everything the post-processing pass needs.
type packagePatch struct {
	Title  string
	Fonts  Fonts
	Labels Labels
}

// zipPackage is an in-memory DOCX package that keeps the original entry order.
type zipPackage struct {
	names []string
	parts map[string][]byte
}

func readPackage(data []byte) (*zipPackage, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackage, err)
	}
	pkg := &zipPackage{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrPackage, f.Name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrPackage, f.Name, err)
		}
		pkg.names = append(pkg.names, f.Name)
		pkg.parts[f.Name] = content
	}
	return pkg, nil
}

func (p *zipPackage) get(name string) (string, bool) {
	b, ok := p.parts[name]
	return string(b), ok
}

func (p *zipPackage) set(name, content string) {
	if _, ok := p.parts[name]; !ok {
		p.names = append(p.names, name)
	}
	p.parts[name] = []byte(content)
}

func (p *zipPackage) bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range p.names {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWrite, err)
		}
		if _, err := w.Write(p.parts[name]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return buf.Bytes(), nil
}

// addPart registers a new part with its content type override and a
// relationship from the main document.
func (p *zipPackage) addPart(name, contentType, relType, relID, content string) error {
	p.set(name, content)

	types, ok := p.get(partContentTypes)
	if !ok {
		return fmt.Errorf("%w: missing %s", ErrPackage, partContentTypes)
	}
	override := fmt.Sprintf(`<Override PartName="/%s" ContentType="%s"/>`, name, contentType)
	if !strings.Contains(types, `PartName="/`+name+`"`) {
		types, ok = insertBefore(types, "</Types>", override)
		if !ok {
			return fmt.Errorf("%w: %s has no </Types>", ErrPackage, partContentTypes)
		}
		p.set(partContentTypes, types)
	}

	rels, ok := p.get(partDocumentRels)
	if !ok {
		rels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`
	}
	target := strings.TrimPrefix(name, "word/")
	rel := fmt.Sprintf(`<Relationship Id="%s" Type="%s%s" Target="%s"/>`, relID, relTypeBase, relType, target)
	rels, ok = insertBefore(rels, "</Relationships>", rel)
	if !ok {
		return fmt.Errorf("%w: %s has no </Relationships>", ErrPackage, partDocumentRels)
	}
	p.set(partDocumentRels, rels)
	return nil
}

// patchPackage adds the header, footer, TOC field, heading styles and the
// update-fields setting to a go-docx package.
func patchPackage(data []byte, patch packagePatch) ([]byte, error) {
	pkg, err := readPackage(data)
	if err != nil {
		return nil, err
	}
	doc, ok := pkg.get(partDocument)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrPackage, partDocument)
	}

	if err := pkg.addPart(partHeader, ctWordprefix+"header+xml", "header", relIDHeader, headerXML(patch)); err != nil {
		return nil, err
	}
	if err := pkg.addPart(partFooter, ctWordprefix+"footer+xml", "footer", relIDFooter, footerXML(patch)); err != nil {
		return nil, err
	}
	if err := ensureSettings(pkg); err != nil {
		return nil, err
	}
	if err := ensureHeadingStyles(pkg); err != nil {
		return nil, err
	}

	doc = declareRelNamespace(doc)
	doc = replaceTOCMarker(doc, patch.Labels.TOCHint)
	doc, err = setSectionProperties(doc)
	if err != nil {
		return nil, err
	}
	pkg.set(partDocument, doc)

	return pkg.bytes()
}

func insertBefore(s, marker, insert string) (string, bool) {
	i := strings.LastIndex(s, marker)
	if i < 0 {
		return s, false
	}
	return s[:i] + insert + s[i:], true
}

func escapeText(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func runXML(text string, fonts Fonts, size int) string {
	font := fonts.Latin
	if HasCJK(text) {
		font = fonts.CJK
	}
	return fmt.Sprintf(`<w:r><w:rPr><w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:eastAsia="%[2]s"/><w:sz w:val="%[3]d"/></w:rPr><w:t xml:space="preserve">%[4]s</w:t></w:r>`,
		escapeText(font), escapeText(fonts.CJK), size, escapeText(text))
}

func fieldXML(instr string, fonts Fonts, size int) string {
	return fmt.Sprintf(`<w:fldSimple w:instr=" %s ">%s</w:fldSimple>`, instr, runXML("1", fonts, size))
}

func headerXML(patch packagePatch) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:hdr xmlns:w="` + nsW + `" xmlns:r="` + nsR + `">` +
		`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>` + runXML(patch.Title, patch.Fonts, sizeHeader) + `</w:p>` +
		`</w:hdr>`
}

func footerXML(patch packagePatch) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:ftr xmlns:w="` + nsW + `" xmlns:r="` + nsR + `">`)
	b.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>`)
	if patch.Labels.PagePrefix != "" {
		b.WriteString(runXML(patch.Labels.PagePrefix, patch.Fonts, sizeHeader))
	}
	b.WriteString(fieldXML("PAGE", patch.Fonts, sizeHeader))
	if patch.Labels.PageInfix != "" {
		b.WriteString(runXML(patch.Labels.PageInfix, patch.Fonts, sizeHeader))
	}
	b.WriteString(fieldXML("NUMPAGES", patch.Fonts, sizeHeader))
	if patch.Labels.PageSuffix != "" {
		b.WriteString(runXML(patch.Labels.PageSuffix, patch.Fonts, sizeHeader))
	}
	b.WriteString(`</w:p></w:ftr>`)
	return b.String()
}

// declareRelNamespace adds xmlns:r to the document root when go-docx left
// it out; header and footer references need it.
func declareRelNamespace(doc string) string {
	start := strings.Index(doc, "<w:document")
	if start < 0 {
		return doc
	}
	end := strings.Index(doc[start:], ">")
	if end < 0 {
		return doc
	}
	end += start
	if strings.Contains(doc[start:end], "xmlns:r=") {
		return doc
	}
	return doc[:end] + ` xmlns:r="` + nsR + `"` + doc[end:]
}

// replaceTOCMarker swaps the placeholder paragraph for a dirty TOC field
// covering heading levels 1 to 4. The hint is the field result shown until
// the field is refreshed.
func replaceTOCMarker(doc, hint string) string {
	i := strings.Index(doc, tocMarker)
	if i < 0 {
		return doc
	}
	start := max(strings.LastIndex(doc[:i], "<w:p>"), strings.LastIndex(doc[:i], "<w:p "))
	end := strings.Index(doc[i:], "</w:p>")
	if start < 0 || end < 0 {
		return doc
	}
	end += i + len("</w:p>")

	field := `<w:p>` +
		`<w:r><w:fldChar w:fldCharType="begin" w:dirty="true"/></w:r>` +
		`<w:r><w:instrText xml:space="preserve"> TOC \o "1-4" \h \z \u </w:instrText></w:r>` +
		`<w:r><w:fldChar w:fldCharType="separate"/></w:r>` +
		`<w:r><w:rPr><w:i/></w:rPr><w:t xml:space="preserve">` + escapeText(hint) + `</w:t></w:r>` +
		`<w:r><w:fldChar w:fldCharType="end"/></w:r>` +
		`</w:p>`
	return doc[:start] + field + doc[end:]
}

// sectionXML sets A4 pages, 1-inch margins, the running header and footer,
// and a distinct (empty) first page so the cover carries neither.
var sectionXML = fmt.Sprintf(`<w:sectPr>`+
	`<w:headerReference w:type="default" r:id="%s"/>`+
	`<w:footerReference w:type="default" r:id="%s"/>`+
	`<w:pgSz w:w="%d" w:h="%d"/>`+
	`<w:pgMar w:top="%[5]d" w:right="%[5]d" w:bottom="%[5]d" w:left="%[5]d" w:header="720" w:footer="720" w:gutter="0"/>`+
	`<w:titlePg/>`+
	`</w:sectPr>`, relIDHeader, relIDFooter, PageWidth, PageHeight, PageMargin)

// setSectionProperties replaces the body-level sectPr, or adds one.
func setSectionProperties(doc string) (string, error) {
	bodyEnd := strings.LastIndex(doc, "</w:body>")
	if bodyEnd < 0 {
		return "", fmt.Errorf("%w: document has no </w:body>", ErrPackage)
	}
	head, tail := doc[:bodyEnd], doc[bodyEnd:]

	if i := strings.LastIndex(head, "<w:sectPr"); i >= 0 {
		rest := head[i:]
		var end int
		if j := strings.Index(rest, "</w:sectPr>"); j >= 0 {
			end = j + len("</w:sectPr>")
		} else if j := strings.Index(rest, "/>"); j >= 0 {
			end = j + len("/>")
		}
		// Only the final sectPr, directly before </w:body>, is the body's.
		if end > 0 && strings.TrimSpace(rest[end:]) == "" {
			return head[:i] + sectionXML + tail, nil
		}
	}
	return head + sectionXML + tail, nil
}

func ensureSettings(pkg *zipPackage) error {
	settings, ok := pkg.get(partSettings)
	if !ok {
		content := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:settings xmlns:w="` + nsW + `"><w:updateFields w:val="true"/></w:settings>`
		return pkg.addPart(partSettings, ctWordprefix+"settings+xml", "settings", relIDSettings, content)
	}
	if strings.Contains(settings, "<w:updateFields") {
		return nil
	}
	// updateFields must precede compat-related elements; right after the
	// root start tag satisfies the schema order for the settings we meet.
	start := strings.Index(settings, "<w:settings")
	if start < 0 {
		return fmt.Errorf("%w: settings part has no root", ErrPackage)
	}
	end := strings.Index(settings[start:], ">")
	if end < 0 {
		return fmt.Errorf("%w: settings part has no root", ErrPackage)
	}
	end += start + 1
	pkg.set(partSettings, settings[:end]+`<w:updateFields w:val="true"/>`+settings[end:])
	return nil
}

func headingStyleXML(level int) string {
	return fmt.Sprintf(`<w:style w:type="paragraph" w:styleId="Heading%[1]d">`+
		`<w:name w:val="heading %[1]d"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:uiPriority w:val="9"/><w:qFormat/>`+
		`<w:pPr><w:keepNext/><w:keepLines/><w:spacing w:before="%[2]d" w:after="120"/><w:outlineLvl w:val="%[3]d"/></w:pPr>`+
		`<w:rPr><w:b/><w:sz w:val="%[4]d"/></w:rPr>`+
		`</w:style>`, level, 360-40*level, level-1, headingSizes[level])
}

// ensureHeadingStyles defines Heading1..Heading5 with outline levels when
// the theme lacks them; the TOC field collects headings by outline level.
func ensureHeadingStyles(pkg *zipPackage) error {
	styles, ok := pkg.get(partStyles)
	if !ok {
		content := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:styles xmlns:w="` + nsW + `"></w:styles>`
		if err := pkg.addPart(partStyles, ctWordprefix+"styles+xml", "styles", relIDStyles, content); err != nil {
			return err
		}
		styles = content
	}

	var missing strings.Builder
	for level := 1; level < len(headingSizes); level++ {
		if !strings.Contains(styles, fmt.Sprintf(`w:styleId="Heading%d"`, level)) {
			missing.WriteString(headingStyleXML(level))
		}
	}
	if missing.Len() == 0 {
		return nil
	}
	styles, ok = insertBefore(styles, "</w:styles>", missing.String())
	if !ok {
		return fmt.Errorf("%w: styles part has no </w:styles>", ErrPackage)
	}
	pkg.set(partStyles, styles)
	return nil
}
