package validate

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// LinkReport is the result of CheckMarkdownLinks.
type LinkReport struct {
	Project string       `json:"project"`
	Files   int          `json:"files"`
	Links   int          `json:"links"`
	Missing []MissingRef `json:"missing"`
}

// Passed reports whether every relative link resolved.
func (r *LinkReport) Passed() bool { return len(r.Missing) == 0 }

// CheckMarkdownLinks parses every *.md file under project and checks that
// relative link and image destinations exist. Directories count as existing
// targets; pure anchors are ignored.
func CheckMarkdownLinks(ctx context.Context, project string) (*LinkReport, error) {
	root, err := projectRoot(project)
	if err != nil {
		return nil, err
	}
	files, err := findFiles(ctx, root, isMarkdownPath)
	if err != nil {
		return nil, err
	}

	report := &LinkReport{Project: root, Files: len(files), Missing: []MissingRef{}}
	md := goldmark.New()

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := os.ReadFile(file) // #nosec G304 -- file found by walking the project
		if err != nil {
			return nil, err
		}
		for _, dest := range linkDestinations(md, src) {
			report.Links++
			target, inside := resolveRef(root, file, dest)
			m := MissingRef{Source: relSlash(root, file), Ref: dest, Target: relSlash(root, target)}
			switch {
			case !inside:
				m.Reason = ReasonOutsideProject
			case !fileutil.FileExists(target) && !fileutil.DirExists(target):
				m.Reason = ReasonNotFound
			default:
				continue
			}
			report.Missing = append(report.Missing, m)
		}
	}
	return report, nil
}

// linkDestinations returns the relative link and image destinations of a
// Markdown document, in source order.
func linkDestinations(md goldmark.Markdown, src []byte) []string {
	doc := md.Parser().Parse(text.NewReader(src))

	var dests []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var dest string
		switch n := n.(type) {
		case *ast.Link:
			dest = string(n.Destination)
		case *ast.Image:
			dest = string(n.Destination)
		default:
			return ast.WalkContinue, nil
		}
		if isRelativePath(dest) && stripSuffixes(dest) != "" {
			dests = append(dests, dest)
		}
		return ast.WalkContinue, nil
	})
	return dests
}

func isMarkdownPath(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
