package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// DefaultLogName is the JSON error log written next to the project on failure.
const DefaultLogName = "validation-errors.json"

// DefaultViews returns the top-level views whose screen counts must agree.
func DefaultViews() []string {
	return []string{"index.html", "flow.html", "screens.html"}
}

// Reasons a reference is reported.
const (
	ReasonNotFound       = "not found"
	ReasonOutsideProject = "outside project"
)

// MissingRef is a reference whose target does not exist.
type MissingRef struct {
	Source string `json:"source"` // referencing file, relative to the project
	Ref    string `json:"ref"`    // reference as written
	Target string `json:"target"` // resolved target, relative to the project
	Reason string `json:"reason"`
}

// ScreenCount is the number of distinct iframe targets in one view.
type ScreenCount struct {
	View    string `json:"view"`
	Screens int    `json:"screens"`
	Present bool   `json:"present"`
}

// IframeReport is the result of CheckIframes.
type IframeReport struct {
	RunID        string        `json:"runId"`
	Timestamp    time.Time     `json:"timestamp"`
	Project      string        `json:"project"`
	Pages        int           `json:"pages"`
	Missing      []MissingRef  `json:"missing"`
	ScreenCounts []ScreenCount `json:"screenCounts"`
	CountsMatch  bool          `json:"countsMatch"`
	Passed       bool          `json:"passed"`
}

// IframeOptions configures CheckIframes.
type IframeOptions struct {
	Views []string         // default DefaultViews()
	Now   func() time.Time // default time.Now
}

// CheckIframes crawls every *.html file under project, checks that each
// relative iframe source and HTML page link resolves to an existing file, and
// compares the screen counts of the configured views.
//
// Views that do not exist are listed with Present false and left out of the
// comparison. The report passes when nothing is missing and every present
// view shows the same count.
func CheckIframes(ctx context.Context, project string, opts IframeOptions) (*IframeReport, error) {
	root, err := projectRoot(project)
	if err != nil {
		return nil, err
	}
	views := opts.Views
	if len(views) == 0 {
		views = DefaultViews()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	report := &IframeReport{
		RunID:     uuid.NewString(),
		Timestamp: now().UTC(),
		Project:   root,
		Missing:   []MissingRef{},
	}

	pages, err := findFiles(ctx, root, isHTMLPath)
	if err != nil {
		return nil, err
	}
	report.Pages = len(pages)

	for _, page := range pages {
		refs, err := readRefs(page)
		if err != nil {
			return nil, err
		}
		for _, ref := range append(refs.Iframes, refs.Links...) {
			if m, ok := checkRef(root, page, ref); !ok {
				report.Missing = append(report.Missing, m)
			}
		}
	}

	for _, view := range views {
		count, err := screenCount(root, view)
		if err != nil {
			return nil, err
		}
		report.ScreenCounts = append(report.ScreenCounts, count)
	}
	report.CountsMatch = countsAgree(report.ScreenCounts)
	report.Passed = len(report.Missing) == 0 && report.CountsMatch
	return report, nil
}

func readRefs(page string) (pageRefs, error) {
	f, err := os.Open(page) // #nosec G304 -- page found by walking the project
	if err != nil {
		return pageRefs{}, err
	}
	defer func() { _ = f.Close() }()

	refs, err := parseRefs(f)
	if err != nil {
		return pageRefs{}, fmt.Errorf("%w: %s: %v", ErrParseHTML, page, err)
	}
	return refs, nil
}

func checkRef(root, from, ref string) (MissingRef, bool) {
	target, inside := resolveRef(root, from, ref)
	m := MissingRef{
		Source: relSlash(root, from),
		Ref:    ref,
		Target: relSlash(root, target),
	}
	switch {
	case !inside:
		m.Reason = ReasonOutsideProject
		return m, false
	case !fileutil.FileExists(target):
		m.Reason = ReasonNotFound
		return m, false
	}
	return m, true
}

// screenCount counts the distinct iframe targets of one view.
func screenCount(root, view string) (ScreenCount, error) {
	c := ScreenCount{View: view}
	path := filepath.Join(root, filepath.FromSlash(view))
	if !fileutil.FileExists(path) {
		return c, nil
	}
	c.Present = true

	refs, err := readRefs(path)
	if err != nil {
		return c, err
	}
	seen := make(map[string]bool, len(refs.Iframes))
	for _, ref := range refs.Iframes {
		target, _ := resolveRef(root, path, ref)
		seen[relSlash(root, target)] = true
	}
	c.Screens = len(seen)
	return c, nil
}

func countsAgree(counts []ScreenCount) bool {
	want := -1
	for _, c := range counts {
		if !c.Present {
			continue
		}
		if want < 0 {
			want = c.Screens
		} else if c.Screens != want {
			return false
		}
	}
	return true
}

// WriteLog writes the report as indented JSON to path.
func WriteLog(path string, report *IframeReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteLog, err)
	}
	if err := fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteLog, err)
	}
	return nil
}

// RemoveLog deletes a log left by an earlier failed run.
func RemoveLog(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrWriteLog, err)
	}
	return nil
}

func projectRoot(project string) (string, error) {
	if project == "" {
		project = "."
	}
	root, err := filepath.Abs(project)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProjectNotFound, err)
	}
	if !fileutil.DirExists(root) {
		return "", fmt.Errorf("%w: %s", ErrProjectNotFound, project)
	}
	return root, nil
}

// skippedDirs are never crawled.
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// findFiles walks root and returns the files accepted by match, sorted.
func findFiles(ctx context.Context, root string, match func(string) bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if match(d.Name()) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
