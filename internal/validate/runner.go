package validate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/process"
)

// Validator names, in run order before any scripts.
const (
	NameIframes       = "iframe-src"
	NameMarkdownLinks = "markdown-links"
)

// DefaultScriptTimeout bounds one external validator script.
const DefaultScriptTimeout = 2 * time.Minute

// Status is the outcome of one validator.
type Status string

const (
	StatusPassed  Status = "PASS"
	StatusFailed  Status = "FAIL"
	StatusSkipped Status = "SKIP"
)

// Outcome is what one validator reported.
type Outcome struct {
	Name    string
	Status  Status
	Detail  string       // skip reason, failure summary
	Missing []MissingRef // broken references, built-in validators only
	LogPath string       // JSON error log, when one was written
}

// Script is an external validator shipped with the project. Paths are
// relative to the project unless absolute.
type Script struct {
	Name string
	Path string
	Args []string
}

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// Suite runs the built-in validators followed by the project's scripts.
type Suite struct {
	Project       string
	Iframe        IframeOptions
	LogName       string // iframe error log name, default DefaultLogName
	Scripts       []Script
	Commands      CommandRunner
	ScriptTimeout time.Duration
	Logger        zerolog.Logger
}

// Run executes every validator and returns their outcomes in fixed order:
// iframe-src, markdown-links, then scripts as configured. The built-ins run
// concurrently. A missing script, or a built-in with nothing to check, is a
// skip. The error is non-nil only when ctx ends or the project is missing.
func (s *Suite) Run(ctx context.Context) ([]Outcome, error) {
	root, err := projectRoot(s.Project)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, 2, 2+len(s.Scripts))
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		o, err := s.runIframes(gctx, root)
		outcomes[0] = o
		return err
	})
	g.Go(func() error {
		o, err := s.runMarkdownLinks(gctx, root)
		outcomes[1] = o
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, script := range s.Scripts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, s.runScript(ctx, root, script))
	}
	return outcomes, nil
}

// Failed reports whether any executed validator failed.
func Failed(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Status == StatusFailed {
			return true
		}
	}
	return false
}

// RunIframes runs the iframe validator alone, writing or clearing the JSON
// error log.
func (s *Suite) RunIframes(ctx context.Context) (*IframeReport, string, error) {
	root, err := projectRoot(s.Project)
	if err != nil {
		return nil, "", err
	}
	return s.checkIframes(ctx, root)
}

func (s *Suite) checkIframes(ctx context.Context, root string) (*IframeReport, string, error) {
	report, err := CheckIframes(ctx, root, s.Iframe)
	if err != nil {
		return nil, "", err
	}
	name := s.LogName
	if name == "" {
		name = DefaultLogName
	}
	logPath := filepath.Join(root, name)
	if report.Passed {
		return report, "", RemoveLog(logPath)
	}
	if err := WriteLog(logPath, report); err != nil {
		return report, "", err
	}
	return report, logPath, nil
}

func (s *Suite) runIframes(ctx context.Context, root string) (Outcome, error) {
	o := Outcome{Name: NameIframes}
	pages, err := findFiles(ctx, root, isHTMLPath)
	if err != nil {
		return s.builtinError(ctx, o, err)
	}
	if len(pages) == 0 {
		o.Status, o.Detail = StatusSkipped, "no HTML files"
		return o, nil
	}

	report, logPath, err := s.checkIframes(ctx, root)
	if err != nil {
		return s.builtinError(ctx, o, err)
	}
	o.Missing, o.LogPath = report.Missing, logPath
	if report.Passed {
		o.Status = StatusPassed
		o.Detail = fmt.Sprintf("%d pages", report.Pages)
		return o, nil
	}
	o.Status = StatusFailed
	o.Detail = fmt.Sprintf("%d missing", len(report.Missing))
	if !report.CountsMatch {
		o.Detail += ", screen counts differ"
	}
	return o, nil
}

func (s *Suite) runMarkdownLinks(ctx context.Context, root string) (Outcome, error) {
	o := Outcome{Name: NameMarkdownLinks}
	report, err := CheckMarkdownLinks(ctx, root)
	if err != nil {
		return s.builtinError(ctx, o, err)
	}
	if report.Files == 0 {
		o.Status, o.Detail = StatusSkipped, "no Markdown files"
		return o, nil
	}
	o.Missing = report.Missing
	if report.Passed() {
		o.Status = StatusPassed
		o.Detail = fmt.Sprintf("%d links in %d files", report.Links, report.Files)
		return o, nil
	}
	o.Status = StatusFailed
	o.Detail = fmt.Sprintf("%d missing", len(report.Missing))
	return o, nil
}

// builtinError turns a validator error into a failed outcome, unless the
// context ended, which stops the whole run.
func (s *Suite) builtinError(ctx context.Context, o Outcome, err error) (Outcome, error) {
	if ctx.Err() != nil {
		return o, ctx.Err()
	}
	s.Logger.Debug().Err(err).Str("validator", o.Name).Msg("validator error")
	o.Status, o.Detail = StatusFailed, err.Error()
	return o, nil
}

func (s *Suite) runScript(ctx context.Context, root string, script Script) Outcome {
	o := Outcome{Name: script.Name}
	if o.Name == "" {
		o.Name = filepath.Base(script.Path)
	}

	path := script.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, filepath.FromSlash(path))
	}
	if !fileutil.FileExists(path) {
		o.Status, o.Detail = StatusSkipped, "script not found: "+script.Path
		return o
	}

	timeout := s.ScriptTimeout
	if timeout <= 0 {
		timeout = DefaultScriptTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	name, args := scriptCommand(path, script.Args)
	s.Logger.Debug().Str("validator", o.Name).Str("command", name).Strs("args", args).Msg("running script")

	_, stderr, err := s.commands().Run(ctx, name, args...)
	switch {
	case err == nil:
		o.Status = StatusPassed
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		o.Status, o.Detail = StatusFailed, fmt.Sprintf("timed out after %s", timeout)
	default:
		o.Status, o.Detail = StatusFailed, err.Error()
		if line := lastLine(stderr); line != "" {
			o.Detail += ": " + line
		}
	}
	return o
}

func (s *Suite) commands() CommandRunner {
	if s.Commands == nil {
		return process.ExecRunner{}
	}
	return s.Commands
}

// scriptCommand picks the interpreter from the script extension.
func scriptCommand(path string, args []string) (string, []string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sh":
		return "sh", append([]string{path}, args...)
	case ".js", ".mjs", ".cjs":
		return "node", append([]string{path}, args...)
	case ".py":
		return "python3", append([]string{path}, args...)
	}
	return path, args
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// Compile-time interface check.
var _ CommandRunner = process.ExecRunner{}
