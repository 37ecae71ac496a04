package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/hints"
	"github.com/alnah/go-md2docx/internal/mdparse"
	"github.com/alnah/go-md2docx/internal/mermaid"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage            = errors.New("invalid usage")
	ErrNoInput          = errors.New("no input specified")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrWriteDOCX        = errors.New("failed to write DOCX file")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrConversionFailed = errors.New("conversion failed")
	ErrValidationFailed = errors.New("validation failed")

	// errReported marks errors whose details were already printed.
	errReported = errors.New("already reported")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

const docxExt = ".docx"

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2docx.Input) (*md2docx.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2docx.Converter)(nil)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Skipped    bool // output already up to date
	Fallbacks  int  // diagrams embedded as source text
	Duration   time.Duration
}

// runConvertCmd parses flags and runs the convert command.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	conv, err := newConverter(cfg, env.Logger)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, cfg, conv, env)
}

// runConvert converts every discovered file in order. A failed document
// leaves no output and does not stop the others.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, cfg *config.Config, conv CLIConverter, env *Environment) error {
	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	output, err := resolveOutput(positional, flags.output, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, output)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	title := cfg.Document.Title
	results := make([]ConversionResult, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			results = append(results, ConversionResult{InputPath: f.InputPath, Err: err})
			continue
		}
		results = append(results, convertFile(ctx, conv, f, title, flags.force, env))
	}

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	switch {
	case failed == 0:
		return nil
	case len(results) == 1:
		return fmt.Errorf("%w: %w", errReported, results[0].Err)
	default:
		return fmt.Errorf("%w: %d of %d conversion(s) failed: %w", ErrConversionFailed, failed, len(results), errReported)
	}
}

// loadConfig loads the named config, or the MD2DOCX_CONFIG one, and applies
// environment overrides. Without either the defaults are used.
func loadConfig(name string) (*config.Config, error) {
	envCfg := loadEnvConfig()
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.title != "" {
		cfg.Document.Title = flags.title
	}
	if flags.language != "" {
		cfg.Document.Language = flags.language
	}
	if flags.noHighlight {
		off := false
		cfg.Document.Highlight = &off
	}

	m := flags.mermaid
	if m.command != "" {
		cfg.Mermaid.Command = m.command
	}
	if m.timeout != "" {
		cfg.Mermaid.Timeout = m.timeout
	}
	if m.cacheDir != "" {
		cfg.Mermaid.CacheDir = m.cacheDir
	}
	if m.assetPath != "" {
		cfg.Mermaid.AssetPath = m.assetPath
	}
	if m.theme != "" {
		cfg.Mermaid.Theme = m.theme
	}
	if m.noSandbox {
		cfg.Mermaid.NoSandbox = true
	}
}

// newConverter builds the library converter from a validated config.
func newConverter(cfg *config.Config, log zerolog.Logger) (*md2docx.Converter, error) {
	opts := []md2docx.Option{
		md2docx.WithLogger(log),
		md2docx.WithLabels(labelsFromConfig(cfg)),
		md2docx.WithFonts(md2docx.Fonts{
			Latin: cfg.Fonts.Latin,
			CJK:   cfg.Fonts.CJK,
			Mono:  cfg.Fonts.Mono,
		}),
		md2docx.WithHighlight(cfg.Document.HighlightEnabled()),
		md2docx.WithNoSandbox(cfg.Mermaid.NoSandbox),
	}

	m := cfg.Mermaid
	if m.Command != "" {
		opts = append(opts, md2docx.WithMermaidCommand(m.Command))
	}
	timeout, err := m.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, md2docx.WithMermaidTimeout(timeout))
	}
	if m.Width > 0 {
		opts = append(opts, md2docx.WithMermaidWidth(m.Width))
	}
	if m.Background != "" {
		opts = append(opts, md2docx.WithMermaidBackground(m.Background))
	}
	if m.Theme != "" {
		opts = append(opts, md2docx.WithMermaidTheme(m.Theme))
	}
	if m.CacheDir != "" {
		opts = append(opts, md2docx.WithCacheDir(m.CacheDir))
	}
	if m.AssetPath != "" {
		opts = append(opts, md2docx.WithAssetPath(m.AssetPath))
	}

	return md2docx.NewConverter(opts...)
}

// labelsFromConfig overlays configured labels on the language's label set.
func labelsFromConfig(cfg *config.Config) md2docx.Labels {
	l := cfg.Labels
	return md2docx.Labels{
		Version:            l.Version,
		Author:             l.Author,
		Organization:       l.Organization,
		Date:               l.Date,
		TOCTitle:           l.TOCTitle,
		TOCHint:            l.TOCHint,
		RevisionTitle:      l.RevisionTitle,
		Description:        l.Description,
		Rationale:          l.Rationale,
		Priority:           l.Priority,
		SafetyClass:        l.SafetyClass,
		Verification:       l.Verification,
		AcceptanceCriteria: l.AcceptanceCriteria,
	}.Merge(md2docx.LabelsFor(cfg.Document.Language))
}

// resolveInputPath returns the input from args or the config default.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", fmt.Errorf("%w: pass a markdown file or directory", ErrNoInput)
}

// resolveOutput returns the output file or directory: the second positional
// argument, then --output, then the config default.
func resolveOutput(args []string, flagOutput string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 2:
		return "", fmt.Errorf("%w: unexpected argument %q", ErrUsage, args[2])
	case len(args) == 2 && flagOutput != "":
		return "", fmt.Errorf("%w: output given both as argument and --output", ErrUsage)
	case len(args) == 2:
		return args[1], nil
	case flagOutput != "":
		return flagOutput, nil
	}
	return cfg.Output.DefaultDir, nil
}

// discoverFiles finds all markdown files to convert, in lexical order.
func discoverFiles(inputPath, output string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", inputPath, err)
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, output, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	if strings.EqualFold(filepath.Ext(output), docxExt) {
		return nil, fmt.Errorf("%w: output %s must be a directory when the input is a directory", ErrUsage, output)
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isMarkdown(path) {
			return nil
		}
		files = append(files, FileToConvert{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, output, inputPath),
		})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the DOCX output path for a markdown file.
func resolveOutputPath(inputPath, output, baseInputDir string) string {
	name := fileutil.ReplaceExt(filepath.Base(inputPath), docxExt)

	if output == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}

	if strings.EqualFold(filepath.Ext(output), docxExt) {
		return output
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(output, filepath.Dir(relPath), name)
		}
	}

	return filepath.Join(output, name)
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !isMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, title string, force bool, env *Environment) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if !force && fileutil.IsUpToDate(f.InputPath, f.OutputPath) {
		env.Logger.Debug().Str("input", f.InputPath).Str("output", f.OutputPath).Msg("output up to date")
		result.Skipped = true
		return done(nil)
	}

	data, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return done(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}
	source, err := mdparse.DecodeSource(data)
	if err != nil {
		return done(err)
	}

	convResult, err := conv.Convert(ctx, md2docx.Input{Markdown: source, Title: title})
	if err != nil {
		return done(err)
	}
	result.Fallbacks = convResult.DiagramFallbacks
	if convResult.DiagramFallbacks > 0 {
		warnFallbacks(env, f.InputPath, convResult)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return done(fmt.Errorf("%w: creating output directory: %v", ErrWriteDOCX, err))
	}
	// #nosec G306 -- documents are meant to be readable
	if err := fileutil.WriteFileAtomic(f.OutputPath, convResult.DOCX, filePermissions); err != nil {
		return done(fmt.Errorf("%w: %v", ErrWriteDOCX, err))
	}

	return done(nil)
}

// warnFallbacks logs diagrams that were embedded as text, with a hint for
// the first known cause.
func warnFallbacks(env *Environment, path string, res *md2docx.ConvertResult) {
	ev := env.Logger.Warn().Str("file", path).Int("diagrams", res.DiagramFallbacks)
	if len(res.DiagramErrors) > 0 {
		cause := res.DiagramErrors[0]
		ev = ev.Err(cause)
		if h := hintText(cause); h != "" {
			ev = ev.Str("hint", h)
		}
	}
	ev.Msg("diagrams embedded as source text")
}

// ResultSummary holds the count of converted, skipped and failed files.
type ResultSummary struct {
	Succeeded int
	Skipped   int
	Failed    int
}

// countResults tallies conversion outcomes.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Skipped:
			summary.Skipped++
		default:
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		if quiet {
			continue
		}

		switch {
		case r.Skipped:
			fmt.Fprintf(env.Stdout, "Skipped %s (up to date)\n", r.OutputPath)
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d converted, %d skipped, %d failed\n", summary.Succeeded, summary.Skipped, summary.Failed)
	}

	return summary.Failed
}

// hintFor returns the formatted hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, ErrWriteDOCX):
		return hints.ForOutputDirectory()
	case errors.Is(err, mdparse.ErrInvalidEncoding):
		return hints.ForEncoding()
	case errors.Is(err, mermaid.ErrCommandNotFound):
		return hints.ForMermaidMissing()
	case errors.Is(err, mermaid.ErrTimeout):
		return hints.ForTimeout()
	case errors.Is(err, mermaid.ErrRenderFailed), errors.Is(err, mermaid.ErrNoOutput):
		return hints.ForMermaidFailure()
	}
	return ""
}

// hintText is hintFor without the leading marker, for log fields.
func hintText(err error) string {
	return strings.TrimPrefix(hintFor(err), "\n  hint: ")
}
