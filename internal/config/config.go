// Package config loads the YAML configuration of md2docx.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/alnah/go-md2docx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength    = 200  // Header and cover title
	MaxFontLength     = 64   // Font family name
	MaxLabelLength    = 100  // Any fixed label
	MaxHintLength     = 300  // TOC placeholder text
	MaxPathLength     = 4096 // Filesystem path
	MaxCommandLength  = 4096 // Executable path
	MaxNameLength     = 64   // Theme, view and script names
	MaxDurationLength = 20   // "90s", "2m30s"
	MinMermaidWidth   = 100  // Pixels
	MaxMermaidWidth   = 10000
)

// Config holds all configuration for document conversion and validation.
type Config struct {
	Input      InputConfig    `yaml:"input"`
	Output     OutputConfig   `yaml:"output"`
	Document   DocumentConfig `yaml:"document"`
	Fonts      FontsConfig    `yaml:"fonts"`
	Labels     LabelsConfig   `yaml:"labels"`
	Mermaid    MermaidConfig  `yaml:"mermaid"`
	Validation ValidateConfig `yaml:"validate"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// DocumentConfig defines document-wide options.
type DocumentConfig struct {
	Title     string `yaml:"title"`     // Header title (empty = cover title)
	Language  string `yaml:"language"`  // "en" or "zh" label set (default "en")
	Highlight *bool  `yaml:"highlight"` // Colour code blocks (default true)
}

// FontsConfig names the typefaces. Empty fields keep the defaults.
type FontsConfig struct {
	Latin string `yaml:"latin"`
	CJK   string `yaml:"cjk"`
	Mono  string `yaml:"mono"`
}

// LabelsConfig overrides individual labels of the selected language.
type LabelsConfig struct {
	Version            string `yaml:"version"`
	Author             string `yaml:"author"`
	Organization       string `yaml:"organization"`
	Date               string `yaml:"date"`
	TOCTitle           string `yaml:"tocTitle"`
	TOCHint            string `yaml:"tocHint"`
	RevisionTitle      string `yaml:"revisionTitle"`
	Description        string `yaml:"description"`
	Rationale          string `yaml:"rationale"`
	Priority           string `yaml:"priority"`
	SafetyClass        string `yaml:"safetyClass"`
	Verification       string `yaml:"verification"`
	AcceptanceCriteria string `yaml:"acceptanceCriteria"`
}

// MermaidConfig defines diagram rasterization options.
type MermaidConfig struct {
	Command    string `yaml:"command"`    // Mermaid CLI (default "mmdc")
	Timeout    string `yaml:"timeout"`    // Per diagram, Go duration (default "60s")
	Width      int    `yaml:"width"`      // Pixels (default 1200)
	Background string `yaml:"background"` // Default "white"
	Theme      string `yaml:"theme"`      // Embedded or asset-path theme name
	CacheDir   string `yaml:"cacheDir"`   // Kept across runs when set
	AssetPath  string `yaml:"assetPath"`  // Directory overriding embedded assets
	NoSandbox  bool   `yaml:"noSandbox"`  // Headless Chrome without sandbox (Docker/CI)
}

// ValidateConfig defines validate-iframe-src and validate-all options.
type ValidateConfig struct {
	Views         []string       `yaml:"views"`         // Views whose screen counts must agree
	LogName       string         `yaml:"logName"`       // JSON error log (default validation-errors.json)
	ScriptTimeout string         `yaml:"scriptTimeout"` // Per script, Go duration (default "2m")
	Scripts       []ScriptConfig `yaml:"scripts"`       // External validators run by validate-all
}

// ScriptConfig is one external validator script.
type ScriptConfig struct {
	Name string   `yaml:"name"`
	Path string   `yaml:"path"` // Relative to the project
	Args []string `yaml:"args"`
}

// TimeoutDuration parses Timeout; zero when unset.
func (m MermaidConfig) TimeoutDuration() (time.Duration, error) {
	return parseDuration("mermaid.timeout", m.Timeout)
}

// ScriptTimeoutDuration parses ScriptTimeout; zero when unset.
func (v ValidateConfig) ScriptTimeoutDuration() (time.Duration, error) {
	return parseDuration("validate.scriptTimeout", v.ScriptTimeout)
}

// HighlightEnabled reports whether code highlighting is on (default true).
func (d DocumentConfig) HighlightEnabled() bool {
	return d.Highlight == nil || *d.Highlight
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., library users).
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"fonts.latin", c.Fonts.Latin, MaxFontLength},
		{"fonts.cjk", c.Fonts.CJK, MaxFontLength},
		{"fonts.mono", c.Fonts.Mono, MaxFontLength},
		{"labels.tocHint", c.Labels.TOCHint, MaxHintLength},
		{"mermaid.command", c.Mermaid.Command, MaxCommandLength},
		{"mermaid.timeout", c.Mermaid.Timeout, MaxDurationLength},
		{"mermaid.background", c.Mermaid.Background, MaxNameLength},
		{"mermaid.theme", c.Mermaid.Theme, MaxNameLength},
		{"mermaid.cacheDir", c.Mermaid.CacheDir, MaxPathLength},
		{"mermaid.assetPath", c.Mermaid.AssetPath, MaxPathLength},
		{"validate.logName", c.Validation.LogName, MaxNameLength},
		{"validate.scriptTimeout", c.Validation.ScriptTimeout, MaxDurationLength},
	}
	for _, ck := range checks {
		if err := validateFieldLength(ck.field, ck.value, ck.max); err != nil {
			return err
		}
	}

	for field, value := range c.Labels.fields() {
		if err := validateFieldLength("labels."+field, value, MaxLabelLength); err != nil {
			return err
		}
	}

	for field, font := range map[string]string{"fonts.latin": c.Fonts.Latin, "fonts.cjk": c.Fonts.CJK, "fonts.mono": c.Fonts.Mono} {
		if err := validateFontName(field, font); err != nil {
			return err
		}
	}

	switch c.Document.Language {
	case "", "en", "zh":
	default:
		return fmt.Errorf("%w: document.language %q (must be en or zh)", ErrInvalidValue, c.Document.Language)
	}

	if w := c.Mermaid.Width; w != 0 && (w < MinMermaidWidth || w > MaxMermaidWidth) {
		return fmt.Errorf("%w: mermaid.width must be between %d and %d, got %d", ErrInvalidValue, MinMermaidWidth, MaxMermaidWidth, w)
	}
	if _, err := c.Mermaid.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.Validation.ScriptTimeoutDuration(); err != nil {
		return err
	}
	if strings.ContainsAny(c.Validation.LogName, `/\`) {
		return fmt.Errorf("%w: validate.logName must be a file name, got %q", ErrInvalidValue, c.Validation.LogName)
	}

	for i, view := range c.Validation.Views {
		if err := validateFieldLength(fmt.Sprintf("validate.views[%d]", i), view, MaxPathLength); err != nil {
			return err
		}
	}
	for i, s := range c.Validation.Scripts {
		if s.Path == "" {
			return fmt.Errorf("%w: validate.scripts[%d].path is required", ErrInvalidValue, i)
		}
		if err := validateFieldLength(fmt.Sprintf("validate.scripts[%d].name", i), s.Name, MaxNameLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("validate.scripts[%d].path", i), s.Path, MaxPathLength); err != nil {
			return err
		}
	}

	return nil
}

func (l LabelsConfig) fields() map[string]string {
	return map[string]string{
		"version":            l.Version,
		"author":             l.Author,
		"organization":       l.Organization,
		"date":               l.Date,
		"tocTitle":           l.TOCTitle,
		"revisionTitle":      l.RevisionTitle,
		"description":        l.Description,
		"rationale":          l.Rationale,
		"priority":           l.Priority,
		"safetyClass":        l.SafetyClass,
		"verification":       l.Verification,
		"acceptanceCriteria": l.AcceptanceCriteria,
	}
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateFontName rejects characters that cannot appear in a font family
// name written into an XML attribute.
func validateFontName(field, name string) error {
	for _, r := range name {
		if unicode.IsControl(r) || strings.ContainsRune(`<>&"`, r) {
			return fmt.Errorf("%w: %s contains %q", ErrInvalidValue, field, r)
		}
	}
	return nil
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s %q (use a positive duration like 30s or 2m)", ErrInvalidValue, field, s)
	}
	return d, nil
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Document: DocumentConfig{Language: "en"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// the current directory, then the user config directory, each with .yaml
// before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-md2docx", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in SearchPaths order.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
