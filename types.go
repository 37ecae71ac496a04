package md2docx

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/alnah/go-md2docx/internal/mdparse"
	"github.com/alnah/go-md2docx/internal/render"
)

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown content (required)
	Title    string // Running header title (optional, default: cover title)
}

// ConvertResult is a converted document.
type ConvertResult struct {
	DOCX             []byte            // the Word package
	Document         *mdparse.Document // parsed source, for inspection
	Diagrams         int               // diagrams embedded as images
	DiagramFallbacks int               // diagrams embedded as source text
	DiagramErrors    []error           // why diagrams fell back, when known
}

// Fonts names the typefaces used for Latin, CJK and monospace text.
type Fonts = render.Fonts

// Labels holds every fixed string written into the document.
type Labels = render.Labels

// DefaultFonts returns Calibri, SimSun and Consolas.
func DefaultFonts() Fonts { return render.DefaultFonts() }

// LabelsFor returns the built-in label set for "en" or "zh".
func LabelsFor(lang string) Labels { return render.LabelsFor(lang) }

// Rasterizer turns Mermaid source into a PNG file and returns its path.
type Rasterizer interface {
	Rasterize(ctx context.Context, source string) (string, error)
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout           time.Duration
	mermaidCommand    string
	mermaidTimeout    time.Duration
	mermaidWidth      int
	mermaidBackground string
	mermaidTheme      string
	noSandbox         bool
	cacheDir          string
	assetPath         string
	fonts             Fonts
	labels            Labels
	highlight         bool
}

// defaultTimeout bounds one whole conversion, diagrams included.
const defaultTimeout = 5 * time.Minute

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2docx: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithRasterizer replaces the Mermaid CLI. A nil rasterizer embeds every
// diagram as source text.
func WithRasterizer(r Rasterizer) Option {
	return func(c *Converter) {
		c.rasterizer = r
		c.rasterizerSet = true
	}
}

// WithMermaidCommand sets the Mermaid CLI executable (default "mmdc").
func WithMermaidCommand(command string) Option {
	return func(c *Converter) {
		c.cfg.mermaidCommand = command
	}
}

// WithMermaidTimeout bounds a single diagram.
// Panics if d <= 0.
func WithMermaidTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2docx: WithMermaidTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.mermaidTimeout = d
	}
}

// WithMermaidWidth sets the render width in pixels.
func WithMermaidWidth(px int) Option {
	return func(c *Converter) {
		c.cfg.mermaidWidth = px
	}
}

// WithMermaidBackground sets the diagram background colour.
func WithMermaidBackground(color string) Option {
	return func(c *Converter) {
		c.cfg.mermaidBackground = color
	}
}

// WithMermaidTheme selects a Mermaid theme by name.
func WithMermaidTheme(name string) Option {
	return func(c *Converter) {
		c.cfg.mermaidTheme = name
	}
}

// WithNoSandbox launches headless Chrome without its sandbox, which Docker
// and most CI runners require.
func WithNoSandbox(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.noSandbox = enabled
	}
}

// WithCacheDir keeps rendered diagrams in dir across conversions. Without
// it each conversion uses a temporary cache that is removed afterwards.
func WithCacheDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.cacheDir = dir
	}
}

// WithAssetPath loads Mermaid themes and launch profiles from dir before
// falling back to the embedded ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithFonts sets the typefaces. Empty fields keep the defaults.
func WithFonts(f Fonts) Option {
	return func(c *Converter) {
		c.cfg.fonts = f
	}
}

// WithLabels sets the fixed strings. Empty fields keep English.
func WithLabels(l Labels) Option {
	return func(c *Converter) {
		c.cfg.labels = l
	}
}

// WithHighlight enables or disables chroma colouring of code blocks.
func WithHighlight(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.highlight = enabled
	}
}

// WithLogger sets the logger for warnings such as diagram fallbacks.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) {
		c.log = l
	}
}

// validateFonts rejects font names that cannot be written into the package.
func validateFonts(f Fonts) error {
	for _, name := range []string{f.Latin, f.CJK, f.Mono} {
		if strings.ContainsFunc(name, func(r rune) bool {
			return unicode.IsControl(r) || strings.ContainsRune(`<>&"`, r)
		}) {
			return fmt.Errorf("%w: %q", ErrInvalidFont, name)
		}
	}
	return nil
}
