package md2docx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-md2docx/internal/assets"
	"github.com/alnah/go-md2docx/internal/mdparse"
	"github.com/alnah/go-md2docx/internal/mermaid"
	"github.com/alnah/go-md2docx/internal/render"
)

// Compile-time interface implementation checks.
var (
	_ Rasterizer         = (*mermaid.CLIRasterizer)(nil)
	_ mermaid.Rasterizer = Rasterizer(nil)
)

// Converter turns Markdown documents into DOCX packages.
// Create with NewConverter(); a Converter is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	assets        *assets.AssetResolver
	rasterizer    Rasterizer
	rasterizerSet bool
	log           zerolog.Logger
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithCacheDir, WithLabels).
// Returns error if the asset path or fonts are invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:   defaultTimeout,
			highlight: true,
		},
		log: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	c.assets = resolver

	if err := validateFonts(c.cfg.fonts); err != nil {
		return nil, err
	}

	return c, nil
}

// Convert parses the Markdown and returns the rendered DOCX package.
// The context is used for cancellation; the converter timeout applies on top.
// No bytes are returned unless the whole package was built.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: internal error: %v", ErrRender, r)
		}
	}()

	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	doc := mdparse.ParseDocument(input.Markdown)

	rasterizer, cleanup, err := c.diagramRasterizer(doc)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	out, err := render.Render(ctx, doc, render.Options{
		Title:      input.Title,
		Fonts:      c.cfg.fonts,
		Labels:     c.cfg.labels,
		Rasterizer: rasterizer,
		Highlight:  c.cfg.highlight,
		Logger:     &c.log,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return &ConvertResult{
		DOCX:             out.DOCX,
		Document:         doc,
		Diagrams:         out.Diagrams,
		DiagramFallbacks: out.DiagramFallbacks,
		DiagramErrors:    out.DiagramErrors,
	}, nil
}

// diagramRasterizer returns the rasterizer for one conversion and a cleanup
// removing whatever it created. Documents without diagrams never touch the
// Mermaid CLI or the filesystem.
func (c *Converter) diagramRasterizer(doc *mdparse.Document) (mermaid.Rasterizer, func(), error) {
	noop := func() {}
	if c.rasterizerSet {
		if c.rasterizer == nil {
			return nil, noop, nil
		}
		return c.rasterizer, noop, nil
	}
	if !hasDiagrams(doc) {
		return nil, noop, nil
	}

	work, err := os.MkdirTemp("", "md2docx-*")
	if err != nil {
		return nil, noop, fmt.Errorf("%w: %v", ErrDiagramSetup, err)
	}
	cleanup := func() { _ = os.RemoveAll(work) }

	profile := assets.DefaultPuppeteerName
	if c.cfg.noSandbox {
		profile = assets.NoSandboxPuppeteerName
	}
	theme := c.cfg.mermaidTheme
	if theme == "" {
		theme = assets.DefaultThemeName
	}
	files, err := c.assets.Materialize(work, assets.MaterializeOptions{
		Theme:      theme,
		Puppeteer:  profile,
		FontFamily: mermaidFontFamily(c.cfg.fonts),
	})
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("%w: %v", ErrDiagramSetup, err)
	}

	// A kept cache is split per theme so a theme change never reuses images.
	cacheDir := filepath.Join(work, "cache")
	if c.cfg.cacheDir != "" {
		cacheDir = filepath.Join(c.cfg.cacheDir, theme)
	}

	r := mermaid.NewCLIRasterizer(cacheDir)
	r.ConfigFile = files.ConfigPath
	r.PuppeteerConfigFile = files.PuppeteerPath
	if c.cfg.mermaidCommand != "" {
		r.Command = c.cfg.mermaidCommand
	}
	if c.cfg.mermaidTimeout > 0 {
		r.Timeout = c.cfg.mermaidTimeout
	}
	if c.cfg.mermaidWidth > 0 {
		r.Width = c.cfg.mermaidWidth
	}
	if c.cfg.mermaidBackground != "" {
		r.Background = c.cfg.mermaidBackground
	}
	return r, cleanup, nil
}

func hasDiagrams(doc *mdparse.Document) bool {
	for _, b := range doc.Body {
		if cb, ok := b.(*mdparse.CodeBlock); ok && cb.IsDiagram() {
			return true
		}
	}
	return false
}

// mermaidFontFamily lists the configured fonts for diagram labels, CJK first
// so Chinese labels never fall back to a box glyph.
func mermaidFontFamily(f Fonts) string {
	d := render.DefaultFonts()
	if f.CJK == "" {
		f.CJK = d.CJK
	}
	if f.Latin == "" {
		f.Latin = d.Latin
	}
	return fmt.Sprintf("%q, %q, sans-serif", f.CJK, f.Latin)
}
