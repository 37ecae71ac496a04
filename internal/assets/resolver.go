package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/sjson"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the asset is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTheme loads a Mermaid config, trying the custom loader first.
func (r *AssetResolver) LoadTheme(name string) ([]byte, error) {
	return r.loadWithFallback(func(loader AssetLoader) ([]byte, error) {
		return loader.LoadTheme(name)
	})
}

// LoadPuppeteer loads Puppeteer launch options, trying the custom loader first.
func (r *AssetResolver) LoadPuppeteer(name string) ([]byte, error) {
	return r.loadWithFallback(func(loader AssetLoader) ([]byte, error) {
		return loader.LoadPuppeteer(name)
	})
}

// loadWithFallback implements the custom-first, fallback-to-embedded logic.
func (r *AssetResolver) loadWithFallback(loadFn func(AssetLoader) ([]byte, error)) ([]byte, error) {
	if r.custom == nil {
		return loadFn(r.embedded)
	}

	content, err := loadFn(r.custom)
	if err == nil {
		return content, nil
	}

	// Validation and I/O errors are reported, only "not found" falls back.
	if !isNotFoundError(err) {
		return nil, err
	}
	return loadFn(r.embedded)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrThemeNotFound) || errors.Is(err, ErrPuppeteerNotFound)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// MermaidFiles are the paths handed to the Mermaid CLI as -c and -p.
type MermaidFiles struct {
	ConfigPath    string
	PuppeteerPath string
}

// MaterializeOptions selects the assets written by Materialize.
type MaterializeOptions struct {
	Theme      string // empty = DefaultThemeName
	Puppeteer  string // empty = DefaultPuppeteerName
	FontFamily string // overrides themeVariables.fontFamily when set
}

// Materialize resolves the theme and launch profile and writes them into dir.
func (r *AssetResolver) Materialize(dir string, opts MaterializeOptions) (MermaidFiles, error) {
	theme := opts.Theme
	if theme == "" {
		theme = DefaultThemeName
	}
	profile := opts.Puppeteer
	if profile == "" {
		profile = DefaultPuppeteerName
	}

	config, err := r.LoadTheme(theme)
	if err != nil {
		return MermaidFiles{}, err
	}
	if opts.FontFamily != "" {
		config, err = sjson.SetBytes(config, "themeVariables.fontFamily", opts.FontFamily)
		if err != nil {
			return MermaidFiles{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
	}
	launch, err := r.LoadPuppeteer(profile)
	if err != nil {
		return MermaidFiles{}, err
	}

	files := MermaidFiles{
		ConfigPath:    filepath.Join(dir, "mermaid-config.json"),
		PuppeteerPath: filepath.Join(dir, "puppeteer-config.json"),
	}
	if err := os.WriteFile(files.ConfigPath, config, 0o600); err != nil {
		return MermaidFiles{}, fmt.Errorf("writing mermaid config: %w", err)
	}
	if err := os.WriteFile(files.PuppeteerPath, launch, 0o600); err != nil {
		return MermaidFiles{}, fmt.Errorf("writing puppeteer config: %w", err)
	}
	return files, nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
