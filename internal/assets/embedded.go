package assets

import (
	"embed"
	"fmt"
)

//go:embed themes/*.json
var themes embed.FS

//go:embed puppeteer/*.json
var puppeteer embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTheme loads a Mermaid config from embedded assets by name.
func (e *EmbeddedLoader) LoadTheme(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	content, err := themes.ReadFile("themes/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	return content, nil
}

// LoadPuppeteer loads Puppeteer launch options from embedded assets by name.
func (e *EmbeddedLoader) LoadPuppeteer(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	content, err := puppeteer.ReadFile("puppeteer/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrPuppeteerNotFound, name)
	}
	return content, nil
}

// ThemeNames lists the built-in Mermaid themes.
func (e *EmbeddedLoader) ThemeNames() []string {
	entries, err := themes.ReadDir("themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name()[:len(entry.Name())-len(".json")])
	}
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
