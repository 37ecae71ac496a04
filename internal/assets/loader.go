package assets

// AssetLoader defines the contract for loading Mermaid CLI configuration files.
type AssetLoader interface {
	// LoadTheme loads a Mermaid config by name (without .json extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTheme(name string) ([]byte, error)

	// LoadPuppeteer loads Puppeteer launch options by name (without .json extension).
	// Returns ErrPuppeteerNotFound if the profile doesn't exist.
	LoadPuppeteer(name string) ([]byte, error)
}

// DefaultThemeName is the name of the built-in Mermaid theme.
const DefaultThemeName = "default"

// Puppeteer profiles shipped with the binary.
const (
	DefaultPuppeteerName   = "default"
	NoSandboxPuppeteerName = "no-sandbox"
)
