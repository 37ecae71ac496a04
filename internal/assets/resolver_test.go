package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if r.HasCustomLoader() {
			t.Error("HasCustomLoader() = true, want false")
		}
	})

	t.Run("custom path", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !r.HasCustomLoader() {
			t.Error("HasCustomLoader() = false, want true")
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		if _, err := NewAssetResolver("/nonexistent/abc123xyz"); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_CustomOverridesEmbedded(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "themes", "default", `{"theme":"dark"}`)

	r, err := NewAssetResolver(base)
	if err != nil {
		t.Fatal(err)
	}

	data, err := r.LoadTheme("default")
	if err != nil {
		t.Fatalf("LoadTheme() error = %v", err)
	}
	if got := gjson.GetBytes(data, "theme").String(); got != "dark" {
		t.Errorf("theme = %q, want custom %q", got, "dark")
	}

	// Not present in the custom dir: falls back to the embedded copy.
	data, err = r.LoadTheme("forest")
	if err != nil {
		t.Fatalf("LoadTheme(forest) error = %v", err)
	}
	if got := gjson.GetBytes(data, "theme").String(); got != "forest" {
		t.Errorf("theme = %q, want embedded forest", got)
	}
}

func TestAssetResolver_ErrorsNotFallenBack(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "themes", "neutral", `not json`)

	r, err := NewAssetResolver(base)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.LoadTheme("../secret"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadTheme(../secret) error = %v, want ErrInvalidAssetName", err)
	}
	if _, err := r.LoadTheme("neutral"); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("LoadTheme(neutral) error = %v, want ErrInvalidJSON (no fallback)", err)
	}
}

func TestAssetResolver_Materialize(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver("")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	files, err := r.Materialize(dir, MaterializeOptions{
		Theme:      "neutral",
		Puppeteer:  NoSandboxPuppeteerName,
		FontFamily: "Noto Sans SC",
	})
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	if filepath.Dir(files.ConfigPath) != dir || filepath.Dir(files.PuppeteerPath) != dir {
		t.Errorf("files written outside %s: %+v", dir, files)
	}

	config, err := os.ReadFile(files.ConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(config, "themeVariables.fontFamily").String(); got != "Noto Sans SC" {
		t.Errorf("fontFamily = %q, want override", got)
	}
	if got := gjson.GetBytes(config, "theme").String(); got != "neutral" {
		t.Errorf("theme = %q, want neutral", got)
	}

	launch, err := os.ReadFile(files.PuppeteerPath)
	if err != nil {
		t.Fatal(err)
	}
	if !gjson.GetBytes(launch, "args").IsArray() {
		t.Error("puppeteer config missing args")
	}
}

func TestAssetResolver_MaterializeDefaults(t *testing.T) {
	t.Parallel()

	r, _ := NewAssetResolver("")
	files, err := r.Materialize(t.TempDir(), MaterializeOptions{})
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	config, _ := os.ReadFile(files.ConfigPath)
	if got := gjson.GetBytes(config, "theme").String(); got != "default" {
		t.Errorf("theme = %q, want default", got)
	}
}

func TestAssetResolver_MaterializeUnknownTheme(t *testing.T) {
	t.Parallel()

	r, _ := NewAssetResolver("")
	if _, err := r.Materialize(t.TempDir(), MaterializeOptions{Theme: "dracula"}); !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("error = %v, want ErrThemeNotFound", err)
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"ErrThemeNotFound", ErrThemeNotFound, true},
		{"ErrPuppeteerNotFound", ErrPuppeteerNotFound, true},
		{"ErrInvalidAssetName", ErrInvalidAssetName, false},
		{"ErrInvalidJSON", ErrInvalidJSON, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isNotFoundError(tt.err); got != tt.want {
				t.Errorf("isNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
