package main

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-md2docx/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string        // MD2DOCX_CONFIG: config file name or path
	InputDir       string        // MD2DOCX_INPUT_DIR: default input directory
	OutputDir      string        // MD2DOCX_OUTPUT_DIR: default output directory
	Language       string        // MD2DOCX_LANGUAGE: en, zh
	Mmdc           string        // MD2DOCX_MMDC: Mermaid CLI executable
	MermaidTimeout time.Duration // MD2DOCX_MERMAID_TIMEOUT: per diagram
	CacheDir       string        // MD2DOCX_CACHE_DIR: kept diagram cache
	AssetPath      string        // MD2DOCX_ASSET_PATH: custom Mermaid assets
	NoSandbox      bool          // MD2DOCX_NO_SANDBOX: "1" or "true"
}

// knownEnvVars lists valid MD2DOCX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2DOCX_CONFIG":          true,
	"MD2DOCX_INPUT_DIR":       true,
	"MD2DOCX_OUTPUT_DIR":      true,
	"MD2DOCX_LANGUAGE":        true,
	"MD2DOCX_MMDC":            true,
	"MD2DOCX_MERMAID_TIMEOUT": true,
	"MD2DOCX_CACHE_DIR":       true,
	"MD2DOCX_ASSET_PATH":      true,
	"MD2DOCX_NO_SANDBOX":      true,
	"MD2DOCX_CONTAINER":       true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Invalid durations are ignored rather than reported.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2DOCX_CONFIG"),
		InputDir:   os.Getenv("MD2DOCX_INPUT_DIR"),
		OutputDir:  os.Getenv("MD2DOCX_OUTPUT_DIR"),
		Language:   os.Getenv("MD2DOCX_LANGUAGE"),
		Mmdc:       os.Getenv("MD2DOCX_MMDC"),
		CacheDir:   os.Getenv("MD2DOCX_CACHE_DIR"),
		AssetPath:  os.Getenv("MD2DOCX_ASSET_PATH"),
	}

	if timeout := os.Getenv("MD2DOCX_MERMAID_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.MermaidTimeout = d
		}
	}

	switch strings.ToLower(os.Getenv("MD2DOCX_NO_SANDBOX")) {
	case "1", "true", "yes":
		cfg.NoSandbox = true
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2DOCX_* variables.
func warnUnknownEnvVars(log zerolog.Logger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2DOCX_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				log.Warn().Str("variable", name).Msg("unknown environment variable (typo?)")
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	// DefaultConfig sets "en", so a file that names no language still
	// yields to the environment.
	if env.Language != "" && (cfg.Document.Language == "" || cfg.Document.Language == "en") {
		cfg.Document.Language = env.Language
	}
	if env.Mmdc != "" && cfg.Mermaid.Command == "" {
		cfg.Mermaid.Command = env.Mmdc
	}
	if env.MermaidTimeout > 0 && cfg.Mermaid.Timeout == "" {
		cfg.Mermaid.Timeout = env.MermaidTimeout.String()
	}
	if env.CacheDir != "" && cfg.Mermaid.CacheDir == "" {
		cfg.Mermaid.CacheDir = env.CacheDir
	}
	if env.AssetPath != "" && cfg.Mermaid.AssetPath == "" {
		cfg.Mermaid.AssetPath = env.AssetPath
	}
	if env.NoSandbox {
		cfg.Mermaid.NoSandbox = true
	}
}
