// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForMermaidMissing returns hints for a Mermaid CLI that cannot be found.
func ForMermaidMissing() string {
	return formatHints([]string{
		"install with: npm install -g @mermaid-js/mermaid-cli",
		"or point --mmdc / MD2DOCX_MMDC at the binary",
	})
}

// ForMermaidFailure returns hints for diagram render failures.
// Detects CI/Docker environment, where headless Chrome needs --no-sandbox.
func ForMermaidFailure() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("MD2DOCX_NO_SANDBOX") != "1" {
		hints = append(hints, "set MD2DOCX_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("PUPPETEER_EXECUTABLE_PATH") == "" {
		hints = append(hints, "set PUPPETEER_EXECUTABLE_PATH to use a local Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the diagram timeout.
func ForTimeout() string {
	return format("for large diagrams, use --mermaid-timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2docx/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2docx") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForEncoding returns a hint for sources that are not UTF-8.
func ForEncoding() string {
	return format("save the file as UTF-8 (UTF-16 with a byte order mark is also accepted)")
}

// ForValidationLog points at the JSON error log written by a validator.
func ForValidationLog(path string) string {
	if path == "" {
		return ""
	}
	return format("details written to " + path)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
