package validate_test

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTree creates files (slash-separated relative paths) under a temp
// directory and returns its path.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

const (
	screenA = `<iframe src="screens/a.html"></iframe>`
	screenB = `<iframe src="screens/b.html"></iframe>`
)

// uiProject is a consistent UI flow: three views showing the same two screens.
func uiProject() map[string]string {
	return map[string]string{
		"screens/a.html": "<p>A</p>",
		"screens/b.html": `<p>B</p><a href="../index.html">Back</a>`,
		"index.html":     screenA + screenB + `<a href="flow.html">Flow</a><a href="screens.html#all">All</a>`,
		"flow.html":      screenA + screenB + screenB,
		"screens.html":   screenB + screenA,
	}
}
