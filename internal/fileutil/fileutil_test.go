package fileutil_test

// Notes:
// - The WriteString and Close error branches of WriteTempFile are not tested:
//   triggering disk write failures is platform-specific.
// - IsUpToDate sets modification times with os.Chtimes instead of sleeping.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "mermaid source", extension: "mmd"},
		{name: "png", extension: "png"},
		{name: "empty", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "forward slash", extension: "../etc/passwd", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash", extension: "..\\windows", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte", extension: "mmd\x00exe", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temporary file creation
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	content := "graph TD\n  A[登录] --> B"
	path, cleanup, err := fileutil.WriteTempFile(content, "mmd")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	if !strings.Contains(filepath.Base(path), "md2docx-") || !strings.HasSuffix(path, ".mmd") {
		t.Errorf("unexpected temp path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != content {
		t.Errorf("content = %q, want %q", data, content)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after cleanup at %s", path)
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, cleanup, err := fileutil.WriteTempFile("x", "")
	if cleanup != nil {
		t.Error("cleanup should be nil on error")
	}
	if !errors.Is(err, fileutil.ErrExtensionEmpty) {
		t.Errorf("error = %v, want ErrExtensionEmpty", err)
	}
}

// NOTE: This test modifies TMPDIR and cannot run in parallel.
func TestWriteTempFile_CreateTempError(t *testing.T) {
	t.Setenv("TMPDIR", "/nonexistent/path/that/does/not/exist")

	_, _, err := fileutil.WriteTempFile("content", "mmd")
	if err == nil || !strings.Contains(err.Error(), "creating temp file") {
		t.Errorf("WriteTempFile() error = %v, want creating temp file error", err)
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Rename-into-place writes
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.docx")

	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte("new content"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new content" {
		t.Errorf("content = %q, want %q", data, "new content")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want 1 (temp file left behind?)", len(entries))
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.docx")
	if err := fileutil.WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
		t.Error("expected error for missing parent directory")
	}
}

// ---------------------------------------------------------------------------
// TestIsUpToDate - Incremental build check
// ---------------------------------------------------------------------------

func TestIsUpToDate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "srs.md")
	dst := filepath.Join(dir, "srs.docx")
	for _, p := range []string{src, dst} {
		if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	setTime := func(p string, tm time.Time) {
		t.Helper()
		if err := os.Chtimes(p, tm, tm); err != nil {
			t.Fatal(err)
		}
	}

	setTime(src, base)
	setTime(dst, base.Add(time.Hour))
	if !fileutil.IsUpToDate(src, dst) {
		t.Error("newer target should be up to date")
	}

	setTime(dst, base.Add(-time.Hour))
	if fileutil.IsUpToDate(src, dst) {
		t.Error("older target should be stale")
	}

	if fileutil.IsUpToDate(src, filepath.Join(dir, "missing.docx")) {
		t.Error("missing target should be stale")
	}
	if fileutil.IsUpToDate(filepath.Join(dir, "missing.md"), dst) {
		t.Error("missing source should be stale")
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists - Existence checks
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true")
	}
	if fileutil.FileExists(filepath.Join(dir, "nope")) {
		t.Error("FileExists(missing) = true")
	}
	if !fileutil.DirExists(dir) {
		t.Error("DirExists(dir) = false")
	}
	if fileutil.DirExists(file) {
		t.Error("DirExists(file) = true")
	}
}

// ---------------------------------------------------------------------------
// TestReplaceExt - Extension swapping
// ---------------------------------------------------------------------------

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, ext, want string
	}{
		{"docs/srs.md", ".docx", "docs/srs.docx"},
		{"srs", ".docx", "srs.docx"},
		{"v1.2/notes.markdown", ".docx", "v1.2/notes.docx"},
	}
	for _, tt := range tests {
		if got := fileutil.ReplaceExt(tt.path, tt.ext); got != tt.want {
			t.Errorf("ReplaceExt(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}
