package main

// Notes:
// - Test infrastructure shared by the command tests: a captured
//   Environment, a fake converter and a file tree writer.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	md2docx "github.com/alnah/go-md2docx"
)

// ---------------------------------------------------------------------------
// Test Environment
// ---------------------------------------------------------------------------

type capturedEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv() capturedEnv {
	var stdout, stderr bytes.Buffer
	return capturedEnv{
		Environment: &Environment{
			Now:    func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) },
			Stdout: &stdout,
			Stderr: &stderr,
			Logger: zerolog.Nop(),
		},
		stdout: &stdout,
		stderr: &stderr,
	}
}

// ---------------------------------------------------------------------------
// Fake converter
// ---------------------------------------------------------------------------

var errFakeRender = errors.New("fake render failure")

// fakeConverter fails on sources containing "FAIL" and records the rest.
type fakeConverter struct {
	mu     sync.Mutex
	titles []string
}

func (f *fakeConverter) Convert(_ context.Context, in md2docx.Input) (*md2docx.ConvertResult, error) {
	if strings.Contains(in.Markdown, "FAIL") {
		return nil, errFakeRender
	}
	f.mu.Lock()
	f.titles = append(f.titles, in.Title)
	f.mu.Unlock()
	return &md2docx.ConvertResult{DOCX: []byte("PK fake docx")}, nil
}

func (f *fakeConverter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.titles)
}

// ---------------------------------------------------------------------------
// File helpers
// ---------------------------------------------------------------------------

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

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	return string(data), err
}
