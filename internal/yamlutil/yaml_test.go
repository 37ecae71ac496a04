package yamlutil_test

// Notes:
// - Only strict decoding is exported; it is what config loading uses.
// - MaxInputSize is package state, so the size limit is exercised with input
//   just above the default rather than by lowering the limit.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2docx/internal/yamlutil"
)

type mermaidSection struct {
	Command string `yaml:"command"`
	Width   int    `yaml:"width"`
}

type document struct {
	Language string         `yaml:"language"`
	Mermaid  mermaidSection `yaml:"mermaid"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Decoding and rejection
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var got document
	err := yamlutil.UnmarshalStrict([]byte("language: zh\nmermaid:\n  command: mmdc\n  width: 1600\n"), &got)
	if err != nil {
		t.Fatalf("UnmarshalStrict() error = %v", err)
	}
	want := document{Language: "zh", Mermaid: mermaidSection{Command: "mmdc", Width: 1600}}
	if got != want {
		t.Errorf("UnmarshalStrict() = %+v, want %+v", got, want)
	}
}

func TestUnmarshalStrict_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		dst     any
		wantErr error
		wantMsg string
	}{
		{"empty data", "", &document{}, yamlutil.ErrNilData, ""},
		{"nil destination", "language: en\n", nil, yamlutil.ErrNilDestination, ""},
		{"unknown field", "language: en\nmermaid:\n  comand: mmdc\n", &document{}, yamlutil.ErrDecode, "comand"},
		{"type mismatch", "mermaid:\n  width: wide\n", &document{}, yamlutil.ErrDecode, "[2:"},
		{"malformed", "language: [en\n", &document{}, yamlutil.ErrDecode, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict([]byte(tt.data), tt.dst)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestUnmarshalStrict_InputTooLarge(t *testing.T) {
	t.Parallel()

	data := []byte("language: \"" + strings.Repeat("x", yamlutil.MaxInputSize) + "\"\n")
	err := yamlutil.UnmarshalStrict(data, &document{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("UnmarshalStrict() error = %v, want ErrInputTooLarge", err)
	}
}
