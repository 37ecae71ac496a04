package main

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/mdparse"
	"github.com/alnah/go-md2docx/internal/validate"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error classification
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unknown", errors.New("boom"), ExitGeneral},
		{"conversion failed", ErrConversionFailed, ExitGeneral},
		{"validation", fmt.Errorf("%w: %w", ErrValidationFailed, errReported), ExitValidation},
		{"not exist", fmt.Errorf("input a.md: %w", fs.ErrNotExist), ExitIO},
		{"permission", fs.ErrPermission, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"read markdown", fmt.Errorf("%w: a.md", ErrReadMarkdown), ExitIO},
		{"write docx", ErrWriteDOCX, ExitIO},
		{"project not found", validate.ErrProjectNotFound, ExitIO},
		{"write log", validate.ErrWriteLog, ExitIO},
		{"usage", ErrUsage, ExitUsage},
		{"extension", ErrInvalidExtension, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"empty markdown", md2docx.ErrEmptyMarkdown, ExitUsage},
		{"invalid font", md2docx.ErrInvalidFont, ExitUsage},
		{"encoding", fmt.Errorf("%w: %w", errReported, mdparse.ErrInvalidEncoding), ExitUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
