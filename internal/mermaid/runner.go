package mermaid

import (
	"context"

	"github.com/alnah/go-md2docx/internal/process"
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner runs mmdc in its own process group, which is killed when ctx
// ends so the headless browser it spawned goes with it.
type ExecRunner = process.ExecRunner

// Compile-time interface check.
var _ CommandRunner = (*ExecRunner)(nil)
