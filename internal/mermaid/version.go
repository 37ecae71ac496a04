package mermaid

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Probe reports where the Mermaid CLI is and which version it is.
type Probe struct {
	Path    string
	Version string
}

// Detect looks command up on PATH and asks it for its version.
func Detect(ctx context.Context, runner CommandRunner, command string) (Probe, error) {
	if command == "" {
		command = DefaultCommand
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return Probe{}, fmt.Errorf("%w: %q", ErrCommandNotFound, command)
	}
	if runner == nil {
		runner = &ExecRunner{}
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	stdout, stderr, err := runner.Run(ctx, path, "--version")
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Probe{Path: path}, ErrTimeout
	}
	if err != nil {
		return Probe{Path: path}, fmt.Errorf("%w: %v%s", ErrRenderFailed, err, stderrSuffix(stderr))
	}
	return Probe{Path: path, Version: strings.TrimSpace(stdout)}, nil
}
