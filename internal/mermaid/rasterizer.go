package mermaid

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// Defaults applied by NewCLIRasterizer.
const (
	DefaultCommand    = "mmdc"
	DefaultTimeout    = 60 * time.Second
	DefaultWidth      = 1200
	DefaultBackground = "white"
)

// Rasterizer converts diagram source text to a PNG file and returns its path.
type Rasterizer interface {
	Rasterize(ctx context.Context, source string) (string, error)
}

// CLIRasterizer renders diagrams with the Mermaid CLI and caches the PNGs in
// CacheDir. It is safe for concurrent use.
type CLIRasterizer struct {
	Command             string
	CacheDir            string
	Timeout             time.Duration
	Width               int
	Background          string
	ConfigFile          string // mmdc -c, empty to omit
	PuppeteerConfigFile string // mmdc -p, empty to omit
	Runner              CommandRunner
}

// NewCLIRasterizer creates a CLIRasterizer writing into cacheDir with
// default command, timeout, width and background.
func NewCLIRasterizer(cacheDir string) *CLIRasterizer {
	return &CLIRasterizer{
		Command:    DefaultCommand,
		CacheDir:   cacheDir,
		Timeout:    DefaultTimeout,
		Width:      DefaultWidth,
		Background: DefaultBackground,
		Runner:     &ExecRunner{},
	}
}

// CacheKey returns the file name stem used for source.
func CacheKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// CachePath returns where the PNG for source is stored.
func (r *CLIRasterizer) CachePath(source string) string {
	return filepath.Join(r.CacheDir, CacheKey(source)+".png")
}

// Rasterize returns the cached PNG for source, rendering it first on a miss.
// The PNG only appears in the cache once the CLI has written it completely.
func (r *CLIRasterizer) Rasterize(ctx context.Context, source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", ErrEmptySource
	}

	target := r.CachePath(source)
	if fileutil.FileExists(target) {
		return target, nil
	}

	if err := os.MkdirAll(r.CacheDir, 0o750); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCacheDir, err)
	}

	key := CacheKey(source)
	input, err := createTemp(r.CacheDir, key+".*.mmd")
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(input) }()
	if err := os.WriteFile(input, []byte(source), 0o600); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCacheDir, err)
	}

	// mmdc picks the format from the extension, so the partial file ends in .png.
	partial, err := createTemp(r.CacheDir, key+".*.png")
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(partial) }()
	// An empty placeholder would pass the output check if mmdc wrote nothing.
	_ = os.Remove(partial)

	if err := r.run(ctx, input, partial); err != nil {
		return "", err
	}

	info, err := os.Stat(partial)
	if err != nil || info.Size() == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoOutput, partial)
	}
	if err := os.Rename(partial, target); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCacheDir, err)
	}
	return target, nil
}

func (r *CLIRasterizer) run(ctx context.Context, input, output string) error {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	runner := r.Runner
	if runner == nil {
		runner = &ExecRunner{}
	}
	command := r.Command
	if command == "" {
		command = DefaultCommand
	}

	_, stderr, err := runner.Run(ctx, command, r.args(input, output)...)
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w after %s", ErrTimeout, r.Timeout)
	case errors.Is(err, exec.ErrNotFound):
		return fmt.Errorf("%w: %q", ErrCommandNotFound, command)
	case err != nil:
		return fmt.Errorf("%w: %v%s", ErrRenderFailed, err, stderrSuffix(stderr))
	}
	return nil
}

func (r *CLIRasterizer) args(input, output string) []string {
	width := r.Width
	if width <= 0 {
		width = DefaultWidth
	}
	background := r.Background
	if background == "" {
		background = DefaultBackground
	}

	args := []string{
		"-i", input,
		"-o", output,
		"-b", background,
		"-w", strconv.Itoa(width),
	}
	if r.ConfigFile != "" {
		args = append(args, "-c", r.ConfigFile)
	}
	if r.PuppeteerConfigFile != "" {
		args = append(args, "-p", r.PuppeteerConfigFile)
	}
	return args
}

func createTemp(dir, pattern string) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCacheDir, err)
	}
	name := f.Name()
	_ = f.Close()
	return name, nil
}

// stderrSuffix keeps the last line of CLI output, where mmdc prints the
// parse error.
func stderrSuffix(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return ""
	}
	lines := strings.Split(stderr, "\n")
	return ": " + strings.TrimSpace(lines[len(lines)-1])
}

// Compile-time interface check.
var _ Rasterizer = (*CLIRasterizer)(nil)
