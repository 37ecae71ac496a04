package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/hints"
	"github.com/alnah/go-md2docx/internal/mermaid"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"` // "ready", "warnings", "errors"
	Mermaid  mermaidInfo `json:"mermaid"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// mermaidInfo holds Mermaid CLI detection results.
type mermaidInfo struct {
	Command string `json:"command"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	Chrome        string `json:"puppeteer_executable_path,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempDir      string `json:"temp_dir"`
	TempWritable bool   `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command.
// A missing Mermaid CLI is a warning: conversions still succeed with
// diagrams embedded as text.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	command := flags.mmdc
	if command == "" {
		command = loadEnvConfig().Mmdc
	}
	result := runDoctor(ctx, env.Commands, command)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return errReported
	}
	return nil
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, runner mermaid.CommandRunner, command string) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:     runtime.GOOS,
			Arch:   runtime.GOARCH,
			Chrome: os.Getenv("PUPPETEER_EXECUTABLE_PATH"),
		},
	}

	checkMermaid(ctx, result, runner, command)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkMermaid locates the Mermaid CLI and asks for its version.
func checkMermaid(ctx context.Context, result *doctorResult, runner mermaid.CommandRunner, command string) {
	if command == "" {
		command = mermaid.DefaultCommand
	}
	result.Mermaid.Command = command
	result.Mermaid.Sandbox = !loadEnvConfig().NoSandbox

	probe, err := mermaid.Detect(ctx, runner, command)
	result.Mermaid.Path = probe.Path
	switch {
	case errors.Is(err, mermaid.ErrCommandNotFound):
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Mermaid CLI %q not found, diagrams will be embedded as source text%s", command, hints.ForMermaidMissing()))
		return
	case err != nil:
		result.Mermaid.Found = true
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Mermaid CLI version: %v%s", err, hints.ForMermaidFailure()))
		return
	}
	result.Mermaid.Found = true
	result.Mermaid.Version = probe.Version
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Mermaid.Sandbox {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but MD2DOCX_NO_SANDBOX not set. Set MD2DOCX_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("MD2DOCX_CONTAINER") == "1" {
		return true, "MD2DOCX_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for diagram work is writable.
func checkSystem(result *doctorResult) {
	result.System.TempDir = os.TempDir()
	_, cleanup, err := fileutil.WriteTempFile("md2docx doctor", "txt")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", result.System.TempDir))
		return
	}
	cleanup()
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2docx doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Mermaid CLI")
	if r.Mermaid.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Mermaid.Path)
		if r.Mermaid.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Mermaid.Version)
		}
		if r.Mermaid.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (MD2DOCX_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintf(w, "  [WARN] %s not found\n", r.Mermaid.Command)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
