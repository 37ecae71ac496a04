package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert              Convert markdown documents to DOCX")
	fmt.Fprintln(w, "  validate-iframe-src  Check iframe sources and page links of an HTML prototype")
	fmt.Fprintln(w, "  validate-all         Run every project validator")
	fmt.Fprintln(w, "  doctor               Check the Mermaid CLI and environment")
	fmt.Fprintln(w, "  version              Show version information")
	fmt.Fprintln(w, "  help                 Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2docx help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx convert <input> [output.docx] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to DOCX. A directory is converted file by file;")
	fmt.Fprintln(w, "files whose output is newer than the source are skipped.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w, "  output   Output file (single input only)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -f, --force                 Convert even when the output is up to date")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>             Running header title (default: cover title)")
	fmt.Fprintln(w, "      --lang <s>              Label language: en, zh")
	fmt.Fprintln(w, "      --no-highlight          Disable code block colouring")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diagrams:")
	fmt.Fprintln(w, "      --mmdc <path>           Mermaid CLI executable")
	fmt.Fprintln(w, "      --mermaid-timeout <d>   Per-diagram timeout (e.g., 30s)")
	fmt.Fprintln(w, "      --mermaid-theme <s>     Mermaid theme name")
	fmt.Fprintln(w, "      --cache-dir <path>      Keep rendered diagrams across runs")
	fmt.Fprintln(w, "      --asset-path <path>     Custom Mermaid theme and profile directory")
	fmt.Fprintln(w, "      --no-sandbox            Run headless Chrome without sandbox (Docker/CI)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show debug output and timing")
}

// printValidateIframeUsage prints usage for the validate-iframe-src command.
func printValidateIframeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx validate-iframe-src [project-path] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that every relative iframe source and HTML page link in the project")
	fmt.Fprintln(w, "points at an existing file, and that the top-level views show the same")
	fmt.Fprintln(w, "number of screens. On failure a JSON error log is written in the project.")
	fmt.Fprintln(w)
	printValidateFlags(w)
}

// printValidateAllUsage prints usage for the validate-all command.
func printValidateAllUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx validate-all [project-path] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run iframe-src, markdown-links, then the scripts listed under")
	fmt.Fprintln(w, "validate.scripts in the config. Missing scripts are skipped.")
	fmt.Fprintln(w)
	printValidateFlags(w)
}

func printValidateFlags(w io.Writer) {
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --views <list>          Views to compare (default index.html,flow.html,screens.html)")
	fmt.Fprintln(w, "      --log <name>            Error log name (default validation-errors.json)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                 Only show failures")
	fmt.Fprintln(w, "  -v, --verbose               Show debug output")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the Mermaid CLI is installed and the environment can convert.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                  Print the report as JSON")
	fmt.Fprintln(w, "      --mmdc <path>           Mermaid CLI executable to check")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "validate-iframe-src":
		printValidateIframeUsage(env.Stdout)
	case "validate-all":
		printValidateAllUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2docx version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2docx help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
