package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// mermaidFlags holds diagram rasterization flags.
type mermaidFlags struct {
	command   string
	timeout   string
	cacheDir  string
	assetPath string
	theme     string
	noSandbox bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	output      string
	title       string
	language    string
	force       bool
	noHighlight bool
	mermaid     mermaidFlags
}

// validateFlags holds flags for validate-iframe-src and validate-all.
type validateFlags struct {
	common  commonFlags
	views   []string
	logName string
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json bool
	mmdc string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output and timing")
}

// addMermaidFlags adds diagram flags to a FlagSet.
func addMermaidFlags(fs *flag.FlagSet, f *mermaidFlags) {
	fs.StringVar(&f.command, "mmdc", "", "Mermaid CLI executable (default \"mmdc\")")
	fs.StringVar(&f.timeout, "mermaid-timeout", "", "per-diagram timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.cacheDir, "cache-dir", "", "keep rendered diagrams in this directory")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom Mermaid theme and profile directory")
	fs.StringVar(&f.theme, "mermaid-theme", "", "Mermaid theme name")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "run headless Chrome without sandbox (Docker/CI)")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVar(&f.title, "title", "", "running header title (default: cover title)")
	fs.StringVar(&f.language, "lang", "", "label language: en, zh")
	fs.BoolVarP(&f.force, "force", "f", false, "convert even when the output is up to date")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable code block colouring")

	addCommonFlags(fs, &f.common)
	addMermaidFlags(fs, &f.mermaid)

	fs.SetOutput(w)
	fs.Usage = func() { printConvertUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseValidateFlags parses the flags shared by both validate commands.
func parseValidateFlags(name string, args []string, w io.Writer, usage func(io.Writer)) (*validateFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := &validateFlags{}

	fs.StringSliceVar(&f.views, "views", nil, "views whose screen counts must agree (comma-separated)")
	fs.StringVar(&f.logName, "log", "", "JSON error log name, written in the project")

	addCommonFlags(fs, &f.common)

	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	f := &doctorFlags{}

	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	fs.StringVar(&f.mmdc, "mmdc", "", "Mermaid CLI executable to check")

	fs.SetOutput(w)
	fs.Usage = func() { printDoctorUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
