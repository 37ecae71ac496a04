package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/hints"
	"github.com/alnah/go-md2docx/internal/validate"
)

const banner = "========================================"

// runValidateIframeCmd checks the iframe sources of an HTML prototype.
func runValidateIframeCmd(ctx context.Context, args []string, env *Environment) error {
	suite, flags, err := prepareSuite("validate-iframe-src", args, env, printValidateIframeUsage)
	if err != nil {
		return err
	}

	report, logPath, err := suite.RunIframes(ctx)
	if err != nil {
		return err
	}

	printIframeReport(env.Stdout, report, flags.common.quiet)
	if report.Passed {
		return nil
	}
	fmt.Fprintf(env.Stderr, "validate-iframe-src failed%s\n", hints.ForValidationLog(logPath))
	return fmt.Errorf("%w: %w", ErrValidationFailed, errReported)
}

// runValidateAllCmd runs every validator in its fixed order.
func runValidateAllCmd(ctx context.Context, args []string, env *Environment) error {
	suite, flags, err := prepareSuite("validate-all", args, env, printValidateAllUsage)
	if err != nil {
		return err
	}

	outcomes, err := suite.Run(ctx)
	if err != nil {
		return err
	}

	printOutcomes(env.Stdout, outcomes, flags.common.quiet)
	if !validate.Failed(outcomes) {
		return nil
	}
	for _, o := range outcomes {
		if o.LogPath != "" {
			fmt.Fprintf(env.Stderr, "%s failed%s\n", o.Name, hints.ForValidationLog(o.LogPath))
		}
	}
	return fmt.Errorf("%w: %w", ErrValidationFailed, errReported)
}

// prepareSuite parses flags, loads the config and builds the validator suite.
func prepareSuite(name string, args []string, env *Environment, usage func(io.Writer)) (*validate.Suite, *validateFlags, error) {
	flags, positional, err := parseValidateFlags(name, args, env.Stderr, usage)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 1 {
		return nil, nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[1])
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return nil, nil, err
	}
	if len(flags.views) > 0 {
		cfg.Validation.Views = flags.views
	}
	if flags.logName != "" {
		cfg.Validation.LogName = flags.logName
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	project := "."
	if len(positional) == 1 {
		project = positional[0]
	}
	suite, err := newSuite(project, cfg, env)
	return suite, flags, err
}

// newSuite maps the validate section of the config onto a Suite.
func newSuite(project string, cfg *config.Config, env *Environment) (*validate.Suite, error) {
	timeout, err := cfg.Validation.ScriptTimeoutDuration()
	if err != nil {
		return nil, err
	}

	scripts := make([]validate.Script, 0, len(cfg.Validation.Scripts))
	for _, s := range cfg.Validation.Scripts {
		scripts = append(scripts, validate.Script{Name: s.Name, Path: s.Path, Args: s.Args})
	}

	return &validate.Suite{
		Project: project,
		Iframe: validate.IframeOptions{
			Views: cfg.Validation.Views,
			Now:   env.Now,
		},
		LogName:       cfg.Validation.LogName,
		Scripts:       scripts,
		Commands:      env.Commands,
		ScriptTimeout: timeout,
		Logger:        env.Logger,
	}, nil
}

// printIframeReport prints missing references, screen counts and a banner.
func printIframeReport(w io.Writer, r *validate.IframeReport, quiet bool) {
	for _, m := range r.Missing {
		fmt.Fprintf(w, "MISSING %s (%s, in %s as %q)\n", m.Target, m.Reason, m.Source, m.Ref)
	}
	if !quiet || !r.CountsMatch {
		for _, c := range r.ScreenCounts {
			if !c.Present {
				fmt.Fprintf(w, "  %-14s absent\n", c.View)
				continue
			}
			fmt.Fprintf(w, "  %-14s %d screens\n", c.View, c.Screens)
		}
	}

	if quiet && r.Passed {
		return
	}
	fmt.Fprintln(w, banner)
	switch {
	case r.Passed:
		fmt.Fprintf(w, "PASS: %d pages checked, all references resolve\n", r.Pages)
	case !r.CountsMatch && len(r.Missing) == 0:
		fmt.Fprintln(w, "FAIL: screen counts differ between views")
	case !r.CountsMatch:
		fmt.Fprintf(w, "FAIL: %d missing, screen counts differ between views\n", len(r.Missing))
	default:
		fmt.Fprintf(w, "FAIL: %d missing\n", len(r.Missing))
	}
	fmt.Fprintln(w, banner)
}

// printOutcomes prints one line per validator and a summary banner.
func printOutcomes(w io.Writer, outcomes []validate.Outcome, quiet bool) {
	var passed, failed, skipped int
	for _, o := range outcomes {
		switch o.Status {
		case validate.StatusPassed:
			passed++
		case validate.StatusFailed:
			failed++
		case validate.StatusSkipped:
			skipped++
		}
		if quiet && o.Status != validate.StatusFailed {
			continue
		}
		line := fmt.Sprintf("[%s] %s", o.Status, o.Name)
		if o.Detail != "" {
			line += " (" + o.Detail + ")"
		}
		fmt.Fprintln(w, line)
		for _, m := range o.Missing {
			fmt.Fprintf(w, "       MISSING %s (in %s)\n", m.Target, m.Source)
		}
	}

	if quiet && failed == 0 {
		return
	}
	fmt.Fprintln(w, banner)
	summary := fmt.Sprintf("%d passed, %d failed, %d skipped", passed, failed, skipped)
	if failed == 0 {
		fmt.Fprintln(w, "PASS: "+summary)
	} else {
		fmt.Fprintln(w, "FAIL: "+summary)
	}
	fmt.Fprintln(w, banner)
}
