package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-md2docx/internal/validate"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   zerolog.Logger
	Commands validate.CommandRunner // nil runs real processes
}

// DefaultEnv returns the production environment. The logger discards until
// main replaces it.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: zerolog.Nop(),
	}
}
