package main

import (
	"context"
	"io"
	"os"

	src2pdf "github.com/alnah/go-src2pdf"
)

// Converter is the subset of src2pdf.Converter the CLI uses.
type Converter interface {
	Convert(ctx context.Context, input src2pdf.Input) (*src2pdf.Result, error)
	Close() error
}

// Environment holds injectable dependencies for testability.
type Environment struct {
	Context          context.Context
	Stdout           io.Writer
	Stderr           io.Writer
	StderrIsTerminal bool
	Getwd            func() (string, error)
	NewConverter     func(opts ...src2pdf.Option) (Converter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Context:          context.Background(),
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		StderrIsTerminal: stderrIsTerminal(),
		Getwd:            os.Getwd,
		NewConverter: func(opts ...src2pdf.Option) (Converter, error) {
			return src2pdf.NewConverter(opts...)
		},
	}
}
