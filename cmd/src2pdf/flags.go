package main

import (
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-src2pdf/internal/config"
)

// defaultTimeout bounds the browser page load.
const defaultTimeout = 30 * time.Second

// cliFlags holds all command-line flags.
type cliFlags struct {
	config  string
	verbose bool
	quiet   bool
	html    bool
	timeout time.Duration
	version bool
	help    bool
}

// parseFlags parses args (including the program name) and returns the flags
// and the positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("src2pdf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.StringVarP(&f.config, "config", "c", config.DefaultPath, "config file path")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug diagnostics")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVar(&f.html, "html", false, "write the HTML document instead of the PDF")
	fs.DurationVar(&f.timeout, "timeout", defaultTimeout, "browser page-load timeout")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if len(args) == 0 {
		return f, nil, nil
	}
	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if f.verbose && f.quiet {
		return nil, nil, fmt.Errorf("%w: --verbose and --quiet are mutually exclusive", ErrUsage)
	}
	if f.timeout <= 0 {
		return nil, nil, fmt.Errorf("%w: --timeout must be positive", ErrUsage)
	}
	return f, fs.Args(), nil
}
