package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-src2pdf/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain parses flags, sets up logging and runs the conversion.
// Returns the process exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args)
	if err != nil {
		printError(env.Stderr, err, config.DefaultPath)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		printVersion(env.Stdout)
		return ExitSuccess
	}

	logger := newLogger(env.Stderr, env.StderrIsTerminal, flags.verbose, flags.quiet)
	defer func() { _ = logger.Sync() }()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf))

	ctx, stop := notifyContext(env.Context)
	defer stop()

	if err := run(ctx, positional, flags, env, logger); err != nil {
		printError(env.Stderr, err, flags.config)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// stderrIsTerminal reports whether stderr is attached to a terminal.
func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
