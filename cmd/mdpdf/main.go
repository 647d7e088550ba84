package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/alnah/go-mdpdf/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()
	setMaxProcs(env, os.Args[1:])
	os.Exit(run(os.Args[1:], env))
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota before the pool
// is sized. Adjustments are logged only with -v.
func setMaxProcs(env *Environment, args []string) {
	logf := func(string, ...any) {}
	if hasVerbose(args) {
		if logger, err := newLogger(env, true, false); err == nil {
			logf = logging.Printf(logger)
		}
	}
	// Error ignored: Set only fails on an invalid GOMAXPROCS, and the
	// runtime default applies then.
	_, _ = maxprocs.Set(maxprocs.Logger(logf))
}

// hasVerbose scans raw arguments for -v before any FlagSet exists.
func hasVerbose(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "convert":
		err = runConvert(ctx, "convert", rest, env)
	case "preview":
		err = runConvert(ctx, "preview", rest, env)
	case "batch":
		err = runBatch(ctx, rest, env)
	case "themes":
		err = runThemes(rest, env)
	case "extras":
		err = runExtras(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "mdpdf %s\n", Version)
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// newLogger builds the CLI logger: debug with -v, error with -q, warn
// otherwise. MDPDF_LOG_FORMAT selects the encoder.
func newLogger(env *Environment, verbose, quiet bool) (*zap.Logger, error) {
	cfg := logging.DefaultConfig()
	cfg.Output = env.Stderr
	switch {
	case verbose:
		cfg.Level = "debug"
	case quiet:
		cfg.Level = "error"
	}
	if format := env.Getenv(envLogFormat); format != "" {
		cfg.Format = format
	}
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUsage, envLogFormat, err)
	}
	return logger, nil
}
