package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
)

// batchFlags holds flags for the batch command.
type batchFlags struct {
	common    commonFlags
	outputDir string
	recursive bool
	preview   bool
	workers   int
	listFile  string
	dryRun    bool
}

// runBatch converts every Markdown file under a directory and/or listed in
// a list file, in parallel. Failures are reported per file and do not stop
// the batch.
func runBatch(ctx context.Context, args []string, env *Environment) error {
	var f batchFlags

	fs := newFlagSet("batch")
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.outputDir, "output", "o", "", "output directory (mirrors the source layout)")
	fs.BoolVarP(&f.recursive, "recursive", "r", false, "include subdirectories")
	fs.BoolVar(&f.preview, "preview", false, "write HTML instead of PDF")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.listFile, "list", "", "file listing sources, one per line")
	fs.BoolVar(&f.dryRun, "dry-run", false, "print planned conversions without converting")

	if err := parseFlags(fs, args, env.Stdout, printBatchUsage); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: batch takes at most one directory", ErrUsage)
	}
	if fs.NArg() == 0 && f.listFile == "" {
		return fmt.Errorf("%w: batch needs a directory or --list", ErrUsage)
	}

	cfg, err := loadSettings(fs, &f.common, env, func(cfg *config.Config) {
		if fs.Changed("output") {
			cfg.Output.Dir = f.outputDir
		}
		if fs.Changed("recursive") {
			cfg.Batch.Recursive = f.recursive
		}
		if fs.Changed("workers") {
			cfg.Batch.Workers = f.workers
		}
	})
	if err != nil {
		return err
	}

	job := mdpdf.BatchJob{
		Dir:       fs.Arg(0),
		Recursive: cfg.Batch.Recursive,
		OutputDir: cfg.Output.Dir,
		CSS:       cfg.CSS.Inline,
		CSSFile:   cfg.CSS.File,
	}
	if f.preview {
		job.Mode = mdpdf.ModeHTML
	}
	if f.listFile != "" {
		if job.Sources, err = readListFile(f.listFile); err != nil {
			return err
		}
	}

	files, err := mdpdf.Discover(job)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdown, describeJob(job, f.listFile))
	}

	if f.dryRun {
		for _, file := range files {
			fmt.Fprintf(env.Stdout, "%s -> %s\n", file.Source, file.Output)
		}
		return nil
	}

	logger, err := newLogger(env, f.common.verbose, f.common.quiet)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts, err := converterOptions(cfg, logger)
	if err != nil {
		return err
	}

	poolSize := mdpdf.ResolvePoolSize(cfg.Batch.Workers)
	logger.Debug("starting batch", zap.Int("files", len(files)), zap.Int("workers", poolSize))

	pool, err := mdpdf.NewConverterPool(poolSize, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Debug("closing pool", zap.Error(err))
		}
	}()

	results := pool.ConvertFiles(ctx, job, files)

	if failed := printResults(results, f.common.quiet, f.common.verbose, cfg.Render.Engine, env); failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s) failed", ErrBatchFailed, failed, len(results))
	}
	return nil
}

// printResults outputs per-file results and the summary.
// Returns the number of failed files.
func printResults(results []mdpdf.BatchResult, quiet, verbose bool, engine string, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			err := withEngineHint(r.Err, engine)
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.Source, err, hintFor(err))
			continue
		}
		succeeded++

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Source, r.Output, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Output)
		}
	}

	if !quiet {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}

// describeJob names the inputs of a batch for messages.
func describeJob(job mdpdf.BatchJob, listFile string) string {
	switch {
	case job.Dir != "" && listFile != "":
		return job.Dir + " and " + listFile
	case job.Dir != "":
		return job.Dir
	default:
		return listFile
	}
}
