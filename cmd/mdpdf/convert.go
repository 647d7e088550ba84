package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// stdinSource reads Markdown from standard input.
const stdinSource = "-"

// convertFlags holds flags for convert and preview.
type convertFlags struct {
	common  commonFlags
	output  string
	title   string
	preview bool
}

// runConvert converts one Markdown file. The preview command always writes
// HTML; convert does so with --preview.
func runConvert(ctx context.Context, name string, args []string, env *Environment) error {
	var f convertFlags
	isPreview := name == "preview"

	fs := newFlagSet(name)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output file")
	fs.StringVar(&f.title, "title", "", "document title")
	usage := printConvertUsage
	if isPreview {
		usage = printPreviewUsage
	} else {
		fs.BoolVar(&f.preview, "preview", false, "write HTML instead of PDF")
	}

	if err := parseFlags(fs, args, env.Stdout, usage); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: %s takes exactly one Markdown file (or - for stdin)", ErrUsage, name)
	}
	source := fs.Arg(0)

	mode := mdpdf.ModePDF
	if isPreview || f.preview {
		mode = mdpdf.ModeHTML
	}

	cfg, err := loadSettings(fs, &f.common, env)
	if err != nil {
		return err
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
	conv, err := mdpdf.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := conv.Close(); err != nil {
			logger.Debug("closing converter", zap.Error(err))
		}
	}()

	output := f.output
	if output == "" && cfg.Output.Dir != "" && source != stdinSource {
		output = outputInDir(cfg.Output.Dir, source, mode)
	}

	start := time.Now()
	if source == stdinSource {
		output, err = convertStdin(ctx, conv, env.Stdin, output, f.title, cfg, mode)
	} else {
		output, err = conv.ConvertFile(ctx, mdpdf.FileRequest{
			Source:  source,
			Output:  output,
			CSS:     cfg.CSS.Inline,
			CSSFile: cfg.CSS.File,
			Mode:    mode,
			Title:   f.title,
		})
	}
	if err != nil {
		return withEngineHint(err, cfg.Render.Engine)
	}

	switch {
	case f.common.quiet:
	case f.common.verbose:
		fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", source, output, time.Since(start).Round(time.Millisecond))
	default:
		fmt.Fprintf(env.Stdout, "Created %s\n", output)
	}
	return nil
}

// convertStdin converts Markdown read from r, dropping any byte order mark.
// Relative images resolve against the working directory.
func convertStdin(ctx context.Context, conv *mdpdf.Converter, r io.Reader, output, title string, cfg *config.Config, mode mdpdf.Mode) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: stdin: %v", mdpdf.ErrSourceNotFound, err)
	}
	markdown, err := fileutil.DecodeText(data)
	if err != nil {
		return "", fmt.Errorf("%w: stdin: %v", mdpdf.ErrSourceDecode, err)
	}
	return conv.ConvertString(ctx, mdpdf.StringRequest{
		Markdown:  markdown,
		Output:    output,
		Title:     title,
		CSS:       cfg.CSS.Inline,
		CSSFile:   cfg.CSS.File,
		Mode:      mode,
		SourceDir: ".",
	})
}

// outputInDir places the output for source directly under dir.
func outputInDir(dir, source string, mode mdpdf.Mode) string {
	base := filepath.Base(source)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+mode.Ext())
}
