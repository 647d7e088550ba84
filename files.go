package mdpdf

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// Output permissions.
const (
	outputDirPerm  = 0o750
	outputFilePerm = 0o644
)

// ConvertFile converts one Markdown file and returns the output path.
// An empty req.Output writes next to the source with the extension swapped
// to .pdf, or .html in ModeHTML. Relative images resolve against the
// source directory.
func (c *Converter) ConvertFile(ctx context.Context, req FileRequest) (string, error) {
	start := time.Now()

	content, err := readSource(req.Source)
	if err != nil {
		return "", err
	}

	output := req.Output
	if output == "" {
		output = fileutil.SwapExt(req.Source, req.Mode.Ext())
	}
	if samePath(output, req.Source) {
		return "", fmt.Errorf("%w: %s would overwrite the source", ErrOutputWrite, output)
	}

	res, err := c.Convert(ctx, Input{
		Markdown:  content,
		Title:     req.Title,
		Theme:     req.Theme,
		CSSFile:   req.CSSFile,
		CSS:       req.CSS,
		SourceDir: filepath.Dir(req.Source),
		Mode:      req.Mode,
	})
	if err != nil {
		return "", err
	}

	n, err := writeOutput(output, res, req.Mode)
	if err != nil {
		return "", err
	}

	c.logger.Debug("converted",
		zap.String("source", req.Source),
		zap.String("output", output),
		zap.String("theme", c.themeName(req.Theme)),
		zap.Int("bytes", n),
		zap.Duration("duration", time.Since(start)))
	return output, nil
}

// ConvertString converts Markdown held in memory and writes req.Output.
// An empty Markdown string yields an empty document.
func (c *Converter) ConvertString(ctx context.Context, req StringRequest) (string, error) {
	if req.Output == "" {
		return "", ErrNoOutput
	}

	res, err := c.Convert(ctx, Input{
		Markdown:  req.Markdown,
		Title:     req.Title,
		Theme:     req.Theme,
		CSSFile:   req.CSSFile,
		CSS:       req.CSS,
		SourceDir: req.SourceDir,
		Mode:      req.Mode,
	})
	if err != nil {
		return "", err
	}

	if _, err := writeOutput(req.Output, res, req.Mode); err != nil {
		return "", err
	}
	return req.Output, nil
}

// readSource reads and decodes a Markdown source file.
func readSource(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrSourceNotFound)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrSourceNotFound, path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, path)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrSourceNotFound, path, err)
	}

	content, err := fileutil.DecodeText(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSourceDecode, path)
	}
	return content, nil
}

// writeOutput writes the artifact for mode, creating parent directories.
func writeOutput(path string, res *ConvertResult, mode Mode) (int, error) {
	data := res.PDF
	if mode == ModeHTML {
		data = res.HTML
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, outputDirPerm); err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrOutputWrite, dir, err)
		}
	}
	if err := os.WriteFile(path, data, outputFilePerm); err != nil { // #nosec G306 -- output is meant to be shared
		return 0, fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, err)
	}
	return len(data), nil
}

// samePath reports whether a and b name the same file.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func (c *Converter) themeName(theme string) string {
	switch {
	case theme != "":
		return theme
	case c.cfg.theme != "":
		return c.cfg.theme
	default:
		return "default"
	}
}
