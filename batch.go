package mdpdf

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// Discover lists the files a batch job converts, with their output paths.
// Files are deduplicated by resolved path (symlinks followed) and sorted by
// source path. Explicit sources that do not exist are kept, so the batch
// reports them as failed files.
//
// Returns ErrSourceNotFound when job.Dir is missing and ErrNotADirectory
// when it is a file.
func Discover(job BatchJob) ([]BatchFile, error) {
	if job.Dir == "" && len(job.Sources) == 0 {
		return nil, fmt.Errorf("%w: no directory or sources given", ErrSourceNotFound)
	}

	d := &discoverer{recursive: job.Recursive, seen: make(map[string]bool)}

	if job.Dir != "" {
		if err := checkDir(job.Dir); err != nil {
			return nil, err
		}
		if err := d.addDir(job.Dir); err != nil {
			return nil, err
		}
	}

	for _, src := range job.Sources {
		if err := d.addSource(src); err != nil {
			return nil, err
		}
	}

	sort.Slice(d.found, func(i, j int) bool { return d.found[i].path < d.found[j].path })

	files := make([]BatchFile, len(d.found))
	used := make(map[string]bool, len(d.found))
	for i, f := range d.found {
		out := uniqueOutput(outputPath(f, job.OutputDir, job.Mode), f.path, job.Mode.Ext(), used)
		used[out] = true
		files[i] = BatchFile{Source: f.path, Output: out}
	}
	return files, nil
}

// uniqueOutput returns out, or a variant of it no earlier file claimed:
// first with the source extension kept (a.md.pdf), then numbered
// (a-2.pdf, a-3.pdf, ...).
func uniqueOutput(out, source, ext string, used map[string]bool) string {
	if !used[out] {
		return out
	}
	base := strings.TrimSuffix(out, ext)
	if withSrcExt := base + filepath.Ext(source) + ext; !used[withSrcExt] {
		return withSrcExt
	}
	for n := 2; ; n++ {
		if candidate := fmt.Sprintf("%s-%d%s", base, n, ext); !used[candidate] {
			return candidate
		}
	}
}

// checkDir validates a batch directory.
func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSourceNotFound, dir)
		}
		return fmt.Errorf("%w: %s: %v", ErrSourceNotFound, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}
	return nil
}

// foundFile is a discovered source and the root its output mirrors from.
// An empty root places the output directly under the output directory.
type foundFile struct {
	path string
	root string
}

type discoverer struct {
	recursive bool
	seen      map[string]bool
	found     []foundFile
}

// addSource adds a file, a directory or a glob pattern.
func (d *discoverer) addSource(src string) error {
	if hasGlobMeta(src) {
		matches, err := filepath.Glob(src)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", src, err)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() || !fileutil.IsMarkdown(m) {
				continue
			}
			d.add(m, "")
		}
		return nil
	}

	info, err := os.Stat(src)
	if err == nil && info.IsDir() {
		return d.addDir(src)
	}
	if !fileutil.IsMarkdown(src) {
		return nil
	}
	// Missing files are kept; converting them reports ErrSourceNotFound.
	d.add(src, "")
	return nil
}

// addDir adds the Markdown files in dir, descending only when recursive.
func (d *discoverer) addDir(dir string) error {
	if !d.recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrSourceNotFound, dir, err)
		}
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			if isMarkdownFile(path, e) {
				d.add(path, dir)
			}
		}
		return nil
	}

	return filepath.WalkDir(dir, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() {
			if path != dir && strings.HasPrefix(e.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isMarkdownFile(path, e) {
			d.add(path, dir)
		}
		return nil
	})
}

// add records path unless its resolved form was already seen.
func (d *discoverer) add(path, root string) {
	key := resolvedPath(path)
	if d.seen[key] {
		return
	}
	d.seen[key] = true
	d.found = append(d.found, foundFile{path: path, root: root})
}

// isMarkdownFile accepts regular files and symlinks to regular files.
func isMarkdownFile(path string, e fs.DirEntry) bool {
	if !fileutil.IsMarkdown(path) {
		return false
	}
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		return err == nil && info.Mode().IsRegular()
	}
	return false
}

// resolvedPath returns the absolute, symlink-free path when it can.
func resolvedPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func hasGlobMeta(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

// outputPath places the output next to the source, or under outputDir
// mirroring the source's position below its root.
func outputPath(f foundFile, outputDir string, mode Mode) string {
	if outputDir == "" {
		return fileutil.SwapExt(f.path, mode.Ext())
	}
	rel := filepath.Base(f.path)
	if f.root != "" {
		if r, err := filepath.Rel(f.root, f.path); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	return filepath.Join(outputDir, fileutil.SwapExt(rel, mode.Ext()))
}

// ConvertBatch converts every file of the job one after another.
// A failing file is recorded in its BatchResult and never stops the others.
// The error is non-nil only when the job itself is unusable.
func (c *Converter) ConvertBatch(ctx context.Context, job BatchJob) ([]BatchResult, error) {
	files, err := Discover(job)
	if err != nil {
		return nil, err
	}
	return c.ConvertFiles(ctx, job, files), nil
}

// ConvertFiles converts files already listed by Discover, in order, with
// the job's settings. The job's Dir and Sources are ignored.
func (c *Converter) ConvertFiles(ctx context.Context, job BatchJob, files []BatchFile) []BatchResult {
	results := make([]BatchResult, len(files))
	for i, f := range files {
		results[i] = c.convertBatchFile(ctx, job, f)
	}
	return results
}

// convertBatchFile converts one discovered file with the job's settings.
func (c *Converter) convertBatchFile(ctx context.Context, job BatchJob, f BatchFile) BatchResult {
	res := BatchResult{Source: f.Source, Output: f.Output}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	_, res.Err = c.ConvertFile(ctx, FileRequest{
		Source:  f.Source,
		Output:  f.Output,
		Theme:   job.Theme,
		CSS:     job.CSS,
		CSSFile: job.CSSFile,
		Mode:    job.Mode,
	})
	res.Duration = time.Since(start)
	return res
}
