package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdpdf/internal/config"
)

// commonFlags holds flags shared across conversion commands.
type commonFlags struct {
	config     string
	engine     string
	timeout    time.Duration
	extensions []string
	sanitize   bool
	assetPath  string
	quiet      bool
	verbose    bool
	style      styleFlags
	page       pageFlags
	footer     footerFlags
	toc        tocFlags
}

// styleFlags holds theme and custom CSS flags.
type styleFlags struct {
	theme     string
	cssFile   string
	customCSS string
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
	numbers     bool
}

// footerFlags holds footer-related flags.
type footerFlags struct {
	position string
	text     string
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	enabled  bool
	title    string
	minDepth int
	maxDepth int
}

// newFlagSet returns a FlagSet that reports errors instead of printing them.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	return fs
}

// parseFlags parses args and maps pflag errors to ErrUsage.
// A -h request prints usage to w and returns flag.ErrHelp.
func parseFlags(fs *flag.FlagSet, args []string, w io.Writer, usage func(io.Writer)) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(w)
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVar(&f.config, "config", "", "config file name or path")
	fs.StringVar(&f.engine, "engine", "", "PDF engine: rod, chromedp")
	fs.DurationVar(&f.timeout, "timeout", 0, "render timeout per document")
	fs.StringSliceVar(&f.extensions, "extensions", nil, "Markdown extensions (comma-separated)")
	fs.BoolVar(&f.sanitize, "sanitize", false, "sanitize rendered HTML")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory of custom themes")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only print errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print timing and debug logs")
	addStyleFlags(fs, &f.style)
	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)
	addTOCFlags(fs, &f.toc)
}

func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVarP(&f.theme, "theme", "t", "", "theme name")
	fs.StringVarP(&f.cssFile, "css", "c", "", "custom CSS file")
	fs.StringVar(&f.customCSS, "custom-css", "", "inline custom CSS")
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVar(&f.size, "page-size", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "margin in inches (0.25-3.0)")
	fs.BoolVar(&f.numbers, "page-numbers", false, "print page numbers in the footer")
}

func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.StringVar(&f.position, "footer-position", "", "footer position: left, center, right")
	fs.StringVar(&f.text, "footer-text", "", "footer text")
}

func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.enabled, "toc", false, "prepend a table of contents")
	fs.StringVar(&f.title, "toc-title", "", "table of contents title")
	fs.IntVar(&f.minDepth, "toc-min-depth", 0, "shallowest heading level in the TOC (1-6)")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "deepest heading level in the TOC (1-6)")
}

// apply overlays flags the user set on cfg. Unset flags keep the values
// from the config file and environment.
func (f *commonFlags) apply(fs *flag.FlagSet, cfg *config.Config) {
	set := fs.Changed
	if set("engine") {
		cfg.Render.Engine = f.engine
	}
	if set("timeout") {
		cfg.Render.Timeout = f.timeout.String()
	}
	if set("extensions") {
		cfg.Markdown.Extensions = f.extensions
	}
	if set("sanitize") {
		cfg.Markdown.Sanitize = f.sanitize
	}
	if set("asset-path") {
		cfg.Assets.Path = f.assetPath
	}
	if set("theme") {
		cfg.Theme = f.style.theme
	}
	if set("css") {
		cfg.CSS.File = f.style.cssFile
	}
	if set("custom-css") {
		cfg.CSS.Inline = f.style.customCSS
	}
	if set("page-size") {
		cfg.Page.Size = f.page.size
	}
	if set("orientation") {
		cfg.Page.Orientation = f.page.orientation
	}
	if set("margin") {
		cfg.Page.Margin = f.page.margin
	}
	if set("page-numbers") {
		cfg.Page.Numbers = f.page.numbers
	}
	if set("footer-position") {
		cfg.Footer.Position = f.footer.position
	}
	if set("footer-text") {
		cfg.Footer.Text = f.footer.text
	}
	if set("toc") {
		cfg.TOC.Enabled = f.toc.enabled
	}
	if set("toc-title") {
		cfg.TOC.Title = f.toc.title
	}
	if set("toc-min-depth") {
		cfg.TOC.MinDepth = f.toc.minDepth
	}
	if set("toc-max-depth") {
		cfg.TOC.MaxDepth = f.toc.maxDepth
	}
}
