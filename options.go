package mdpdf

import (
	"time"

	"go.uber.org/zap"
)

// Render engines.
const (
	EngineRod      = "rod"
	EngineChromedp = "chromedp"
)

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds settings applied by options.
type converterConfig struct {
	timeout    time.Duration
	theme      string
	extensions []string
	sanitize   bool
	engine     string
	assetPath  string
	page       *PageSettings
	footer     *Footer
	toc        *TOC
}

// WithTimeout sets the default render timeout, used when the context has
// no deadline. Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdpdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithTheme sets the theme used when a request names none.
func WithTheme(name string) Option {
	return func(c *Converter) {
		c.cfg.theme = name
	}
}

// WithExtensions sets the enabled Markdown extensions.
// Nil keeps the defaults; an empty slice disables all of them.
func WithExtensions(names []string) Option {
	return func(c *Converter) {
		c.cfg.extensions = names
	}
}

// WithSanitize passes rendered HTML through an allow-list sanitiser.
func WithSanitize(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.sanitize = enabled
	}
}

// WithEngine selects the PDF engine: EngineRod (default) or EngineChromedp.
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = name
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAssetPath adds a directory of custom themes (styles/<name>.css).
// A custom theme shadows a bundled theme of the same name.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithPage sets page settings for every conversion that has none.
func WithPage(p *PageSettings) Option {
	return func(c *Converter) {
		c.cfg.page = p
	}
}

// WithFooter sets the footer for every conversion that has none.
func WithFooter(f *Footer) Option {
	return func(c *Converter) {
		c.cfg.footer = f
	}
}

// WithTOC prepends a table of contents to every conversion that has none.
func WithTOC(t *TOC) Option {
	return func(c *Converter) {
		c.cfg.toc = t
	}
}
