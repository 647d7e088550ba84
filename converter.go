package mdpdf

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/pipeline"
)

// Generator is written to the generator meta tag of every document.
const Generator = "go-mdpdf"

// htmlConverter is the Markdown stage as the converter uses it.
type htmlConverter interface {
	pipeline.HTMLConverter
	Enabled(name string) bool
}

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ htmlConverter                 = (*pipeline.GoldmarkConverter)(nil)
)

// Converter orchestrates the Markdown-to-PDF pipeline.
// Create with NewConverter, convert with Convert, ConvertFile, ConvertString
// or ConvertBatch, and Close when done.
//
// A Converter owns one browser and is not safe for concurrent use.
// Use ConverterPool for parallel work.
type Converter struct {
	cfg          converterConfig
	logger       *zap.Logger
	assets       assets.AssetLoader
	preprocessor pipeline.MarkdownPreprocessor
	md           htmlConverter
	pdfConverter pdfConverter
	themeCache   map[string]string
}

// NewConverter creates a Converter. No browser starts until the first PDF.
// Returns ErrUnknownExtension, ErrUnknownTheme, ErrInvalidEngine,
// ErrInvalidAssetPath or a settings validation error for bad options.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:        converterConfig{timeout: defaultTimeout},
		logger:     zap.NewNop(),
		themeCache: make(map[string]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.validateConfig(); err != nil {
		return nil, err
	}

	if c.assets == nil {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assets = resolver
	}

	if c.md == nil {
		md, err := pipeline.NewGoldmarkConverter(pipeline.GoldmarkOptions{
			Extensions: c.cfg.extensions,
			Sanitize:   c.cfg.sanitize,
		})
		if err != nil {
			return nil, err
		}
		c.md = md
	}

	if c.preprocessor == nil {
		c.preprocessor = &pipeline.CommonMarkPreprocessor{Highlight: c.md.Enabled(pipeline.ExtHighlight)}
	}

	// Fail fast on a bad default theme rather than on the first document.
	if c.cfg.theme != "" {
		if _, err := c.themeStylesheet(c.cfg.theme); err != nil {
			return nil, err
		}
	}

	if c.pdfConverter == nil {
		pc, err := newPDFConverter(c.cfg.engine, c.cfg.timeout, c.logger)
		if err != nil {
			return nil, err
		}
		c.pdfConverter = pc
	}

	return c, nil
}

// validateConfig checks option values that do not need any loader.
func (c *Converter) validateConfig() error {
	switch c.cfg.engine {
	case "", EngineRod, EngineChromedp:
	default:
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidEngine, c.cfg.engine, EngineRod, EngineChromedp)
	}
	if err := c.cfg.page.Validate(); err != nil {
		return err
	}
	if err := c.cfg.footer.Validate(); err != nil {
		return err
	}
	return c.cfg.toc.Validate()
}

// Convert runs the full pipeline in memory and returns the HTML document,
// and the PDF unless input.Mode is ModeHTML.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: internal error: %v", ErrRenderFailure, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, footer, toc := c.settingsFor(input)
	if err := c.validateSettings(page, footer, toc); err != nil {
		return nil, err
	}

	css, err := c.resolveStylesheet(input.Theme, page, input.CSSFile, input.CSS)
	if err != nil {
		return nil, err
	}

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frag, err := c.md.ToHTML(ctx, mdContent)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	if frag.MetaErr != nil {
		c.logger.Debug("metadata block ignored", zap.Error(frag.MetaErr))
	}

	body := frag.HTML
	if toc != nil {
		body = pipeline.InjectTOC(body, toTOCData(toc))
	}
	title := pipeline.ResolveTitle(input.Title, frag.Meta, body)

	rw, err := pipeline.RewriteRelativePaths(body, input.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("%w: rewriting relative paths: %v", ErrRenderFailure, err)
	}
	for _, img := range rw.Missing {
		c.logger.Warn("image not found", zap.String("image", img), zap.String("dir", input.SourceDir))
	}

	doc, err := pipeline.BuildDocument(rw.HTML, pipeline.Head{
		Title:     title,
		Meta:      frag.Meta,
		Generator: Generator,
	}, css)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}

	res := &ConvertResult{
		HTML:          []byte(doc),
		CSS:           css,
		Title:         title,
		Meta:          frag.Meta,
		MissingImages: rw.Missing,
	}

	if input.Mode == ModeHTML {
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	pdfBytes, err := c.pdfConverter.ToPDF(ctx, doc, &pdfOptions{Footer: footer})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	c.logger.Debug("pdf rendered",
		zap.String("engine", c.engineName()),
		zap.Int("bytes", len(pdfBytes)),
		zap.Duration("duration", time.Since(start)))

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// settingsFor fills per-input settings from the converter defaults.
func (c *Converter) settingsFor(input Input) (*PageSettings, *Footer, *TOC) {
	page, footer, toc := input.Page, input.Footer, input.TOC
	if page == nil {
		page = c.cfg.page
	}
	if footer == nil {
		footer = c.cfg.footer
	}
	if toc == nil {
		toc = c.cfg.toc
	}
	return page, footer, toc
}

// validateSettings is the trust boundary for callers building Input by hand.
func (c *Converter) validateSettings(page *PageSettings, footer *Footer, toc *TOC) error {
	if err := page.Validate(); err != nil {
		return err
	}
	if err := footer.Validate(); err != nil {
		return err
	}
	return toc.Validate()
}

func (c *Converter) engineName() string {
	if c.cfg.engine == "" {
		return EngineRod
	}
	return c.cfg.engine
}

// toTOCData converts the public TOC type to pipeline.TOCData.
func toTOCData(t *TOC) *pipeline.TOCData {
	minDepth, maxDepth := t.depths()
	title := t.Title
	if title == "" {
		title = pipeline.DefaultTOCTitle
	}
	return &pipeline.TOCData{Title: title, MinDepth: minDepth, MaxDepth: maxDepth}
}
