package mdpdf

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer prints a local HTML file to PDF. Implemented per engine.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ pdfConverter = (*tempFileConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
	_ pdfRenderer  = (*chromedpRenderer)(nil)
)

// pdfOptions holds options for PDF generation.
// Page size and margins come from the stylesheet's @page rule.
type pdfOptions struct {
	Footer *Footer
}

// newPDFConverter returns the converter for an engine name.
func newPDFConverter(engine string, timeout time.Duration, logger *zap.Logger) (*tempFileConverter, error) {
	var r pdfRenderer
	switch strings.ToLower(engine) {
	case "", EngineRod:
		r = newRodRenderer(timeout, logger)
	case EngineChromedp:
		r = newChromedpRenderer(timeout, logger)
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidEngine, engine, EngineRod, EngineChromedp)
	}
	return &tempFileConverter{renderer: r}, nil
}

// tempFileConverter writes the document to a temp file and prints it from
// a file:// URL, so file:// image references resolve in the page.
type tempFileConverter struct {
	renderer pdfRenderer
}

// ToPDF converts a complete HTML document to PDF bytes.
func (c *tempFileConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *tempFileConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}

// browserBinEnv names a pre-installed Chrome binary, used by both engines.
const browserBinEnv = "ROD_BROWSER_BIN"

// noSandbox reports whether Chrome must run without its sandbox:
// in CI, in containers, and as root.
func noSandbox() bool {
	if os.Getenv("CI") == "true" || os.Getenv(browserBinEnv) != "" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		return true
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return os.Geteuid() == 0
}

// pageTimeout returns the time left before the context deadline, or the
// default when there is none.
func pageTimeout(ctx context.Context, fallback time.Duration) (time.Duration, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return fallback, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	return left, nil
}

// fileURL converts an absolute path to a file:// URL.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod downloads Chromium on first run if no browser is found.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	logger   *zap.Logger
}

func newRodRenderer(timeout time.Duration, logger *zap.Logger) *rodRenderer {
	return &rodRenderer{timeout: timeout, logger: logger}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()
	if bin := os.Getenv(browserBinEnv); bin != "" {
		l = l.Bin(bin)
	}
	if noSandbox() {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	r.logger.Debug("browser launched", zap.String("engine", EngineRod), zap.Int("pid", l.PID()))
	return nil
}

// Close releases browser resources and kills the Chrome process tree.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLauncher()
	return err
}

func (r *rodRenderer) killLauncher() {
	if r.launcher == nil {
		return
	}
	if err := process.KillTree(r.launcher.PID()); err != nil {
		r.logger.Debug("killing browser tree", zap.Error(err))
	}
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.launcher = nil
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout, err := pageTimeout(ctx, r.timeout)
	if err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: fileURL(filePath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func(p *rod.Page) { _ = p.Close() }(page)

	page = page.Context(ctx).Timeout(timeout)

	if err := page.WaitLoad(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPrintOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: printing PDF: %v", ErrRenderFailure, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrRenderFailure, err)
	}

	return pdfBuf, nil
}

// buildPrintOptions prints with the stylesheet's page box and backgrounds.
func buildPrintOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	pdfOpts := &proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}

	if opts != nil && opts.Footer != nil {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = "<span></span>"
		pdfOpts.FooterTemplate = buildFooterTemplate(opts.Footer)
	}

	return pdfOpts
}
