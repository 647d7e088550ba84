package mdpdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/alnah/go-mdpdf/internal/process"
)

// chromedpRenderer implements pdfRenderer over the Chrome DevTools
// Protocol with chromedp. The browser starts on the first render and each
// render uses its own tab.
type chromedpRenderer struct {
	timeout       time.Duration
	logger        *zap.Logger
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	pid           int
}

func newChromedpRenderer(timeout time.Duration, logger *zap.Logger) *chromedpRenderer {
	return &chromedpRenderer{timeout: timeout, logger: logger}
}

// allocatorOptions returns headless flags suited to server environments.
func allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if bin := os.Getenv(browserBinEnv); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}
	if noSandbox() {
		opts = append(opts, chromedp.NoSandbox)
	}
	return opts
}

// ensureBrowser starts the allocator and the browser once.
func (r *chromedpRenderer) ensureBrowser() error {
	if r.browserCtx != nil {
		return nil
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocatorOptions()...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
		chromedp.WithErrorf(func(format string, args ...any) {
			r.logger.Debug(fmt.Sprintf(format, args...), zap.String("engine", EngineChromedp))
		}),
	)

	// An empty Run starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.allocCancel = allocCancel
	r.browserCtx = browserCtx
	r.browserCancel = browserCancel
	if c := chromedp.FromContext(browserCtx); c != nil && c.Browser != nil {
		if p := c.Browser.Process(); p != nil {
			r.pid = p.Pid
		}
	}
	r.logger.Debug("browser launched", zap.String("engine", EngineChromedp), zap.Int("pid", r.pid))
	return nil
}

// RenderFromFile navigates a new tab to the file and prints it.
func (r *chromedpRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
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

	tabCtx, tabCancel := chromedp.NewContext(r.browserCtx)
	defer tabCancel()
	tabCtx, timeoutCancel := context.WithTimeout(tabCtx, timeout)
	defer timeoutCancel()

	// The tab derives from the browser context, so the caller's
	// cancellation is forwarded explicitly.
	stop := context.AfterFunc(ctx, timeoutCancel)
	defer stop()

	if err := chromedp.Run(tabCtx, chromedp.Navigate(fileURL(filePath))); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(tabCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: timed out after %v", ErrPageLoad, timeout)
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	var pdfData []byte
	err = chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		params := page.PrintToPDF().
			WithPrintBackground(true).
			WithPreferCSSPageSize(true)
		if opts != nil && opts.Footer != nil {
			params = params.
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate("<span></span>").
				WithFooterTemplate(buildFooterTemplate(opts.Footer))
		}
		data, _, err := params.Do(ctx)
		if err != nil {
			return err
		}
		pdfData = data
		return nil
	}))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: printing PDF: %v", ErrRenderFailure, err)
	}
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("%w: generated PDF is empty", ErrRenderFailure)
	}

	return pdfData, nil
}

// Close stops the browser and its allocator, then kills any helper
// processes Chrome left in its group.
func (r *chromedpRenderer) Close() error {
	defer func() {
		if r.pid == 0 {
			return
		}
		if err := process.KillTree(r.pid); err != nil {
			r.logger.Debug("killing browser tree", zap.Error(err))
		}
		r.pid = 0
	}()

	if r.browserCancel != nil {
		r.browserCancel()
		r.browserCancel = nil
		r.browserCtx = nil
	}
	if r.allocCancel != nil {
		r.allocCancel()
		r.allocCancel = nil
	}
	return nil
}
