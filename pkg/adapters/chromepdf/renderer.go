// Package chromepdf renders HTML documents to PDF using chromedp.
package chromepdf

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// cssPixelsPerInch is the CSS reference pixel density used to convert
// pixel options into the inch values PrintToPDF expects.
const cssPixelsPerInch = 96.0

// Renderer implements ports.PageRenderer using chromedp.
type Renderer struct {
	chromePath string
}

// New creates a new Renderer. chromePath may be empty; the executable is
// then resolved via CHROME_PATH and system defaults.
func New(chromePath string) *Renderer {
	return &Renderer{chromePath: chromePath}
}

// IsAvailable reports whether a Chrome/Chromium executable can be found.
func (r *Renderer) IsAvailable() bool {
	return ResolveChromePath(r.chromePath) != ""
}

// RenderPDF loads url in a headless browser, measures the laid-out content
// height, and prints a single page exactly that tall.
func (r *Renderer) RenderPDF(ctx context.Context, url string, opts ports.PDFOptions) (*ports.PDFResult, error) {
	chromePath := ResolveChromePath(r.chromePath)
	if chromePath == "" {
		return nil, fmt.Errorf("chrome not found: install Chrome/Chromium or set CHROME_PATH")
	}

	chromedpOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.ExecPath(chromePath),
		chromedp.Flag("headless", "new"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("mute-audio", true),
	}

	if opts.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(opts.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, chromedpOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var contentHeight int
	var pdf []byte

	widthIn := float64(opts.PageWidthPx) / cssPixelsPerInch
	marginVIn := float64(opts.MarginVerticalPx) / cssPixelsPerInch
	marginHIn := float64(opts.MarginHorizontalPx) / cssPixelsPerInch

	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(opts.PageWidthPx), 720),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.body.scrollHeight`, &contentHeight),
		chromedp.ActionFunc(func(ctx context.Context) error {
			heightIn := float64(contentHeight)/cssPixelsPerInch + 2*marginVIn
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(widthIn).
				WithPaperHeight(heightIn).
				WithMarginTop(marginVIn).
				WithMarginBottom(marginVIn).
				WithMarginLeft(marginHIn).
				WithMarginRight(marginHIn).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	return &ports.PDFResult{Data: pdf, ContentHeight: contentHeight}, nil
}

// Ensure Renderer implements ports.PageRenderer
var _ ports.PageRenderer = (*Renderer)(nil)
