// Package playwrightpdf renders HTML documents to PDF through Playwright's
// managed Chromium. It backs up the chromedp renderer on hosts without a
// system Chrome.
package playwrightpdf

import (
	"context"
	"fmt"
	"strconv"

	"github.com/playwright-community/playwright-go"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// Renderer implements ports.PageRenderer using playwright-go.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Install downloads the Playwright driver and Chromium if missing.
func Install() error {
	return playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
	})
}

// RenderPDF loads url in a fresh Chromium instance, measures the laid-out
// content height, and prints a single page exactly that tall.
func (r *Renderer) RenderPDF(ctx context.Context, url string, opts ports.PDFOptions) (*ports.PDFResult, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args:     []string{"--no-sandbox", "--disable-dev-shm-usage"},
	})
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	defer browser.Close()

	page, err := browser.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{Width: opts.PageWidthPx, Height: 720},
	})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}

	gotoOpts := playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateLoad}
	if opts.TimeoutMs > 0 {
		gotoOpts.Timeout = playwright.Float(float64(opts.TimeoutMs))
	}
	if _, err := page.Goto(url, gotoOpts); err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	measured, err := page.Evaluate(`document.body.scrollHeight`)
	if err != nil {
		return nil, fmt.Errorf("measure content: %w", err)
	}
	contentHeight := toInt(measured)

	pageHeight := contentHeight + 2*opts.MarginVerticalPx
	data, err := page.PDF(playwright.PagePdfOptions{
		PrintBackground: playwright.Bool(true),
		Width:           playwright.String(px(opts.PageWidthPx)),
		Height:          playwright.String(px(pageHeight)),
		Margin: &playwright.Margin{
			Top:    playwright.String(px(opts.MarginVerticalPx)),
			Bottom: playwright.String(px(opts.MarginVerticalPx)),
			Left:   playwright.String(px(opts.MarginHorizontalPx)),
			Right:  playwright.String(px(opts.MarginHorizontalPx)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}

	return &ports.PDFResult{Data: data, ContentHeight: contentHeight}, nil
}

func px(v int) string {
	return strconv.Itoa(v) + "px"
}

// toInt normalizes the JS evaluation result, which arrives as either an
// int or a float64 depending on the value.
func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Ensure Renderer implements ports.PageRenderer
var _ ports.PageRenderer = (*Renderer)(nil)
