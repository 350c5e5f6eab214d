// Package smartrenderer provides a page renderer that automatically selects
// the best available backend with fallback support.
package smartrenderer

import (
	"errors"

	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/chromepdf"
	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/playwrightpdf"
	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// Backend represents the rendering backend used.
type Backend string

const (
	// BackendChrome represents rendering through a system Chrome/Chromium.
	BackendChrome Backend = "chrome"
	// BackendPlaywright represents rendering through Playwright's managed Chromium.
	BackendPlaywright Backend = "playwright"
)

// Info contains information about the selected renderer.
type Info struct {
	// Backend is the rendering backend being used.
	Backend Backend
	// FallbackUsed indicates whether a fallback occurred.
	FallbackUsed bool
}

// Options configures the smart renderer behavior.
type Options struct {
	// ChromePath is an optional custom path to the Chrome binary.
	ChromePath string
	// AllowFallback enables fallback to Playwright when no system Chrome
	// is found. The serve and run commands set it from configuration,
	// where it defaults on.
	AllowFallback bool
	// Logger is used to log fallback warnings.
	Logger ports.Logger
}

// ErrNoRendererAvailable is returned when no rendering backend is available.
var ErrNoRendererAvailable = errors.New("smartrenderer: no renderer available")

// New creates a page renderer with automatic backend selection.
//
// The selection flow:
//  1. Use the system Chrome/Chromium via chromedp if one can be resolved
//  2. Otherwise fall back to Playwright's managed Chromium
func New(opts Options) (ports.PageRenderer, Info, error) {
	chrome := chromepdf.New(opts.ChromePath)
	if chrome.IsAvailable() {
		return chrome, Info{Backend: BackendChrome}, nil
	}

	if !opts.AllowFallback {
		return nil, Info{}, ErrNoRendererAvailable
	}

	if opts.Logger != nil {
		opts.Logger.Warn("System Chrome not found, falling back to Playwright Chromium")
	}

	if err := playwrightpdf.Install(); err != nil {
		return nil, Info{}, ErrNoRendererAvailable
	}
	return playwrightpdf.New(), Info{Backend: BackendPlaywright, FallbackUsed: true}, nil
}
