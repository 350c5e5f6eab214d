package mocks

import (
	"context"
	"sync"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// PageRenderer is a mock implementation of ports.PageRenderer.
type PageRenderer struct {
	mu sync.Mutex

	// Result is returned on success unless RenderFunc is set.
	Result *ports.PDFResult

	RenderFunc func(ctx context.Context, url string, opts ports.PDFOptions) (*ports.PDFResult, error)

	// LastURL and LastOpts record the most recent render call.
	LastURL  string
	LastOpts ports.PDFOptions
}

// NewPageRenderer creates a new mock PageRenderer.
func NewPageRenderer() *PageRenderer {
	return &PageRenderer{
		Result: &ports.PDFResult{Data: []byte("%PDF-1.4 fake"), ContentHeight: 2400},
	}
}

func (m *PageRenderer) RenderPDF(ctx context.Context, url string, opts ports.PDFOptions) (*ports.PDFResult, error) {
	m.mu.Lock()
	m.LastURL = url
	m.LastOpts = opts
	m.mu.Unlock()
	if m.RenderFunc != nil {
		return m.RenderFunc(ctx, url, opts)
	}
	return m.Result, nil
}

var _ ports.PageRenderer = (*PageRenderer)(nil)
