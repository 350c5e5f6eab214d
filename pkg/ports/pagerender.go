package ports

import "context"

// PDFOptions controls document page rendering.
type PDFOptions struct {
	// PageWidthPx is the page content width in CSS pixels.
	PageWidthPx int
	// MarginVerticalPx is the top and bottom page margin in CSS pixels.
	MarginVerticalPx int
	// MarginHorizontalPx is the left and right page margin in CSS pixels.
	MarginHorizontalPx int
	// TimeoutMs bounds the whole render, including navigation.
	TimeoutMs int
}

// PDFResult is a rendered document page.
type PDFResult struct {
	// Data is the PDF bytes.
	Data []byte
	// ContentHeight is the realized document height in CSS pixels,
	// measured after layout and used to size the page.
	ContentHeight int
}

// PageRenderer rasterizes an HTML document into a single PDF page sized
// to its realized content height. Implementations must lay the page out
// first, query the content height, and only then produce the page.
type PageRenderer interface {
	RenderPDF(ctx context.Context, url string, opts PDFOptions) (*PDFResult, error)
}
