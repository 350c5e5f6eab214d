// Package compose implements the document composition stage.
package compose

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/HollaG/youtube-screenshot-server/pkg/pipeline"
	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

const documentFileName = "result.html"

// Options configures document rendering.
type Options struct {
	// PageWidthPx is the document content width in CSS pixels.
	PageWidthPx int
	// MarginVerticalPx and MarginHorizontalPx are the page margins.
	MarginVerticalPx   int
	MarginHorizontalPx int
	// RenderTimeout bounds the whole render; exceeding it is fatal.
	RenderTimeout time.Duration
}

// Stage composes cropped frames into a single document and renders it to
// a PDF page. Page height is not fixed a priori: the renderer lays the
// document out, reports the realized content height, and sizes the page
// to that height plus the vertical margins.
type Stage struct {
	renderer ports.PageRenderer
	fs       ports.FileSystem
	sink     ports.DebugSink
	logger   ports.Logger
	opts     Options
}

// NewStage creates a new compose stage.
func NewStage(renderer ports.PageRenderer, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger, opts Options) *Stage {
	return &Stage{
		renderer: renderer,
		fs:       fs,
		sink:     sink,
		logger:   logger.WithComponent("compose"),
		opts:     opts,
	}
}

// Execute builds the document markup, writes it to the workspace and
// renders the page.
func (s *Stage) Execute(ctx context.Context, input pipeline.ComposeInput) (pipeline.ComposeResult, error) {
	if len(input.Frames) == 0 {
		return pipeline.ComposeResult{}, &pipeline.CompositionError{Err: errors.New("no frames to compose")}
	}

	images := make([]string, len(input.Frames))
	for i, frame := range input.Frames {
		images[i] = filepath.Base(frame.CroppedPath)
	}

	html, err := BuildHTML(input.Title, images)
	if err != nil {
		return pipeline.ComposeResult{}, &pipeline.CompositionError{Err: err}
	}

	htmlPath := filepath.Join(input.WorkspaceDir, documentFileName)
	if err := s.fs.WriteFile(htmlPath, []byte(html)); err != nil {
		return pipeline.ComposeResult{}, &pipeline.CompositionError{Err: err}
	}
	if s.sink.Enabled() {
		s.sink.SaveDocumentHTML([]byte(html))
	}

	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return pipeline.ComposeResult{}, &pipeline.CompositionError{Err: err}
	}
	url := "file://" + absPath

	renderCtx := ctx
	if s.opts.RenderTimeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, s.opts.RenderTimeout)
		defer cancel()
	}

	s.logger.Debug("Rendering document with %d images", len(images))
	result, err := s.renderer.RenderPDF(renderCtx, url, ports.PDFOptions{
		PageWidthPx:        s.opts.PageWidthPx,
		MarginVerticalPx:   s.opts.MarginVerticalPx,
		MarginHorizontalPx: s.opts.MarginHorizontalPx,
		TimeoutMs:          int(s.opts.RenderTimeout / time.Millisecond),
	})
	if err != nil {
		return pipeline.ComposeResult{}, &pipeline.CompositionError{Err: err}
	}
	if len(result.Data) == 0 {
		return pipeline.ComposeResult{}, &pipeline.CompositionError{Err: fmt.Errorf("renderer produced an empty page")}
	}

	if s.sink.Enabled() {
		s.sink.SaveDocumentPDF(result.Data)
	}

	s.logger.Info("Document rendered: %d bytes, content height %d px", len(result.Data), result.ContentHeight)
	return pipeline.ComposeResult{
		PDF:           result.Data,
		ContentHeight: result.ContentHeight,
		HTMLPath:      htmlPath,
	}, nil
}
