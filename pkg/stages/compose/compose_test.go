package compose

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/logger"
	"github.com/HollaG/youtube-screenshot-server/pkg/mocks"
	"github.com/HollaG/youtube-screenshot-server/pkg/pipeline"
	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

func TestBuildHTML(t *testing.T) {
	html, err := BuildHTML("My Video", []string{"cropped-thumbnail-1.png", "cropped-thumbnail-2.5.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(html, "<title>My Video</title>") {
		t.Error("title missing")
	}
	if !strings.Contains(html, `<h1 style="text-align: center">My Video</h1>`) {
		t.Error("heading missing")
	}

	// Images appear in the given order.
	first := strings.Index(html, "cropped-thumbnail-1.png")
	second := strings.Index(html, "cropped-thumbnail-2.5.png")
	if first < 0 || second < 0 {
		t.Fatal("image sources missing")
	}
	if first > second {
		t.Error("images out of order")
	}
}

func TestBuildHTML_EscapesTitle(t *testing.T) {
	html, err := BuildHTML(`<script>alert("x")</script>`, []string{"a.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("title not escaped")
	}
}

func testStage(renderer ports.PageRenderer, fs *mocks.FileSystem, sink *mocks.DebugSink) *Stage {
	return NewStage(renderer, fs, sink, logger.NewNoop(), Options{
		PageWidthPx:        800,
		MarginVerticalPx:   48,
		MarginHorizontalPx: 48,
		RenderTimeout:      time.Second,
	})
}

func TestComposeStage_RendersDocument(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := mocks.NewPageRenderer()
	sink := mocks.NewDebugSink(true)

	stage := testStage(renderer, fs, sink)

	result, err := stage.Execute(context.Background(), pipeline.ComposeInput{
		Frames: []pipeline.Frame{
			{Timestamp: 1, CroppedPath: filepath.Join("ws", "cropped-thumbnail-1.png")},
			{Timestamp: 2, CroppedPath: filepath.Join("ws", "cropped-thumbnail-2.png")},
		},
		Title:        "Test Video",
		WorkspaceDir: "ws",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.PDF) == 0 {
		t.Error("empty pdf")
	}
	if result.ContentHeight != 2400 {
		t.Errorf("expected content height 2400, got %d", result.ContentHeight)
	}

	// The markup lands in the workspace and the renderer gets a file URL.
	htmlPath := filepath.Join("ws", "result.html")
	if result.HTMLPath != htmlPath {
		t.Errorf("expected html path %s, got %s", htmlPath, result.HTMLPath)
	}
	data, ok := fs.GetFile(htmlPath)
	if !ok {
		t.Fatal("document markup not written")
	}
	if !strings.Contains(string(data), "cropped-thumbnail-1.png") {
		t.Error("markup missing image reference")
	}
	if !strings.HasPrefix(renderer.LastURL, "file://") {
		t.Errorf("expected file URL, got %s", renderer.LastURL)
	}
	if renderer.LastOpts.PageWidthPx != 800 {
		t.Errorf("page width not propagated: %d", renderer.LastOpts.PageWidthPx)
	}

	if sink.DocumentHTML == nil {
		t.Error("document markup not saved to sink")
	}
	if sink.DocumentPDF == nil {
		t.Error("document pdf not saved to sink")
	}
}

func TestComposeStage_NoFrames(t *testing.T) {
	stage := testStage(mocks.NewPageRenderer(), mocks.NewFileSystem(), mocks.NewDebugSink(false))

	_, err := stage.Execute(context.Background(), pipeline.ComposeInput{
		Title:        "Empty",
		WorkspaceDir: "ws",
	})
	var compErr *pipeline.CompositionError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected CompositionError, got %T: %v", err, err)
	}
}

func TestComposeStage_EmptyRenderResult(t *testing.T) {
	renderer := mocks.NewPageRenderer()
	renderer.Result = &ports.PDFResult{Data: nil, ContentHeight: 0}

	stage := testStage(renderer, mocks.NewFileSystem(), mocks.NewDebugSink(false))

	_, err := stage.Execute(context.Background(), pipeline.ComposeInput{
		Frames:       []pipeline.Frame{{Timestamp: 1, CroppedPath: "ws/cropped-thumbnail-1.png"}},
		Title:        "Test",
		WorkspaceDir: "ws",
	})
	var compErr *pipeline.CompositionError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected CompositionError, got %T: %v", err, err)
	}
}

func TestComposeStage_RendererFailure(t *testing.T) {
	renderer := mocks.NewPageRenderer()
	renderer.RenderFunc = func(ctx context.Context, url string, opts ports.PDFOptions) (*ports.PDFResult, error) {
		return nil, errors.New("chrome crashed")
	}

	stage := testStage(renderer, mocks.NewFileSystem(), mocks.NewDebugSink(false))

	_, err := stage.Execute(context.Background(), pipeline.ComposeInput{
		Frames:       []pipeline.Frame{{Timestamp: 1, CroppedPath: "ws/cropped-thumbnail-1.png"}},
		Title:        "Test",
		WorkspaceDir: "ws",
	})
	var compErr *pipeline.CompositionError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected CompositionError, got %T: %v", err, err)
	}
}
