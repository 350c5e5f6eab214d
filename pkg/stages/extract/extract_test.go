package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/logger"
	"github.com/HollaG/youtube-screenshot-server/pkg/mocks"
	"github.com/HollaG/youtube-screenshot-server/pkg/pipeline"
)

func TestFrameFileName(t *testing.T) {
	tests := []struct {
		timestamp float64
		want      string
	}{
		{5, "thumbnail-5.png"},
		{83.01, "thumbnail-83.01.png"},
		{0, "thumbnail-0.png"},
		{12.5, "thumbnail-12.5.png"},
	}
	for _, tt := range tests {
		if got := FrameFileName(tt.timestamp); got != tt.want {
			t.Errorf("FrameFileName(%v): expected %s, got %s", tt.timestamp, tt.want, got)
		}
	}
}

func TestParseFrameTimestamp(t *testing.T) {
	ts, err := ParseFrameTimestamp("thumbnail-83.01.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts != 83.01 {
		t.Errorf("expected 83.01, got %v", ts)
	}

	if _, err := ParseFrameTimestamp("other-5.png"); err == nil {
		t.Error("expected error for wrong prefix")
	}
	if _, err := ParseFrameTimestamp("thumbnail-abc.png"); err == nil {
		t.Error("expected error for unparsable timestamp")
	}
}

func TestExtractStage_CapturesInRequestOrder(t *testing.T) {
	fs := mocks.NewFileSystem()
	capturer := mocks.NewFrameCapturer()
	capturer.FS = fs

	stage := NewStage(capturer, fs, mocks.NewDebugSink(false), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ExtractInput{
		VideoPath:  "video.mp4",
		Timestamps: []float64{5.25, 1, 3},
		OutputDir:  "frames",
		Size:       pipeline.Dimension{Width: 1920, Height: 1080},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Capture order follows the request.
	wantOrder := []float64{5.25, 1, 3}
	if len(capturer.Captured) != len(wantOrder) {
		t.Fatalf("expected %d captures, got %d", len(wantOrder), len(capturer.Captured))
	}
	for i, want := range wantOrder {
		if capturer.Captured[i] != want {
			t.Errorf("capture %d: expected %v, got %v", i, want, capturer.Captured[i])
		}
	}

	// Result order is ascending timestamp.
	wantSorted := []float64{1, 3, 5.25}
	if len(result.Frames) != len(wantSorted) {
		t.Fatalf("expected %d frames, got %d", len(wantSorted), len(result.Frames))
	}
	for i, want := range wantSorted {
		if result.Frames[i].Timestamp != want {
			t.Errorf("frame %d: expected timestamp %v, got %v", i, want, result.Frames[i].Timestamp)
		}
		wantPath := filepath.Join("frames", FrameFileName(want))
		if result.Frames[i].Path != wantPath {
			t.Errorf("frame %d: expected path %s, got %s", i, wantPath, result.Frames[i].Path)
		}
		if result.Frames[i].Size.Width != 1920 {
			t.Errorf("frame %d: size not propagated", i)
		}
	}
}

func TestExtractStage_CaptureFailure(t *testing.T) {
	fs := mocks.NewFileSystem()
	capturer := mocks.NewFrameCapturer()
	capturer.FS = fs
	capturer.CaptureFunc = func(ctx context.Context, videoPath string, timestamp float64, outPath string) error {
		if timestamp == 3 {
			return fmt.Errorf("seek past end")
		}
		return fs.WriteFile(outPath, []byte("png"))
	}

	stage := NewStage(capturer, fs, mocks.NewDebugSink(false), logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.ExtractInput{
		VideoPath:  "video.mp4",
		Timestamps: []float64{1, 3, 5},
		OutputDir:  "frames",
	})
	if err == nil {
		t.Fatal("expected error")
	}

	var extractErr *pipeline.ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %T: %v", err, err)
	}
	if extractErr.Timestamp != 3 {
		t.Errorf("expected timestamp 3, got %v", extractErr.Timestamp)
	}
}

func TestExtractStage_IgnoresForeignFiles(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile(filepath.Join("frames", "video.mp4"), []byte("mp4"))
	fs.WriteFile(filepath.Join("frames", "notes.txt"), []byte("x"))

	capturer := mocks.NewFrameCapturer()
	capturer.FS = fs

	stage := NewStage(capturer, fs, mocks.NewDebugSink(false), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ExtractInput{
		VideoPath:  "video.mp4",
		Timestamps: []float64{2},
		OutputDir:  "frames",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(result.Frames))
	}
}

func TestExtractStage_UnparsableFrameName(t *testing.T) {
	fs := mocks.NewFileSystem()
	// A file that matches the frame pattern but embeds garbage.
	fs.WriteFile(filepath.Join("frames", "thumbnail-abc.png"), []byte("png"))

	capturer := mocks.NewFrameCapturer()
	capturer.FS = fs

	stage := NewStage(capturer, fs, mocks.NewDebugSink(false), logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.ExtractInput{
		VideoPath:  "video.mp4",
		Timestamps: []float64{2},
		OutputDir:  "frames",
	})
	if err == nil {
		t.Fatal("expected error")
	}

	var extractErr *pipeline.ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %T: %v", err, err)
	}
	if extractErr.Timestamp >= 0 {
		t.Errorf("expected unidentified timestamp, got %v", extractErr.Timestamp)
	}
}

func TestExtractStage_SavesRawFrames(t *testing.T) {
	fs := mocks.NewFileSystem()
	capturer := mocks.NewFrameCapturer()
	capturer.FS = fs

	sink := mocks.NewDebugSink(true)
	stage := NewStage(capturer, fs, sink, logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.ExtractInput{
		VideoPath:  "video.mp4",
		Timestamps: []float64{7},
		OutputDir:  "frames",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sink.RawFrames[7]; !ok {
		t.Error("raw frame not saved to sink")
	}
}
