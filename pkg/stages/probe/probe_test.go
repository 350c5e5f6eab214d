package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/logger"
	"github.com/HollaG/youtube-screenshot-server/pkg/mocks"
	"github.com/HollaG/youtube-screenshot-server/pkg/pipeline"
)

func TestProbeStage_EngineProbe(t *testing.T) {
	capturer := mocks.NewFrameCapturer()
	capturer.Width = 1920
	capturer.Height = 1080

	stage := NewStage(capturer, mocks.NewMediaProber(640, 360), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ProbeInput{VideoPath: "video.mp4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Size.Width != 1920 || result.Size.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", result.Size.Width, result.Size.Height)
	}
	if result.Source != "probe" {
		t.Errorf("expected probe source, got %s", result.Source)
	}
}

func TestProbeStage_ContainerFallback(t *testing.T) {
	capturer := mocks.NewFrameCapturer()
	capturer.ProbeFunc = func(ctx context.Context, videoPath string) (int, int, error) {
		return 0, 0, nil
	}

	stage := NewStage(capturer, mocks.NewMediaProber(854, 480), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ProbeInput{VideoPath: "video.mp4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Size.Width != 854 || result.Size.Height != 480 {
		t.Errorf("expected 854x480, got %dx%d", result.Size.Width, result.Size.Height)
	}
	if result.Source != "container" {
		t.Errorf("expected container source, got %s", result.Source)
	}
}

func TestProbeStage_DefaultFallback(t *testing.T) {
	capturer := mocks.NewFrameCapturer()
	capturer.ProbeFunc = func(ctx context.Context, videoPath string) (int, int, error) {
		return 0, 0, nil
	}
	prober := mocks.NewMediaProber(0, 0)
	prober.Err = errors.New("no moov box")

	stage := NewStage(capturer, prober, logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ProbeInput{VideoPath: "video.mp4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Size.Width != DefaultWidth || result.Size.Height != DefaultHeight {
		t.Errorf("expected defaults, got %dx%d", result.Size.Width, result.Size.Height)
	}
	if result.Source != "default" {
		t.Errorf("expected default source, got %s", result.Source)
	}
}

func TestProbeStage_NilLocalProber(t *testing.T) {
	capturer := mocks.NewFrameCapturer()
	capturer.ProbeFunc = func(ctx context.Context, videoPath string) (int, int, error) {
		return 0, 0, nil
	}

	stage := NewStage(capturer, nil, logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ProbeInput{VideoPath: "video.mp4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Source != "default" {
		t.Errorf("expected default source, got %s", result.Source)
	}
}

func TestProbeStage_ProbeInvocationError(t *testing.T) {
	capturer := mocks.NewFrameCapturer()
	capturer.ProbeFunc = func(ctx context.Context, videoPath string) (int, int, error) {
		return 0, 0, errors.New("ffprobe: executable not found")
	}

	stage := NewStage(capturer, mocks.NewMediaProber(640, 360), logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.ProbeInput{VideoPath: "video.mp4"})
	if err == nil {
		t.Fatal("expected error")
	}

	var metaErr *pipeline.MetadataError
	if !errors.As(err, &metaErr) {
		t.Fatalf("expected MetadataError, got %T: %v", err, err)
	}
}
