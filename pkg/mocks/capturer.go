package mocks

import (
	"context"
	"sync"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// FrameCapturer is a mock implementation of ports.FrameCapturer.
type FrameCapturer struct {
	mu sync.Mutex

	// Width and Height are returned by Probe.
	Width  int
	Height int

	// FrameData is written for each captured frame unless CaptureFunc is set.
	FrameData []byte
	// FS receives captured frames when set.
	FS *FileSystem

	CaptureFunc func(ctx context.Context, videoPath string, timestamp float64, outPath string) error
	ProbeFunc   func(ctx context.Context, videoPath string) (int, int, error)

	// Captured records the timestamps in capture order.
	Captured []float64
}

// NewFrameCapturer creates a new mock FrameCapturer.
func NewFrameCapturer() *FrameCapturer {
	return &FrameCapturer{
		Width:     1920,
		Height:    1080,
		FrameData: []byte("png-bytes"),
	}
}

func (m *FrameCapturer) CaptureFrame(ctx context.Context, videoPath string, timestamp float64, outPath string) error {
	m.mu.Lock()
	m.Captured = append(m.Captured, timestamp)
	m.mu.Unlock()
	if m.CaptureFunc != nil {
		return m.CaptureFunc(ctx, videoPath, timestamp, outPath)
	}
	if m.FS != nil {
		return m.FS.WriteFile(outPath, m.FrameData)
	}
	return nil
}

func (m *FrameCapturer) Probe(ctx context.Context, videoPath string) (int, int, error) {
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, videoPath)
	}
	return m.Width, m.Height, nil
}

var _ ports.FrameCapturer = (*FrameCapturer)(nil)

// MediaProber is a mock implementation of ports.MediaProber.
type MediaProber struct {
	Width  int
	Height int
	Err    error

	ProbeDimensionsFunc func(path string) (int, int, error)
}

// NewMediaProber creates a new mock MediaProber.
func NewMediaProber(width, height int) *MediaProber {
	return &MediaProber{Width: width, Height: height}
}

func (m *MediaProber) ProbeDimensions(path string) (int, int, error) {
	if m.ProbeDimensionsFunc != nil {
		return m.ProbeDimensionsFunc(path)
	}
	if m.Err != nil {
		return 0, 0, m.Err
	}
	return m.Width, m.Height, nil
}

var _ ports.MediaProber = (*MediaProber)(nil)
