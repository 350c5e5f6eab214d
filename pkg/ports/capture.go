package ports

import "context"

// FrameCapturer extracts single still frames from a local video file.
type FrameCapturer interface {
	// CaptureFrame writes the frame at timestamp (in seconds) to outPath.
	// Exactly one invocation produces exactly one image file.
	CaptureFrame(ctx context.Context, videoPath string, timestamp float64, outPath string) error

	// Probe reports the pixel dimensions of the video's primary stream.
	// A successful probe may still return (0, 0) when the container
	// carries no usable dimension metadata.
	Probe(ctx context.Context, videoPath string) (width, height int, err error)
}

// MediaProber reads dimensions directly from a media container, without
// invoking an external process. Used as a fallback when the capture
// engine's probe reports no dimensions.
type MediaProber interface {
	ProbeDimensions(path string) (width, height int, err error)
}
