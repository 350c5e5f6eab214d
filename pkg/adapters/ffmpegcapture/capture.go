// Package ffmpegcapture extracts still frames and probes resolution using
// the ffmpeg and ffprobe binaries.
package ffmpegcapture

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// Capturer implements ports.FrameCapturer using ffmpeg/ffprobe.
type Capturer struct {
	ffmpegPath  string
	ffprobePath string
	logger      ports.Logger
}

// New creates a new Capturer. Empty paths fall back to PATH lookup.
func New(ffmpegPath, ffprobePath string, logger ports.Logger) *Capturer {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Capturer{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		logger:      logger.WithComponent("ffmpeg"),
	}
}

// CaptureFrame extracts exactly one frame at timestamp into outPath.
// Seeking (-ss) before the input keeps extraction fast on long videos.
func (c *Capturer) CaptureFrame(ctx context.Context, videoPath string, timestamp float64, outPath string) error {
	args := []string{
		"-ss", strconv.FormatFloat(timestamp, 'f', -1, 64),
		"-i", videoPath,
		"-frames:v", "1",
		"-y",
		outPath,
	}

	c.logger.Debug("Capturing frame at %ss", strconv.FormatFloat(timestamp, 'f', -1, 64))

	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg: %w, output: %s", err, tail(string(output)))
	}

	// ffmpeg exits zero but writes nothing when the seek lands past the
	// end of the stream.
	if info, err := os.Stat(outPath); err != nil || info.Size() == 0 {
		return fmt.Errorf("no frame produced at %s", strconv.FormatFloat(timestamp, 'f', -1, 64))
	}
	return nil
}

// Probe reports the primary video stream's dimensions. A stream without
// dimension metadata yields (0, 0) with no error; only a failed ffprobe
// invocation is an error.
func (c *Capturer) Probe(ctx context.Context, videoPath string) (int, int, error) {
	cmd := exec.CommandContext(ctx, c.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=s=x:p=0",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe: %w", err)
	}

	dims := strings.TrimSpace(string(output))
	if dims == "" {
		return 0, 0, nil
	}

	parts := strings.SplitN(dims, "x", 2)
	if len(parts) != 2 {
		return 0, 0, nil
	}
	width, werr := strconv.Atoi(strings.TrimSpace(parts[0]))
	height, herr := strconv.Atoi(strings.TrimSpace(parts[1]))
	if werr != nil || herr != nil {
		return 0, 0, nil
	}
	return width, height, nil
}

func tail(s string) string {
	const max = 400
	s = strings.TrimSpace(s)
	if len(s) > max {
		return "..." + s[len(s)-max:]
	}
	return s
}

// Ensure Capturer implements ports.FrameCapturer
var _ ports.FrameCapturer = (*Capturer)(nil)
