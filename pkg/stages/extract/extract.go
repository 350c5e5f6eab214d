// Package extract implements the sequential frame extraction stage.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/HollaG/youtube-screenshot-server/pkg/pipeline"
	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

const (
	framePrefix = "thumbnail-"
	frameSuffix = ".png"
)

// FrameFileName returns the deterministic output filename for a timestamp.
// The embedded timestamp is the sole reliable join key back to the request.
func FrameFileName(timestamp float64) string {
	return framePrefix + pipeline.TimestampKey(timestamp) + frameSuffix
}

// ParseFrameTimestamp recovers the timestamp embedded in an extracted
// frame's filename. An unparsable name is a defect, not something to skip.
func ParseFrameTimestamp(name string) (float64, error) {
	if !strings.HasPrefix(name, framePrefix) || !strings.HasSuffix(name, frameSuffix) {
		return 0, fmt.Errorf("filename %q does not match %s<timestamp>%s", name, framePrefix, frameSuffix)
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(name, framePrefix), frameSuffix)
	ts, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("filename %q embeds unparsable timestamp %q", name, raw)
	}
	return ts, nil
}

// Stage drives the capture engine to produce exactly one frame per
// requested timestamp. Extraction is strictly sequential: one capture in
// flight at a time, in request order, so every capture attempt stays
// correlated with its timestamp. The engine's batch mode would reorder
// and rename outputs unpredictably.
type Stage struct {
	capturer ports.FrameCapturer
	fs       ports.FileSystem
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new extract stage.
func NewStage(capturer ports.FrameCapturer, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		capturer: capturer,
		fs:       fs,
		sink:     sink,
		logger:   logger.WithComponent("extract"),
	}
}

// Execute captures one frame per timestamp, then rebuilds the canonical
// frame order by parsing the timestamps embedded in the output filenames
// and sorting ascending.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	for i, ts := range input.Timestamps {
		if err := ctx.Err(); err != nil {
			return pipeline.ExtractResult{}, err
		}

		outPath := filepath.Join(input.OutputDir, FrameFileName(ts))
		s.logger.Debug("Extracting frame %d/%d at %s", i+1, len(input.Timestamps), pipeline.TimestampKey(ts))

		if err := s.capturer.CaptureFrame(ctx, input.VideoPath, pipeline.NormalizeTimestamp(ts), outPath); err != nil {
			return pipeline.ExtractResult{}, &pipeline.ExtractionError{Timestamp: ts, Err: err}
		}

		if s.sink.Enabled() {
			if data, err := s.fs.ReadFile(outPath); err == nil {
				s.sink.SaveRawFrame(ts, data)
			}
		}
	}

	frames, err := s.collectFrames(input)
	if err != nil {
		return pipeline.ExtractResult{}, err
	}

	s.logger.Info("Extracted %d frames", len(frames))
	return pipeline.ExtractResult{Frames: frames}, nil
}

// collectFrames re-reads the output directory and sorts by the embedded
// timestamp. Filesystem enumeration order is never trusted.
func (s *Stage) collectFrames(input pipeline.ExtractInput) ([]pipeline.Frame, error) {
	names, err := s.fs.ReadDir(input.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("list extracted frames: %w", err)
	}

	frames := make([]pipeline.Frame, 0, len(input.Timestamps))
	for _, name := range names {
		if !strings.HasPrefix(name, framePrefix) || !strings.HasSuffix(name, frameSuffix) {
			continue
		}
		ts, err := ParseFrameTimestamp(name)
		if err != nil {
			return nil, &pipeline.ExtractionError{Timestamp: -1, Err: err}
		}
		frames = append(frames, pipeline.Frame{
			Timestamp: ts,
			Path:      filepath.Join(input.OutputDir, name),
			Size:      input.Size,
		})
	}

	if len(frames) != len(input.Timestamps) {
		return nil, &pipeline.ExtractionError{
			Timestamp: -1,
			Err:       fmt.Errorf("expected %d frames, found %d", len(input.Timestamps), len(frames)),
		}
	}

	sort.Slice(frames, func(i, j int) bool {
		return frames[i].Timestamp < frames[j].Timestamp
	})
	return frames, nil
}
