// Package probe implements the metadata resolution stage.
package probe

import (
	"context"

	"github.com/HollaG/youtube-screenshot-server/pkg/pipeline"
	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// Nominal defaults used when no usable dimensions can be resolved.
// Default dimensions keep the pipeline total: full-frame extraction still
// succeeds without real metadata.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Stage resolves the true source resolution. The capture engine's probe is
// authoritative; when it runs but reports nothing usable, a local container
// parse is tried before falling back to nominal defaults. Only a probe
// invocation error is fatal.
type Stage struct {
	capturer ports.FrameCapturer
	local    ports.MediaProber
	logger   ports.Logger
}

// NewStage creates a new probe stage. local may be nil.
func NewStage(capturer ports.FrameCapturer, local ports.MediaProber, logger ports.Logger) *Stage {
	return &Stage{
		capturer: capturer,
		local:    local,
		logger:   logger.WithComponent("probe"),
	}
}

// Execute resolves the source dimensions.
func (s *Stage) Execute(ctx context.Context, input pipeline.ProbeInput) (pipeline.ProbeResult, error) {
	width, height, err := s.capturer.Probe(ctx, input.VideoPath)
	if err != nil {
		return pipeline.ProbeResult{}, &pipeline.MetadataError{Err: err}
	}
	if width > 0 && height > 0 {
		s.logger.Debug("Probed resolution %dx%d", width, height)
		return pipeline.ProbeResult{Size: pipeline.Dimension{Width: width, Height: height}, Source: "probe"}, nil
	}

	if s.local != nil {
		if w, h, err := s.local.ProbeDimensions(input.VideoPath); err == nil && w > 0 && h > 0 {
			s.logger.Debug("Container reported resolution %dx%d", w, h)
			return pipeline.ProbeResult{Size: pipeline.Dimension{Width: w, Height: h}, Source: "container"}, nil
		}
	}

	s.logger.Warn("No usable dimensions reported, assuming %dx%d", DefaultWidth, DefaultHeight)
	return pipeline.ProbeResult{
		Size:   pipeline.Dimension{Width: DefaultWidth, Height: DefaultHeight},
		Source: "default",
	}, nil
}
