// Package mp4probe reads track dimensions directly from an MP4 container.
// It backs up the ffprobe-based probe when the stream metadata is missing.
package mp4probe

import (
	"fmt"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// Prober implements ports.MediaProber for MP4 files.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// ProbeDimensions parses the container's moov box and returns the first
// video track's dimensions. Track header width/height are 16.16 fixed
// point values.
func (p *Prober) ProbeDimensions(path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	parsed, err := mp4.DecodeFile(file)
	if err != nil {
		return 0, 0, fmt.Errorf("decode mp4: %w", err)
	}
	if parsed.Moov == nil {
		return 0, 0, fmt.Errorf("no moov box")
	}

	for _, trak := range parsed.Moov.Traks {
		if trak.Tkhd == nil {
			continue
		}
		width := int(trak.Tkhd.Width >> 16)
		height := int(trak.Tkhd.Height >> 16)
		if width > 0 && height > 0 {
			return width, height, nil
		}
	}
	return 0, 0, fmt.Errorf("no video track with dimensions")
}

// Ensure Prober implements ports.MediaProber
var _ ports.MediaProber = (*Prober)(nil)
