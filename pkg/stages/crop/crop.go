package crop

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/HollaG/youtube-screenshot-server/pkg/pipeline"
	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// CroppedFileName returns the output filename for a frame's cropped image.
// The timestamp stays embedded so the archive keeps the same join key as
// the extracted frames.
func CroppedFileName(timestamp float64) string {
	return fmt.Sprintf("cropped-thumbnail-%s.png", pipeline.TimestampKey(timestamp))
}

// Stage crops every frame to its computed rectangle. Crops are independent
// file-in, file-out operations, so they run on a bounded worker pool; the
// output order is restored by the frames' timestamps, never by completion
// order.
type Stage struct {
	imaging    ports.Imaging
	fs         ports.FileSystem
	sink       ports.DebugSink
	logger     ports.Logger
	numWorkers int
}

// NewStage creates a new crop stage. numWorkers <= 0 selects NumCPU.
func NewStage(imaging ports.Imaging, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger, numWorkers int) *Stage {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Stage{
		imaging:    imaging,
		fs:         fs,
		sink:       sink,
		logger:     logger.WithComponent("crop"),
		numWorkers: numWorkers,
	}
}

// Execute crops all frames and returns them in ascending timestamp order.
func (s *Stage) Execute(ctx context.Context, input pipeline.CropInput) (pipeline.CropResult, error) {
	s.logger.Debug("Cropping %d frames with %d workers", len(input.Frames), s.numWorkers)

	frames := make([]pipeline.Frame, len(input.Frames))
	copy(frames, input.Frames)

	workers := s.numWorkers
	if workers > len(frames) {
		workers = len(frames)
	}

	jobs := make(chan int)
	errChan := make(chan error, len(frames))

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := s.cropFrame(workerCtx, &frames[i], input); err != nil {
					errChan <- err
					cancel()
					return
				}
			}
		}()
	}

feed:
	for i := range frames {
		select {
		case jobs <- i:
		case <-workerCtx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return pipeline.CropResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return pipeline.CropResult{}, err
	}

	s.logger.Debug("Cropping completed")
	return pipeline.CropResult{Frames: frames}, nil
}

func (s *Stage) cropFrame(ctx context.Context, frame *pipeline.Frame, input pipeline.CropInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var spec *pipeline.CropSpec
	if sp, ok := input.Specs[pipeline.TimestampKey(frame.Timestamp)]; ok {
		spec = &sp
	}

	rect, err := ComputeRect(frame.Size.Width, frame.Size.Height, spec)
	if err != nil {
		return &pipeline.CropGeometryError{Timestamp: frame.Timestamp, Rect: rect, Err: err}
	}
	frame.CropRect = rect

	data, err := s.fs.ReadFile(frame.Path)
	if err != nil {
		return fmt.Errorf("read frame %s: %w", frame.Path, err)
	}

	img, err := s.imaging.DecodeImage(data)
	if err != nil {
		return fmt.Errorf("decode frame %s: %w", frame.Path, err)
	}

	// Extraction tooling may deliver a different resolution than the probe
	// reported; recompute against the actual image in that case.
	bounds := img.Bounds()
	if bounds.Dx() != frame.Size.Width || bounds.Dy() != frame.Size.Height {
		rect, err = ComputeRect(bounds.Dx(), bounds.Dy(), spec)
		if err != nil {
			return &pipeline.CropGeometryError{Timestamp: frame.Timestamp, Rect: rect, Err: err}
		}
		frame.CropRect = rect
	}

	cropped, err := s.imaging.CropImage(img, rect.Left, rect.Top, rect.Width, rect.Height)
	if err != nil {
		return &pipeline.CropGeometryError{Timestamp: frame.Timestamp, Rect: rect, Err: err}
	}

	out, err := s.imaging.EncodeImage(cropped, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode cropped frame: %w", err)
	}

	outPath := filepath.Join(input.OutputDir, CroppedFileName(frame.Timestamp))
	if err := s.fs.WriteFile(outPath, out); err != nil {
		return fmt.Errorf("write cropped frame %s: %w", outPath, err)
	}
	frame.CroppedPath = outPath

	if s.sink.Enabled() {
		s.sink.SaveCroppedFrame(frame.Timestamp, out)
	}

	return nil
}
