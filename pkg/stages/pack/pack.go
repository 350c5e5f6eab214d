// Package pack implements the deliverable packaging stage.
package pack

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/HollaG/youtube-screenshot-server/pkg/pipeline"
	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// DocumentMemberName is the fixed archive name of the rendered page.
const DocumentMemberName = "document.pdf"

// Stage bundles the cropped frames and the rendered page into one
// deliverable. Member order is ascending timestamp, page last; the archive
// is returned only once every member has been added.
type Stage struct {
	archiver ports.Archiver
	fs       ports.FileSystem
	logger   ports.Logger
}

// NewStage creates a new pack stage.
func NewStage(archiver ports.Archiver, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		archiver: archiver,
		fs:       fs,
		logger:   logger.WithComponent("pack"),
	}
}

// Execute assembles the deliverable archive.
func (s *Stage) Execute(ctx context.Context, input pipeline.PackInput) (pipeline.PackResult, error) {
	frames := make([]pipeline.Frame, len(input.Frames))
	copy(frames, input.Frames)
	sort.Slice(frames, func(i, j int) bool {
		return frames[i].Timestamp < frames[j].Timestamp
	})

	members := make([]ports.ArchiveMember, 0, len(frames)+1)
	for _, frame := range frames {
		data, err := s.fs.ReadFile(frame.CroppedPath)
		if err != nil {
			return pipeline.PackResult{}, &pipeline.PackagingError{Err: fmt.Errorf("read %s: %w", frame.CroppedPath, err)}
		}
		members = append(members, ports.ArchiveMember{
			Name: filepath.Base(frame.CroppedPath),
			Data: data,
		})
	}
	members = append(members, ports.ArchiveMember{Name: DocumentMemberName, Data: input.PDF})

	archive, err := s.archiver.Create(ctx, members)
	if err != nil {
		return pipeline.PackResult{}, &pipeline.PackagingError{Err: err}
	}

	s.logger.Info("Deliverable packed: %d members, %d bytes", len(members), len(archive))
	return pipeline.PackResult{Archive: archive, MemberCount: len(members)}, nil
}
