// Package ziparchive packs deliverables into a ZIP archive at maximum
// deflate compression.
package ziparchive

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"context"
	"fmt"
	"io"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// Archiver implements ports.Archiver using archive/zip.
type Archiver struct{}

// New creates a new Archiver.
func New() *Archiver {
	return &Archiver{}
}

// Create packs members into an in-memory ZIP, preserving member order.
func (a *Archiver) Create(ctx context.Context, members []ports.ArchiveMember) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	w.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	for _, member := range members {
		if err := ctx.Err(); err != nil {
			w.Close()
			return nil, err
		}
		if member.Name == "" {
			w.Close()
			return nil, fmt.Errorf("archive member without a name")
		}

		entry, err := w.CreateHeader(&zip.FileHeader{
			Name:   member.Name,
			Method: zip.Deflate,
		})
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("create entry %s: %w", member.Name, err)
		}
		if _, err := entry.Write(member.Data); err != nil {
			w.Close()
			return nil, fmt.Errorf("write entry %s: %w", member.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Ensure Archiver implements ports.Archiver
var _ ports.Archiver = (*Archiver)(nil)
