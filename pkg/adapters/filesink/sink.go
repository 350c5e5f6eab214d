// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"path/filepath"
	"strconv"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveVideoMetaJSON saves the resolved source metadata as JSON.
func (s *Sink) SaveVideoMetaJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "meta.json")
	return s.fs.WriteFile(path, data)
}

// SaveRawFrame saves an extracted, uncropped frame.
func (s *Sink) SaveRawFrame(timestamp float64, data []byte) error {
	dir := filepath.Join(s.baseDir, "frames", "raw")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, "thumbnail-"+timestampKey(timestamp)+".png")
	return s.fs.WriteFile(path, data)
}

// SaveCroppedFrame saves a cropped frame.
func (s *Sink) SaveCroppedFrame(timestamp float64, data []byte) error {
	dir := filepath.Join(s.baseDir, "frames", "cropped")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, "cropped-thumbnail-"+timestampKey(timestamp)+".png")
	return s.fs.WriteFile(path, data)
}

// SaveDocumentHTML saves the composed document markup.
func (s *Sink) SaveDocumentHTML(data []byte) error {
	path := filepath.Join(s.baseDir, "result.html")
	return s.fs.WriteFile(path, data)
}

// SaveDocumentPDF saves the rendered document page.
func (s *Sink) SaveDocumentPDF(data []byte) error {
	path := filepath.Join(s.baseDir, "document.pdf")
	return s.fs.WriteFile(path, data)
}

func timestampKey(timestamp float64) string {
	return strconv.FormatFloat(timestamp, 'f', -1, 64)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
