// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveVideoMetaJSON does nothing.
func (s *Sink) SaveVideoMetaJSON(data []byte) error {
	return nil
}

// SaveRawFrame does nothing.
func (s *Sink) SaveRawFrame(timestamp float64, data []byte) error {
	return nil
}

// SaveCroppedFrame does nothing.
func (s *Sink) SaveCroppedFrame(timestamp float64, data []byte) error {
	return nil
}

// SaveDocumentHTML does nothing.
func (s *Sink) SaveDocumentHTML(data []byte) error {
	return nil
}

// SaveDocumentPDF does nothing.
func (s *Sink) SaveDocumentPDF(data []byte) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
