package mocks

import (
	"sync"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink that records
// everything saved to it.
type DebugSink struct {
	mu      sync.Mutex
	enabled bool

	MetaJSON      []byte
	RawFrames     map[float64][]byte
	CroppedFrames map[float64][]byte
	DocumentHTML  []byte
	DocumentPDF   []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:       enabled,
		RawFrames:     make(map[float64][]byte),
		CroppedFrames: make(map[float64][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveVideoMetaJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MetaJSON = data
	return nil
}

func (m *DebugSink) SaveRawFrame(timestamp float64, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RawFrames[timestamp] = data
	return nil
}

func (m *DebugSink) SaveCroppedFrame(timestamp float64, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CroppedFrames[timestamp] = data
	return nil
}

func (m *DebugSink) SaveDocumentHTML(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DocumentHTML = data
	return nil
}

func (m *DebugSink) SaveDocumentPDF(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DocumentPDF = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
