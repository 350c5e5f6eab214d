package mocks

import (
	"context"
	"sync"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// Downloader is a mock implementation of ports.Downloader.
type Downloader struct {
	mu sync.Mutex

	// Payload is written to the destination on success.
	Payload []byte

	DownloadFunc func(ctx context.Context, url, destPath string, progress ports.ProgressFunc) error

	// Calls counts Download invocations.
	Calls int
}

// NewDownloader creates a new mock Downloader.
func NewDownloader() *Downloader {
	return &Downloader{Payload: []byte("video-bytes")}
}

func (m *Downloader) Download(ctx context.Context, url, destPath string, progress ports.ProgressFunc) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.DownloadFunc != nil {
		return m.DownloadFunc(ctx, url, destPath, progress)
	}
	if progress != nil {
		progress(int64(len(m.Payload)), int64(len(m.Payload)))
	}
	return nil
}

// CallCount returns the number of Download invocations.
func (m *Downloader) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

var _ ports.Downloader = (*Downloader)(nil)
