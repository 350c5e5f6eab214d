package mocks

import (
	"context"
	"sync"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// VideoSource is a mock implementation of ports.VideoSource.
type VideoSource struct {
	mu sync.Mutex

	Meta      *ports.VideoMeta
	StreamURL string

	ResolveMetaFunc      func(ctx context.Context, locator string) (*ports.VideoMeta, error)
	ResolveStreamURLFunc func(ctx context.Context, locator string) (string, error)

	// ResolveStreamCalls counts ResolveStreamURL invocations.
	ResolveStreamCalls int
}

// NewVideoSource creates a new mock VideoSource.
func NewVideoSource() *VideoSource {
	return &VideoSource{
		Meta:      &ports.VideoMeta{ID: "abc123", Title: "Test Video", Duration: 120},
		StreamURL: "https://cdn.example.com/stream.mp4",
	}
}

func (m *VideoSource) ResolveMeta(ctx context.Context, locator string) (*ports.VideoMeta, error) {
	if m.ResolveMetaFunc != nil {
		return m.ResolveMetaFunc(ctx, locator)
	}
	return m.Meta, nil
}

func (m *VideoSource) ResolveStreamURL(ctx context.Context, locator string) (string, error) {
	m.mu.Lock()
	m.ResolveStreamCalls++
	m.mu.Unlock()
	if m.ResolveStreamURLFunc != nil {
		return m.ResolveStreamURLFunc(ctx, locator)
	}
	return m.StreamURL, nil
}

var _ ports.VideoSource = (*VideoSource)(nil)
