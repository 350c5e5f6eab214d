package mocks

import (
	"context"
	"sync"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// Archiver is a mock implementation of ports.Archiver.
type Archiver struct {
	mu sync.Mutex

	// Archive is returned on success unless CreateFunc is set.
	Archive []byte

	CreateFunc func(ctx context.Context, members []ports.ArchiveMember) ([]byte, error)

	// Members records the most recent member list.
	Members []ports.ArchiveMember
}

// NewArchiver creates a new mock Archiver.
func NewArchiver() *Archiver {
	return &Archiver{Archive: []byte("zip-bytes")}
}

func (m *Archiver) Create(ctx context.Context, members []ports.ArchiveMember) ([]byte, error) {
	m.mu.Lock()
	m.Members = members
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, members)
	}
	return m.Archive, nil
}

var _ ports.Archiver = (*Archiver)(nil)
