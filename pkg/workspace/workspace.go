// Package workspace manages per-job working directories.
package workspace

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// Workspace is a directory exclusively owned by one job for its lifetime.
type Workspace struct {
	// SourceID is the canonical video identifier the workspace derives from.
	SourceID string
	// Dir is the job's root directory.
	Dir string
}

// VideoPath returns where the fetched video payload lives.
func (w *Workspace) VideoPath() string {
	return filepath.Join(w.Dir, "video", "video.mp4")
}

// FramesDir returns where extracted and cropped frames live.
func (w *Workspace) FramesDir() string {
	return w.Dir
}

// Manager hands out workspaces under a common root. The directory name is
// derived from the source identifier; when that identifier is already held
// by an in-flight job, the new job gets an independent suffixed directory
// instead of corrupting the other job's pipeline.
type Manager struct {
	root string
	fs   ports.FileSystem

	mu     sync.Mutex
	active map[string]int
}

// NewManager creates a workspace manager rooted at root.
func NewManager(root string, fs ports.FileSystem) *Manager {
	return &Manager{
		root:   root,
		fs:     fs,
		active: make(map[string]int),
	}
}

// Acquire reserves a clean, empty workspace for the source identifier.
func (m *Manager) Acquire(sourceID string) (*Workspace, error) {
	if sourceID == "" {
		return nil, fmt.Errorf("empty source identifier")
	}

	m.mu.Lock()
	name := sourceID
	if m.active[sourceID] > 0 {
		name = sourceID + "-" + shortSuffix()
	}
	m.active[sourceID]++
	m.mu.Unlock()

	dir := filepath.Join(m.root, name)

	// Reset: a stale directory from a crashed run must not leak frames
	// into this job's output.
	if err := m.fs.RemoveAll(dir); err != nil {
		m.release(sourceID)
		return nil, fmt.Errorf("reset workspace %s: %w", dir, err)
	}
	if err := m.fs.MkdirAll(filepath.Join(dir, "video")); err != nil {
		m.release(sourceID)
		return nil, fmt.Errorf("create workspace %s: %w", dir, err)
	}

	return &Workspace{SourceID: sourceID, Dir: dir}, nil
}

// Release deletes the workspace and returns its identifier to the pool.
// keep preserves the directory for debugging.
func (m *Manager) Release(ws *Workspace, keep bool) error {
	defer m.release(ws.SourceID)
	if keep {
		return nil
	}
	return m.fs.RemoveAll(ws.Dir)
}

func (m *Manager) release(sourceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active[sourceID] > 0 {
		m.active[sourceID]--
	}
	if m.active[sourceID] == 0 {
		delete(m.active, sourceID)
	}
}

func shortSuffix() string {
	return strings.SplitN(uuid.New().String(), "-", 2)[0]
}
