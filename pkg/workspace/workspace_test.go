package workspace

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/HollaG/youtube-screenshot-server/pkg/mocks"
)

func TestAcquire_CreatesVideoDir(t *testing.T) {
	fs := mocks.NewFileSystem()
	mgr := NewManager("jobs", fs)

	ws, err := mgr.Acquire("abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ws.Dir != filepath.Join("jobs", "abc123") {
		t.Errorf("unexpected dir %s", ws.Dir)
	}
	if ws.VideoPath() != filepath.Join("jobs", "abc123", "video", "video.mp4") {
		t.Errorf("unexpected video path %s", ws.VideoPath())
	}

	exists, _ := fs.Exists(filepath.Join("jobs", "abc123", "video"))
	if !exists {
		t.Error("video directory not created")
	}
}

func TestAcquire_EmptySourceID(t *testing.T) {
	mgr := NewManager("jobs", mocks.NewFileSystem())
	if _, err := mgr.Acquire(""); err == nil {
		t.Fatal("expected error")
	}
}

func TestAcquire_ConcurrentSameSourceGetsDistinctDirs(t *testing.T) {
	fs := mocks.NewFileSystem()
	mgr := NewManager("jobs", fs)

	first, err := mgr.Acquire("abc123")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	second, err := mgr.Acquire("abc123")
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}

	if first.Dir == second.Dir {
		t.Fatalf("concurrent jobs must not share %s", first.Dir)
	}
	if !strings.HasPrefix(filepath.Base(second.Dir), "abc123-") {
		t.Errorf("suffixed dir should keep the source id prefix, got %s", second.Dir)
	}
}

func TestRelease_DeletesUnlessKept(t *testing.T) {
	fs := mocks.NewFileSystem()
	mgr := NewManager("jobs", fs)

	ws, _ := mgr.Acquire("abc123")
	fs.WriteFile(filepath.Join(ws.Dir, "thumbnail-1.png"), []byte("png"))

	if err := mgr.Release(ws, false); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, ok := fs.GetFile(filepath.Join(ws.Dir, "thumbnail-1.png")); ok {
		t.Error("workspace contents not deleted")
	}

	// After release the plain directory name is available again.
	next, _ := mgr.Acquire("abc123")
	if next.Dir != filepath.Join("jobs", "abc123") {
		t.Errorf("expected reuse of plain dir, got %s", next.Dir)
	}
}

func TestRelease_KeepPreservesFiles(t *testing.T) {
	fs := mocks.NewFileSystem()
	mgr := NewManager("jobs", fs)

	ws, _ := mgr.Acquire("abc123")
	fs.WriteFile(filepath.Join(ws.Dir, "thumbnail-1.png"), []byte("png"))

	if err := mgr.Release(ws, true); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, ok := fs.GetFile(filepath.Join(ws.Dir, "thumbnail-1.png")); !ok {
		t.Error("kept workspace was deleted")
	}
}

func TestAcquire_ResetsStaleDirectory(t *testing.T) {
	fs := mocks.NewFileSystem()
	// Leftovers from a crashed run.
	fs.WriteFile(filepath.Join("jobs", "abc123", "thumbnail-9.png"), []byte("stale"))

	mgr := NewManager("jobs", fs)
	ws, err := mgr.Acquire("abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := fs.GetFile(filepath.Join(ws.Dir, "thumbnail-9.png")); ok {
		t.Error("stale frame survived acquire")
	}
}
