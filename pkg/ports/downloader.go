package ports

import (
	"context"
	"errors"
)

// ProgressFunc receives transfer progress. total is -1 when the remote
// does not report a content length.
type ProgressFunc func(downloaded, total int64)

// Downloader streams remote bytes into a local file.
type Downloader interface {
	// Download fetches url into destPath, truncating any existing file
	// so a restarted transfer always begins from byte zero.
	// progress may be nil.
	Download(ctx context.Context, url, destPath string, progress ProgressFunc) error
}

// ErrTransferTimeout marks a timeout-class transport failure. Callers may
// retry these; any other download error is terminal.
var ErrTransferTimeout = errors.New("transfer timed out")
