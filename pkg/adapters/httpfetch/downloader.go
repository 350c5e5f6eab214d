// Package httpfetch streams remote media over HTTP with an inactivity
// watchdog so stalled transfers surface as retryable timeouts.
package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// DefaultReadTimeout is the inactivity budget between successive reads.
const DefaultReadTimeout = 30 * time.Second

// Downloader implements ports.Downloader over HTTP.
type Downloader struct {
	client      *http.Client
	readTimeout time.Duration
}

// New creates a new Downloader. readTimeout <= 0 selects the default.
// The client carries no overall timeout: large payloads take as long as
// they take, and stalls are handled by the per-read watchdog instead.
func New(readTimeout time.Duration) *Downloader {
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	return &Downloader{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        16,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 15 * time.Second,
			},
		},
		readTimeout: readTimeout,
	}
}

// Download streams url into destPath, truncating any previous content so
// a retried transfer always restarts from byte zero.
func (d *Downloader) Download(ctx context.Context, url, destPath string, progress ports.ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer dest.Close()

	total := resp.ContentLength // -1 when unknown

	// Inactivity watchdog: if no bytes arrive within readTimeout the body
	// is closed, which fails the pending read.
	var timedOut atomic.Bool
	watchdog := time.AfterFunc(d.readTimeout, func() {
		timedOut.Store(true)
		resp.Body.Close()
	})
	defer watchdog.Stop()

	buf := make([]byte, 64*1024)
	var downloaded int64
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			watchdog.Reset(d.readTimeout)
			if _, err := dest.Write(buf[:n]); err != nil {
				return fmt.Errorf("write destination: %w", err)
			}
			downloaded += int64(n)
			if progress != nil {
				progress(downloaded, total)
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if timedOut.Load() {
				return fmt.Errorf("%w: no data for %s", ports.ErrTransferTimeout, d.readTimeout)
			}
			return classifyTransport(ctx, readErr)
		}
	}

	if total >= 0 && downloaded != total {
		return fmt.Errorf("truncated payload: got %d of %d bytes", downloaded, total)
	}
	return dest.Sync()
}

// classifyTransport maps net-level timeouts onto the retryable class.
func classifyTransport(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ports.ErrTransferTimeout, err)
	}
	return fmt.Errorf("transport: %w", err)
}

// Ensure Downloader implements ports.Downloader
var _ ports.Downloader = (*Downloader)(nil)
