// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"errors"
)

// VideoMeta describes a remote video as reported by its source.
type VideoMeta struct {
	// ID is the canonical identifier of the video (e.g. the YouTube video ID).
	ID string
	// Title is the human-readable video title.
	Title string
	// Duration is the video length in seconds.
	Duration float64
}

// VideoSource resolves a video locator into metadata and a downloadable media URL.
type VideoSource interface {
	// ResolveMeta looks up descriptive metadata for the locator.
	ResolveMeta(ctx context.Context, locator string) (*VideoMeta, error)

	// ResolveStreamURL returns a direct media URL for the locator.
	// The returned URL may be short-lived and should be resolved again
	// before each download attempt.
	ResolveStreamURL(ctx context.Context, locator string) (string, error)
}

var (
	// ErrInvalidLocator indicates a malformed or unsupported video locator.
	ErrInvalidLocator = errors.New("invalid video locator")

	// ErrSourceUnreachable indicates the video source host could not be reached.
	ErrSourceUnreachable = errors.New("video source unreachable")
)
