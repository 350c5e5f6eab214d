// Package ytdlpsource resolves video locators using the yt-dlp binary.
package ytdlpsource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// DefaultBinary is used when no explicit yt-dlp path is configured.
const DefaultBinary = "yt-dlp"

// resolveTimeout bounds a single yt-dlp invocation.
const resolveTimeout = 2 * time.Minute

// Source implements ports.VideoSource using the yt-dlp binary.
type Source struct {
	binaryPath string
	logger     ports.Logger
}

// New creates a new Source. binaryPath may be empty to use PATH lookup.
func New(binaryPath string, logger ports.Logger) *Source {
	if binaryPath == "" {
		binaryPath = DefaultBinary
	}
	return &Source{
		binaryPath: binaryPath,
		logger:     logger.WithComponent("ytdlp"),
	}
}

type dumpedMeta struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
}

// ResolveMeta looks up video metadata with --dump-json.
func (s *Source) ResolveMeta(ctx context.Context, locator string) (*ports.VideoMeta, error) {
	out, err := s.run(ctx, "--dump-json", "--no-warnings", "--skip-download", locator)
	if err != nil {
		return nil, err
	}

	var meta dumpedMeta
	if err := json.Unmarshal(out, &meta); err != nil {
		return nil, fmt.Errorf("parse yt-dlp metadata: %w", err)
	}
	if meta.ID == "" {
		return nil, fmt.Errorf("yt-dlp reported no video id")
	}

	return &ports.VideoMeta{ID: meta.ID, Title: meta.Title, Duration: meta.Duration}, nil
}

// ResolveStreamURL fetches a direct download link with --get-url.
// yt-dlp may print separate video and audio URLs; the first is the video.
func (s *Source) ResolveStreamURL(ctx context.Context, locator string) (string, error) {
	out, err := s.run(ctx, "-f", "b", "--get-url", "--no-warnings", locator)
	if err != nil {
		return "", err
	}

	urlStr := strings.TrimSpace(string(out))
	if urlStr == "" {
		return "", fmt.Errorf("yt-dlp returned empty URL")
	}
	if i := strings.IndexByte(urlStr, '\n'); i >= 0 {
		urlStr = urlStr[:i]
	}
	return urlStr, nil
}

func (s *Source) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	s.logger.Debug("Running %s %s", s.binaryPath, strings.Join(args[:len(args)-1], " "))

	cmd := exec.CommandContext(ctx, s.binaryPath, args...)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, classify(err, stderr.String())
	}
	return out.Bytes(), nil
}

// classify maps yt-dlp failures onto the source error taxonomy: malformed
// locators are caller errors, unreachable hosts are transport errors, and
// everything else passes through with the stderr tail attached.
func classify(err error, stderr string) error {
	lower := strings.ToLower(stderr)
	switch {
	case strings.Contains(lower, "is not a valid url"),
		strings.Contains(lower, "unsupported url"),
		strings.Contains(lower, "incomplete youtube id"),
		strings.Contains(lower, "truncated id"):
		return fmt.Errorf("%w: %s", ports.ErrInvalidLocator, firstLine(stderr))
	case strings.Contains(lower, "unable to download"),
		strings.Contains(lower, "name or service not known"),
		strings.Contains(lower, "failed to resolve"),
		strings.Contains(lower, "network is unreachable"),
		strings.Contains(lower, "connection refused"):
		return fmt.Errorf("%w: %s", ports.ErrSourceUnreachable, firstLine(stderr))
	default:
		return fmt.Errorf("yt-dlp failed: %w, stderr: %s", err, firstLine(stderr))
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Ensure Source implements ports.VideoSource
var _ ports.VideoSource = (*Source)(nil)
