// Package fetch implements the source retrieval stage.
package fetch

import (
	"context"
	"errors"
	"time"

	"github.com/HollaG/youtube-screenshot-server/pkg/pipeline"
	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// Stage fetches the source video into the workspace. Timeout-class
// transport failures restart the transfer from byte zero, indefinitely;
// the caller's context deadline is the escape valve. Every other error
// class terminates immediately.
//
// One stage instance serves concurrent requests; the retrieval state
// machine lives in Execute and surfaces through FetchResult.State.
type Stage struct {
	source     ports.VideoSource
	downloader ports.Downloader
	logger     ports.Logger
	retryDelay time.Duration
}

// NewStage creates a new fetch stage. retryDelay is the pause before a
// retried connection attempt.
func NewStage(source ports.VideoSource, downloader ports.Downloader, logger ports.Logger, retryDelay time.Duration) *Stage {
	return &Stage{
		source:     source,
		downloader: downloader,
		logger:     logger.WithComponent("fetch"),
		retryDelay: retryDelay,
	}
}

// Execute retrieves the video, retrying timeouts from the beginning until
// the transfer completes or the context expires.
func (s *Stage) Execute(ctx context.Context, input pipeline.FetchInput) (pipeline.FetchResult, error) {
	attempts := 0
	var lastProgress int64 = -1
	var total int64

	for {
		attempts++

		// Direct media URLs expire; resolve a fresh one per attempt.
		streamURL, err := s.source.ResolveStreamURL(ctx, input.SourceURL)
		if err != nil {
			return pipeline.FetchResult{State: pipeline.FetchFailed}, &pipeline.RetrievalError{Err: err}
		}

		s.logger.Debug("Streaming source to %s (attempt %d)", input.DestPath, attempts)

		err = s.downloader.Download(ctx, streamURL, input.DestPath, func(downloaded, contentLength int64) {
			total = contentLength
			if contentLength <= 0 {
				return
			}
			// Report at 10% steps.
			pct := downloaded * 100 / contentLength
			if pct/10 > lastProgress {
				lastProgress = pct / 10
				s.logger.Debug("Downloaded %d%%", pct)
			}
		})
		if err == nil {
			s.logger.Info("Source retrieved after %d attempt(s)", attempts)
			return pipeline.FetchResult{
				Path:     input.DestPath,
				Bytes:    total,
				Attempts: attempts,
				State:    pipeline.FetchFinished,
			}, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return pipeline.FetchResult{State: pipeline.FetchFailed}, ctxErr
		}

		if !errors.Is(err, ports.ErrTransferTimeout) {
			return pipeline.FetchResult{State: pipeline.FetchFailed}, &pipeline.RetrievalError{Err: err}
		}

		lastProgress = -1
		s.logger.Warn("Transfer timed out, restarting from the beginning (attempt %d)", attempts)

		select {
		case <-time.After(s.retryDelay):
		case <-ctx.Done():
			return pipeline.FetchResult{State: pipeline.FetchFailed}, ctx.Err()
		}
	}
}
