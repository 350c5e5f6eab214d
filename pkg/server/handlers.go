package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HollaG/youtube-screenshot-server/pkg/orchestrator"
	"github.com/HollaG/youtube-screenshot-server/pkg/pipeline"
	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// ScreenshotRequest is the POST /api/v1/screenshots body.
type ScreenshotRequest struct {
	URL        string                      `json:"url" binding:"required,videourl"`
	Timestamps []float64                   `json:"timestamps" binding:"required,min=1"`
	Crops      map[string]pipeline.CropSpec `json:"crops"`
}

// VideoInfoResponse is the GET /api/v1/videos/info body.
type VideoInfoResponse struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
}

// QuotaResponse is the GET /api/v1/quota body.
type QuotaResponse struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetTime time.Time `json:"resetTime"`
}

func (s *Server) handleCreateScreenshots(c *gin.Context) {
	var req ScreenshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}

	result, err := s.runner.Run(c.Request.Context(), orchestrator.Request{
		Identity:   c.ClientIP(),
		SourceURL:  req.URL,
		Timestamps: req.Timestamps,
		Crops:      req.Crops,
	})
	if err != nil {
		s.writePipelineError(c, err)
		return
	}

	c.Header("X-Video-Id", result.VideoID)
	c.Header("Content-Disposition", `attachment; filename="screenshots-`+result.VideoID+`.zip"`)
	c.Data(http.StatusOK, "application/zip", result.Archive)
}

func (s *Server) handleVideoInfo(c *gin.Context) {
	locator := c.Query("url")
	if locator == "" {
		s.writeError(c, http.StatusBadRequest, errors.New("url query parameter required"))
		return
	}

	meta, err := s.source.ResolveMeta(c.Request.Context(), locator)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidLocator) {
			s.writeError(c, http.StatusBadRequest, err)
			return
		}
		s.writeError(c, http.StatusBadGateway, err)
		return
	}

	c.JSON(http.StatusOK, VideoInfoResponse{
		ID:       meta.ID,
		Title:    meta.Title,
		Duration: meta.Duration,
	})
}

func (s *Server) handleQuota(c *gin.Context) {
	state, err := s.quota.Check(c.ClientIP())
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, QuotaResponse{
		Allowed:   state.Allowed,
		Remaining: state.Remaining,
		ResetTime: state.ResetTime,
	})
}

// writePipelineError maps a pipeline failure to an HTTP response. Caller
// mistakes are 400, quota exhaustion is 429, upstream source problems are
// 502, and everything else is 500.
func (s *Server) writePipelineError(c *gin.Context, err error) {
	class := pipeline.Classify(err)

	var quotaErr *pipeline.QuotaExceededError
	if errors.As(err, &quotaErr) {
		retryAfter := int(time.Until(quotaErr.ResetTime).Seconds())
		if retryAfter < 0 {
			retryAfter = 0
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: err.Error(), Class: class})
		return
	}

	var code int
	switch class {
	case "InvalidRequest", "InvalidCropGeometry":
		code = http.StatusBadRequest
	case "RetrievalFailed", "MetadataUnavailable":
		if errors.Is(err, ports.ErrInvalidLocator) {
			code = http.StatusBadRequest
		} else {
			code = http.StatusBadGateway
		}
	default:
		code = http.StatusInternalServerError
	}

	c.JSON(code, ErrorResponse{Error: err.Error(), Class: class})
}
