// Package server exposes the capture pipeline over HTTP.
package server

import (
	"context"
	goerrors "errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/HollaG/youtube-screenshot-server/pkg/config"
	"github.com/HollaG/youtube-screenshot-server/pkg/orchestrator"
	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

const httpXRequestId = "X-Request-Id"

// PipelineRunner executes one accepted capture request end to end.
type PipelineRunner interface {
	Run(ctx context.Context, req orchestrator.Request) (orchestrator.Result, error)
}

// Server serves the screenshot API.
type Server struct {
	conf       config.ServerConfig
	runner     PipelineRunner
	quota      ports.QuotaStore
	source     ports.VideoSource
	logger     *logrus.Logger
	httpServer *http.Server
}

// NewServer creates a new Server.
func NewServer(conf config.ServerConfig, runner PipelineRunner, quota ports.QuotaStore, source ports.VideoSource, logger *logrus.Logger) *Server {
	return &Server{
		conf:   conf,
		runner: runner,
		quota:  quota,
		source: source,
		logger: logger,
	}
}

// RequestId propagates or assigns a request correlation id.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(httpXRequestId)
		if requestId == "" {
			requestId = strings.ReplaceAll(uuid.New().String(), "-", "")
		}
		c.Header(httpXRequestId, requestId)
		c.Next()
	}
}

// Logger writes one access log line per request.
func (s *Server) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := time.Now()
		c.Next()
		latency := time.Since(t)
		status := c.Writer.Status()

		s.logger.WithFields(logrus.Fields{
			"ip":      c.ClientIP(),
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  status,
			"latency": latency.String(),
		}).Info("request")
	}
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	router := s.SetUpRouter()

	s.httpServer = &http.Server{
		Addr:    s.conf.ListenAddr,
		Handler: router,
	}

	s.logger.Infof("start http server on %s", s.conf.ListenAddr)
	err := s.httpServer.ListenAndServe()
	if err != nil && !goerrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Class string `json:"class,omitempty"`
}

func (s *Server) writeError(c *gin.Context, code int, err error) {
	c.JSON(code, ErrorResponse{
		Error: err.Error(),
	})
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("videourl", func(fl validator.FieldLevel) bool {
			u, err := url.Parse(fl.Field().String())
			if err != nil {
				return false
			}
			return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
		})
	}
}
