package server

import (
	"github.com/gin-gonic/gin"
)

// SetUpRouter builds the gin engine with middleware and all routes.
func (s *Server) SetUpRouter() *gin.Engine {
	router := gin.New()
	router.Use(RequestId())
	router.Use(s.Logger())
	router.Use(gin.Recovery())

	if len(s.conf.TrustedProxies) > 0 {
		router.SetTrustedProxies(s.conf.TrustedProxies)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "ok",
		})
	})

	apiV1 := router.Group("/api/v1")
	s.SetUpApiV1Router(apiV1)

	return router
}

// SetUpApiV1Router registers the v1 API routes.
func (s *Server) SetUpApiV1Router(apiV1 *gin.RouterGroup) {
	apiV1.POST("/screenshots", s.handleCreateScreenshots)
	apiV1.GET("/videos/info", s.handleVideoInfo)
	apiV1.GET("/quota", s.handleQuota)
}
