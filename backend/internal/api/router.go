// Package api exposes the recommender over HTTP with gin.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"harmonify/backend/internal/recommender"
)

// Handler serves the HTTP API
type Handler struct {
	svc    *recommender.Service
	logger *zap.Logger
}

// NewRouter builds the gin engine with middleware and all routes registered
func NewRouter(svc *recommender.Service, log *zap.Logger) *gin.Engine {
	h := &Handler{svc: svc, logger: log}

	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors())
	router.Use(recordMetrics())

	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/songs", h.listSongs)
		api.GET("/genres", h.listGenres)
		api.GET("/vertices", h.listVertices)
		api.GET("/users/:username", h.getUser)
		api.GET("/users/:username/similar", h.similarUsers)
		api.POST("/recommend", h.recommend)
		api.POST("/reload", h.reload)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return router
}
