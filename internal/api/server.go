package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP router with all routes configured.
func NewServer(handler *Handler, logger *slog.Logger) *gin.Engine {
	// Gin mode can still be overridden via the GIN_MODE environment variable.
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(requestLogger(logger))
	r.Use(gin.Recovery())

	// CORS for browser clients.
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-User-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes.
func setupRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/health", handler.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/articles", handler.ListArticles)
		api.GET("/articles/counts", handler.GetCounts)
		api.POST("/articles/:id/read", handler.SetRead)
		api.DELETE("/articles/:id/read", handler.SetRead)
		api.POST("/articles/:id/saved", handler.SetSaved)
		api.DELETE("/articles/:id/saved", handler.SetSaved)
		api.PUT("/articles/:id/progress", handler.SetProgress)
	}

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// requestLogger emits one structured line per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
