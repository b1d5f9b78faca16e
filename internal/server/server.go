package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/alkime/knobs/internal/config"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *slog.Logger
	router *gin.Engine
	board  *Board
}

// New creates a new Server instance serving board.
func New(cfg *config.Config, logger *slog.Logger, board *Board) *Server {
	// Set Gin mode based on environment
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	// Configure proxy trust for production (Fly.io)
	if cfg.Env == config.EnvProduction {
		router.TrustedPlatform = gin.PlatformFlyIO
		logger.Debug("Configured trusted platform", "platform", "fly.io")
	}

	server := &Server{
		config: cfg,
		logger: logger,
		router: router,
		board:  board,
	}

	setupSecurityMiddleware(router, cfg, logger)
	server.setupRoutes()

	return server
}

// Router returns the underlying handler, for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the HTTP server
func Run(s *Server) error {
	s.logger.Info("Server listening", "port", s.config.Port, "knobs", s.board.Names())
	return s.router.Run(":" + s.config.Port)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")
	{
		api.GET("/knobs", s.handleListKnobs)
		api.GET("/knobs/:name", s.handleGetKnob)
		api.PUT("/knobs/:name/value", s.handleSetValue)
		api.POST("/knobs/:name/pointer", s.handlePointer)
		api.GET("/knobs/:name/face.png", s.handleFace)
		api.GET("/knobs/:name/events", s.handleEvents)
	}

	// Static page for the board, when there is one. Only consulted when no
	// route matches.
	if info, err := os.Stat(s.config.PublicDir); err == nil && info.IsDir() {
		s.router.NoRoute(static.Serve("/", static.LocalFile(s.config.PublicDir, true)))
		s.logger.Debug("Serving static files", "dir", s.config.PublicDir)
	}
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "knobs",
	})
}
