// Package server provides the HTTP server setup and routing configuration.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/streamcue/streamcue/internal/api"
	"github.com/streamcue/streamcue/internal/config"
	"github.com/streamcue/streamcue/internal/db"
	"github.com/streamcue/streamcue/internal/logger"
	"github.com/streamcue/streamcue/internal/middleware"
	"github.com/streamcue/streamcue/internal/session"
)

// Server represents the HTTP server
type Server struct {
	config       *config.Config
	db           *db.DB
	repos        *db.Repositories
	queueService *session.QueueService
	router       *gin.Engine
	server       *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, database *db.DB) *Server {
	repos := db.NewRepositories(database)
	queueService := session.NewQueueService(database, repos, &cfg.Queue)

	return &Server{
		config:       cfg,
		db:           database,
		repos:        repos,
		queueService: queueService,
	}
}

// setupRouter initializes the Gin router with middleware and routes
func (s *Server) setupRouter() {
	if s.config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	s.router.Use(middleware.RequestLogger())
	s.router.Use(gin.Recovery())
	s.router.Use(cors.Default())

	apiGroup := s.router.Group("/api")

	api.SetupHealthRoutes(apiGroup, s.db)
	api.SetupQueueRoutes(apiGroup, s.queueService)
}

// Start restores the queueing session from the durable store and starts the
// HTTP server
func (s *Server) Start() error {
	s.setupRouter()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Database.ConnectionTimeout)
	defer cancel()
	if err := s.queueService.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore queue session: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	logger.Log.Info().
		Str("host", s.config.Server.Host).
		Int("port", s.config.Server.Port).
		Msg("Starting HTTP server")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Info().Msg("Shutting down server gracefully")

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	logger.Log.Info().Msg("Server stopped")
	return nil
}
