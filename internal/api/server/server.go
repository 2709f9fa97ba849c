package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clefworks/scorevault/internal/api/middleware"
	"github.com/clefworks/scorevault/internal/api/rest"
	"github.com/clefworks/scorevault/internal/blobstore"
	"github.com/clefworks/scorevault/internal/collection"
	"github.com/clefworks/scorevault/internal/ingest"
	"github.com/clefworks/scorevault/internal/logger"
	"github.com/clefworks/scorevault/internal/store"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	MaxFileSize int64
	PageSize    int
	Auth        middleware.AuthConfig
}

// Server wraps the HTTP server
type Server struct {
	config      Config
	store       store.Store
	blobs       blobstore.Storage
	recommender rest.Recommender
	httpServer  *http.Server
}

// New creates a new API server
func New(cfg Config, st store.Store, blobs blobstore.Storage, recommender rest.Recommender) *Server {
	return &Server{
		config:      cfg,
		store:       st,
		blobs:       blobs,
		recommender: recommender,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())

	// Wire the ingestion pipeline and the per-user collection views
	resolver := ingest.NewResolver(s.store, s.blobs, s.config.MaxFileSize)
	collections := collection.NewManager(s.store, s.config.PageSize)

	// Create REST handler
	restHandler := rest.NewHandler(resolver, s.store, collections, s.recommender, s.config.PageSize)

	// Setup REST routes
	rest.SetupRoutes(router, restHandler, s.config.Auth)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
