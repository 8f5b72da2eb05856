// Package api assembles the HTTP server for the SpendLens backend.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/spendlens/spendlens-backend/internal/api/handlers"
	"github.com/spendlens/spendlens-backend/internal/api/middleware"
	"github.com/spendlens/spendlens-backend/internal/application/service"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	engine     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
	repo       storage.Repository
	scans      *service.ScanService
}

// NewServer creates a new API server.
func NewServer(cfg Config, repo storage.Repository, scans *service.ScanService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{
		config: cfg,
		engine: engine,
		logger: logger,
		repo:   repo,
		scans:  scans,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(middleware.RequestLogger(s.logger))

	s.engine.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Get)

	api := s.engine.Group("/api")
	{
		// Transactions
		transactionsHandler := handlers.NewTransactionsHandler(s.repo, s.scans)
		api.GET("/transactions", transactionsHandler.List)
		api.POST("/transactions", transactionsHandler.Create)
		api.GET("/transactions/:id", transactionsHandler.Get)
		api.DELETE("/transactions/:id", transactionsHandler.Delete)

		// Duplicate detection
		duplicatesHandler := handlers.NewDuplicatesHandler(s.scans)
		api.GET("/duplicates", duplicatesHandler.Scan)

		// Recurring expenses
		recurringHandler := handlers.NewRecurringHandler(s.scans)
		api.GET("/recurring", recurringHandler.List)

		// Stats
		statsHandler := handlers.NewStatsHandler(s.repo)
		api.GET("/stats", statsHandler.Get)

		// Scan history
		scansHandler := handlers.NewScansHandler(s.repo)
		api.GET("/scans", scansHandler.List)
		api.GET("/scans/:id", scansHandler.Get)

		// CSV import
		importHandler := handlers.NewImportHandler(s.repo, s.scans, s.logger)
		api.POST("/import", importHandler.Upload)
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the gin engine for testing.
func (s *Server) Router() *gin.Engine {
	return s.engine
}
