// Package server provides the HTTP API for Erabu.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/erabu/internal/config"
	"github.com/hyperjump/erabu/internal/dataset"
	"github.com/hyperjump/erabu/internal/match"
	"github.com/hyperjump/erabu/internal/models"
)

// Server is the HTTP server for the Erabu API. It owns the session state:
// the active dataset and the last displayed (ranked, filtered) result set.
// Single-session tool: one dataset, one result generation at a time.
type Server struct {
	engine *match.Engine
	cfg    *config.Config
	logger *zap.Logger
	server *http.Server

	mu        sync.RWMutex
	datasetID string
	dataset   *dataset.Dataset
	// lastDisplayed backs the export endpoint: exports serialize exactly what
	// the last match trigger returned, in the same row order.
	lastDisplayed *models.MatchResponse
}

// NewServer creates a server with the given dependencies.
func NewServer(engine *match.Engine, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		engine: engine,
		cfg:    cfg,
		logger: logger,
	}
}

// SetDataset replaces the active dataset and drops the last displayed results.
// Cached scores are invalidated only when the content fingerprint changed: a
// byte-identical re-upload is a no-op for the score cache, so an unchanged
// brief reuses the previous generation.
func (s *Server) SetDataset(ds *dataset.Dataset, id string) {
	s.mu.Lock()
	changed := s.dataset == nil || s.dataset.Fingerprint != ds.Fingerprint
	s.dataset = ds
	s.datasetID = id
	s.lastDisplayed = nil
	s.mu.Unlock()
	if changed {
		s.engine.Invalidate()
	}
	s.logger.Info("dataset loaded",
		zap.String("dataset_id", id),
		zap.String("name", ds.Name),
		zap.Int("profiles", len(ds.Profiles)),
		zap.Bool("content_changed", changed))
}

// Router builds the route table.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/dataset", s.handleUploadDataset)
	r.Get("/api/v1/dataset", s.handleGetDataset)
	r.Get("/api/v1/filters", s.handleFilters)
	r.Post("/api/v1/match", s.handleMatch)
	r.Get("/api/v1/export", s.handleExport)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := s.Router()

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
