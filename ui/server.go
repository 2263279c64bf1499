package ui

import (
	"context"
	"net/http"
	"time"

	"gouniform/adapters/stats/uniformity"
	"gouniform/app"
	domain "gouniform/domain/uniformity"
	"gouniform/internal"
	"gouniform/internal/config"
	"gouniform/internal/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
)

// Server exposes the test battery over HTTP
type Server struct {
	router  *gin.Engine
	stats   uniformity.Config
	logger  *internal.Logger
	runs    *semaphore.Weighted // bounds batteries executing at once
	metrics *metrics.Metrics
	http    *http.Server
}

// NewServer creates a server for the given configuration
func NewServer(cfg *config.Config, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	maxRuns := cfg.Server.MaxConcurrentRuns
	if maxRuns < 1 {
		maxRuns = 1
	}

	s := &Server{
		router:  gin.New(),
		stats:   cfg.Stats.TestConfig(),
		logger:  logger.With("ui"),
		runs:    semaphore.NewWeighted(int64(maxRuns)),
		metrics: metrics.New(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.http = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := s.router.Group("/api/v1")
	api.POST("/tests", s.handleRunAll)
	api.POST("/tests/:name", s.handleRunTest)
	api.POST("/report", s.handleReport)
}

// withBattery runs fn on a fresh battery holding sample once a run slot is free
func (s *Server) withBattery(c *gin.Context, sample domain.Sample, fn func(*app.Battery)) {
	if err := s.runs.Acquire(c.Request.Context(), 1); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request cancelled while waiting for a run slot"})
		return
	}
	defer s.runs.Release(1)

	battery := app.NewBattery(s.stats, s.logger).WithRecorder(s.metrics)
	battery.SetSample(sample)
	fn(battery)
}

// Addr returns the listen address
func (s *Server) Addr() string { return s.http.Addr }

// Start listens until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("starting uniformity server on http://localhost%s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
