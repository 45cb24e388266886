// Package apiserver provides the JSON REST API server
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Lalit-mahajan-1/NutriAi/internal/infrastructure/config"
	"github.com/Lalit-mahajan-1/NutriAi/internal/infrastructure/http/handlers"
	"github.com/Lalit-mahajan-1/NutriAi/internal/infrastructure/http/middleware"
	"github.com/Lalit-mahajan-1/NutriAi/internal/ports/inbound"
)

// APIServer serves the REST API
type APIServer struct {
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
	handlers *handlers.APIHandlers
}

// New creates a new API server
func New(cfg *config.Config, service inbound.MealPlanService, logger *zap.Logger) *APIServer {
	s := &APIServer{
		config:   cfg,
		logger:   logger.Named("api-server"),
		handlers: handlers.NewAPIHandlers(service, logger),
	}

	s.server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        s.routes(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return s
}

// routes configures the middleware chain and API routes
func (s *APIServer) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	if s.config.Monitoring.EnableMetrics {
		r.Use(middleware.Metrics())
	}

	r.Get(s.config.Monitoring.HealthCheckPath, s.handlers.HealthCheck)
	if s.config.Monitoring.EnableMetrics {
		r.Handle(s.config.Monitoring.MetricsPath, promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.JSONOnly())
		r.Get("/weekly-plan", s.handlers.WeeklyPlan)
		r.Get("/targets", s.handlers.Targets)
		r.Get("/meal-prices", s.handlers.MealPrices)
		r.Post("/feedback", s.handlers.RecordFeedback)
		r.Post("/analyze", s.handlers.Analyze)
		r.Get("/preferences/dislikes/{user_id}", s.handlers.Dislikes)
	})

	return r
}

// Start starts the HTTP server
func (s *APIServer) Start() error {
	s.logger.Info("Starting API server",
		zap.String("addr", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}

// Addr returns the address the server listens on
func (s *APIServer) Addr() string {
	return s.server.Addr
}
