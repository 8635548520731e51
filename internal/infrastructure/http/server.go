// Package http exposes the engine over a JSON API: session lifecycle,
// leftover inventory, and the grocery list.
package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/wellnoosh/engine/internal/infrastructure/config"
	"github.com/wellnoosh/engine/internal/ports/inbound"
)

// Server is the engine's HTTP front end.
type Server struct {
	httpServer *http.Server
	router     chi.Router
	logger     *zap.Logger
	cfg        config.ServerConfig
}

// NewServer wires the routes and middleware. metricsHandler serves
// /metrics; pass nil to disable it.
func NewServer(
	cfg config.ServerConfig,
	sessions inbound.SessionService,
	inventory inbound.InventoryService,
	groceries inbound.GroceryService,
	metricsHandler http.Handler,
	logger *zap.Logger,
) *Server {
	s := &Server{logger: logger.Named("server"), cfg: cfg}

	h := &handlers{
		sessions:  sessions,
		inventory: inventory,
		groceries: groceries,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", h.health)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			r.Post("/", h.startSession)
			r.Get("/", h.sessionView)
			r.Post("/swipe", h.swipe)
			r.Post("/skip", h.skip)
			r.Post("/favorite", h.favorite)
			r.Post("/cook", h.cook)
			r.Post("/share", h.share)
			r.Post("/continue", h.continueBrowsing)
			r.Put("/servings", h.setServings)
			r.Put("/checklist", h.toggleIngredient)
		})
		r.Route("/leftovers", func(r chi.Router) {
			r.Get("/", h.listLeftovers)
			r.Post("/", h.addLeftovers)
			r.Delete("/{id}", h.removeLeftover)
		})
		r.Route("/grocery", func(r chi.Router) {
			r.Get("/", h.listGrocery)
			r.Put("/{id}", h.setGroceryCompleted)
			r.Delete("/{id}", h.removeGroceryItem)
		})
	})

	s.router = r
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Router returns the chi router, used by tests.
func (s *Server) Router() chi.Router { return s.router }

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
