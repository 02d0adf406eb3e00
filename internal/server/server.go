// Package server wires the router, global policies and graceful shutdown.
// It is the composition root below main: repositories, services and handlers
// are assembled here and connected to routes.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/config"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/handler"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/middleware"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/repository/postgres"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/service"
)

// Rate limit applied ahead of all routes.
const (
	rateLimitRequests = 1000
	rateLimitWindow   = 15 * time.Minute
)

// Server owns the router and the database pool; the pool is closed during
// graceful shutdown so in-flight connections are released cleanly.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *postgres.DB
}

func New(cfg *config.Config, logger *slog.Logger, db *postgres.DB) *Server {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// Cross-cutting entry-point policies: wide-open CORS and a fixed global
	// rate limit, both applied before any route logic.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
	}))
	s.router.Use(httprate.LimitAll(rateLimitRequests, rateLimitWindow))

	authService := service.NewAuthService(s.db, s.logger)
	plantService := service.NewPlantService(s.db, s.logger)
	speciesService := service.NewSpeciesService(s.db, s.logger)
	forumService := service.NewForumService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	plantHandler := handler.NewPlantHandler(plantService, s.logger)
	speciesHandler := handler.NewSpeciesHandler(speciesService, s.logger)
	forumHandler := handler.NewForumHandler(forumService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		// The plant routes keep the mixed naming of the original API:
		// listing under /plantas, creation and comments under /plants.
		r.Get("/plantas", plantHandler.HandleList)
		r.Post("/plants", plantHandler.HandleCreate)
		r.Get("/plants/{plantId}/comments", plantHandler.HandleListComments)
		r.Post("/plants/{plantId}/comments", plantHandler.HandleCreateComment)

		r.Get("/especies", speciesHandler.HandleSearch)
		r.Get("/filtros", speciesHandler.HandleFilters)

		r.Get("/rooms", forumHandler.HandleListRooms)
		r.Post("/rooms", forumHandler.HandleCreateRoom)
		r.Get("/rooms/{roomId}/messages", forumHandler.HandleListMessages)
		r.Post("/rooms/{roomId}/messages", forumHandler.HandleSendMessage)
		r.Post("/rooms/{roomId}/join", forumHandler.HandleJoinRoom)

		r.Get("/health", handler.HandleHealth)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests and closes the database pool.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.Int("port", s.config.Port))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
