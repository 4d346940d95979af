// Package server wires the dependency graph and owns the HTTP lifecycle.
//
// This is the composition root: main.go hands over a Config, and everything
// else — database, clients, caches, services, handlers, routes — is
// assembled here in one place.
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

	"github.com/sakif/news-channel/internal/auth"
	"github.com/sakif/news-channel/internal/cache"
	"github.com/sakif/news-channel/internal/handler"
	"github.com/sakif/news-channel/internal/middleware"
	"github.com/sakif/news-channel/internal/newsapi"
	sqliteRepo "github.com/sakif/news-channel/internal/repository/sqlite"
	"github.com/sakif/news-channel/internal/service"
	"github.com/sakif/news-channel/internal/weather"
)

// cacheTTL is how long proxied upstream responses are served from memory.
// A cached response does not reflect upstream updates until it expires.
const cacheTTL = 10 * time.Minute

// Config holds server configuration, populated from the environment by
// main.go. Secrets live here and are passed into constructors — business
// logic never reads the environment itself.
type Config struct {
	Port          int
	DBPath        string
	NewsAPIKey    string
	JWTSecret     string
	AllowedOrigin string
}

// Server owns the router and the resources that need closing on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain:
//
//	sqlite.DB → services (auth, favorites) → handlers
//	newsapi/weather clients → TTL caches → proxy services → handlers
//
// Handlers never touch the database; services never touch HTTP.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router, for tests that drive the server with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures middleware and the route table.
//
//	POST   /api/auth/register   public
//	POST   /api/auth/login      public
//	GET    /api/news            public (cached proxy)
//	GET    /api/weather         public (cached proxy)
//	GET    /api/health          public
//	GET    /api/favorites       auth required
//	POST   /api/favorites       auth required
//	DELETE /api/favorites/{id}  auth required
//
// RequireAuth runs before the favorites handlers, so an unauthenticated
// request is rejected before any store work happens.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// The browser frontend is served from a different origin and sends the
	// Authorization header, so CORS must allow both.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.config.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	favoriteService := service.NewFavoriteService(s.db, s.logger)
	newsService := service.NewNewsService(
		newsapi.New(s.config.NewsAPIKey), cache.New(cacheTTL), s.logger)
	weatherService := service.NewWeatherService(
		weather.New(), cache.New(cacheTTL), s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	newsHandler := handler.NewNewsHandler(newsService, s.logger)
	weatherHandler := handler.NewWeatherHandler(weatherService, s.logger)
	favoritesHandler := handler.NewFavoritesHandler(favoriteService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.HandleHealth)
		r.Get("/news", newsHandler.HandleGetNews)
		r.Get("/weather", weatherHandler.HandleGetWeather)

		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Get("/favorites", favoritesHandler.HandleList)
			r.Post("/favorites", favoritesHandler.HandleAdd)
			r.Delete("/favorites/{id}", favoritesHandler.HandleRemove)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s, close
// the database.
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
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
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
