// Package main is the entry point for the news-channel backend.
//
// Its job is deliberately small: read configuration from the environment,
// build a logger, and hand both to the server package. All wiring and logic
// live in internal/.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sakif/news-channel/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	port := 5000
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	dbPath := "data/news_channel.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// The signing secret has no safe default — a guessable secret means
	// forgeable sessions. Refuse to start without one.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET not set — generate one with: openssl rand -hex 32")
		os.Exit(1)
	}

	// Without an API key the server still starts; /api/news will surface the
	// upstream's key error. Matches the original deployment behaviour.
	newsAPIKey := os.Getenv("NEWSAPI_KEY")
	if newsAPIKey == "" {
		logger.Warn("NEWSAPI_KEY not set — news requests will fail upstream")
	}

	allowedOrigin := os.Getenv("FRONTEND_URL")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:3000"
	}

	cfg := server.Config{
		Port:          port,
		DBPath:        dbPath,
		NewsAPIKey:    newsAPIKey,
		JWTSecret:     jwtSecret,
		AllowedOrigin: allowedOrigin,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
