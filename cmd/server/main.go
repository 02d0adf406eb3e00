// Command server runs the tree-inventory API. main stays minimal: load
// configuration, build the logger and database pool, start the server.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/config"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/repository/postgres"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	db, err := postgres.Open(context.Background(), cfg.DSN())
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := server.New(cfg, logger, db)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
