package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Apurer/garment-studio/internal/platform/migrations"
	platformpostgres "github.com/Apurer/garment-studio/internal/platform/postgres"
)

func main() {
	_ = godotenv.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := run(logger, os.Getenv("POSTGRES_DSN")); err != nil {
		logger.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("saved designs schema is up to date")
}

func run(logger *slog.Logger, dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, cleanup := platformpostgres.ConnectOrFallback(ctx, dsn, platformpostgres.PoolConfig{MaxOpenConns: 1}, logger)
	defer cleanup()
	if db == nil {
		return errors.New("POSTGRES_DSN not set or connection failed")
	}
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		return fmt.Errorf("migrate saved designs schema: %w", err)
	}
	return nil
}
