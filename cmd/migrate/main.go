package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/alexivanou/weather-history/internal/config"
	"github.com/alexivanou/weather-history/internal/database"
	"github.com/alexivanou/weather-history/internal/localstore"
	"github.com/alexivanou/weather-history/internal/metrics"
	"github.com/alexivanou/weather-history/internal/migration"
	"github.com/alexivanou/weather-history/internal/repository"
	"github.com/alexivanou/weather-history/internal/service"
	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, version, or local (copy local records into the database)")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	m, err := database.NewMigrate(db, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to create migration instance", zap.Error(err))
	}

	switch *command {
	case "up":
		logger.Info("Running migrations UP")
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("Migration up failed", zap.Error(err))
		}
	case "down":
		logger.Info("Running migrations DOWN")
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("Migration down failed", zap.Error(err))
		}
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			logger.Fatal("Failed to get version", zap.Error(err))
		}
		logger.Info("Migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	case "local":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("Migration up failed", zap.Error(err))
		}
		runLocal(ctx, cfg, repository.NewRepositories(db, cfg.DB.Type), logger)
	default:
		logger.Fatal("Unknown command", zap.String("command", *command))
	}

	logger.Info("Migration command completed successfully")
}

func runLocal(ctx context.Context, cfg *config.Config, repos *repository.Container, logger *zap.Logger) {
	storage, err := localstore.OpenStorage(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to open local storage", zap.Error(err))
	}
	local := localstore.New(storage, logger)

	svc := service.NewService(repos, local, config.StorageModeSQL, logger, metrics.New())
	result := migration.NewMigrator(local, svc, logger).Run(ctx)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		logger.Fatal("Failed to encode result", zap.Error(err))
	}
	if !result.Success {
		logger.Fatal("Local migration failed", zap.String("message", result.Message))
	}
}
