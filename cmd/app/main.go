package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexivanou/weather-history/internal/api"
	"github.com/alexivanou/weather-history/internal/config"
	"github.com/alexivanou/weather-history/internal/database"
	"github.com/alexivanou/weather-history/internal/localstore"
	"github.com/alexivanou/weather-history/internal/metrics"
	"github.com/alexivanou/weather-history/internal/migration"
	"github.com/alexivanou/weather-history/internal/repository"
	"github.com/alexivanou/weather-history/internal/service"
	"github.com/alexivanou/weather-history/internal/stats"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	db, repos := openRelational(ctx, cfg, logger)
	if db != nil {
		defer db.Close()
	}

	storage, err := localstore.OpenStorage(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to open local storage", zap.Error(err))
	}
	local := localstore.New(storage, logger)

	recorder := metrics.New()
	svc := service.NewService(repos, local, cfg.Storage.Mode, logger, recorder)
	migrator := migration.NewMigrator(local, svc, logger)
	statsCollector := stats.NewCollector(db, cfg.DB, cfg.Storage.Mode, local)
	router := api.NewRouter(svc, statsCollector, migrator, recorder.Handler(), logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("storage_mode", string(cfg.Storage.Mode)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// openRelational connects and migrates the configured database. The service
// keeps running on the local store when that fails, so errors are logged and
// the null repositories are returned instead. Local mode never connects.
func openRelational(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sqlx.DB, *repository.Container) {
	if cfg.Storage.Mode == config.StorageModeLocal {
		logger.Info("Local storage mode, relational store disabled")
		return nil, repository.NewNullRepositories()
	}

	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Error("Failed to connect to database, using local store", zap.Error(err))
		return nil, repository.NewNullRepositories()
	}

	if err := database.Migrate(db, cfg.DB); err != nil {
		logger.Error("Failed to run migrations, using local store", zap.Error(err))
		db.Close()
		return nil, repository.NewNullRepositories()
	}

	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))
	return db, repository.NewRepositories(db, cfg.DB.Type)
}
