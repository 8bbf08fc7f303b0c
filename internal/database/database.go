package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexivanou/weather-history/internal/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver for database/sql
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations
var migrationFS embed.FS

// Tables lists the weather tables in dependency order.
var Tables = []string{"weather_locations", "weather_records", "weather_temperatures"}

// Connect creates a database connection based on configuration using sqlx
func Connect(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	driverName := "pgx"
	if cfg.IsSQLite() {
		driverName = "sqlite3"
	}

	if cfg.Type == config.DBTypeSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.ConnectContext(ctx, driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.IsSQLite() {
		// A single connection serializes access and keeps the
		// foreign_keys pragma bound to the connection that runs every query.
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	return db, nil
}

// NewMigrate builds a migrate instance over an open connection using the
// embedded migrations for the configured dialect.
func NewMigrate(db *sqlx.DB, cfg config.DBConfig) (*migrate.Migrate, error) {
	var (
		dir        string
		driverName string
		driver     database.Driver
		err        error
	)

	if cfg.IsSQLite() {
		dir, driverName = "migrations/sqlite", "sqlite3"
		// Use driver instance directly to avoid DSN parsing issues with in-memory SQLite
		driver, err = sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	} else {
		dir, driverName = "migrations/postgres", "postgres"
		driver, err = postgres.WithInstance(db.DB, &postgres.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("could not create %s driver: %w", driverName, err)
	}

	source, err := iofs.New(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}

// Migrate applies all pending schema migrations.
func Migrate(db *sqlx.DB, cfg config.DBConfig) error {
	m, err := NewMigrate(db, cfg)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
