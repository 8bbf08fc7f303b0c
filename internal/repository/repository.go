package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexivanou/weather-history/internal/config"
	"github.com/alexivanou/weather-history/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	// ErrNotFound is returned when the targeted row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned when the relational backend cannot serve the
	// request: closed or missing connection, schema mismatch, failed statement.
	ErrUnavailable = errors.New("relational store unavailable")
)

// LocationRepository defines operations for locations
type LocationRepository interface {
	FindOrCreateLocation(ctx context.Context, loc model.Location) (int64, error)
	GetAllLocations(ctx context.Context) ([]model.Location, error)
	GetLocationByID(ctx context.Context, id int64) (*model.Location, error)
	UpdateLocation(ctx context.Context, id int64, loc model.Location) (*model.Location, error)
	DeleteLocation(ctx context.Context, id int64) (int64, error)
}

// RecordRepository defines operations for weather history records
type RecordRepository interface {
	CreateRecord(ctx context.Context, locationID int64, startDate, endDate string) (string, error)
	GetAllRecords(ctx context.Context) ([]model.WeatherHistoryRecord, error)
	GetRecordByID(ctx context.Context, id string) (*model.WeatherHistoryRecord, error)
	UpdateRecord(ctx context.Context, id string, update model.RecordUpdate) (*model.WeatherHistoryRecord, error)
	DeleteRecord(ctx context.Context, id string) (int64, error)
}

// TemperatureRepository defines operations for temperature samples
type TemperatureRepository interface {
	AddTemperature(ctx context.Context, recordID string, sample model.TemperatureRecord) (*model.WeatherHistoryRecord, error)
	GetTemperatures(ctx context.Context, recordID string) ([]model.TemperatureRow, error)
	UpdateTemperature(ctx context.Context, id int64, patch model.TemperaturePatch) (*model.WeatherHistoryRecord, error)
	DeleteTemperature(ctx context.Context, id int64) (*model.WeatherHistoryRecord, error)
}

// Container holds all repositories
type Container struct {
	Location    LocationRepository
	Record      RecordRepository
	Temperature TemperatureRepository
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	var d dialect = sqliteDialect{}
	if dbType == config.DBTypePostgreSQL {
		d = pgDialect{}
	}

	store := &sqlStore{db: db, dialect: d}
	return &Container{
		Location:    store,
		Record:      store,
		Temperature: store,
	}
}

// NewNullRepositories returns repositories that report ErrUnavailable from
// every call. It stands in for the relational store when no database could
// be opened.
func NewNullRepositories() *Container {
	store := nullStore{}
	return &Container{
		Location:    store,
		Record:      store,
		Temperature: store,
	}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
