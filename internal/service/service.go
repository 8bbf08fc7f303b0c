package service

import (
	"errors"
	"fmt"

	"github.com/alexivanou/weather-history/internal/config"
	"github.com/alexivanou/weather-history/internal/metrics"
	"github.com/alexivanou/weather-history/internal/model"
	"github.com/alexivanou/weather-history/internal/repository"
	"go.uber.org/zap"
)

// ErrNotFound is returned when the targeted weather record does not exist in
// the store that served the call.
var ErrNotFound = errors.New("weather record not found")

// LocalStore is the fallback collection the facade writes to when the
// relational store is unavailable.
type LocalStore interface {
	GetAll() []model.WeatherHistoryRecord
	GetByID(id string) (*model.WeatherHistoryRecord, bool)
	Create(in model.NewRecord) (*model.WeatherHistoryRecord, error)
	Update(id string, update model.RecordUpdate) (*model.WeatherHistoryRecord, error)
	Delete(id string) (bool, error)
	AddTemperature(recordID string, sample model.TemperatureRecord) (*model.WeatherHistoryRecord, error)
}

// Service routes weather history operations to the relational store and
// retries them against the local store when the relational store is
// unavailable. In local mode the relational store is never called.
type Service struct {
	locations    repository.LocationRepository
	records      repository.RecordRepository
	temperatures repository.TemperatureRepository
	local        LocalStore
	mode         config.StorageMode
	logger       *zap.Logger
	metrics      *metrics.Recorder
}

// NewService creates a new service instance
func NewService(
	repos *repository.Container,
	local LocalStore,
	mode config.StorageMode,
	logger *zap.Logger,
	recorder *metrics.Recorder,
) *Service {
	return &Service{
		locations:    repos.Location,
		records:      repos.Record,
		temperatures: repos.Temperature,
		local:        local,
		mode:         mode,
		logger:       logger,
		metrics:      recorder,
	}
}

// Mode returns the storage mode the facade was built with
func (s *Service) Mode() config.StorageMode {
	return s.mode
}

// withFallback runs sqlFn unless the facade is in local mode, and runs
// localFn instead when sqlFn fails with repository.ErrUnavailable. Any other
// sqlFn error is returned as is.
func withFallback[T any](s *Service, op string, sqlFn, localFn func() (T, error)) (T, error) {
	if s.mode == config.StorageModeLocal {
		s.metrics.Operation(op, metrics.BackendLocal)
		return localFn()
	}

	v, err := sqlFn()
	if err == nil {
		s.metrics.Operation(op, metrics.BackendSQL)
		return v, nil
	}
	if !errors.Is(err, repository.ErrUnavailable) {
		return v, err
	}

	s.logger.Warn("Relational store unavailable, falling back to local store",
		zap.String("operation", op),
		zap.Error(err),
	)
	s.metrics.Fallback(op)
	s.metrics.Operation(op, metrics.BackendLocal)

	v, localErr := localFn()
	if localErr != nil {
		return v, fmt.Errorf("%s: local fallback failed: %w", op, localErr)
	}
	return v, nil
}

func notFound(id string) error {
	return fmt.Errorf("weather record with ID %s: %w", id, ErrNotFound)
}
