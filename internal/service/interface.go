package service

import (
	"context"

	"github.com/alexivanou/weather-history/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	GetAllRecords(ctx context.Context) []model.WeatherHistoryRecord
	GetRecordByID(ctx context.Context, id string) (*model.WeatherHistoryRecord, bool)
	CreateRecord(ctx context.Context, in model.NewRecord) (*model.WeatherHistoryRecord, error)
	UpdateRecord(ctx context.Context, id string, update model.RecordUpdate) (*model.WeatherHistoryRecord, error)
	DeleteRecord(ctx context.Context, id string) (bool, error)
	AddTemperature(ctx context.Context, recordID string, sample model.TemperatureRecord) (*model.WeatherHistoryRecord, error)
}

var _ ServiceInterface = (*Service)(nil)
