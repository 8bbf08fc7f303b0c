package repository

import (
	"context"
	"errors"

	"github.com/alexivanou/weather-history/internal/model"
)

var errNoDatabase = errors.New("no database configured")

// nullStore satisfies every repository interface without a database.
type nullStore struct{}

func (nullStore) FindOrCreateLocation(context.Context, model.Location) (int64, error) {
	return 0, unavailable("find location", errNoDatabase)
}

func (nullStore) GetAllLocations(context.Context) ([]model.Location, error) {
	return nil, unavailable("list locations", errNoDatabase)
}

func (nullStore) GetLocationByID(context.Context, int64) (*model.Location, error) {
	return nil, unavailable("get location", errNoDatabase)
}

func (nullStore) UpdateLocation(context.Context, int64, model.Location) (*model.Location, error) {
	return nil, unavailable("update location", errNoDatabase)
}

func (nullStore) DeleteLocation(context.Context, int64) (int64, error) {
	return 0, unavailable("delete location", errNoDatabase)
}

func (nullStore) CreateRecord(context.Context, int64, string, string) (string, error) {
	return "", unavailable("insert record", errNoDatabase)
}

func (nullStore) GetAllRecords(context.Context) ([]model.WeatherHistoryRecord, error) {
	return nil, unavailable("list records", errNoDatabase)
}

func (nullStore) GetRecordByID(context.Context, string) (*model.WeatherHistoryRecord, error) {
	return nil, unavailable("get record", errNoDatabase)
}

func (nullStore) UpdateRecord(context.Context, string, model.RecordUpdate) (*model.WeatherHistoryRecord, error) {
	return nil, unavailable("update record", errNoDatabase)
}

func (nullStore) DeleteRecord(context.Context, string) (int64, error) {
	return 0, unavailable("delete record", errNoDatabase)
}

func (nullStore) AddTemperature(context.Context, string, model.TemperatureRecord) (*model.WeatherHistoryRecord, error) {
	return nil, unavailable("insert temperature", errNoDatabase)
}

func (nullStore) GetTemperatures(context.Context, string) ([]model.TemperatureRow, error) {
	return nil, unavailable("list temperatures", errNoDatabase)
}

func (nullStore) UpdateTemperature(context.Context, int64, model.TemperaturePatch) (*model.WeatherHistoryRecord, error) {
	return nil, unavailable("update temperature", errNoDatabase)
}

func (nullStore) DeleteTemperature(context.Context, int64) (*model.WeatherHistoryRecord, error) {
	return nil, unavailable("delete temperature", errNoDatabase)
}
