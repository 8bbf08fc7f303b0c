package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexivanou/weather-history/internal/localstore"
	"github.com/alexivanou/weather-history/internal/model"
	"github.com/alexivanou/weather-history/internal/repository"
	"go.uber.org/zap"
)

// GetAllRecords returns every record, most recent first. It never fails: if
// neither store can be read the result is empty.
func (s *Service) GetAllRecords(ctx context.Context) []model.WeatherHistoryRecord {
	records, err := withFallback(s, "get_all",
		func() ([]model.WeatherHistoryRecord, error) {
			return s.records.GetAllRecords(ctx)
		},
		func() ([]model.WeatherHistoryRecord, error) {
			return s.local.GetAll(), nil
		},
	)
	if err != nil {
		s.logger.Error("Error retrieving weather history", zap.Error(err))
		return []model.WeatherHistoryRecord{}
	}
	return records
}

// GetRecordByID returns the record and whether it was found
func (s *Service) GetRecordByID(ctx context.Context, id string) (*model.WeatherHistoryRecord, bool) {
	record, err := withFallback(s, "get",
		func() (*model.WeatherHistoryRecord, error) {
			return s.records.GetRecordByID(ctx, id)
		},
		func() (*model.WeatherHistoryRecord, error) {
			if r, ok := s.local.GetByID(id); ok {
				return r, nil
			}
			return nil, notFound(id)
		},
	)
	if err != nil {
		if !isNotFound(err) {
			s.logger.Error("Error retrieving weather record", zap.String("id", id), zap.Error(err))
		}
		return nil, false
	}
	return record, true
}

// CreateRecord stores a new record. On the relational path the display
// location is split into a location row, the record row and one row per
// temperature; if any step is unavailable the whole record is created in the
// local store instead. Rows already written are not rolled back.
func (s *Service) CreateRecord(ctx context.Context, in model.NewRecord) (*model.WeatherHistoryRecord, error) {
	return withFallback(s, "create",
		func() (*model.WeatherHistoryRecord, error) {
			return s.createRelational(ctx, in)
		},
		func() (*model.WeatherHistoryRecord, error) {
			return s.local.Create(in)
		},
	)
}

func (s *Service) createRelational(ctx context.Context, in model.NewRecord) (*model.WeatherHistoryRecord, error) {
	locationID, err := s.locations.FindOrCreateLocation(ctx, model.ParseLocation(in.Location, in.Lat, in.Lon))
	if err != nil {
		return nil, err
	}

	id, err := s.records.CreateRecord(ctx, locationID, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	for _, sample := range in.Temperatures {
		if _, err := s.temperatures.AddTemperature(ctx, id, sample); err != nil {
			return nil, err
		}
	}

	record, err := s.records.GetRecordByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to retrieve created record with ID %s: %w", id, repository.ErrUnavailable)
	}
	return record, err
}

// UpdateRecord changes the date range of a record. Location and temperatures
// are left as they are whichever store serves the call; samples are added
// through AddTemperature.
func (s *Service) UpdateRecord(ctx context.Context, id string, update model.RecordUpdate) (*model.WeatherHistoryRecord, error) {
	dates := model.RecordUpdate{
		StartDate: update.StartDate,
		EndDate:   update.EndDate,
	}

	record, err := withFallback(s, "update",
		func() (*model.WeatherHistoryRecord, error) {
			return s.records.UpdateRecord(ctx, id, dates)
		},
		func() (*model.WeatherHistoryRecord, error) {
			return s.local.Update(id, dates)
		},
	)
	if isNotFound(err) {
		return nil, notFound(id)
	}
	return record, err
}

// DeleteRecord removes a record and reports whether it existed.
func (s *Service) DeleteRecord(ctx context.Context, id string) (bool, error) {
	return withFallback(s, "delete",
		func() (bool, error) {
			n, err := s.records.DeleteRecord(ctx, id)
			return n > 0, err
		},
		func() (bool, error) {
			return s.local.Delete(id)
		},
	)
}

// AddTemperature appends one sample to a record and returns the refreshed record
func (s *Service) AddTemperature(ctx context.Context, recordID string, sample model.TemperatureRecord) (*model.WeatherHistoryRecord, error) {
	record, err := withFallback(s, "add_temperature",
		func() (*model.WeatherHistoryRecord, error) {
			return s.temperatures.AddTemperature(ctx, recordID, sample)
		},
		func() (*model.WeatherHistoryRecord, error) {
			return s.local.AddTemperature(recordID, sample)
		},
	)
	if isNotFound(err) {
		return nil, notFound(recordID)
	}
	return record, err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, localstore.ErrNotFound)
}
