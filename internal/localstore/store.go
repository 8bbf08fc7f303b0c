// Package localstore keeps weather history records as one serialized JSON
// collection under a fixed key. It is the fallback for the relational store.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexivanou/weather-history/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StorageKey is the key the whole collection is persisted under.
const StorageKey = "weather_history_records"

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("weather record not found")

// Store reads and writes the full collection on every call. Mutations are a
// read-modify-write without locking; concurrent writers race and the last
// write wins.
type Store struct {
	storage Storage
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a local store over the given storage
func New(storage Storage, logger *zap.Logger) *Store {
	return &Store{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// Snapshot returns the collection, most recent first. A missing or corrupt
// collection is empty; only a failing storage read is an error.
func (s *Store) Snapshot() ([]model.WeatherHistoryRecord, error) {
	raw, ok, err := s.storage.GetItem(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read local records: %w", err)
	}
	if !ok || raw == "" {
		return []model.WeatherHistoryRecord{}, nil
	}

	var records []model.WeatherHistoryRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Warn("Local weather history is corrupt, treating as empty", zap.Error(err))
		return []model.WeatherHistoryRecord{}, nil
	}
	if records == nil {
		records = []model.WeatherHistoryRecord{}
	}
	return records, nil
}

// GetAll returns every record and never fails; read errors yield an empty collection.
func (s *Store) GetAll() []model.WeatherHistoryRecord {
	records, err := s.Snapshot()
	if err != nil {
		s.logger.Error("Error retrieving local weather history", zap.Error(err))
		return []model.WeatherHistoryRecord{}
	}
	return records
}

// GetByID looks a record up by id
func (s *Store) GetByID(id string) (*model.WeatherHistoryRecord, bool) {
	for _, record := range s.GetAll() {
		if record.ID == id {
			r := record
			return &r, true
		}
	}
	return nil, false
}

// Create assigns an id and creation time and prepends the record.
func (s *Store) Create(in model.NewRecord) (*model.WeatherHistoryRecord, error) {
	records, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	record := model.WeatherHistoryRecord{
		ID:           uuid.NewString(),
		Location:     in.Location,
		Lat:          in.Lat,
		Lon:          in.Lon,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		CreatedAt:    s.now().UTC(),
		Temperatures: in.Temperatures,
	}

	records = append([]model.WeatherHistoryRecord{record}, records...)
	if err := s.persist(records); err != nil {
		return nil, err
	}
	return &record, nil
}

// Update shallow-merges the supplied fields into the record, replacing the
// temperature list when one is given.
func (s *Store) Update(id string, update model.RecordUpdate) (*model.WeatherHistoryRecord, error) {
	return s.mutate(id, func(record *model.WeatherHistoryRecord) {
		if update.Location != nil {
			record.Location = *update.Location
		}
		if update.StartDate != nil {
			record.StartDate = *update.StartDate
		}
		if update.EndDate != nil {
			record.EndDate = *update.EndDate
		}
		if update.Temperatures != nil {
			record.Temperatures = update.Temperatures
		}
	})
}

// AddTemperature appends one sample to the record's list
func (s *Store) AddTemperature(recordID string, sample model.TemperatureRecord) (*model.WeatherHistoryRecord, error) {
	return s.mutate(recordID, func(record *model.WeatherHistoryRecord) {
		temps := make([]model.TemperatureRecord, 0, len(record.Temperatures)+1)
		temps = append(temps, record.Temperatures...)
		record.Temperatures = append(temps, sample)
	})
}

// Delete removes the record and reports whether it existed.
func (s *Store) Delete(id string) (bool, error) {
	records, err := s.Snapshot()
	if err != nil {
		return false, err
	}

	kept := make([]model.WeatherHistoryRecord, 0, len(records))
	for _, record := range records {
		if record.ID != id {
			kept = append(kept, record)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}

	if err := s.persist(kept); err != nil {
		return false, err
	}
	return true, nil
}

// Clear replaces the collection with an empty one.
func (s *Store) Clear() error {
	return s.persist([]model.WeatherHistoryRecord{})
}

func (s *Store) mutate(id string, apply func(*model.WeatherHistoryRecord)) (*model.WeatherHistoryRecord, error) {
	records, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID != id {
			continue
		}
		apply(&records[i])
		if err := s.persist(records); err != nil {
			return nil, err
		}
		updated := records[i]
		return &updated, nil
	}
	return nil, fmt.Errorf("weather record with ID %s: %w", id, ErrNotFound)
}

func (s *Store) persist(records []model.WeatherHistoryRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode local records: %w", err)
	}
	if err := s.storage.SetItem(StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist local records: %w", err)
	}
	return nil
}
