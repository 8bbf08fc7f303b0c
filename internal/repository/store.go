package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexivanou/weather-history/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const temperatureColumns = `id, record_id, date, temp, feels_like, description, icon, humidity,
	wind_speed, pressure, visibility, cloudiness, rain_1h, snow_1h, temp_min, temp_max, wind_deg, wind_gust`

// dialect covers the few statements that differ between SQLite and PostgreSQL
type dialect interface {
	// insertReturningID runs an INSERT into a table with a surrogate key and
	// returns the generated id.
	insertReturningID(ctx context.Context, db sqlx.ExtContext, query string, args ...interface{}) (int64, error)
	// dateColumn renders a date column as YYYY-MM-DD text.
	dateColumn(col string) string
	// insertionOrder names a column that grows with every inserted record.
	insertionOrder(alias string) string
}

// sqlStore implements the location, record and temperature repositories on
// top of sqlx. Queries are written with ? placeholders and rebound for the
// driver in use.
type sqlStore struct {
	db      *sqlx.DB
	dialect dialect
}

func (r *sqlStore) q(query string) string {
	return r.db.Rebind(query)
}

func (r *sqlStore) recordSelect() string {
	return fmt.Sprintf(`
		SELECT
			wr.id,
			wr.location_id,
			wl.name AS location_name,
			wl.country,
			wl.lat,
			wl.lon,
			%s AS start_date,
			%s AS end_date,
			wr.created_at
		FROM weather_records wr
		JOIN weather_locations wl ON wr.location_id = wl.id`,
		r.dialect.dateColumn("wr.start_date"),
		r.dialect.dateColumn("wr.end_date"),
	)
}

// --- Locations ---

func (r *sqlStore) FindOrCreateLocation(ctx context.Context, loc model.Location) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id,
		r.q("SELECT id FROM weather_locations WHERE lat = ? AND lon = ? ORDER BY id LIMIT 1"),
		loc.Lat, loc.Lon)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, unavailable("find location", err)
	}

	id, err = r.dialect.insertReturningID(ctx, r.db,
		r.q(`INSERT INTO weather_locations (name, lat, lon, country, state, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`),
		loc.Name, loc.Lat, loc.Lon, loc.Country, loc.State, time.Now().UTC())
	if err != nil {
		return 0, unavailable("insert location", err)
	}
	return id, nil
}

func (r *sqlStore) GetAllLocations(ctx context.Context) ([]model.Location, error) {
	locations := []model.Location{}
	if err := r.db.SelectContext(ctx, &locations,
		"SELECT id, name, lat, lon, country, state, created_at FROM weather_locations ORDER BY id"); err != nil {
		return nil, unavailable("list locations", err)
	}
	return locations, nil
}

func (r *sqlStore) GetLocationByID(ctx context.Context, id int64) (*model.Location, error) {
	var loc model.Location
	if err := r.db.GetContext(ctx, &loc,
		r.q("SELECT id, name, lat, lon, country, state, created_at FROM weather_locations WHERE id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("location %d: %w", id, ErrNotFound)
		}
		return nil, unavailable("get location", err)
	}
	return &loc, nil
}

func (r *sqlStore) UpdateLocation(ctx context.Context, id int64, loc model.Location) (*model.Location, error) {
	res, err := r.db.ExecContext(ctx,
		r.q("UPDATE weather_locations SET name = ?, country = ?, state = ? WHERE id = ?"),
		loc.Name, loc.Country, loc.State, id)
	if err != nil {
		return nil, unavailable("update location", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("location %d: %w", id, ErrNotFound)
	}
	return r.GetLocationByID(ctx, id)
}

// DeleteLocation removes a location; the foreign keys cascade to every record
// that references it and to their temperatures.
func (r *sqlStore) DeleteLocation(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.q("DELETE FROM weather_locations WHERE id = ?"), id)
	if err != nil {
		return 0, unavailable("delete location", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, unavailable("delete location", err)
	}
	return n, nil
}

// --- Records ---

func (r *sqlStore) CreateRecord(ctx context.Context, locationID int64, startDate, endDate string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		r.q(`INSERT INTO weather_records (id, location_id, start_date, end_date, created_at)
			VALUES (?, ?, ?, ?, ?)`),
		id, locationID, startDate, endDate, time.Now().UTC())
	if err != nil {
		return "", unavailable("insert record", err)
	}
	return id, nil
}

func (r *sqlStore) GetAllRecords(ctx context.Context) ([]model.WeatherHistoryRecord, error) {
	var rows []model.StorageRecord
	if err := r.db.SelectContext(ctx, &rows, r.recordSelect()+" ORDER BY wr.created_at DESC, "+r.dialect.insertionOrder("wr")+" DESC"); err != nil {
		return nil, unavailable("list records", err)
	}

	records := make([]model.WeatherHistoryRecord, 0, len(rows))
	for _, row := range rows {
		temps, err := r.temperaturesFor(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		records = append(records, row.ToDisplay(temps))
	}
	return records, nil
}

func (r *sqlStore) GetRecordByID(ctx context.Context, id string) (*model.WeatherHistoryRecord, error) {
	var row model.StorageRecord
	if err := r.db.GetContext(ctx, &row, r.q(r.recordSelect()+" WHERE wr.id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("record %s: %w", id, ErrNotFound)
		}
		return nil, unavailable("get record", err)
	}

	temps, err := r.temperaturesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	record := row.ToDisplay(temps)
	return &record, nil
}

// UpdateRecord writes the supplied dates. Location reassignment is not
// supported here: update.Location and update.Temperatures are ignored.
func (r *sqlStore) UpdateRecord(ctx context.Context, id string, update model.RecordUpdate) (*model.WeatherHistoryRecord, error) {
	var (
		sets []string
		args []interface{}
	)
	if update.StartDate != nil {
		sets = append(sets, "start_date = ?")
		args = append(args, *update.StartDate)
	}
	if update.EndDate != nil {
		sets = append(sets, "end_date = ?")
		args = append(args, *update.EndDate)
	}

	if len(sets) > 0 {
		args = append(args, id)
		query := "UPDATE weather_records SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := r.db.ExecContext(ctx, r.q(query), args...); err != nil {
			return nil, unavailable("update record", err)
		}
	}

	return r.GetRecordByID(ctx, id)
}

func (r *sqlStore) DeleteRecord(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.q("DELETE FROM weather_records WHERE id = ?"), id)
	if err != nil {
		return 0, unavailable("delete record", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, unavailable("delete record", err)
	}
	return n, nil
}

// --- Temperatures ---

func (r *sqlStore) AddTemperature(ctx context.Context, recordID string, sample model.TemperatureRecord) (*model.WeatherHistoryRecord, error) {
	if err := r.recordExists(ctx, recordID); err != nil {
		return nil, err
	}

	row := model.TemperatureRow{RecordID: recordID, TemperatureRecord: sample}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO weather_temperatures (record_id, date, temp, feels_like, description, icon, humidity,
			wind_speed, pressure, visibility, cloudiness, rain_1h, snow_1h, temp_min, temp_max, wind_deg, wind_gust)
		VALUES (:record_id, :date, :temp, :feels_like, :description, :icon, :humidity,
			:wind_speed, :pressure, :visibility, :cloudiness, :rain_1h, :snow_1h, :temp_min, :temp_max, :wind_deg, :wind_gust)`,
		row)
	if err != nil {
		return nil, unavailable("insert temperature", err)
	}

	return r.GetRecordByID(ctx, recordID)
}

func (r *sqlStore) GetTemperatures(ctx context.Context, recordID string) ([]model.TemperatureRow, error) {
	rows := []model.TemperatureRow{}
	if err := r.db.SelectContext(ctx, &rows,
		r.q("SELECT "+temperatureColumns+" FROM weather_temperatures WHERE record_id = ? ORDER BY date ASC, id ASC"),
		recordID); err != nil {
		return nil, unavailable("list temperatures", err)
	}
	return rows, nil
}

func (r *sqlStore) UpdateTemperature(ctx context.Context, id int64, patch model.TemperaturePatch) (*model.WeatherHistoryRecord, error) {
	recordID, err := r.temperatureOwner(ctx, id)
	if err != nil {
		return nil, err
	}

	cols := patch.Columns()
	if len(cols) > 0 {
		names := make([]string, 0, len(cols))
		for name := range cols {
			names = append(names, name)
		}
		sort.Strings(names)

		sets := make([]string, 0, len(names))
		args := make([]interface{}, 0, len(names)+1)
		for _, name := range names {
			sets = append(sets, name+" = ?")
			args = append(args, cols[name])
		}
		args = append(args, id)

		query := "UPDATE weather_temperatures SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := r.db.ExecContext(ctx, r.q(query), args...); err != nil {
			return nil, unavailable("update temperature", err)
		}
	}

	return r.GetRecordByID(ctx, recordID)
}

func (r *sqlStore) DeleteTemperature(ctx context.Context, id int64) (*model.WeatherHistoryRecord, error) {
	recordID, err := r.temperatureOwner(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx, r.q("DELETE FROM weather_temperatures WHERE id = ?"), id); err != nil {
		return nil, unavailable("delete temperature", err)
	}

	return r.GetRecordByID(ctx, recordID)
}

func (r *sqlStore) temperaturesFor(ctx context.Context, recordID string) ([]model.TemperatureRecord, error) {
	rows, err := r.GetTemperatures(ctx, recordID)
	if err != nil {
		return nil, err
	}
	temps := make([]model.TemperatureRecord, 0, len(rows))
	for _, row := range rows {
		temps = append(temps, row.TemperatureRecord)
	}
	return temps, nil
}

func (r *sqlStore) recordExists(ctx context.Context, id string) error {
	var found int
	err := r.db.GetContext(ctx, &found, r.q("SELECT 1 FROM weather_records WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return unavailable("get record", err)
	}
	return nil
}

func (r *sqlStore) temperatureOwner(ctx context.Context, id int64) (string, error) {
	var recordID string
	err := r.db.GetContext(ctx, &recordID, r.q("SELECT record_id FROM weather_temperatures WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("temperature %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", unavailable("get temperature", err)
	}
	return recordID, nil
}
