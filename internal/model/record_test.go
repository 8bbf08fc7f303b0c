package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	lat, lon := 48.8566, 2.3522

	tests := []struct {
		name     string
		display  string
		lat, lon *float64
		expected Location
	}{
		{
			name:     "name and country",
			display:  "Paris, France",
			lat:      &lat,
			lon:      &lon,
			expected: Location{Name: "Paris", Country: "France", Lat: lat, Lon: lon},
		},
		{
			name:     "no country",
			display:  "Paris",
			expected: Location{Name: "Paris", Country: UnknownCountry},
		},
		{
			name:     "split on first comma only",
			display:  "Springfield, Illinois, USA",
			expected: Location{Name: "Springfield", Country: "Illinois, USA"},
		},
		{
			name:     "empty country part",
			display:  "Paris,  ",
			expected: Location{Name: "Paris", Country: UnknownCountry},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLocation(tt.display, tt.lat, tt.lon))
		})
	}
}

func TestFormatLocation(t *testing.T) {
	assert.Equal(t, "Paris, France", FormatLocation("Paris", "France"))
	assert.Equal(t, "Paris", FormatLocation("Paris", UnknownCountry))
	assert.Equal(t, "Paris", FormatLocation("Paris", ""))

	loc := ParseLocation("Paris, France", nil, nil)
	assert.Equal(t, "Paris, France", FormatLocation(loc.Name, loc.Country))
}

func TestStorageRecord_ToDisplay(t *testing.T) {
	created := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	row := StorageRecord{
		ID:           "abc",
		LocationID:   7,
		LocationName: "Paris",
		Country:      "France",
		Lat:          48.8566,
		Lon:          2.3522,
		StartDate:    "2024-01-01",
		EndDate:      "2024-01-03",
		CreatedAt:    created,
	}

	rec := row.ToDisplay(nil)
	assert.Equal(t, "abc", rec.ID)
	assert.Equal(t, "Paris, France", rec.Location)
	require.NotNil(t, rec.Lat)
	assert.Equal(t, 48.8566, *rec.Lat)
	assert.Equal(t, 2.3522, *rec.Lon)
	assert.Equal(t, created, rec.CreatedAt)
	assert.NotNil(t, rec.Temperatures)
	assert.Empty(t, rec.Temperatures)

	row.Lat = 0
	assert.Equal(t, 48.8566, *rec.Lat, "display record does not alias the row")
}

func TestTemperaturePatch_Columns(t *testing.T) {
	assert.Empty(t, TemperaturePatch{}.Columns())

	temp, humidity, desc := 4.2, 70, "fog"
	cols := TemperaturePatch{Temp: &temp, Humidity: &humidity, Description: &desc}.Columns()
	assert.Len(t, cols, 3)
	assert.Equal(t, &temp, cols["temp"])
	assert.Equal(t, &humidity, cols["humidity"])
	assert.Equal(t, &desc, cols["description"])
}

func TestTemperatureRecord_JSONOmitsAbsentFields(t *testing.T) {
	data, err := json.Marshal(TemperatureRecord{Date: "2024-01-01", Temp: 0})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-01","temp":0}`, string(data))

	var rec TemperatureRecord
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-01-01","temp":1,"wind_deg":0}`), &rec))
	require.NotNil(t, rec.WindDeg)
	assert.Equal(t, 0, *rec.WindDeg)
	assert.Nil(t, rec.WindGust)
}

func TestWeatherHistoryRecord_ToNewRecord(t *testing.T) {
	lat := 1.5
	rec := WeatherHistoryRecord{
		ID:        "abc",
		Location:  "Oslo, Norway",
		Lat:       &lat,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-02",
		CreatedAt: time.Now(),
	}

	in := rec.ToNewRecord()
	assert.Equal(t, "Oslo, Norway", in.Location)
	assert.Equal(t, &lat, in.Lat)
	assert.Nil(t, in.Lon)
	assert.NotNil(t, in.Temperatures)
	assert.Empty(t, in.Temperatures)
}
