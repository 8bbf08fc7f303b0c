package model

import (
	"strings"
	"time"
)

// UnknownCountry is stored when a display location carries no country part
const UnknownCountry = "Unknown"

// Location represents a geographic point in the database
type Location struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Lat       float64   `json:"lat" db:"lat"`
	Lon       float64   `json:"lon" db:"lon"`
	Country   string    `json:"country" db:"country"`
	State     *string   `json:"state,omitempty" db:"state"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TemperatureRecord is a single weather observation attached to a history record
type TemperatureRecord struct {
	Date        string   `json:"date" db:"date"`
	Temp        float64  `json:"temp" db:"temp"`
	FeelsLike   *float64 `json:"feels_like,omitempty" db:"feels_like"`
	Description *string  `json:"description,omitempty" db:"description"`
	Icon        *string  `json:"icon,omitempty" db:"icon"`
	Humidity    *int     `json:"humidity,omitempty" db:"humidity"`
	WindSpeed   *float64 `json:"wind_speed,omitempty" db:"wind_speed"`
	Pressure    *float64 `json:"pressure,omitempty" db:"pressure"`
	Visibility  *float64 `json:"visibility,omitempty" db:"visibility"`
	Cloudiness  *float64 `json:"cloudiness,omitempty" db:"cloudiness"`
	Rain1h      *float64 `json:"rain_1h,omitempty" db:"rain_1h"`
	Snow1h      *float64 `json:"snow_1h,omitempty" db:"snow_1h"`
	TempMin     *float64 `json:"temp_min,omitempty" db:"temp_min"`
	TempMax     *float64 `json:"temp_max,omitempty" db:"temp_max"`
	WindDeg     *int     `json:"wind_deg,omitempty" db:"wind_deg"`
	WindGust    *float64 `json:"wind_gust,omitempty" db:"wind_gust"`
}

// TemperatureRow is a temperature as stored in weather_temperatures,
// including its internal id and owning record.
type TemperatureRow struct {
	ID       int64  `json:"id" db:"id"`
	RecordID string `json:"record_id" db:"record_id"`
	TemperatureRecord
}

// TemperaturePatch holds the fields of a temperature row to overwrite.
// Nil fields are left untouched.
type TemperaturePatch struct {
	Date        *string  `json:"date,omitempty"`
	Temp        *float64 `json:"temp,omitempty"`
	FeelsLike   *float64 `json:"feels_like,omitempty"`
	Description *string  `json:"description,omitempty"`
	Icon        *string  `json:"icon,omitempty"`
	Humidity    *int     `json:"humidity,omitempty"`
	WindSpeed   *float64 `json:"wind_speed,omitempty"`
	Pressure    *float64 `json:"pressure,omitempty"`
	Visibility  *float64 `json:"visibility,omitempty"`
	Cloudiness  *float64 `json:"cloudiness,omitempty"`
	Rain1h      *float64 `json:"rain_1h,omitempty"`
	Snow1h      *float64 `json:"snow_1h,omitempty"`
	TempMin     *float64 `json:"temp_min,omitempty"`
	TempMax     *float64 `json:"temp_max,omitempty"`
	WindDeg     *int     `json:"wind_deg,omitempty"`
	WindGust    *float64 `json:"wind_gust,omitempty"`
}

// Columns returns the supplied fields keyed by column name.
func (p TemperaturePatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	add := func(name string, set bool, v interface{}) {
		if set {
			cols[name] = v
		}
	}
	add("date", p.Date != nil, p.Date)
	add("temp", p.Temp != nil, p.Temp)
	add("feels_like", p.FeelsLike != nil, p.FeelsLike)
	add("description", p.Description != nil, p.Description)
	add("icon", p.Icon != nil, p.Icon)
	add("humidity", p.Humidity != nil, p.Humidity)
	add("wind_speed", p.WindSpeed != nil, p.WindSpeed)
	add("pressure", p.Pressure != nil, p.Pressure)
	add("visibility", p.Visibility != nil, p.Visibility)
	add("cloudiness", p.Cloudiness != nil, p.Cloudiness)
	add("rain_1h", p.Rain1h != nil, p.Rain1h)
	add("snow_1h", p.Snow1h != nil, p.Snow1h)
	add("temp_min", p.TempMin != nil, p.TempMin)
	add("temp_max", p.TempMax != nil, p.TempMax)
	add("wind_deg", p.WindDeg != nil, p.WindDeg)
	add("wind_gust", p.WindGust != nil, p.WindGust)
	return cols
}

// WeatherHistoryRecord is the flat record shape shared by the local store,
// the facade and the HTTP API.
type WeatherHistoryRecord struct {
	ID           string              `json:"id"`
	Location     string              `json:"location"`
	Lat          *float64            `json:"lat,omitempty"`
	Lon          *float64            `json:"lon,omitempty"`
	StartDate    string              `json:"startDate"`
	EndDate      string              `json:"endDate"`
	CreatedAt    time.Time           `json:"createdAt"`
	Temperatures []TemperatureRecord `json:"temperatures,omitempty"`
}

// NewRecord is the input of a create: a record without id and creation time
type NewRecord struct {
	Location     string              `json:"location"`
	Lat          *float64            `json:"lat,omitempty"`
	Lon          *float64            `json:"lon,omitempty"`
	StartDate    string              `json:"startDate"`
	EndDate      string              `json:"endDate"`
	Temperatures []TemperatureRecord `json:"temperatures,omitempty"`
}

// ToNewRecord drops the identity of a record, keeping what a create needs.
// A missing temperature list becomes empty.
func (r WeatherHistoryRecord) ToNewRecord() NewRecord {
	temps := r.Temperatures
	if temps == nil {
		temps = []TemperatureRecord{}
	}
	return NewRecord{
		Location:     r.Location,
		Lat:          r.Lat,
		Lon:          r.Lon,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Temperatures: temps,
	}
}

// RecordUpdate holds the mutable fields of a record. Nil fields are not
// supplied; a non-nil Temperatures replaces the whole list.
type RecordUpdate struct {
	Location     *string             `json:"location,omitempty"`
	StartDate    *string             `json:"startDate,omitempty"`
	EndDate      *string             `json:"endDate,omitempty"`
	Temperatures []TemperatureRecord `json:"temperatures,omitempty"`
}

// StorageRecord is a weather_records row joined with its location
type StorageRecord struct {
	ID           string    `db:"id"`
	LocationID   int64     `db:"location_id"`
	LocationName string    `db:"location_name"`
	Country      string    `db:"country"`
	Lat          float64   `db:"lat"`
	Lon          float64   `db:"lon"`
	StartDate    string    `db:"start_date"`
	EndDate      string    `db:"end_date"`
	CreatedAt    time.Time `db:"created_at"`
}

// ToDisplay maps a joined storage row and its temperatures to the flat shape.
func (s StorageRecord) ToDisplay(temps []TemperatureRecord) WeatherHistoryRecord {
	lat, lon := s.Lat, s.Lon
	if temps == nil {
		temps = []TemperatureRecord{}
	}
	return WeatherHistoryRecord{
		ID:           s.ID,
		Location:     FormatLocation(s.LocationName, s.Country),
		Lat:          &lat,
		Lon:          &lon,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		CreatedAt:    s.CreatedAt,
		Temperatures: temps,
	}
}

// ParseLocation splits a "Name, Country" display string on its first comma.
// Missing coordinates map to 0 and a missing country to UnknownCountry.
func ParseLocation(display string, lat, lon *float64) Location {
	name, country, found := strings.Cut(display, ",")
	country = strings.TrimSpace(country)
	if !found || country == "" {
		country = UnknownCountry
	}

	loc := Location{
		Name:    strings.TrimSpace(name),
		Country: country,
	}
	if lat != nil {
		loc.Lat = *lat
	}
	if lon != nil {
		loc.Lon = *lon
	}
	return loc
}

// FormatLocation is the inverse of ParseLocation.
func FormatLocation(name, country string) string {
	if country == "" || country == UnknownCountry {
		return name
	}
	return name + ", " + country
}
