package stats

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/alexivanou/weather-history/internal/config"
	"github.com/alexivanou/weather-history/internal/database"
	"github.com/alexivanou/weather-history/internal/model"
	"github.com/jmoiron/sqlx"
)

type Stats struct {
	Timestamp time.Time     `json:"timestamp"`
	Memory    MemoryStats   `json:"memory"`
	Database  DatabaseStats `json:"database"`
	Local     LocalStats    `json:"local"`
	Runtime   RuntimeStats  `json:"runtime"`
}

type MemoryStats struct {
	Alloc uint64 `json:"alloc"`
	Sys   uint64 `json:"sys"`
	NumGC uint32 `json:"num_gc"`
}

// DatabaseStats is left at its zero counts when the relational store is
// absent or does not answer a ping.
type DatabaseStats struct {
	Type         string      `json:"type"`
	Connected    bool        `json:"connected"`
	TotalRecords int64       `json:"total_records"`
	SizeBytes    int64       `json:"size_bytes"`
	TableStats   []TableStat `json:"table_stats"`
}

// LocalStats describes the fallback collection
type LocalStats struct {
	Mode    string `json:"mode"`
	Records int    `json:"records"`
}

type TableStat struct {
	Name     string `json:"name"`
	RowCount int64  `json:"row_count"`
}

type RuntimeStats struct {
	NumGoroutines int   `json:"num_goroutines"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

// LocalCounter reports the records currently held by the local store
type LocalCounter interface {
	GetAll() []model.WeatherHistoryRecord
}

type Collector struct {
	db        *sqlx.DB
	config    config.DBConfig
	mode      config.StorageMode
	local     LocalCounter
	startTime time.Time
}

// NewCollector creates a collector. db may be nil when the service runs
// without a relational store.
func NewCollector(db *sqlx.DB, cfg config.DBConfig, mode config.StorageMode, local LocalCounter) *Collector {
	return &Collector{
		db:        db,
		config:    cfg,
		mode:      mode,
		local:     local,
		startTime: time.Now(),
	}
}

func (c *Collector) Collect(ctx context.Context) (*Stats, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	dbStats, err := c.collectDatabaseStats(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Timestamp: time.Now(),
		Memory:    MemoryStats{Alloc: m.Alloc, Sys: m.Sys, NumGC: m.NumGC},
		Database:  *dbStats,
		Local:     LocalStats{Mode: string(c.mode)},
		Runtime: RuntimeStats{
			NumGoroutines: runtime.NumGoroutine(),
			UptimeSeconds: int64(time.Since(c.startTime).Seconds()),
		},
	}
	if c.local != nil {
		stats.Local.Records = len(c.local.GetAll())
	}
	return stats, nil
}

func (c *Collector) collectDatabaseStats(ctx context.Context) (*DatabaseStats, error) {
	stats := &DatabaseStats{
		Type:       string(c.config.Type),
		TableStats: []TableStat{},
	}
	if c.db == nil || c.db.PingContext(ctx) != nil {
		return stats, nil
	}
	stats.Connected = true

	sizeQuery := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
	if c.config.Type == config.DBTypePostgreSQL {
		sizeQuery = "SELECT pg_database_size(current_database())"
	}
	// Size is best effort; some managed databases deny it.
	_ = c.db.GetContext(ctx, &stats.SizeBytes, sizeQuery)

	for _, table := range database.Tables {
		var count int64
		if err := c.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+table); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		stats.TableStats = append(stats.TableStats, TableStat{Name: table, RowCount: count})
		stats.TotalRecords += count
	}
	return stats, nil
}
