package api

import (
	"context"
	"net/http"

	"github.com/alexivanou/weather-history/internal/model"
	"github.com/alexivanou/weather-history/internal/stats"
	"go.uber.org/zap"
)

// StatsCollector gathers service statistics
type StatsCollector interface {
	Collect(ctx context.Context) (*stats.Stats, error)
}

// Migrator copies local records into the relational store
type Migrator interface {
	Run(ctx context.Context) model.MigrationResult
}

// StatsHandler handles statistics and migration requests
type StatsHandler struct {
	collector StatsCollector
	migrator  Migrator
	logger    *zap.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(collector StatsCollector, migrator Migrator, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{collector: collector, migrator: migrator, logger: logger}
}

// GetStats handles GET /api/v1/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.collector.Collect(r.Context())
	if err != nil {
		h.logger.Error("Error collecting statistics", zap.Error(err))
		http.Error(w, "failed to collect statistics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, stats)
}

// Migrate handles POST /api/v1/migrate. The result carries its own success
// flag, so the status is 200 unless the local records could not be read.
func (h *StatsHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	result := h.migrator.Run(r.Context())

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, h.logger, status, result)
}
