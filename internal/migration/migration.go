// Package migration copies weather history records from the local store into
// the relational store.
package migration

import (
	"context"
	"fmt"

	"github.com/alexivanou/weather-history/internal/model"
	"go.uber.org/zap"
)

// Source provides the records to migrate
type Source interface {
	Snapshot() ([]model.WeatherHistoryRecord, error)
}

// Creator writes a record; the store facade satisfies it.
type Creator interface {
	CreateRecord(ctx context.Context, in model.NewRecord) (*model.WeatherHistoryRecord, error)
}

// Migrator runs local-to-SQL migrations. Runs are not idempotent: every run
// creates a new relational record for each local record, and local records
// are never removed.
type Migrator struct {
	source  Source
	creator Creator
	logger  *zap.Logger
}

// NewMigrator creates a migrator
func NewMigrator(source Source, creator Creator, logger *zap.Logger) *Migrator {
	return &Migrator{source: source, creator: creator, logger: logger}
}

// Run takes one snapshot of the source and creates each record through the
// creator in order. A failing record is counted and skipped. The result is
// only unsuccessful when the snapshot itself cannot be read.
func (m *Migrator) Run(ctx context.Context) model.MigrationResult {
	m.logger.Info("Starting data migration from local store")

	records, err := m.source.Snapshot()
	if err != nil {
		m.logger.Error("Migration failed", zap.Error(err))
		return model.MigrationResult{
			Success: false,
			Message: fmt.Sprintf("Migration failed: %v", err),
			Details: model.MigrationDetails{
				Errors: []string{err.Error()},
			},
		}
	}
	m.logger.Info("Found local records", zap.Int("count", len(records)))

	details := model.MigrationDetails{
		Total:  len(records),
		Errors: []string{},
	}

	for _, record := range records {
		if _, err := m.creator.CreateRecord(ctx, record.ToNewRecord()); err != nil {
			m.logger.Error("Failed to migrate record", zap.String("id", record.ID), zap.Error(err))
			details.Failures++
			details.Errors = append(details.Errors, fmt.Sprintf("Record %s: %v", record.ID, err))
			continue
		}
		details.Success++
	}

	message := fmt.Sprintf("Migration complete: %d of %d records migrated successfully", details.Success, details.Total)
	m.logger.Info(message)

	return model.MigrationResult{
		Success: true,
		Message: message,
		Details: details,
	}
}
