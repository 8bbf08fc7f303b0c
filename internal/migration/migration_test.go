package migration

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/alexivanou/weather-history/internal/config"
	"github.com/alexivanou/weather-history/internal/database"
	"github.com/alexivanou/weather-history/internal/localstore"
	"github.com/alexivanou/weather-history/internal/metrics"
	"github.com/alexivanou/weather-history/internal/model"
	"github.com/alexivanou/weather-history/internal/repository"
	"github.com/alexivanou/weather-history/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCreator struct {
	mock.Mock
}

func (m *MockCreator) CreateRecord(ctx context.Context, in model.NewRecord) (*model.WeatherHistoryRecord, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WeatherHistoryRecord), args.Error(1)
}

type failingSource struct{}

func (failingSource) Snapshot() ([]model.WeatherHistoryRecord, error) {
	return nil, errors.New("permission denied")
}

func seedLocal(t *testing.T, locations ...string) *localstore.Store {
	local := localstore.New(localstore.NewMemoryStorage(), zap.NewNop())
	for _, loc := range locations {
		_, err := local.Create(model.NewRecord{
			Location:  loc,
			StartDate: "2024-03-01",
			EndDate:   "2024-03-02",
			Temperatures: []model.TemperatureRecord{
				{Date: "2024-03-01", Temp: 10},
			},
		})
		require.NoError(t, err)
	}
	return local
}

func TestMigrator_Run(t *testing.T) {
	local := seedLocal(t, "Paris, France", "Oslo, Norway", "Cairo, Egypt")
	snapshot := local.GetAll()

	creator := new(MockCreator)
	creator.On("CreateRecord", mock.Anything, mock.MatchedBy(func(in model.NewRecord) bool {
		return in.Location == "Oslo, Norway"
	})).Return(nil, errors.New("constraint failed"))
	creator.On("CreateRecord", mock.Anything, mock.Anything).Return(&model.WeatherHistoryRecord{ID: "new"}, nil)

	result := NewMigrator(local, creator, zap.NewNop()).Run(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, "Migration complete: 2 of 3 records migrated successfully", result.Message)
	assert.Equal(t, 3, result.Details.Total)
	assert.Equal(t, 2, result.Details.Success)
	assert.Equal(t, 1, result.Details.Failures)

	var osloID string
	for _, r := range snapshot {
		if r.Location == "Oslo, Norway" {
			osloID = r.ID
		}
	}
	require.Len(t, result.Details.Errors, 1)
	assert.Equal(t, fmt.Sprintf("Record %s: constraint failed", osloID), result.Details.Errors[0])

	creator.AssertNumberOfCalls(t, "CreateRecord", 3)
	assert.Len(t, local.GetAll(), 3, "local records are kept")
}

func TestMigrator_Run_Empty(t *testing.T) {
	creator := new(MockCreator)
	result := NewMigrator(seedLocal(t), creator, zap.NewNop()).Run(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, "Migration complete: 0 of 0 records migrated successfully", result.Message)
	assert.Empty(t, result.Details.Errors)
	creator.AssertNotCalled(t, "CreateRecord", mock.Anything, mock.Anything)
}

func TestMigrator_Run_SnapshotFailure(t *testing.T) {
	result := NewMigrator(failingSource{}, new(MockCreator), zap.NewNop()).Run(context.Background())

	assert.False(t, result.Success)
	assert.Equal(t, "Migration failed: permission denied", result.Message)
	assert.Equal(t, 0, result.Details.Total)
	assert.Equal(t, []string{"permission denied"}, result.Details.Errors)
}

func TestMigrator_Run_IntoSQLite(t *testing.T) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	cfg := config.DBConfig{Type: config.DBTypeMemory, Name: fmt.Sprintf("migration_%d", rng.Int())}

	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, cfg))
	t.Cleanup(func() { db.Close() })

	svc := service.NewService(
		repository.NewRepositories(db, cfg.Type),
		localstore.New(localstore.NewMemoryStorage(), zap.NewNop()),
		config.StorageModeSQL,
		zap.NewNop(),
		metrics.New(),
	)

	local := seedLocal(t, "Paris, France", "Paris, France")
	migrator := NewMigrator(local, svc, zap.NewNop())
	ctx := context.Background()

	result := migrator.Run(ctx)
	require.True(t, result.Success)
	assert.Equal(t, 2, result.Details.Success)
	assert.Len(t, svc.GetAllRecords(ctx), 2)

	var locations int
	require.NoError(t, db.Get(&locations, "SELECT COUNT(*) FROM weather_locations"))
	assert.Equal(t, 1, locations, "records at the same coordinates share a location")

	// A second run duplicates every record.
	result = migrator.Run(ctx)
	require.True(t, result.Success)
	all := svc.GetAllRecords(ctx)
	assert.Len(t, all, 4)
	for _, r := range all {
		assert.Len(t, r.Temperatures, 1)
	}
}
