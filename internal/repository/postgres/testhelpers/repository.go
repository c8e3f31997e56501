package testhelpers

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/parking-dashboard/internal/repository/postgres"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewMigratedDatasetRepository применяет миграции и очищает таблицы снимка
func NewMigratedDatasetRepository(t *testing.T, tdb *TestDB) *postgres.DatasetRepository {
	t.Helper()

	pgDB := NewDBForTest(tdb.DB, tdb.Logger)
	require.NoError(t, pgDB.Migrate(context.Background()))

	_, err := tdb.DB.Exec("TRUNCATE congestion_cells, congestion_times, parking_lots")
	require.NoError(t, err)

	return postgres.NewDatasetRepository(pgDB, tdb.Logger)
}
