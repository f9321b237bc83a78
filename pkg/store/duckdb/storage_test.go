package duckdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_BootstrapsSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDB(Settings{
		DbPath: dbPath,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(`INSERT INTO datasets (id, name, source) VALUES (?, ?, ?)`, "ds-001", "tridge", "upload.csv")
	require.NoError(t, err)

	_, err = db.Exec(
		`INSERT INTO trade_records (dataset_id, trade_date, importer, volume, value) VALUES (?, ?, ?, ?, ?)`,
		"ds-001", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "A", 40.0, 240.0,
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM trade_records WHERE dataset_id = ?", "ds-001").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
