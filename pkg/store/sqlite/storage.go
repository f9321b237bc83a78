package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

var migrations = []string{
	`PRAGMA foreign_keys = ON;`,
	`CREATE TABLE IF NOT EXISTS datasets (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		source TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS trade_records (
		dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
		trade_date DATE NOT NULL,
		importer TEXT,
		exporter TEXT,
		export_country TEXT,
		import_country TEXT,
		hs_code TEXT,
		category TEXT,
		origin_country TEXT,
		volume REAL NOT NULL,
		value REAL NOT NULL,
		unit_price REAL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trade_records_dataset ON trade_records (dataset_id, trade_date);`,
}

type Settings struct {
	DbPath string
}

// NewDB opens a pure-Go SQLite database with the same layout as the DuckDB store.
func NewDB(settings Settings) (*sql.DB, error) {
	if settings.DbPath == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}

	db, err := sql.Open("sqlite", settings.DbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	for _, statement := range migrations {
		if _, err := db.Exec(statement); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite migration failed: %w", err)
		}
	}

	return db, nil
}
