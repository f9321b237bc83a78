package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const DatasetsSchema = `
	CREATE TABLE IF NOT EXISTS datasets (
		id VARCHAR NOT NULL PRIMARY KEY,
		name VARCHAR NOT NULL,
		source VARCHAR,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`
const TradeRecordsSchema = `
	CREATE TABLE IF NOT EXISTS trade_records (
		dataset_id VARCHAR NOT NULL,
		trade_date DATE NOT NULL,
		importer VARCHAR,
		exporter VARCHAR,
		export_country VARCHAR,
		import_country VARCHAR,
		hs_code VARCHAR,
		category VARCHAR,
		origin_country VARCHAR,
		volume DOUBLE NOT NULL,
		value DOUBLE NOT NULL,
		unit_price DOUBLE
	);
`

var bootQueries = []string{
	DatasetsSchema,
	TradeRecordsSchema,
}

type Settings struct {
	DbPath  string
	Threads int
}

func NewDB(settings Settings) (*sql.DB, error) {
	threads := settings.Threads
	if threads <= 0 {
		threads = 4
	}

	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=%d", settings.DbPath, threads), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
