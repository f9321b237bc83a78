package store

import (
	"database/sql"
	"time"
)

type TradeRecord struct {
	DatasetID     string
	Date          time.Time
	Importer      sql.NullString
	Exporter      sql.NullString
	ExportCountry sql.NullString
	ImportCountry sql.NullString
	HSCode        sql.NullString
	Category      sql.NullString
	OriginCountry sql.NullString
	Volume        float64
	Value         float64
	UnitPrice     sql.NullFloat64
}

// RecordFilter narrows a dataset read; empty slices are ignored.
type RecordFilter struct {
	HSCodes         []string
	Categories      []string
	OriginCountries []string
}

type Dataset struct {
	ID        string
	Name      string
	Source    string
	CreatedAt time.Time
}

type DatasetStats struct {
	Dataset
	RecordsCount int64
	FirstDate    *time.Time
	LastDate     *time.Time
}
