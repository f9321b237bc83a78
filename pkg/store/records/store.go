package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/de-tools/trade-radar/pkg/models/store"
	"github.com/rs/zerolog"
)

// Store keeps uploaded datasets of trade records. It works on any database/sql backend
// using `?` placeholders (DuckDB, SQLite).
type Store interface {
	CreateDataset(ctx context.Context, dataset store.Dataset) error
	AddRecords(ctx context.Context, datasetID string, records []store.TradeRecord) error
	ListDatasets(ctx context.Context) ([]store.DatasetStats, error)
	GetDataset(ctx context.Context, datasetID string) (*store.DatasetStats, error)
	GetRecords(ctx context.Context, datasetID string, filter store.RecordFilter) ([]store.TradeRecord, error)
	DeleteDataset(ctx context.Context, datasetID string) error
}

type recordStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &recordStore{
		db: db,
	}, nil
}

func (s *recordStore) CreateDataset(ctx context.Context, dataset store.Dataset) error {
	createdAt := dataset.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.conn(ctx).ExecContext(ctx,
		`INSERT INTO datasets (id, name, source, created_at) VALUES (?, ?, ?, ?)`,
		dataset.ID, dataset.Name, dataset.Source, createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert dataset: %w", err)
	}
	return nil
}

func (s *recordStore) AddRecords(ctx context.Context, datasetID string, records []store.TradeRecord) error {
	if len(records) == 0 {
		return nil
	}

	stmt, err := s.conn(ctx).PrepareContext(ctx, `
		INSERT INTO trade_records (
			dataset_id, trade_date, importer, exporter, export_country, import_country,
			hs_code, category, origin_country, volume, value, unit_price
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err = stmt.ExecContext(ctx,
			datasetID,
			r.Date,
			r.Importer,
			r.Exporter,
			r.ExportCountry,
			r.ImportCountry,
			r.HSCode,
			r.Category,
			r.OriginCountry,
			r.Volume,
			r.Value,
			r.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	return nil
}

const datasetStatsQuery = `
	SELECT d.id, d.name, d.source, d.created_at,
		COUNT(r.dataset_id) AS records_count,
		MIN(r.trade_date) AS first_date,
		MAX(r.trade_date) AS last_date
	FROM datasets d
	LEFT JOIN trade_records r ON r.dataset_id = d.id
`

func (s *recordStore) ListDatasets(ctx context.Context) ([]store.DatasetStats, error) {
	rows, err := s.db.QueryContext(ctx, datasetStatsQuery+`
		GROUP BY d.id, d.name, d.source, d.created_at
		ORDER BY d.created_at DESC, d.id`)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}
	defer closeRows(ctx, rows)

	datasets := make([]store.DatasetStats, 0)
	for rows.Next() {
		ds, err := scanDatasetStats(rows)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, ds)
	}
	return datasets, rows.Err()
}

func (s *recordStore) GetDataset(ctx context.Context, datasetID string) (*store.DatasetStats, error) {
	rows, err := s.db.QueryContext(ctx, datasetStatsQuery+`
		WHERE d.id = ?
		GROUP BY d.id, d.name, d.source, d.created_at`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("query dataset: %w", err)
	}
	defer closeRows(ctx, rows)

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrDatasetNotFound, datasetID)
	}
	ds, err := scanDatasetStats(rows)
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

func (s *recordStore) GetRecords(
	ctx context.Context,
	datasetID string,
	filter store.RecordFilter,
) ([]store.TradeRecord, error) {
	conditions := []string{"dataset_id = ?"}
	args := []any{datasetID}

	conditions, args = appendIn(conditions, args, "hs_code", filter.HSCodes)
	conditions, args = appendIn(conditions, args, "category", filter.Categories)
	conditions, args = appendIn(conditions, args, "origin_country", filter.OriginCountries)

	query := `
		SELECT dataset_id, trade_date, importer, exporter, export_country, import_country,
			hs_code, category, origin_country, volume, value, unit_price
		FROM trade_records
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY trade_date, importer, exporter`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trade records: %w", err)
	}
	defer closeRows(ctx, rows)

	return scanRecordRows(rows)
}

func (s *recordStore) DeleteDataset(ctx context.Context, datasetID string) error {
	if _, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM trade_records WHERE dataset_id = ?`, datasetID); err != nil {
		return fmt.Errorf("delete trade records: %w", err)
	}
	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, datasetID)
	if err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrDatasetNotFound, datasetID)
	}
	return nil
}

func appendIn(conditions []string, args []any, column string, values []string) ([]string, []any) {
	if len(values) == 0 {
		return conditions, args
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		args = append(args, v)
	}
	return append(conditions, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ","))), args
}

func scanRecordRows(rows *sql.Rows) ([]store.TradeRecord, error) {
	records := make([]store.TradeRecord, 0)
	for rows.Next() {
		var (
			r         store.TradeRecord
			tradeDate any
		)
		if err := rows.Scan(
			&r.DatasetID, &tradeDate, &r.Importer, &r.Exporter, &r.ExportCountry, &r.ImportCountry,
			&r.HSCode, &r.Category, &r.OriginCountry, &r.Volume, &r.Value, &r.UnitPrice,
		); err != nil {
			return nil, err
		}
		date, err := asTime(tradeDate)
		if err != nil {
			return nil, fmt.Errorf("scan trade_date: %w", err)
		}
		r.Date = date
		records = append(records, r)
	}
	return records, rows.Err()
}

func scanDatasetStats(rows *sql.Rows) (store.DatasetStats, error) {
	var (
		ds                     store.DatasetStats
		source                 sql.NullString
		createdAt, first, last any
	)
	if err := rows.Scan(&ds.ID, &ds.Name, &source, &createdAt, &ds.RecordsCount, &first, &last); err != nil {
		return ds, err
	}
	ds.Source = source.String

	var err error
	if ds.CreatedAt, err = asTime(createdAt); err != nil {
		return ds, fmt.Errorf("scan created_at: %w", err)
	}
	if ds.FirstDate, err = asOptionalTime(first); err != nil {
		return ds, fmt.Errorf("scan first_date: %w", err)
	}
	if ds.LastDate, err = asOptionalTime(last); err != nil {
		return ds, fmt.Errorf("scan last_date: %w", err)
	}
	return ds, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// asTime accepts the representations drivers use for DATE/TIMESTAMP values.
func asTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		return parseTime(t)
	case []byte:
		return parseTime(string(t))
	default:
		return time.Time{}, fmt.Errorf("unsupported time value %T", v)
	}
}

func asOptionalTime(v any) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	t, err := asTime(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("unrecognized time format: " + s)
}

func closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close rows")
	}
}
