// Package warehouse reads trade records that already live in a SQL warehouse table.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"time"

	_ "github.com/databricks/databricks-sql-go"
	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/rs/zerolog"
	sf "github.com/snowflakedb/gosnowflake"
)

type SnowflakeSettings struct {
	Account   string `mapstructure:"account"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	Warehouse string `mapstructure:"warehouse"`
	Database  string `mapstructure:"database"`
	Schema    string `mapstructure:"schema"`
	Role      string `mapstructure:"role"`
}

type DatabricksSettings struct {
	Host     string `mapstructure:"host"`
	HTTPPath string `mapstructure:"http_path"`
	Token    string `mapstructure:"token"`
	Catalog  string `mapstructure:"catalog"`
	Schema   string `mapstructure:"schema"`
}

func OpenSnowflake(settings SnowflakeSettings) (*sql.DB, error) {
	dsn, err := sf.DSN(&sf.Config{
		Account:   settings.Account,
		User:      settings.User,
		Password:  settings.Password,
		Warehouse: settings.Warehouse,
		Database:  settings.Database,
		Schema:    settings.Schema,
		Role:      settings.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DSN: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Snowflake: %w", err)
	}
	return db, nil
}

func OpenDatabricks(settings DatabricksSettings) (*sql.DB, error) {
	dsn := fmt.Sprintf("token:%s@%s%s", settings.Token, settings.Host, settings.HTTPPath)

	params := url.Values{}
	if settings.Catalog != "" {
		params.Set("catalog", settings.Catalog)
	}
	if settings.Schema != "" {
		params.Set("schema", settings.Schema)
	}
	if qp := params.Encode(); qp != "" {
		dsn = dsn + "?" + qp
	}

	db, err := sql.Open("databricks", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Databricks: %w", err)
	}
	return db, nil
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*){0,2}$`)

// Source selects the canonical trade columns from one table.
type Source struct {
	db    *sql.DB
	table string
}

func NewSource(db *sql.DB, table string) (*Source, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Source{db: db, table: table}, nil
}

// Load reads every row dated on or after since; a zero since reads the whole table.
func (s *Source) Load(ctx context.Context, since time.Time) ([]domain.TransactionRecord, error) {
	query := fmt.Sprintf(`
		SELECT trade_date, importer, exporter, export_country, import_country,
			hs_code, category, origin_country, volume, value, unit_price
		FROM %s
		WHERE trade_date >= ?
		ORDER BY trade_date`, s.table)

	rows, err := s.db.QueryContext(ctx, query, domain.Date(since))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table, err)
	}
	defer rows.Close()

	records := make([]domain.TransactionRecord, 0)
	for rows.Next() {
		var (
			rec                                              domain.TransactionRecord
			importer, exporter, exportCountry, importCountry sql.NullString
			hsCode, category, originCountry                  sql.NullString
			volume, value, unitPrice                         sql.NullFloat64
		)
		if err := rows.Scan(
			&rec.Date, &importer, &exporter, &exportCountry, &importCountry,
			&hsCode, &category, &originCountry, &volume, &value, &unitPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", s.table, err)
		}

		rec.Date = domain.Date(rec.Date)
		rec.Importer = importer.String
		rec.Exporter = exporter.String
		rec.ExportCountry = exportCountry.String
		rec.ImportCountry = importCountry.String
		rec.HSCode = hsCode.String
		rec.Category = category.String
		rec.OriginCountry = originCountry.String
		rec.Volume = volume.Float64
		rec.Value = value.Float64
		rec.UnitPrice, rec.HasUnitPrice = unitPrice.Float64, unitPrice.Valid
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%s row dated %s: %w", s.table, rec.Date.Format(time.DateOnly), err)
		}
		rec.DeriveUnitPrice()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("table", s.table).
		Int("records", len(records)).
		Msg("loaded trade records from warehouse")

	return records, nil
}
