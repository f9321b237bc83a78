// Package bootstrap wires configuration into loggers, storage and services for the binaries.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/de-tools/trade-radar/pkg/loader/objectstore"
	"github.com/de-tools/trade-radar/pkg/loader/warehouse"
	"github.com/de-tools/trade-radar/pkg/runtime/terminal/commands"
	"github.com/de-tools/trade-radar/pkg/services/analysis"
	"github.com/de-tools/trade-radar/pkg/services/config"
	"github.com/de-tools/trade-radar/pkg/services/dataset"
	"github.com/de-tools/trade-radar/pkg/store/duckdb"
	"github.com/de-tools/trade-radar/pkg/store/records"
	"github.com/de-tools/trade-radar/pkg/store/sqlite"
	"github.com/rs/zerolog"
)

func NewLogger(cfg config.LogConfig, out io.Writer) (zerolog.Logger, error) {
	if out == nil {
		out = os.Stdout
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func OpenStore(cfg config.StoreConfig) (*sql.DB, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.NewDB(sqlite.Settings{DbPath: cfg.Path})
	case "duckdb", "":
		return duckdb.NewDB(duckdb.Settings{DbPath: cfg.Path, Threads: cfg.Threads})
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// Services are the long-lived dependencies shared by the CLI and the web server.
type Services struct {
	DB       *sql.DB
	Engine   *analysis.Engine
	Datasets dataset.Manager
}

func NewServices(cfg *config.Config) (*Services, error) {
	db, err := OpenStore(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}

	store, err := records.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create record store: %w", err)
	}

	engine := analysis.NewEngine()
	return &Services{
		DB:       db,
		Engine:   engine,
		Datasets: dataset.NewManager(db, store, engine),
	}, nil
}

func (s *Services) Close() error {
	return s.DB.Close()
}

// Sources builds the remote import sources from configuration.
func Sources(cfg *config.Config) commands.Sources {
	return commands.Sources{
		S3: func(ctx context.Context) (*objectstore.Source, error) {
			return objectstore.NewSourceFromProfile(ctx, cfg.AWS.Profile, cfg.AWS.Region)
		},
		Warehouse: func(_ context.Context, kind string) (*sql.DB, error) {
			switch strings.ToLower(kind) {
			case "snowflake":
				return warehouse.OpenSnowflake(cfg.Snowflake)
			case "databricks":
				return warehouse.OpenDatabricks(cfg.Databricks)
			default:
				return nil, fmt.Errorf("unsupported warehouse %q, expected snowflake or databricks", kind)
			}
		},
	}
}
