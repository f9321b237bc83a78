package commands

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/de-tools/trade-radar/pkg/adapters"
	"github.com/de-tools/trade-radar/pkg/loader"
	"github.com/de-tools/trade-radar/pkg/loader/objectstore"
	"github.com/de-tools/trade-radar/pkg/loader/warehouse"
	"github.com/de-tools/trade-radar/pkg/models/api"
	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/de-tools/trade-radar/pkg/runtime/terminal/export"
	"github.com/de-tools/trade-radar/pkg/services/dataset"
	"github.com/spf13/cobra"
)

// Sources opens the remote inputs of the import command lazily, so credentials are only
// needed when a remote source is used.
type Sources struct {
	S3        func(ctx context.Context) (*objectstore.Source, error)
	Warehouse func(ctx context.Context, kind string) (*sql.DB, error)
}

type ImportCmd struct {
	name      string
	file      string
	s3URI     string
	warehouse string
	table     string
	since     string

	datasets dataset.Manager
	sources  Sources
	reporter *export.Reporter
}

func NewImportCmd(datasets dataset.Manager, sources Sources, reporter *export.Reporter) *cobra.Command {
	ic := &ImportCmd{datasets: datasets, sources: sources, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import trade records as a named dataset",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.name, "name", "", "Dataset name (defaults to the source name)")
	cmd.Flags().StringVar(&ic.file, "file", "", "Local CSV or XLSX file")
	cmd.Flags().StringVar(&ic.s3URI, "s3", "", "S3 object, e.g. s3://bucket/exports/2024.csv")
	cmd.Flags().StringVar(&ic.warehouse, "warehouse", "", "Remote warehouse: snowflake or databricks")
	cmd.Flags().StringVar(&ic.table, "table", "", "Warehouse table holding trade records")
	cmd.Flags().StringVar(&ic.since, "since", "", "Only import warehouse rows on or after this date (YYYY-MM-DD)")

	cmd.MarkFlagsOneRequired("file", "s3", "warehouse")
	cmd.MarkFlagsMutuallyExclusive("file", "s3", "warehouse")
	cmd.MarkFlagsRequiredTogether("warehouse", "table")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	records, source, err := ic.load(ctx)
	if err != nil {
		return err
	}

	name := ic.name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}

	ds, err := ic.datasets.Import(ctx, name, source, records)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", source, err)
	}

	return ic.reporter.Datasets([]api.Dataset{adapters.MapDatasetDomainToApi(*ds)})
}

func (ic *ImportCmd) load(ctx context.Context) ([]domain.TransactionRecord, string, error) {
	switch {
	case ic.file != "":
		records, err := loader.ReadFile(ctx, ic.file)
		return records, ic.file, err
	case ic.s3URI != "":
		bucket, key, err := parseS3URI(ic.s3URI)
		if err != nil {
			return nil, "", err
		}
		if ic.sources.S3 == nil {
			return nil, "", fmt.Errorf("S3 source is not configured")
		}
		src, err := ic.sources.S3(ctx)
		if err != nil {
			return nil, "", err
		}
		records, err := src.Load(ctx, bucket, key)
		return records, objectstore.URI(bucket, key), err
	default:
		var since time.Time
		if ic.since != "" {
			t, err := time.Parse(time.DateOnly, ic.since)
			if err != nil {
				return nil, "", fmt.Errorf("invalid --since %q: %w", ic.since, err)
			}
			since = t
		}
		if ic.sources.Warehouse == nil {
			return nil, "", fmt.Errorf("warehouse source is not configured")
		}
		db, err := ic.sources.Warehouse(ctx, ic.warehouse)
		if err != nil {
			return nil, "", err
		}
		defer db.Close()

		src, err := warehouse.NewSource(db, ic.table)
		if err != nil {
			return nil, "", err
		}
		records, err := src.Load(ctx, since)
		return records, fmt.Sprintf("%s:%s", ic.warehouse, ic.table), err
	}
}

func parseS3URI(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "s3" || u.Host == "" || strings.Trim(u.Path, "/") == "" {
		return "", "", fmt.Errorf("invalid S3 URI %q, expected s3://bucket/key", raw)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}
