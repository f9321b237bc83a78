package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/trade-radar/pkg/adapters"
	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/de-tools/trade-radar/pkg/models/store"
	"github.com/de-tools/trade-radar/pkg/services/analysis"
	"github.com/de-tools/trade-radar/pkg/store/records"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Manager owns stored datasets and runs analyses against them.
type Manager interface {
	Import(ctx context.Context, name, source string, recs []domain.TransactionRecord) (*domain.Dataset, error)
	List(ctx context.Context) ([]domain.Dataset, error)
	Get(ctx context.Context, id string) (*domain.Dataset, error)
	Records(ctx context.Context, id string, filter domain.Filter) ([]domain.TransactionRecord, error)
	Options(ctx context.Context, id string) (domain.FilterOptions, error)
	Analyze(ctx context.Context, id string, req analysis.Request) (*domain.Report, error)
	Delete(ctx context.Context, id string) error
}

type manager struct {
	db     *sql.DB
	store  records.Store
	engine *analysis.Engine
	now    func() time.Time
}

func NewManager(db *sql.DB, store records.Store, engine *analysis.Engine) Manager {
	return &manager{
		db:     db,
		store:  store,
		engine: engine,
		now:    time.Now,
	}
}

func (m *manager) Import(
	ctx context.Context,
	name, source string,
	recs []domain.TransactionRecord,
) (*domain.Dataset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: dataset name is required", domain.ErrInvalidRequest)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: dataset %q has no records", domain.ErrInvalidRequest, name)
	}

	ds := store.Dataset{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    source,
		CreatedAt: m.now().UTC(),
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	txCtx := records.WithTransaction(ctx, tx)

	if err := m.store.CreateDataset(txCtx, ds); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := m.store.AddRecords(txCtx, ds.ID, adapters.MapDomainRecordsToStore(ds.ID, recs)); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit dataset %s: %w", ds.ID, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("dataset", ds.ID).
		Str("name", ds.Name).
		Int("records", len(recs)).
		Msg("dataset imported")

	return m.Get(ctx, ds.ID)
}

func (m *manager) List(ctx context.Context) ([]domain.Dataset, error) {
	stats, err := m.store.ListDatasets(ctx)
	if err != nil {
		return nil, err
	}

	datasets := make([]domain.Dataset, 0, len(stats))
	for _, s := range stats {
		datasets = append(datasets, adapters.MapDatasetStatsStoreToDomain(s))
	}
	return datasets, nil
}

func (m *manager) Get(ctx context.Context, id string) (*domain.Dataset, error) {
	stats, err := m.store.GetDataset(ctx, id)
	if err != nil {
		return nil, err
	}
	ds := adapters.MapDatasetStatsStoreToDomain(*stats)
	return &ds, nil
}

func (m *manager) Records(ctx context.Context, id string, filter domain.Filter) ([]domain.TransactionRecord, error) {
	if _, err := m.store.GetDataset(ctx, id); err != nil {
		return nil, err
	}

	recs, err := m.store.GetRecords(ctx, id, adapters.MapDomainFilterToStore(filter))
	if err != nil {
		return nil, err
	}
	return adapters.MapStoreRecordsToDomain(recs), nil
}

func (m *manager) Options(ctx context.Context, id string) (domain.FilterOptions, error) {
	recs, err := m.Records(ctx, id, domain.Filter{})
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return analysis.Options(recs), nil
}

func (m *manager) Analyze(ctx context.Context, id string, req analysis.Request) (*domain.Report, error) {
	// The "latest" reference date is taken over the whole dataset, so the filter can only
	// be pushed down to the store when the reference date does not depend on the data.
	pushdown := domain.Filter{}
	if !req.ReferenceDate.IsZero() || req.ReferenceMode == analysis.ReferenceToday {
		pushdown = req.Filter
	}

	recs, err := m.Records(ctx, id, pushdown)
	if err != nil {
		return nil, err
	}

	return m.engine.Run(ctx, recs, req)
}

func (m *manager) Delete(ctx context.Context, id string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := m.store.DeleteDataset(records.WithTransaction(ctx, tx), id); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
