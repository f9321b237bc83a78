package dataset

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/de-tools/trade-radar/pkg/services/analysis"
	"github.com/de-tools/trade-radar/pkg/services/period"
	"github.com/de-tools/trade-radar/pkg/store/records"
	"github.com/de-tools/trade-radar/pkg/store/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) Manager {
	t.Helper()
	db, err := sqlite.NewDB(sqlite.Settings{DbPath: filepath.Join(t.TempDir(), "radar.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := records.NewStore(db)
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC) }
	return NewManager(db, store, analysis.NewEngine(analysis.WithClock(clock)))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleRecords() []domain.TransactionRecord {
	return []domain.TransactionRecord{
		{Date: date(2023, 3, 1), Importer: "A", Exporter: "X", ExportCountry: "Vietnam", HSCode: "0801", Category: "Nuts", OriginCountry: "Vietnam", Volume: 100, Value: 600, UnitPrice: 6, HasUnitPrice: true},
		{Date: date(2024, 3, 1), Importer: "A", Exporter: "X", ExportCountry: "Vietnam", HSCode: "0801", Category: "Nuts", OriginCountry: "Vietnam", Volume: 40, Value: 240, UnitPrice: 6, HasUnitPrice: true},
		{Date: date(2023, 5, 1), Importer: "B", Exporter: "Y", HSCode: "0802", Category: "Nuts", OriginCountry: "Brazil", Volume: 50, Value: 250},
		{Date: date(2024, 6, 30), Importer: "C", Exporter: "Z", HSCode: "0802", Category: "Nuts", OriginCountry: "Brazil", Volume: 10, Value: 50},
	}
}

func TestManager_ImportListGet(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	// When
	ds, err := m.Import(ctx, " tridge-2024 ", "tridge.csv", sampleRecords())

	// Then
	require.NoError(t, err)
	assert.NotEmpty(t, ds.ID)
	assert.Equal(t, "tridge-2024", ds.Name)
	assert.Equal(t, int64(4), ds.RecordCount)
	require.NotNil(t, ds.LastDate)
	assert.Equal(t, date(2024, 6, 30), *ds.LastDate)

	list, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ds.ID, list[0].ID)
}

func TestManager_ImportRejectsEmpty(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Import(context.Background(), "empty", "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = m.Import(context.Background(), "  ", "", sampleRecords())
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestManager_OptionsAndRecords(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	ds, err := m.Import(ctx, "tridge", "", sampleRecords())
	require.NoError(t, err)

	opts, err := m.Options(ctx, ds.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"0801", "0802"}, opts.HSCodes)
	assert.Equal(t, []string{"Brazil", "Vietnam"}, opts.OriginCountries)

	recs, err := m.Records(ctx, ds.ID, domain.Filter{OriginCountries: []string{"Brazil"}})
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	_, err = m.Options(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrDatasetNotFound)
}

func TestManager_Analyze(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	ds, err := m.Import(ctx, "tridge", "", sampleRecords())
	require.NoError(t, err)

	// Given the latest record (2024-06-30) as reference, year compares 2024 against 2023.
	report, err := m.Analyze(ctx, ds.ID, analysis.Request{
		Selection: period.Selection{Policy: domain.PolicyYear},
	})

	// Then
	require.NoError(t, err)
	require.Len(t, report.Declines, 2)
	assert.Equal(t, "B", report.Declines[0].Entity)
	assert.True(t, report.Declines[0].Stopped)
	assert.Equal(t, "A", report.Declines[1].Entity)
	assert.Equal(t, 60.0, report.Declines[1].Delta)
	assert.Equal(t, 2, report.Summary.DecliningEntities)
}

func TestManager_AnalyzeWithPushdown(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	ds, err := m.Import(ctx, "tridge", "", sampleRecords())
	require.NoError(t, err)

	report, err := m.Analyze(ctx, ds.ID, analysis.Request{
		ReferenceDate: date(2024, 12, 31),
		Selection:     period.Selection{Policy: domain.PolicyYear},
		Filter:        domain.Filter{HSCodes: []string{"0801"}},
	})

	require.NoError(t, err)
	require.Len(t, report.Declines, 1)
	assert.Equal(t, "A", report.Declines[0].Entity)
	assert.Equal(t, 2, report.RecordCount)
}

func TestManager_Delete(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	ds, err := m.Import(ctx, "tridge", "", sampleRecords())
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, ds.ID))

	_, err = m.Get(ctx, ds.ID)
	assert.ErrorIs(t, err, domain.ErrDatasetNotFound)
}
