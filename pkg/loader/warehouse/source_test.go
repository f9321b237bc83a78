package warehouse

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"trade_date", "importer", "exporter", "export_country", "import_country",
	"hs_code", "category", "origin_country", "volume", "value", "unit_price",
}

func TestSource_Load(t *testing.T) {
	// Given
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	since := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM trade.exports")).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), "A", "X", "VN", nil, "0801", "Nuts", "VN", 40.0, 240.0, 6.0).
			AddRow(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "B", nil, nil, "KR", "0802", nil, "BR", 10.0, 50.0, nil))

	source, err := NewSource(db, "trade.exports")
	require.NoError(t, err)

	// When
	records, err := source.Load(context.Background(), since)

	// Then
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.True(t, records[0].HasUnitPrice)
	assert.Equal(t, "", records[1].Exporter)
	assert.Equal(t, "KR", records[1].ImportCountry)
	assert.True(t, records[1].HasUnitPrice, "missing unit price is derived from value and volume")
	assert.Equal(t, 5.0, records[1].UnitPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSource_LoadKeepsUnitPriceUnsetForZeroVolume(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "A", "X", nil, nil, nil, nil, nil, 0.0, 0.0, nil))

	source, err := NewSource(db, "exports")
	require.NoError(t, err)

	records, err := source.Load(context.Background(), time.Time{})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].HasUnitPrice)
}

func TestSource_LoadRejectsNegativeAmounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "A", "X", nil, nil, nil, nil, nil, -5.0, -10.0, nil))

	source, err := NewSource(db, "exports")
	require.NoError(t, err)

	_, err = source.Load(context.Background(), time.Time{})

	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
	assert.ErrorContains(t, err, "exports row dated 2024-01-15")
}

func TestSource_LoadQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("warehouse suspended"))

	source, err := NewSource(db, "exports")
	require.NoError(t, err)

	_, err = source.Load(context.Background(), time.Time{})
	assert.ErrorContains(t, err, "warehouse suspended")
}

func TestNewSource_RejectsUnsafeTableNames(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, name := range []string{"", "exports; DROP TABLE x", "a.b.c.d", "1exports"} {
		_, err := NewSource(db, name)
		assert.Error(t, err, name)
	}

	_, err = NewSource(nil, "exports")
	assert.Error(t, err)
}
