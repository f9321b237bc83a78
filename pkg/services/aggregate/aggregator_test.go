package aggregate

import (
	"testing"
	"time"

	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var byImporter = EntityBy(func(r domain.TransactionRecord) string { return r.Importer })

func TestAggregate_SingleRecordRoundTrip(t *testing.T) {
	records := []domain.TransactionRecord{
		{Date: day(2024, 1, 15), Importer: "A", Volume: 42.5, Value: 100},
	}
	window := domain.Window{Start: day(2024, 1, 1), End: day(2024, 12, 31)}

	totals := Aggregate(records, window, byImporter, Volume)

	assert.Equal(t, Totals[domain.EntityKey]{{Name: "A"}: 42.5}, totals)
}

func TestAggregate_WindowIsInclusive(t *testing.T) {
	records := []domain.TransactionRecord{
		{Date: day(2024, 1, 1), Importer: "A", Volume: 1},
		{Date: day(2024, 1, 31), Importer: "A", Volume: 2},
		{Date: day(2023, 12, 31), Importer: "A", Volume: 4},
		{Date: day(2024, 2, 1), Importer: "A", Volume: 8},
	}
	window := domain.Window{Start: day(2024, 1, 1), End: day(2024, 1, 31)}

	totals := Aggregate(records, window, byImporter, Volume)

	assert.Equal(t, 3.0, totals[domain.EntityKey{Name: "A"}])
}

func TestAggregate_MissingValuesGroupAsUnknown(t *testing.T) {
	records := []domain.TransactionRecord{
		{Date: day(2024, 1, 2), Importer: "A", Exporter: "", Value: 10},
		{Date: day(2024, 1, 3), Importer: "A", Exporter: "  ", Value: 5},
		{Date: day(2024, 1, 4), Importer: "", Exporter: "X", Value: 1},
	}
	window := domain.Window{Start: day(2024, 1, 1), End: day(2024, 1, 31)}
	key := PairBy(
		func(r domain.TransactionRecord) string { return r.Importer },
		func(r domain.TransactionRecord) string { return r.Exporter },
		domain.UnknownExporter,
	)

	totals := Aggregate(records, window, key, Value)

	require.Len(t, totals, 2)
	assert.Equal(t, 15.0, totals[domain.PairKey{Entity: "A", Counterparty: domain.UnknownExporter}])
	assert.Equal(t, 1.0, totals[domain.PairKey{Entity: domain.UnknownEntity, Counterparty: "X"}])
}

func TestPartition(t *testing.T) {
	records := []domain.TransactionRecord{
		{Date: day(2020, 1, 1), Importer: "A", Volume: 1},
		{Date: day(2024, 1, 1), Importer: "B", Volume: 2},
		{Date: day(2025, 1, 1), Importer: "A", Volume: 3},
	}

	groups := Partition(records, byImporter)

	assert.Len(t, groups[domain.EntityKey{Name: "A"}], 2)
	assert.Len(t, groups[domain.EntityKey{Name: "B"}], 1)
}
