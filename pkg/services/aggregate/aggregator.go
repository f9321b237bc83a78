package aggregate

import (
	"strings"

	"github.com/de-tools/trade-radar/pkg/models/domain"
)

// Key is a typed grouping tuple with a total order, used to keep outputs deterministic.
type Key[K any] interface {
	comparable
	Compare(other K) int
}

type KeyFunc[K any] func(domain.TransactionRecord) K

type Measure func(domain.TransactionRecord) float64

// Totals maps a grouping key to its summed measure.
type Totals[K comparable] map[K]float64

func Volume(r domain.TransactionRecord) float64 { return r.Volume }

func Value(r domain.TransactionRecord) float64 { return r.Value }

// OrUnknown normalizes an empty grouping value to the Unknown sentinel.
func OrUnknown(s string) string {
	return OrDefault(s, domain.UnknownEntity)
}

// OrDefault replaces an empty or blank grouping value with sentinel.
func OrDefault(s, sentinel string) string {
	if strings.TrimSpace(s) == "" {
		return sentinel
	}
	return s
}

// EntityBy groups records by a single string field.
func EntityBy(field func(domain.TransactionRecord) string) KeyFunc[domain.EntityKey] {
	return func(r domain.TransactionRecord) domain.EntityKey {
		return domain.EntityKey{Name: OrUnknown(field(r))}
	}
}

// PairBy groups records by an (entity, counterparty) tuple. A missing counterparty is
// grouped under unknownCounterparty.
func PairBy(
	entity, counterparty func(domain.TransactionRecord) string,
	unknownCounterparty string,
) KeyFunc[domain.PairKey] {
	return func(r domain.TransactionRecord) domain.PairKey {
		return domain.PairKey{
			Entity:       OrUnknown(entity(r)),
			Counterparty: OrDefault(counterparty(r), unknownCounterparty),
		}
	}
}

// Aggregate sums measure per key over the records dated inside the window (inclusive).
func Aggregate[K comparable](
	records []domain.TransactionRecord,
	window domain.Window,
	key KeyFunc[K],
	measure Measure,
) Totals[K] {
	totals := make(Totals[K])
	for _, r := range records {
		if !window.Contains(r.Date) {
			continue
		}
		totals[key(r)] += measure(r)
	}
	return totals
}

// Partition splits records by key without any date restriction.
func Partition[K comparable](records []domain.TransactionRecord, key KeyFunc[K]) map[K][]domain.TransactionRecord {
	groups := make(map[K][]domain.TransactionRecord)
	for _, r := range records {
		k := key(r)
		groups[k] = append(groups[k], r)
	}
	return groups
}
