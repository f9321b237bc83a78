package stats

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/de-tools/trade-radar/pkg/models/domain"
)

// PeriodKey returns the label of the sub-period containing t.
func PeriodKey(t time.Time, granularity domain.Granularity) string {
	switch granularity {
	case domain.GranularityMonth:
		return t.Format("2006-01")
	case domain.GranularityQuarter:
		return fmt.Sprintf("%dQ%d", t.Year(), (int(t.Month())-1)/3+1)
	case domain.GranularityHalfYear:
		half := 1
		if t.Month() > time.June {
			half = 2
		}
		return fmt.Sprintf("%dH%d", t.Year(), half)
	default:
		return fmt.Sprintf("%d", t.Year())
	}
}

// Compute derives the supporting statistics over the full history of a subset.
//
// The average periodic volume is a mean of per sub-period sums, taken over the
// sub-periods that actually have records. The weighted price is 0 when the subset
// carries no volume.
func Compute(records []domain.TransactionRecord, granularity domain.Granularity) domain.PriceStats {
	var (
		totalVolume, totalValue, priceSum float64
		priced                            int
	)
	perPeriod := make(map[string]float64)

	for _, r := range records {
		perPeriod[PeriodKey(r.Date, granularity)] += r.Volume
		totalVolume += r.Volume
		totalValue += r.Value
		if r.HasUnitPrice {
			priceSum += r.UnitPrice
			priced++
		}
	}

	var s domain.PriceStats
	s.SubPeriods = len(perPeriod)
	s.PricedRecords = priced

	if len(perPeriod) > 0 {
		var sum float64
		for _, k := range slices.Sorted(maps.Keys(perPeriod)) {
			sum += perPeriod[k]
		}
		s.AvgPeriodicVolume = sum / float64(len(perPeriod))
	}
	if priced > 0 {
		s.ArithmeticAvgPrice = priceSum / float64(priced)
	}
	s.WeightedAvgPrice = WeightedPrice(totalValue, totalVolume)

	return s
}

// WeightedPrice is value per unit of volume, with 0 standing in for an undefined price.
func WeightedPrice(value, volume float64) float64 {
	if volume <= 0 {
		return 0
	}
	return value / volume
}
