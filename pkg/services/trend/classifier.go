package trend

import "github.com/de-tools/trade-radar/pkg/models/domain"

// Classify maps a (past, current) volume pair to exactly one trend category.
func Classify(past, current float64) domain.Trend {
	switch {
	case past == 0 && current > 0:
		return domain.TrendNewTrade
	case current == 0 && past > 0:
		return domain.TrendStopped
	case current-past > 0:
		return domain.TrendExpanded
	case current-past < 0:
		return domain.TrendReduced
	default:
		return domain.TrendUnchanged
	}
}
