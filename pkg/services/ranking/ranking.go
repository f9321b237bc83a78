package ranking

import (
	"cmp"
	"slices"
	"strings"

	"github.com/de-tools/trade-radar/pkg/models/domain"
)

// SortDeclines orders stopped entities first, then by decline magnitude.
func SortDeclines(rows []domain.DeclineRow) {
	slices.SortStableFunc(rows, func(a, b domain.DeclineRow) int {
		if a.Stopped != b.Stopped {
			if a.Stopped {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(b.Delta, a.Delta); c != 0 {
			return c
		}
		return strings.Compare(a.Entity, b.Entity)
	})
}

// SortRelationships orders pairs by their entity's total change (largest shrink first),
// then entity name, then the pair's own decline.
func SortRelationships(rows []domain.RelationshipRow) {
	change := make(map[string]float64)
	for _, r := range rows {
		change[r.Entity] += r.Current - r.Past
	}

	slices.SortStableFunc(rows, func(a, b domain.RelationshipRow) int {
		if c := cmp.Compare(change[a.Entity], change[b.Entity]); c != 0 {
			return c
		}
		if c := strings.Compare(a.Entity, b.Entity); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Delta, a.Delta); c != 0 {
			return c
		}
		return strings.Compare(a.Counterparty, b.Counterparty)
	})
}

// TopDecliners returns the n rows with the largest decline regardless of the stopped flag.
func TopDecliners(rows []domain.DeclineRow, n int) []domain.DeclineRow {
	top := slices.Clone(rows)
	slices.SortStableFunc(top, func(a, b domain.DeclineRow) int {
		if c := cmp.Compare(b.Delta, a.Delta); c != 0 {
			return c
		}
		return strings.Compare(a.Entity, b.Entity)
	})
	if n >= 0 && len(top) > n {
		top = top[:n]
	}
	return top
}

// Summarize computes the headline figures of a decline table.
func Summarize(rows []domain.DeclineRow) domain.Summary {
	s := domain.Summary{DecliningEntities: len(rows)}
	for _, r := range rows {
		if r.Stopped {
			s.StoppedEntities++
		}
		s.TotalDecline += r.Delta
	}
	return s
}
