package analysis

import (
	"slices"
	"strings"

	"github.com/de-tools/trade-radar/pkg/models/domain"
)

// ApplyFilter keeps the records whose HS code, category and origin country are all
// within the selected sets. An empty set does not restrict its column.
func ApplyFilter(records []domain.TransactionRecord, f domain.Filter) []domain.TransactionRecord {
	if f.IsEmpty() {
		return records
	}

	out := make([]domain.TransactionRecord, 0, len(records))
	for _, r := range records {
		if matches(f.HSCodes, r.HSCode) &&
			matches(f.Categories, r.Category) &&
			matches(f.OriginCountries, r.OriginCountry) {
			out = append(out, r)
		}
	}
	return out
}

func matches(allowed []string, v string) bool {
	return len(allowed) == 0 || slices.Contains(allowed, v)
}

// Options lists the distinct non-empty values of each filterable column, sorted.
func Options(records []domain.TransactionRecord) domain.FilterOptions {
	hs := make(map[string]struct{})
	categories := make(map[string]struct{})
	origins := make(map[string]struct{})

	for _, r := range records {
		add(hs, r.HSCode)
		add(categories, r.Category)
		add(origins, r.OriginCountry)
	}

	return domain.FilterOptions{
		HSCodes:         sortedKeys(hs),
		Categories:      sortedKeys(categories),
		OriginCountries: sortedKeys(origins),
	}
}

func add(set map[string]struct{}, v string) {
	if strings.TrimSpace(v) == "" {
		return
	}
	set[v] = struct{}{}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
