package ranking

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/dustin/go-humanize"
)

// LineEntry is the volume a counterparty shipped from (or to) a country.
type LineEntry struct {
	Country      string
	Counterparty string
	Volume       float64
}

// GroupLineEntries merges entries per (country, counterparty), fills the Unknown sentinels
// and orders them by country total, then by counterparty volume.
func GroupLineEntries(entries []LineEntry, unknownCounterparty string) []LineEntry {
	type lineKey struct{ country, counterparty string }

	totals := make(map[lineKey]float64)
	countryTotals := make(map[string]float64)
	for _, e := range entries {
		k := lineKey{
			country:      orDefault(e.Country, domain.UnknownCountry),
			counterparty: orDefault(e.Counterparty, unknownCounterparty),
		}
		totals[k] += e.Volume
		countryTotals[k.country] += e.Volume
	}

	grouped := make([]LineEntry, 0, len(totals))
	for k, v := range totals {
		grouped = append(grouped, LineEntry{Country: k.country, Counterparty: k.counterparty, Volume: v})
	}

	slices.SortFunc(grouped, func(a, b LineEntry) int {
		if c := cmp.Compare(countryTotals[b.Country], countryTotals[a.Country]); c != 0 {
			return c
		}
		if c := strings.Compare(a.Country, b.Country); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Volume, a.Volume); c != 0 {
			return c
		}
		return strings.Compare(a.Counterparty, b.Counterparty)
	})
	return grouped
}

// FormatLineEntries renders grouped entries as a country header followed by indented
// counterparty lines.
func FormatLineEntries(grouped []LineEntry) []string {
	lines := make([]string, 0, len(grouped)*2)
	for i, e := range grouped {
		if i == 0 || grouped[i-1].Country != e.Country {
			lines = append(lines, fmt.Sprintf("[%s]", e.Country))
		}
		lines = append(lines, fmt.Sprintf("  - %s (%s)", e.Counterparty, FormatVolume(e.Volume)))
	}
	return lines
}

// TradeLine builds the full text block for one entity.
func TradeLine(entries []LineEntry, unknownCounterparty string) string {
	return strings.Join(FormatLineEntries(GroupLineEntries(entries, unknownCounterparty)), "\n")
}

// FormatVolume prints a volume with thousands separators and two decimals.
func FormatVolume(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
