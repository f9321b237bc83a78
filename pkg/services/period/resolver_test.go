package period

import (
	"testing"
	"time"

	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolve_CalendarPolicies(t *testing.T) {
	tests := []struct {
		name        string
		ref         string
		sel         Selection
		current     domain.Window
		past        domain.Window
		granularity domain.Granularity
		mismatch    bool
	}{
		{
			name:        "month to date against full leap February",
			ref:         "2024-03-15",
			sel:         Selection{Policy: domain.PolicyMonth},
			current:     domain.Window{Start: d("2024-03-01"), End: d("2024-03-15")},
			past:        domain.Window{Start: d("2024-02-01"), End: d("2024-02-29")},
			granularity: domain.GranularityMonth,
			mismatch:    true,
		},
		{
			name:        "month crossing a year boundary",
			ref:         "2024-01-31",
			sel:         Selection{Policy: domain.PolicyMonth},
			current:     domain.Window{Start: d("2024-01-01"), End: d("2024-01-31")},
			past:        domain.Window{Start: d("2023-12-01"), End: d("2023-12-31")},
			granularity: domain.GranularityMonth,
			mismatch:    false,
		},
		{
			name:        "second quarter",
			ref:         "2024-05-20",
			sel:         Selection{Policy: domain.PolicyQuarter},
			current:     domain.Window{Start: d("2024-04-01"), End: d("2024-05-20")},
			past:        domain.Window{Start: d("2024-01-01"), End: d("2024-03-31")},
			granularity: domain.GranularityQuarter,
			mismatch:    true,
		},
		{
			name:        "first quarter looks back into previous year",
			ref:         "2024-01-10",
			sel:         Selection{Policy: domain.PolicyQuarter},
			current:     domain.Window{Start: d("2024-01-01"), End: d("2024-01-10")},
			past:        domain.Window{Start: d("2023-10-01"), End: d("2023-12-31")},
			granularity: domain.GranularityQuarter,
			mismatch:    true,
		},
		{
			name:        "second half",
			ref:         "2024-08-01",
			sel:         Selection{Policy: domain.PolicyHalf},
			current:     domain.Window{Start: d("2024-07-01"), End: d("2024-08-01")},
			past:        domain.Window{Start: d("2024-01-01"), End: d("2024-06-30")},
			granularity: domain.GranularityHalfYear,
			mismatch:    true,
		},
		{
			name:        "first half looks back into previous year",
			ref:         "2024-03-01",
			sel:         Selection{Policy: domain.PolicyHalf},
			current:     domain.Window{Start: d("2024-01-01"), End: d("2024-03-01")},
			past:        domain.Window{Start: d("2023-07-01"), End: d("2023-12-31")},
			granularity: domain.GranularityHalfYear,
			mismatch:    true,
		},
		{
			name:        "year to date against previous year",
			ref:         "2024-01-15",
			sel:         Selection{Policy: domain.PolicyYear},
			current:     domain.Window{Start: d("2024-01-01"), End: d("2024-01-15")},
			past:        domain.Window{Start: d("2023-01-01"), End: d("2023-12-31")},
			granularity: domain.GranularityYear,
			mismatch:    true,
		},
		{
			name:        "full non-leap year against leap year",
			ref:         "2025-12-31",
			sel:         Selection{Policy: domain.PolicyYear},
			current:     domain.Window{Start: d("2025-01-01"), End: d("2025-12-31")},
			past:        domain.Window{Start: d("2024-01-01"), End: d("2024-12-31")},
			granularity: domain.GranularityYear,
			mismatch:    true,
		},
		{
			name:        "full year against full year of equal length",
			ref:         "2023-12-31",
			sel:         Selection{Policy: domain.PolicyYear},
			current:     domain.Window{Start: d("2023-01-01"), End: d("2023-12-31")},
			past:        domain.Window{Start: d("2022-01-01"), End: d("2022-12-31")},
			granularity: domain.GranularityYear,
			mismatch:    false,
		},
		{
			name:        "year to date against three years back",
			ref:         "2024-06-01",
			sel:         Selection{Policy: domain.PolicyYear3},
			current:     domain.Window{Start: d("2024-01-01"), End: d("2024-06-01")},
			past:        domain.Window{Start: d("2021-01-01"), End: d("2021-12-31")},
			granularity: domain.GranularityYear,
			mismatch:    true,
		},
		{
			name:        "year to date against five years back",
			ref:         "2025-06-01",
			sel:         Selection{Policy: domain.PolicyYear5},
			current:     domain.Window{Start: d("2025-01-01"), End: d("2025-06-01")},
			past:        domain.Window{Start: d("2020-01-01"), End: d("2020-12-31")},
			granularity: domain.GranularityYear,
			mismatch:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Resolve(d(tt.ref), tt.sel)
			require.NoError(t, err)

			assert.Equal(t, tt.current, w.Current)
			assert.Equal(t, tt.past, w.Past)
			assert.Equal(t, tt.granularity, w.Granularity)
			assert.Equal(t, tt.mismatch, w.LengthMismatch())
		})
	}
}

func TestResolve_Rolling(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		sel     Selection
		current domain.Window
		past    domain.Window
	}{
		{
			name:    "one month in a short February",
			ref:     "2023-03-15",
			sel:     Selection{Policy: domain.PolicyRollingMonths, N: 1},
			current: domain.Window{Start: d("2023-02-16"), End: d("2023-03-15")},
			past:    domain.Window{Start: d("2023-01-19"), End: d("2023-02-15")},
		},
		{
			name:    "one month from a month end clamps to leap day",
			ref:     "2024-03-31",
			sel:     Selection{Policy: domain.PolicyRollingMonths, N: 1},
			current: domain.Window{Start: d("2024-03-01"), End: d("2024-03-31")},
			past:    domain.Window{Start: d("2024-01-30"), End: d("2024-02-29")},
		},
		{
			name:    "one year from a leap day",
			ref:     "2024-02-29",
			sel:     Selection{Policy: domain.PolicyRollingYears, N: 1},
			current: domain.Window{Start: d("2023-03-01"), End: d("2024-02-29")},
			past:    domain.Window{Start: d("2022-02-28"), End: d("2023-02-28")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Resolve(d(tt.ref), tt.sel)
			require.NoError(t, err)

			assert.Equal(t, tt.current, w.Current)
			assert.Equal(t, tt.past, w.Past)
			assert.False(t, w.LengthMismatch())
		})
	}
}

func TestResolve_WindowsNeverOverlap(t *testing.T) {
	selections := []Selection{
		{Policy: domain.PolicyMonth},
		{Policy: domain.PolicyQuarter},
		{Policy: domain.PolicyHalf},
		{Policy: domain.PolicyYear},
		{Policy: domain.PolicyYear3},
		{Policy: domain.PolicyYear5},
		{Policy: domain.PolicyRollingMonths, N: 1},
		{Policy: domain.PolicyRollingMonths, N: 3},
		{Policy: domain.PolicyRollingYears, N: 1},
		{Policy: domain.PolicyRollingYears, N: 2},
	}

	start := d("2019-12-25")
	for i := 0; i < 800; i += 3 {
		ref := start.AddDate(0, 0, i)
		for _, sel := range selections {
			w, err := Resolve(ref, sel)
			require.NoError(t, err)

			assert.True(t, w.Past.End.Before(w.Current.Start), "%s %s: %s overlaps %s", sel.Policy, ref, w.Past, w.Current)
			assert.False(t, w.Past.Start.After(w.Past.End))
			assert.False(t, w.Current.Start.After(w.Current.End))
			assert.Equal(t, w.Current.Days() != w.Past.Days(), w.LengthMismatch())

			if sel.Policy == domain.PolicyRollingMonths || sel.Policy == domain.PolicyRollingYears {
				assert.Equal(t, w.Current.Days(), w.Past.Days(), "%s %s", sel.Policy, ref)
				assert.Equal(t, w.Past.End.AddDate(0, 0, 1), w.Current.Start)
			}
		}
	}
}

func TestResolve_Custom(t *testing.T) {
	t.Run("explicit bounds are used as given", func(t *testing.T) {
		w, err := Resolve(d("2024-06-01"), Selection{
			Policy: domain.PolicyCustom,
			Custom: &CustomBounds{
				Current: []time.Time{d("2024-05-01"), d("2024-05-31")},
				Past:    []time.Time{d("2024-03-01"), d("2024-04-15")},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, domain.Window{Start: d("2024-05-01"), End: d("2024-05-31")}, w.Current)
		assert.Equal(t, domain.Window{Start: d("2024-03-01"), End: d("2024-04-15")}, w.Past)
		assert.Equal(t, 31, w.Current.Days())
		assert.Equal(t, 46, w.Past.Days())
		assert.True(t, w.LengthMismatch())
	})

	invalid := []struct {
		name   string
		bounds *CustomBounds
	}{
		{name: "missing bounds", bounds: nil},
		{
			name: "single endpoint",
			bounds: &CustomBounds{
				Current: []time.Time{d("2024-05-01")},
				Past:    []time.Time{d("2024-03-01"), d("2024-04-15")},
			},
		},
		{
			name: "extra endpoint",
			bounds: &CustomBounds{
				Current: []time.Time{d("2024-05-01"), d("2024-05-31"), d("2024-06-30")},
				Past:    []time.Time{d("2024-03-01"), d("2024-04-15")},
			},
		},
		{
			name: "start after end",
			bounds: &CustomBounds{
				Current: []time.Time{d("2024-05-01"), d("2024-05-31")},
				Past:    []time.Time{d("2024-04-15"), d("2024-03-01")},
			},
		},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(d("2024-06-01"), Selection{Policy: domain.PolicyCustom, Custom: tt.bounds})
			assert.ErrorIs(t, err, domain.ErrInvalidPeriodSelection)
		})
	}
}

func TestResolve_InvalidSelections(t *testing.T) {
	for _, sel := range []Selection{
		{Policy: "fortnight"},
		{Policy: domain.PolicyRollingMonths},
		{Policy: domain.PolicyRollingYears, N: -1},
	} {
		_, err := Resolve(d("2024-06-01"), sel)
		assert.ErrorIs(t, err, domain.ErrInvalidPeriodSelection, string(sel.Policy))
	}
}

func TestAddMonths_ClampsDayOfMonth(t *testing.T) {
	assert.Equal(t, d("2023-02-28"), addMonths(d("2023-01-31"), 1))
	assert.Equal(t, d("2024-02-29"), addMonths(d("2024-01-31"), 1))
	assert.Equal(t, d("2024-02-29"), addMonths(d("2024-03-31"), -1))
	assert.Equal(t, d("2024-04-30"), addMonths(d("2024-05-31"), -1))
	assert.Equal(t, d("2023-12-31"), addMonths(d("2024-01-31"), -1))
	assert.Equal(t, d("2023-02-28"), addYears(d("2024-02-29"), -1))
	assert.Equal(t, d("2021-11-29"), addMonths(d("2024-02-29"), -27))
}
