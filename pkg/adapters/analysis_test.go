package adapters

import (
	"testing"
	"time"

	"github.com/de-tools/trade-radar/pkg/models/api"
	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAnalysisRequestApiToDomain(t *testing.T) {
	req, err := MapAnalysisRequestApiToDomain(api.AnalysisRequest{
		ReferenceDate: "2024-08-15",
		Period: api.PeriodSelection{
			Policy:  "custom",
			Current: []string{"2024-01-01", "2024-06-30"},
			Past:    []string{"2023-01-01", "2023-06-30"},
		},
		Filter:    api.Filter{HSCodes: []string{"0801"}},
		Direction: "exporter",
		TopN:      5,
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), req.ReferenceDate)
	assert.Equal(t, domain.PolicyCustom, req.Selection.Policy)
	require.NotNil(t, req.Selection.Custom)
	assert.Len(t, req.Selection.Custom.Current, 2)
	assert.Equal(t, domain.DirectionExporter, req.Direction)
	assert.Equal(t, []string{"0801"}, req.Filter.HSCodes)
	assert.Equal(t, 5, req.TopN)
}

func TestMapAnalysisRequestApiToDomain_InvalidDates(t *testing.T) {
	_, err := MapAnalysisRequestApiToDomain(api.AnalysisRequest{ReferenceDate: "15/08/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = MapAnalysisRequestApiToDomain(api.AnalysisRequest{
		Period: api.PeriodSelection{Policy: "custom", Current: []string{"2024-13-01"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriodSelection)
}

func TestMapReportDomainToApi(t *testing.T) {
	report := &domain.Report{
		Direction: domain.DirectionImporter,
		Windows: domain.Windows{
			Policy:      domain.PolicyMonth,
			Granularity: domain.GranularityMonth,
			Current: domain.Window{
				Start: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC),
			},
			Past: domain.Window{
				Start: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
			},
		},
		Declines: []domain.DeclineRow{{
			Entity:  "A",
			Past:    100,
			Current: 33.333333,
			Delta:   66.666667,
			Stats:   domain.PriceStats{WeightedAvgPrice: 6.125},
		}},
		Summary: domain.Summary{DecliningEntities: 1, TotalDecline: 66.666667},
	}
	report.TopDecliners = report.Declines

	out := MapReportDomainToApi("ds-1", report)

	assert.Equal(t, "ds-1", out.Dataset)
	assert.False(t, out.Empty)
	assert.True(t, out.Windows.LengthMismatch)
	assert.Contains(t, out.Windows.Warning, "31 days vs 30 days")
	assert.Equal(t, 31, out.Windows.Current.Days)
	assert.Equal(t, "2024-06-01", out.Windows.Past.Start)
	require.Len(t, out.Declines, 1)
	assert.Equal(t, 33.33, out.Declines[0].Current)
	assert.Equal(t, 66.67, out.Declines[0].Delta)
	assert.Equal(t, 6.13, out.Declines[0].Stats.WeightedAvgPrice)
	assert.Equal(t, "Reduced", out.Declines[0].Status)
	assert.Equal(t, 66.67, out.Summary.TotalDecline)
	assert.NotNil(t, out.Relationships)
}

func TestMapPoliciesDomainToApi(t *testing.T) {
	out := MapPoliciesDomainToApi([]domain.PeriodPolicy{domain.PolicyMonth, domain.PolicyRollingYears, domain.PolicyCustom})

	assert.Equal(t, []api.Period{
		{Policy: "month"},
		{Policy: "rolling_years", NeedsN: true},
		{Policy: "custom", NeedsBounds: true},
	}, out)
}
