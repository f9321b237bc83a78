package adapters

import (
	"fmt"
	"time"

	"github.com/de-tools/trade-radar/pkg/models/api"
	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/de-tools/trade-radar/pkg/services/analysis"
	"github.com/de-tools/trade-radar/pkg/services/period"
	"github.com/shopspring/decimal"
)

const dateLayout = time.DateOnly

func MapAnalysisRequestApiToDomain(req api.AnalysisRequest) (analysis.Request, error) {
	out := analysis.Request{
		ReferenceMode: analysis.ReferenceMode(req.ReferenceMode),
		Filter: domain.Filter{
			HSCodes:         req.Filter.HSCodes,
			Categories:      req.Filter.Categories,
			OriginCountries: req.Filter.OriginCountries,
		},
		Direction:     domain.Direction(req.Direction),
		TopN:          req.TopN,
		DecliningOnly: req.DecliningOnly,
	}

	if req.ReferenceDate != "" {
		ref, err := time.Parse(dateLayout, req.ReferenceDate)
		if err != nil {
			return analysis.Request{}, fmt.Errorf("%w: invalid reference_date %q", domain.ErrInvalidRequest, req.ReferenceDate)
		}
		out.ReferenceDate = ref
	}

	sel, err := MapPeriodSelectionApiToDomain(req.Period)
	if err != nil {
		return analysis.Request{}, err
	}
	out.Selection = sel
	return out, nil
}

func MapPeriodSelectionApiToDomain(p api.PeriodSelection) (period.Selection, error) {
	sel := period.Selection{
		Policy: domain.PeriodPolicy(p.Policy),
		N:      p.N,
	}
	if len(p.Current) == 0 && len(p.Past) == 0 {
		return sel, nil
	}

	current, err := parseDates(p.Current)
	if err != nil {
		return period.Selection{}, err
	}
	past, err := parseDates(p.Past)
	if err != nil {
		return period.Selection{}, err
	}
	sel.Custom = &period.CustomBounds{Current: current, Past: past}
	return sel, nil
}

func parseDates(values []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(values))
	for _, v := range values {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", domain.ErrInvalidPeriodSelection, v)
		}
		dates = append(dates, t)
	}
	return dates, nil
}

func MapReportDomainToApi(datasetID string, report *domain.Report) api.AnalysisReport {
	out := api.AnalysisReport{
		Dataset:   datasetID,
		Direction: string(report.Direction),
		Windows:   MapWindowsDomainToApi(report.Windows),
		Summary: api.Summary{
			DecliningEntities: report.Summary.DecliningEntities,
			StoppedEntities:   report.Summary.StoppedEntities,
			TotalDecline:      round(report.Summary.TotalDecline),
		},
		TopDecliners:  make([]api.DeclineRow, 0, len(report.TopDecliners)),
		Declines:      make([]api.DeclineRow, 0, len(report.Declines)),
		Relationships: make([]api.RelationshipRow, 0, len(report.Relationships)),
		RecordCount:   report.RecordCount,
		Empty:         report.Empty(),
	}

	for _, row := range report.TopDecliners {
		out.TopDecliners = append(out.TopDecliners, MapDeclineRowDomainToApi(row))
	}
	for _, row := range report.Declines {
		out.Declines = append(out.Declines, MapDeclineRowDomainToApi(row))
	}
	for _, row := range report.Relationships {
		out.Relationships = append(out.Relationships, api.RelationshipRow{
			Entity:       row.Entity,
			Counterparty: row.Counterparty,
			Past:         round(row.Past),
			Current:      round(row.Current),
			Delta:        round(row.Delta),
			Trend:        string(row.Trend),
			Stats:        MapPriceStatsDomainToApi(row.Stats),
		})
	}
	return out
}

func MapDeclineRowDomainToApi(row domain.DeclineRow) api.DeclineRow {
	return api.DeclineRow{
		Entity:    row.Entity,
		Past:      round(row.Past),
		Current:   round(row.Current),
		Delta:     round(row.Delta),
		Status:    string(row.Status()),
		Stats:     MapPriceStatsDomainToApi(row.Stats),
		TradeLine: row.TradeLine,
	}
}

func MapPriceStatsDomainToApi(s domain.PriceStats) api.PriceStats {
	return api.PriceStats{
		AvgPeriodicVolume:  round(s.AvgPeriodicVolume),
		ArithmeticAvgPrice: round(s.ArithmeticAvgPrice),
		WeightedAvgPrice:   round(s.WeightedAvgPrice),
	}
}

func MapWindowsDomainToApi(w domain.Windows) api.Windows {
	return api.Windows{
		Policy:         string(w.Policy),
		Granularity:    string(w.Granularity),
		Current:        mapWindow(w.Current),
		Past:           mapWindow(w.Past),
		LengthMismatch: w.LengthMismatch(),
		Warning:        w.Warning(),
	}
}

func mapWindow(w domain.Window) api.Window {
	return api.Window{
		Start: w.Start.Format(dateLayout),
		End:   w.End.Format(dateLayout),
		Days:  w.Days(),
	}
}

func MapDatasetDomainToApi(ds domain.Dataset) api.Dataset {
	return api.Dataset{
		ID:          ds.ID,
		Name:        ds.Name,
		Source:      ds.Source,
		RecordCount: ds.RecordCount,
		FirstDate:   ds.FirstDate,
		LastDate:    ds.LastDate,
		CreatedAt:   ds.CreatedAt,
	}
}

func MapFilterOptionsDomainToApi(o domain.FilterOptions) api.FilterOptions {
	return api.FilterOptions{
		HSCodes:         nonNil(o.HSCodes),
		Categories:      nonNil(o.Categories),
		OriginCountries: nonNil(o.OriginCountries),
	}
}

func MapPoliciesDomainToApi(policies []domain.PeriodPolicy) []api.Period {
	out := make([]api.Period, 0, len(policies))
	for _, p := range policies {
		out = append(out, api.Period{
			Policy:      string(p),
			NeedsN:      p == domain.PolicyRollingMonths || p == domain.PolicyRollingYears,
			NeedsBounds: p == domain.PolicyCustom,
		})
	}
	return out
}

// round presents a volume or price at two decimal places.
func round(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
