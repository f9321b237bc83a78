package commands

import (
	"github.com/de-tools/trade-radar/pkg/models/api"
	"github.com/de-tools/trade-radar/pkg/services/config"
	"github.com/spf13/pflag"
)

// requestFlags are the analysis knobs shared by commands that run an analysis.
type requestFlags struct {
	preset        string
	policy        string
	n             int
	current       []string
	past          []string
	referenceDate string
	referenceMode string
	direction     string
	hsCodes       []string
	categories    []string
	origins       []string
	topN          int
	decliningOnly bool
}

func (f *requestFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.preset, "preset", "", "Named preset to start from")
	flags.StringVar(&f.policy, "policy", "", "Period policy (month, quarter, half, year, year3, year5, rolling_months, rolling_years, custom)")
	flags.IntVar(&f.n, "n", 0, "Number of months or years for rolling policies")
	flags.StringSliceVar(&f.current, "current", nil, "Custom current window as start,end (YYYY-MM-DD)")
	flags.StringSliceVar(&f.past, "past", nil, "Custom past window as start,end (YYYY-MM-DD)")
	flags.StringVar(&f.referenceDate, "reference-date", "", "Reference date (YYYY-MM-DD); overrides --reference-mode")
	flags.StringVar(&f.referenceMode, "reference-mode", "", "Reference date mode: latest or today")
	flags.StringVar(&f.direction, "direction", "", "Analysed side: importer or exporter")
	flags.StringSliceVar(&f.hsCodes, "hs-code", nil, "HS codes to keep (repeatable)")
	flags.StringSliceVar(&f.categories, "category", nil, "Categories to keep (repeatable)")
	flags.StringSliceVar(&f.origins, "origin", nil, "Origin countries to keep (repeatable)")
	flags.IntVar(&f.topN, "top", 0, "Number of top decliners to list")
	flags.BoolVar(&f.decliningOnly, "declining-only", false, "Only list relationships of declining entities")
}

// merge overlays explicitly set flags on base and fills the remaining gaps from defaults.
func (f *requestFlags) merge(flags *pflag.FlagSet, base api.AnalysisRequest, defaults config.AnalysisConfig) api.AnalysisRequest {
	req := base
	if flags.Changed("policy") {
		req.Period.Policy = f.policy
	}
	if flags.Changed("n") {
		req.Period.N = f.n
	}
	if flags.Changed("current") {
		req.Period.Current = f.current
	}
	if flags.Changed("past") {
		req.Period.Past = f.past
	}
	if flags.Changed("reference-date") {
		req.ReferenceDate = f.referenceDate
	}
	if flags.Changed("reference-mode") {
		req.ReferenceMode = f.referenceMode
	}
	if flags.Changed("direction") {
		req.Direction = f.direction
	}
	if flags.Changed("hs-code") {
		req.Filter.HSCodes = f.hsCodes
	}
	if flags.Changed("category") {
		req.Filter.Categories = f.categories
	}
	if flags.Changed("origin") {
		req.Filter.OriginCountries = f.origins
	}
	if flags.Changed("top") {
		req.TopN = f.topN
	}
	if flags.Changed("declining-only") {
		req.DecliningOnly = f.decliningOnly
	}

	return defaults.Apply(req)
}
