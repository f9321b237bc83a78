package api

type PeriodSelection struct {
	Policy string `json:"policy"`
	N      int    `json:"n,omitempty"`
	// Current and Past are [start, end] dates (YYYY-MM-DD) for the custom policy.
	Current []string `json:"current,omitempty"`
	Past    []string `json:"past,omitempty"`
}

type Filter struct {
	HSCodes         []string `json:"hs_codes,omitempty"`
	Categories      []string `json:"categories,omitempty"`
	OriginCountries []string `json:"origin_countries,omitempty"`
}

type AnalysisRequest struct {
	ReferenceDate string          `json:"reference_date,omitempty"`
	ReferenceMode string          `json:"reference_mode,omitempty"`
	Period        PeriodSelection `json:"period"`
	Filter        Filter          `json:"filter"`
	Direction     string          `json:"direction,omitempty"`
	TopN          int             `json:"top_n,omitempty"`
	DecliningOnly bool            `json:"declining_only,omitempty"`
}

type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

type Windows struct {
	Policy         string `json:"policy"`
	Granularity    string `json:"granularity"`
	Current        Window `json:"current"`
	Past           Window `json:"past"`
	LengthMismatch bool   `json:"length_mismatch"`
	Warning        string `json:"warning,omitempty"`
}

type PriceStats struct {
	AvgPeriodicVolume  float64 `json:"avg_periodic_volume"`
	ArithmeticAvgPrice float64 `json:"arithmetic_avg_price"`
	WeightedAvgPrice   float64 `json:"weighted_avg_price"`
}

type DeclineRow struct {
	Entity    string     `json:"entity"`
	Past      float64    `json:"past_volume"`
	Current   float64    `json:"current_volume"`
	Delta     float64    `json:"decline"`
	Status    string     `json:"status"`
	Stats     PriceStats `json:"stats"`
	TradeLine string     `json:"trade_line"`
}

type RelationshipRow struct {
	Entity       string     `json:"entity"`
	Counterparty string     `json:"counterparty"`
	Past         float64    `json:"past_volume"`
	Current      float64    `json:"current_volume"`
	Delta        float64    `json:"decline"`
	Trend        string     `json:"trend"`
	Stats        PriceStats `json:"stats"`
}

type Summary struct {
	DecliningEntities int     `json:"declining_entities"`
	StoppedEntities   int     `json:"stopped_entities"`
	TotalDecline      float64 `json:"total_decline"`
}

type AnalysisReport struct {
	Dataset       string            `json:"dataset"`
	Direction     string            `json:"direction"`
	Windows       Windows           `json:"windows"`
	Summary       Summary           `json:"summary"`
	TopDecliners  []DeclineRow      `json:"top_decliners"`
	Declines      []DeclineRow      `json:"declines"`
	Relationships []RelationshipRow `json:"relationships"`
	RecordCount   int               `json:"record_count"`
	Empty         bool              `json:"empty"`
}

type Period struct {
	Policy      string `json:"policy"`
	NeedsN      bool   `json:"needs_n,omitempty"`
	NeedsBounds bool   `json:"needs_bounds,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
