package domain

type Trend string

const (
	TrendNewTrade  Trend = "NewTrade"
	TrendStopped   Trend = "Stopped"
	TrendExpanded  Trend = "Expanded"
	TrendReduced   Trend = "Reduced"
	TrendUnchanged Trend = "Unchanged"
)

type Direction string

const (
	DirectionImporter Direction = "importer"
	DirectionExporter Direction = "exporter"
)

type Status string

const (
	StatusStopped Status = "Stopped"
	StatusReduced Status = "Reduced"
)
