package domain

import "strings"

type EntityKey struct {
	Name string
}

func (k EntityKey) Compare(other EntityKey) int {
	return strings.Compare(k.Name, other.Name)
}

type PairKey struct {
	Entity       string
	Counterparty string
}

func (k PairKey) Compare(other PairKey) int {
	if c := strings.Compare(k.Entity, other.Entity); c != 0 {
		return c
	}
	return strings.Compare(k.Counterparty, other.Counterparty)
}

// PriceStats holds the supporting statistics for an entity or a pair.
type PriceStats struct {
	AvgPeriodicVolume  float64
	ArithmeticAvgPrice float64
	WeightedAvgPrice   float64
	SubPeriods         int
	PricedRecords      int
}

// DeclineRow is an entity whose volume shrank between the past and current window.
type DeclineRow struct {
	Entity    string
	Past      float64
	Current   float64
	Delta     float64
	Stopped   bool
	Stats     PriceStats
	TradeLine string
}

func (r DeclineRow) Status() Status {
	if r.Stopped {
		return StatusStopped
	}
	return StatusReduced
}

// RelationshipRow describes one entity/counterparty pair.
type RelationshipRow struct {
	Entity       string
	Counterparty string
	Past         float64
	Current      float64
	Delta        float64
	Trend        Trend
	Stats        PriceStats
}

type Summary struct {
	DecliningEntities int
	StoppedEntities   int
	TotalDecline      float64
}

// Report is the result of one analysis run.
type Report struct {
	Direction     Direction
	Windows       Windows
	Declines      []DeclineRow
	Relationships []RelationshipRow
	TopDecliners  []DeclineRow
	Summary       Summary
	RecordCount   int
}

// Empty reports the valid outcome where no entity declined.
func (r *Report) Empty() bool {
	return len(r.Declines) == 0
}
