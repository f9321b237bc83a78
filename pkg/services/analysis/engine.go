package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/de-tools/trade-radar/pkg/services/aggregate"
	"github.com/de-tools/trade-radar/pkg/services/period"
	"github.com/de-tools/trade-radar/pkg/services/ranking"
	"github.com/de-tools/trade-radar/pkg/services/stats"
	"github.com/de-tools/trade-radar/pkg/services/trend"
	"github.com/rs/zerolog"
)

const defaultTopN = 10

type ReferenceMode string

const (
	// ReferenceLatest uses the latest record date of the dataset as "today".
	ReferenceLatest ReferenceMode = "latest"
	// ReferenceToday uses the engine clock.
	ReferenceToday ReferenceMode = "today"
)

// Request is the full configuration of one analysis run.
type Request struct {
	// ReferenceDate overrides ReferenceMode when set.
	ReferenceDate time.Time
	ReferenceMode ReferenceMode
	Selection     period.Selection
	Filter        domain.Filter
	Direction     domain.Direction
	// TopN bounds the top decliners list; 0 means the default of 10.
	TopN int
	// DecliningOnly restricts the relationship table to entities in the decline table.
	DecliningOnly bool
}

type Engine struct {
	now func() time.Time
}

type Option func(*Engine)

// WithClock replaces the clock used by ReferenceToday.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the comparison pipeline over an immutable record set. Record dates are
// compared as calendar days; any time of day is dropped.
func (e *Engine) Run(ctx context.Context, records []domain.TransactionRecord, req Request) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx)
	records = calendarDays(records)

	r, err := rolesFor(req.Direction)
	if err != nil {
		return nil, err
	}
	direction := req.Direction
	if direction == "" {
		direction = domain.DirectionImporter
	}

	ref, err := e.referenceDate(records, req)
	if err != nil {
		return nil, err
	}

	windows, err := period.Resolve(ref, req.Selection)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve comparison windows: %w", err)
	}

	filtered := ApplyFilter(records, req.Filter)
	logger.Debug().
		Int("records", len(records)).
		Int("filtered", len(filtered)).
		Str("current", windows.Current.String()).
		Str("past", windows.Past.String()).
		Msg("resolved comparison windows")

	entityKey, pairKey := r.entityKey(), r.pairKey()
	declines := aggregate.Compare(
		aggregate.Aggregate(filtered, windows.Past, entityKey, aggregate.Volume),
		aggregate.Aggregate(filtered, windows.Current, entityKey, aggregate.Volume),
	)
	pairs := aggregate.Join(
		aggregate.Aggregate(filtered, windows.Past, pairKey, aggregate.Volume),
		aggregate.Aggregate(filtered, windows.Current, pairKey, aggregate.Volume),
	)

	entityHistory := aggregate.Partition(filtered, entityKey)
	pairHistory := aggregate.Partition(filtered, pairKey)

	report := &domain.Report{
		Direction:     direction,
		Windows:       windows,
		Declines:      make([]domain.DeclineRow, 0, len(declines)),
		Relationships: make([]domain.RelationshipRow, 0, len(pairs)),
		RecordCount:   len(filtered),
	}

	declining := make(map[string]struct{}, len(declines))
	for _, ch := range declines {
		history := entityHistory[ch.Key]
		declining[ch.Key.Name] = struct{}{}
		report.Declines = append(report.Declines, domain.DeclineRow{
			Entity:    ch.Key.Name,
			Past:      ch.Past,
			Current:   ch.Current,
			Delta:     ch.Delta,
			Stopped:   ch.Stopped,
			Stats:     stats.Compute(history, windows.Granularity),
			TradeLine: ranking.TradeLine(r.lineEntries(history), r.unknownCounterparty),
		})
	}

	for _, ch := range pairs {
		if _, ok := declining[ch.Key.Entity]; req.DecliningOnly && !ok {
			continue
		}
		report.Relationships = append(report.Relationships, domain.RelationshipRow{
			Entity:       ch.Key.Entity,
			Counterparty: ch.Key.Counterparty,
			Past:         ch.Past,
			Current:      ch.Current,
			Delta:        ch.Delta,
			Trend:        trend.Classify(ch.Past, ch.Current),
			Stats:        stats.Compute(pairHistory[ch.Key], windows.Granularity),
		})
	}

	ranking.SortDeclines(report.Declines)
	ranking.SortRelationships(report.Relationships)

	topN := req.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	report.TopDecliners = ranking.TopDecliners(report.Declines, topN)
	report.Summary = ranking.Summarize(report.Declines)

	logger.Info().
		Str("direction", string(direction)).
		Str("policy", string(windows.Policy)).
		Int("declining", report.Summary.DecliningEntities).
		Int("stopped", report.Summary.StoppedEntities).
		Int("relationships", len(report.Relationships)).
		Bool("length_mismatch", windows.LengthMismatch()).
		Msg("analysis completed")

	return report, nil
}

func (e *Engine) referenceDate(records []domain.TransactionRecord, req Request) (time.Time, error) {
	if !req.ReferenceDate.IsZero() {
		return domain.Date(req.ReferenceDate), nil
	}

	switch req.ReferenceMode {
	case ReferenceLatest, "":
		var latest time.Time
		for _, r := range records {
			if r.Date.After(latest) {
				latest = r.Date
			}
		}
		if latest.IsZero() {
			return domain.Date(e.now()), nil
		}
		return domain.Date(latest), nil
	case ReferenceToday:
		return domain.Date(e.now()), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported reference mode %q", domain.ErrInvalidRequest, req.ReferenceMode)
	}
}

// calendarDays returns a copy of records with every date truncated to UTC midnight.
func calendarDays(records []domain.TransactionRecord) []domain.TransactionRecord {
	out := make([]domain.TransactionRecord, len(records))
	for i, r := range records {
		r.Date = domain.Date(r.Date)
		out[i] = r
	}
	return out
}

func (r roles) lineEntries(history []domain.TransactionRecord) []ranking.LineEntry {
	entries := make([]ranking.LineEntry, 0, len(history))
	for _, rec := range history {
		entries = append(entries, ranking.LineEntry{
			Country:      r.counterpartyCountry(rec),
			Counterparty: r.counterparty(rec),
			Volume:       rec.Volume,
		})
	}
	return entries
}
