package domain

import (
	"fmt"
	"time"
)

const (
	UnknownEntity   = "Unknown"
	UnknownCountry  = "Unknown Country"
	UnknownExporter = "Unknown Exporter"
	UnknownImporter = "Unknown Importer"
)

// TransactionRecord is a single normalized trade transaction.
type TransactionRecord struct {
	Date          time.Time
	Importer      string
	Exporter      string // may be empty
	ExportCountry string // may be empty
	ImportCountry string // may be empty
	HSCode        string
	Category      string
	OriginCountry string
	Volume        float64 // kg
	Value         float64 // currency
	UnitPrice     float64
	HasUnitPrice  bool
}

// Validate rejects negative volume or value.
func (r TransactionRecord) Validate() error {
	if r.Volume < 0 {
		return fmt.Errorf("%w: negative volume %v", ErrInvalidRecord, r.Volume)
	}
	if r.Value < 0 {
		return fmt.Errorf("%w: negative value %v", ErrInvalidRecord, r.Value)
	}
	return nil
}

// DeriveUnitPrice sets the unit price to value/volume when none was provided.
func (r *TransactionRecord) DeriveUnitPrice() {
	if !r.HasUnitPrice && r.Volume > 0 {
		r.UnitPrice, r.HasUnitPrice = r.Value/r.Volume, true
	}
}

// Filter restricts records by set membership. An empty set matches everything.
type Filter struct {
	HSCodes         []string
	Categories      []string
	OriginCountries []string
}

func (f Filter) IsEmpty() bool {
	return len(f.HSCodes) == 0 && len(f.Categories) == 0 && len(f.OriginCountries) == 0
}

// FilterOptions lists the distinct values available for each filter column.
type FilterOptions struct {
	HSCodes         []string
	Categories      []string
	OriginCountries []string
}

type Dataset struct {
	ID          string
	Name        string
	Source      string
	RecordCount int64
	FirstDate   *time.Time
	LastDate    *time.Time
	CreatedAt   time.Time
}
