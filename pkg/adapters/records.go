package adapters

import (
	"database/sql"

	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/de-tools/trade-radar/pkg/models/store"
)

func MapStoreRecordToDomain(r store.TradeRecord) domain.TransactionRecord {
	return domain.TransactionRecord{
		Date:          domain.Date(r.Date),
		Importer:      r.Importer.String,
		Exporter:      r.Exporter.String,
		ExportCountry: r.ExportCountry.String,
		ImportCountry: r.ImportCountry.String,
		HSCode:        r.HSCode.String,
		Category:      r.Category.String,
		OriginCountry: r.OriginCountry.String,
		Volume:        r.Volume,
		Value:         r.Value,
		UnitPrice:     r.UnitPrice.Float64,
		HasUnitPrice:  r.UnitPrice.Valid,
	}
}

func MapStoreRecordsToDomain(records []store.TradeRecord) []domain.TransactionRecord {
	out := make([]domain.TransactionRecord, 0, len(records))
	for _, r := range records {
		out = append(out, MapStoreRecordToDomain(r))
	}
	return out
}

func MapDomainRecordToStore(datasetID string, r domain.TransactionRecord) store.TradeRecord {
	return store.TradeRecord{
		DatasetID:     datasetID,
		Date:          domain.Date(r.Date),
		Importer:      nullString(r.Importer),
		Exporter:      nullString(r.Exporter),
		ExportCountry: nullString(r.ExportCountry),
		ImportCountry: nullString(r.ImportCountry),
		HSCode:        nullString(r.HSCode),
		Category:      nullString(r.Category),
		OriginCountry: nullString(r.OriginCountry),
		Volume:        r.Volume,
		Value:         r.Value,
		UnitPrice:     sql.NullFloat64{Float64: r.UnitPrice, Valid: r.HasUnitPrice},
	}
}

func MapDomainRecordsToStore(datasetID string, records []domain.TransactionRecord) []store.TradeRecord {
	out := make([]store.TradeRecord, 0, len(records))
	for _, r := range records {
		out = append(out, MapDomainRecordToStore(datasetID, r))
	}
	return out
}

func MapDomainFilterToStore(f domain.Filter) store.RecordFilter {
	return store.RecordFilter{
		HSCodes:         f.HSCodes,
		Categories:      f.Categories,
		OriginCountries: f.OriginCountries,
	}
}

func MapDatasetStatsStoreToDomain(ds store.DatasetStats) domain.Dataset {
	return domain.Dataset{
		ID:          ds.ID,
		Name:        ds.Name,
		Source:      ds.Source,
		RecordCount: ds.RecordsCount,
		FirstDate:   ds.FirstDate,
		LastDate:    ds.LastDate,
		CreatedAt:   ds.CreatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
