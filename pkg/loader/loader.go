// Package loader turns tabular trade exports (CSV, XLSX) into normalized transaction records.
package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/rs/zerolog"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromName picks the format from a file name or object key extension.
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, name)
	}
}

// Read parses every data row of r. Rows without a date are skipped.
func Read(ctx context.Context, r io.Reader, format Format) ([]domain.TransactionRecord, error) {
	var (
		rows [][]string
		err  error
	)
	switch format {
	case FormatCSV:
		rows, err = readCSV(r)
	case FormatXLSX:
		rows, err = readXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	records, skipped, err := parseRows(rows)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("format", string(format)).
		Int("records", len(records)).
		Int("skipped", skipped).
		Msg("parsed trade rows")

	return records, nil
}

func ReadFile(ctx context.Context, path string) ([]domain.TransactionRecord, error) {
	format, err := FormatFromName(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Read(ctx, f, format)
}

type column int

const (
	colDate column = iota
	colImporter
	colExporter
	colExportCountry
	colImportCountry
	colHSCode
	colCategory
	colOriginCountry
	colVolume
	colValue
	colUnitPrice
)

// headerAliases maps normalized header names to columns.
var headerAliases = map[string]column{
	"date":            colDate,
	"tradedate":       colDate,
	"rawimportername": colImporter,
	"importer":        colImporter,
	"importername":    colImporter,
	"exporter":        colExporter,
	"exportername":    colExporter,
	"exportcountry":   colExportCountry,
	"importcountry":   colImportCountry,
	"hscode":          colHSCode,
	"hs":              colHSCode,
	"category":        colCategory,
	"origincountry":   colOriginCountry,
	"volume":          colVolume,
	"volumekg":        colVolume,
	"value":           colValue,
	"unitprice":       colUnitPrice,
}

func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseRows(rows [][]string) ([]domain.TransactionRecord, int, error) {
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("empty input: header row is missing")
	}

	index := make(map[column]int)
	for i, h := range rows[0] {
		if c, ok := headerAliases[normalizeHeader(h)]; ok {
			if _, seen := index[c]; !seen {
				index[c] = i
			}
		}
	}
	for _, required := range []column{colDate, colVolume} {
		if _, ok := index[required]; !ok {
			return nil, 0, fmt.Errorf("missing required column %q", requiredName(required))
		}
	}

	records := make([]domain.TransactionRecord, 0, len(rows)-1)
	skipped := 0
	for n, row := range rows[1:] {
		cell := func(c column) string {
			i, ok := index[c]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		if cell(colDate) == "" {
			skipped++
			continue
		}
		line := n + 2

		date, err := parseDate(cell(colDate))
		if err != nil {
			return nil, 0, fmt.Errorf("row %d: %w", line, err)
		}
		volume, err := parseNumber(cell(colVolume))
		if err != nil {
			return nil, 0, fmt.Errorf("row %d: volume: %w", line, err)
		}
		value, err := parseNumber(cell(colValue))
		if err != nil {
			return nil, 0, fmt.Errorf("row %d: value: %w", line, err)
		}

		rec := domain.TransactionRecord{
			Date:          date,
			Importer:      cell(colImporter),
			Exporter:      cell(colExporter),
			ExportCountry: cell(colExportCountry),
			ImportCountry: cell(colImportCountry),
			HSCode:        cell(colHSCode),
			Category:      cell(colCategory),
			OriginCountry: cell(colOriginCountry),
			Volume:        volume,
			Value:         value,
		}

		if raw := cell(colUnitPrice); raw != "" {
			price, err := parseNumber(raw)
			if err != nil {
				return nil, 0, fmt.Errorf("row %d: unit price: %w", line, err)
			}
			rec.UnitPrice, rec.HasUnitPrice = price, true
		}
		if err := rec.Validate(); err != nil {
			return nil, 0, fmt.Errorf("row %d: %w", line, err)
		}
		rec.DeriveUnitPrice()

		records = append(records, rec)
	}

	return records, skipped, nil
}

func requiredName(c column) string {
	if c == colDate {
		return "Date"
	}
	return "Volume"
}

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006/01/02",
	"2006.01.02",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.Date(t), nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if t, ok := excelSerialDate(serial); ok {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseNumber accepts thousands separators; an empty cell is zero.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number %q", s)
	}
	return v, nil
}
