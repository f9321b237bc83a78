package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/de-tools/trade-radar/pkg/models/api"
	"github.com/de-tools/trade-radar/pkg/services/ranking"
	"github.com/dustin/go-humanize"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type TableConfig struct {
	StatusWidth     int
	NameWidth       int
	NumberWidth     int
	TrendWidth      int
	TradeLineIndent int
	ShowTradeLines  bool
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		StatusWidth:     8,
		NameWidth:       32,
		NumberWidth:     14,
		TrendWidth:      9,
		TradeLineIndent: 4,
		ShowTradeLines:  true,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
	format Format
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
		format: FormatText,
	}
}

// WithFormat returns a copy of the reporter writing in the given format.
func (c *Reporter) WithFormat(format Format) (*Reporter, error) {
	switch format {
	case FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	out := *c
	out.format = format
	return &out, nil
}

const reportTemplate = `
Trade decline report{{if .Dataset}} for dataset {{.Dataset}}{{end}} ({{.Direction}}-centric, {{.RecordCount}} records)

Current window: {{window .Windows.Current}}
Past window:    {{window .Windows.Past}}
Policy: {{.Windows.Policy}} (average volume per {{.Windows.Granularity}})
{{if .Windows.Warning}}WARNING: {{.Windows.Warning}}
{{end}}
{{if .Empty}}No declining entities between the selected windows.
{{else}}Declining entities: {{.Summary.DecliningEntities}}    Stopped: {{.Summary.StoppedEntities}}    Total decline (kg): {{num .Summary.TotalDecline}}

=== Top {{len .TopDecliners}} decliners ===
{{range $i, $row := .TopDecliners}}{{printf "%2d" (inc $i)}}. {{$row.Entity}} {{num $row.Delta}}
{{end}}
=== Declines ===
{{declineSeparator}}
{{declineHeader}}
{{declineSeparator}}
{{range .Declines}}{{declineRow .}}
{{tradeLine .TradeLine}}{{end}}{{declineSeparator}}
{{end}}
=== Relationships ({{len .Relationships}}) ===
{{if .Relationships}}{{relationshipSeparator}}
{{relationshipHeader}}
{{relationshipSeparator}}
{{range .Relationships}}{{relationshipRow .}}
{{end}}{{relationshipSeparator}}
{{else}}No relationships in the selected windows.
{{end}}`

func (c *Reporter) Handle(report api.AnalysisReport) error {
	if c.format == FormatJSON {
		return c.writeJSON(report)
	}

	t, err := template.New("report").Funcs(c.funcMap()).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, report)
}

func (c *Reporter) funcMap() template.FuncMap {
	cfg := c.config
	numberCols := func(values ...string) string {
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = fmt.Sprintf(" %*s ", cfg.NumberWidth, v)
		}
		return strings.Join(cells, "|")
	}
	dashes := func(widths ...int) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat("-", w+2)
		}
		return "+" + strings.Join(parts, "+") + "+"
	}
	n := cfg.NumberWidth

	return template.FuncMap{
		"inc": func(i int) int { return i + 1 },
		"num": ranking.FormatVolume,
		"window": func(w api.Window) string {
			return fmt.Sprintf("%s ~ %s (%s days)", w.Start, w.End, humanize.Comma(int64(w.Days)))
		},
		"declineSeparator": func() string {
			return dashes(cfg.StatusWidth, cfg.NameWidth, n, n, n, n, n, n)
		},
		"declineHeader": func() string {
			return fmt.Sprintf("| %-*s | %-*s |%s|",
				cfg.StatusWidth, "Status",
				cfg.NameWidth, "Entity",
				numberCols("Current", "Past", "Decline", "Avg volume", "Avg price", "Wtd price"))
		},
		"declineRow": func(row api.DeclineRow) string {
			return fmt.Sprintf("| %-*s | %-*s |%s|",
				cfg.StatusWidth, row.Status,
				cfg.NameWidth, truncate(row.Entity, cfg.NameWidth),
				numberCols(
					ranking.FormatVolume(row.Current),
					ranking.FormatVolume(row.Past),
					ranking.FormatVolume(row.Delta),
					ranking.FormatVolume(row.Stats.AvgPeriodicVolume),
					ranking.FormatVolume(row.Stats.ArithmeticAvgPrice),
					ranking.FormatVolume(row.Stats.WeightedAvgPrice),
				))
		},
		"tradeLine": func(line string) string {
			if !cfg.ShowTradeLines || line == "" {
				return ""
			}
			pad := strings.Repeat(" ", cfg.TradeLineIndent)
			return pad + strings.ReplaceAll(line, "\n", "\n"+pad) + "\n"
		},
		"relationshipSeparator": func() string {
			return dashes(cfg.NameWidth, cfg.NameWidth, n, n, n, cfg.TrendWidth)
		},
		"relationshipHeader": func() string {
			return fmt.Sprintf("| %-*s | %-*s |%s| %-*s |",
				cfg.NameWidth, "Entity",
				cfg.NameWidth, "Counterparty",
				numberCols("Past", "Current", "Decline"),
				cfg.TrendWidth, "Trend")
		},
		"relationshipRow": func(row api.RelationshipRow) string {
			return fmt.Sprintf("| %-*s | %-*s |%s| %-*s |",
				cfg.NameWidth, truncate(row.Entity, cfg.NameWidth),
				cfg.NameWidth, truncate(row.Counterparty, cfg.NameWidth),
				numberCols(
					ranking.FormatVolume(row.Past),
					ranking.FormatVolume(row.Current),
					ranking.FormatVolume(row.Delta),
				),
				cfg.TrendWidth, row.Trend)
		},
	}
}

const datasetsTemplate = `{{if not .}}No datasets imported yet.
{{else}}{{range .}}{{.ID}}  {{.Name}}  {{.RecordCount}} records{{if .FirstDate}}  {{.FirstDate.Format "2006-01-02"}} ~ {{.LastDate.Format "2006-01-02"}}{{end}}{{if .Source}}  ({{.Source}}){{end}}
{{end}}{{end}}`

func (c *Reporter) Datasets(datasets []api.Dataset) error {
	if c.format == FormatJSON {
		return c.writeJSON(datasets)
	}
	t, err := template.New("datasets").Parse(datasetsTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, datasets)
}

const optionsTemplate = `HS codes:         {{join .HSCodes}}
Categories:       {{join .Categories}}
Origin countries: {{join .OriginCountries}}
`

func (c *Reporter) Options(options api.FilterOptions) error {
	if c.format == FormatJSON {
		return c.writeJSON(options)
	}
	t, err := template.New("options").Funcs(template.FuncMap{
		"join": func(values []string) string {
			if len(values) == 0 {
				return "-"
			}
			return strings.Join(values, ", ")
		},
	}).Parse(optionsTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, options)
}

func (c *Reporter) writeJSON(v any) error {
	enc := json.NewEncoder(c.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}
