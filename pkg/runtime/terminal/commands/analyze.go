package commands

import (
	"fmt"

	"github.com/de-tools/trade-radar/pkg/adapters"
	"github.com/de-tools/trade-radar/pkg/loader"
	"github.com/de-tools/trade-radar/pkg/models/api"
	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/de-tools/trade-radar/pkg/runtime/terminal/export"
	"github.com/de-tools/trade-radar/pkg/services/analysis"
	"github.com/de-tools/trade-radar/pkg/services/config"
	"github.com/de-tools/trade-radar/pkg/services/dataset"
	"github.com/de-tools/trade-radar/pkg/services/presets"
	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	datasetID string
	file      string
	format    string
	flags     requestFlags

	datasets dataset.Manager
	engine   *analysis.Engine
	presets  presets.Registry
	defaults config.AnalysisConfig
	reporter *export.Reporter
}

func NewAnalyzeCmd(
	datasets dataset.Manager,
	engine *analysis.Engine,
	registry presets.Registry,
	defaults config.AnalysisConfig,
	reporter *export.Reporter,
) *cobra.Command {
	ac := &AnalyzeCmd{
		datasets: datasets,
		engine:   engine,
		presets:  registry,
		defaults: defaults,
		reporter: reporter,
	}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Find entities whose trade volume declined between two periods",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.datasetID, "dataset", "", "ID of an imported dataset")
	cmd.Flags().StringVar(&ac.file, "file", "", "CSV or XLSX file to analyse without importing it")
	cmd.Flags().StringVar(&ac.format, "format", string(export.FormatText), "Output format: text or json")
	ac.flags.register(cmd.Flags())

	cmd.MarkFlagsOneRequired("dataset", "file")
	cmd.MarkFlagsMutuallyExclusive("dataset", "file")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	base := api.AnalysisRequest{}
	if ac.flags.preset != "" {
		preset, err := ac.presets.Get(ctx, ac.flags.preset)
		if err != nil {
			return err
		}
		base = preset
	}

	apiReq := ac.flags.merge(cmd.Flags(), base, ac.defaults)
	req, err := adapters.MapAnalysisRequestApiToDomain(apiReq)
	if err != nil {
		return err
	}

	reporter, err := ac.reporter.WithFormat(export.Format(ac.format))
	if err != nil {
		return err
	}

	var (
		report *domain.Report
		label  string
	)
	if ac.file != "" {
		records, err := loader.ReadFile(ctx, ac.file)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", ac.file, err)
		}
		report, err = ac.engine.Run(ctx, records, req)
		if err != nil {
			return err
		}
		label = ac.file
	} else {
		report, err = ac.datasets.Analyze(ctx, ac.datasetID, req)
		if err != nil {
			return err
		}
		label = ac.datasetID
	}

	return reporter.Handle(adapters.MapReportDomainToApi(label, report))
}
