package commands

import (
	"github.com/de-tools/trade-radar/pkg/adapters"
	"github.com/de-tools/trade-radar/pkg/models/api"
	"github.com/de-tools/trade-radar/pkg/runtime/terminal/export"
	"github.com/de-tools/trade-radar/pkg/services/dataset"
	"github.com/spf13/cobra"
)

func NewDatasetsCmd(datasets dataset.Manager, reporter *export.Reporter) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List imported datasets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := datasets.List(cmd.Context())
			if err != nil {
				return err
			}
			r, err := reporter.WithFormat(export.Format(format))
			if err != nil {
				return err
			}
			out := make([]api.Dataset, 0, len(list))
			for _, ds := range list {
				out = append(out, adapters.MapDatasetDomainToApi(ds))
			}
			return r.Datasets(out)
		},
	}
	cmd.Flags().StringVar(&format, "format", string(export.FormatText), "Output format: text or json")

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <dataset>",
		Short: "Delete an imported dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return datasets.Delete(cmd.Context(), args[0])
		},
	})
	return cmd
}

type OptionsCmd struct {
	datasetID string
	format    string
	datasets  dataset.Manager
	reporter  *export.Reporter
}

func NewOptionsCmd(datasets dataset.Manager, reporter *export.Reporter) *cobra.Command {
	oc := &OptionsCmd{datasets: datasets, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the filter values available in a dataset",
		RunE:  oc.run,
	}
	cmd.Flags().StringVar(&oc.datasetID, "dataset", "", "ID of an imported dataset")
	cmd.Flags().StringVar(&oc.format, "format", string(export.FormatText), "Output format: text or json")
	_ = cmd.MarkFlagRequired("dataset")
	return cmd
}

func (oc *OptionsCmd) run(cmd *cobra.Command, _ []string) error {
	options, err := oc.datasets.Options(cmd.Context(), oc.datasetID)
	if err != nil {
		return err
	}
	r, err := oc.reporter.WithFormat(export.Format(oc.format))
	if err != nil {
		return err
	}
	return r.Options(adapters.MapFilterOptionsDomainToApi(options))
}
