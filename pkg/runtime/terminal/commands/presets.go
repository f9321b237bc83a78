package commands

import (
	"fmt"

	"github.com/de-tools/trade-radar/pkg/models/api"
	"github.com/de-tools/trade-radar/pkg/services/config"
	"github.com/de-tools/trade-radar/pkg/services/presets"
	"github.com/spf13/cobra"
	"gopkg.in/ini.v1"
)

func NewPresetsCmd(registry presets.Registry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage named analysis presets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := registry.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Print a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := registry.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writePreset(cmd, args[0], req)
		},
	})

	var flags requestFlags
	save := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the given analysis flags as a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := api.AnalysisRequest{}
			if flags.preset != "" {
				var err error
				if base, err = registry.Get(cmd.Context(), flags.preset); err != nil {
					return err
				}
			}
			// Defaults are applied at run time, not frozen into the preset.
			req := flags.merge(cmd.Flags(), base, config.AnalysisConfig{})
			if err := registry.Save(cmd.Context(), args[0], req); err != nil {
				return err
			}
			return writePreset(cmd, args[0], req)
		},
	}
	flags.register(save.Flags())
	cmd.AddCommand(save)

	return cmd
}

func writePreset(cmd *cobra.Command, name string, req api.AnalysisRequest) error {
	f := ini.Empty()
	section, err := f.NewSection(name)
	if err != nil {
		return err
	}
	if err := section.ReflectFrom(&presetView{
		Policy:          req.Period.Policy,
		N:               req.Period.N,
		Current:         req.Period.Current,
		Past:            req.Period.Past,
		ReferenceDate:   req.ReferenceDate,
		ReferenceMode:   req.ReferenceMode,
		Direction:       req.Direction,
		HSCodes:         req.Filter.HSCodes,
		Categories:      req.Filter.Categories,
		OriginCountries: req.Filter.OriginCountries,
		TopN:            req.TopN,
		DecliningOnly:   req.DecliningOnly,
	}); err != nil {
		return err
	}
	_, err = f.WriteTo(cmd.OutOrStdout())
	return err
}

type presetView struct {
	Policy          string   `ini:"policy,omitempty"`
	N               int      `ini:"n,omitempty"`
	Current         []string `ini:"current,omitempty" delim:","`
	Past            []string `ini:"past,omitempty" delim:","`
	ReferenceDate   string   `ini:"reference_date,omitempty"`
	ReferenceMode   string   `ini:"reference_mode,omitempty"`
	Direction       string   `ini:"direction,omitempty"`
	HSCodes         []string `ini:"hs_codes,omitempty" delim:","`
	Categories      []string `ini:"categories,omitempty" delim:","`
	OriginCountries []string `ini:"origin_countries,omitempty" delim:","`
	TopN            int      `ini:"top_n,omitempty"`
	DecliningOnly   bool     `ini:"declining_only,omitempty"`
}
