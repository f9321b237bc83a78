package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/trade-radar/pkg/runtime/terminal/commands"
	"github.com/de-tools/trade-radar/pkg/runtime/terminal/export"
	"github.com/de-tools/trade-radar/pkg/services/analysis"
	"github.com/de-tools/trade-radar/pkg/services/config"
	"github.com/de-tools/trade-radar/pkg/services/dataset"
	"github.com/de-tools/trade-radar/pkg/services/presets"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	opts     Options
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain the dependencies of the CLI commands
type Options struct {
	Datasets dataset.Manager
	Engine   *analysis.Engine
	Presets  presets.Registry
	Defaults config.AnalysisConfig
	Sources  commands.Sources
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Engine == nil {
		opts.Engine = analysis.NewEngine()
	}

	cli := &CLI{
		opts:     opts,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

// Execute runs the command line; args replace os.Args[1:] when given.
func (cli *CLI) Execute(ctx context.Context, args ...string) error {
	if args != nil {
		cli.rootCmd.SetArgs(args)
	}
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "trade-radar",
		Short:         "Detect importers and exporters whose trade volume declined",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.opts.Output)

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.opts.Datasets, cli.opts.Engine, cli.opts.Presets, cli.opts.Defaults, cli.reporter))
	cmd.AddCommand(commands.NewImportCmd(cli.opts.Datasets, cli.opts.Sources, cli.reporter))
	cmd.AddCommand(commands.NewDatasetsCmd(cli.opts.Datasets, cli.reporter))
	cmd.AddCommand(commands.NewOptionsCmd(cli.opts.Datasets, cli.reporter))
	cmd.AddCommand(commands.NewPresetsCmd(cli.opts.Presets))

	return cmd
}
