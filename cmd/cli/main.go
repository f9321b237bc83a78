package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/trade-radar/pkg/runtime/bootstrap"
	"github.com/de-tools/trade-radar/pkg/runtime/terminal"
	"github.com/de-tools/trade-radar/pkg/services/config"
	"github.com/de-tools/trade-radar/pkg/services/presets"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig(os.Getenv(config.EnvPrefix + "_CONFIG"))
	if err != nil {
		return err
	}

	logger, err := bootstrap.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(context.Background())

	services, err := bootstrap.NewServices(cfg)
	if err != nil {
		return err
	}
	defer services.Close()

	registry, err := presets.NewRegistry(cfg.Presets)
	if err != nil {
		return err
	}

	cli := terminal.NewCLI(terminal.Options{
		Datasets: services.Datasets,
		Engine:   services.Engine,
		Presets:  registry,
		Defaults: cfg.Analysis,
		Sources:  bootstrap.Sources(cfg),
		Output:   os.Stdout,
	})

	return cli.Execute(ctx)
}
