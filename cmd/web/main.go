package main

import (
	"fmt"
	"os"

	"github.com/de-tools/trade-radar/pkg/runtime/bootstrap"
	"github.com/de-tools/trade-radar/pkg/server"
	"github.com/de-tools/trade-radar/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Trade Radar",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the YAML config file (RADAR_* environment variables override it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	logger, err := bootstrap.NewLogger(cfg.Log, os.Stdout)
	if err != nil {
		return err
	}

	services, err := bootstrap.NewServices(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := services.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close store")
		}
	}()

	logger.Info().
		Str("driver", cfg.Store.Driver).
		Str("path", cfg.Store.Path).
		Msg("record store opened")

	api := server.NewWebAPI(logger.With().Str("component", "api").Logger(), server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxUploadBytes:  cfg.Server.MaxUploadMB << 20,
		Dependencies: server.Dependencies{
			Datasets: services.Datasets,
			Defaults: cfg.Analysis,
		},
	})

	return api.Start()
}

