package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/newthinker/quanthub/internal/app"
	"github.com/newthinker/quanthub/internal/config"
	"github.com/newthinker/quanthub/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the QuantHub web server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads --config, or falls back to defaults.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	if cfgFile == "" {
		log.Warn("no config file specified, using defaults")
		return config.Defaults(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	// Bootstrap logger until the configured level is known
	boot := logger.Must(logger.Options{Development: debug})

	cfg, err := loadConfig(boot)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Development: debug || cfg.Server.Mode == "debug",
		Level:       level,
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting QuantHub server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("version", Version),
	)

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Start(ctx)
}
