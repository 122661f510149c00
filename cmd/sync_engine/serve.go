package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jonathan/sync-engine/internal/db"
	"github.com/jonathan/sync-engine/internal/logging"
	"github.com/jonathan/sync-engine/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that calculates and serves sync scores and connection profiles.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stderr sync errors are not actionable

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := server.Options{Config: cfg, Logger: logger}
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		opts.Store = database
	} else {
		logger.Warn("DATABASE_URL not set; sync score endpoints are disabled")
	}

	if !cfg.JWT.Enabled() {
		logger.Warn("JWT secret not set; write endpoints are unauthenticated")
	}

	srv, err := server.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.Bool("database", opts.Store != nil),
		zap.Bool("auth", cfg.JWT.Enabled()),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Int("cache_size", cfg.CacheSize),
	)
	return srv.Run(ctx)
}
