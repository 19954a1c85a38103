package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ecotrack/internal/aggregate"
	"ecotrack/internal/api"
	"ecotrack/internal/api/handler"
	"ecotrack/internal/clean"
	"ecotrack/internal/config"
	"ecotrack/internal/pipeline"
	"ecotrack/internal/sidra"
	"ecotrack/internal/store"
	"ecotrack/pkg/router"
)

var configPath string

// @title Ecotrack API
// @version 1.0
// @description Read-only API serving aggregated Brazilian economic statistics.
// @BasePath /api/v1
func main() {
	root := &cobra.Command{
		Use:           "ecotrack",
		Short:         "Brazilian economic statistics pipeline and API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	root.AddCommand(updateCmd(), serveCmd(), runCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// updateCmd runs one pipeline update and exits.
func updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Fetch, load and aggregate all datasets once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			st, err := store.Open(cfg.Database.Path, log)
			if err != nil {
				return err
			}
			defer st.Close()

			p := newPipeline(cfg, st, log)
			_, err = p.Run(cmd.Context())
			return err
		},
	}
}

// serveCmd starts the read-only API without the scheduler.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			st, err := store.Open(cfg.Database.Path, log)
			if err != nil {
				return err
			}
			defer st.Close()

			r := router.New()
			api.RegisterRoutes(r, handler.New(st, log))
			return r.Start(cfg.HTTP.Addr)
		},
	}
}

// runCmd serves the API and keeps the pipeline running on the configured
// schedule, with one update at startup.
func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Serve the API and update on the configured schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			st, err := store.Open(cfg.Database.Path, log)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p := newPipeline(cfg, st, log)
			update := func() {
				if _, err := p.Run(ctx); err != nil {
					log.Error("scheduled update failed", zap.Error(err))
				}
			}

			sched, err := pipeline.NewScheduler(cfg.Schedule, update, log)
			if err != nil {
				return fmt.Errorf("schedule %q: %w", cfg.Schedule, err)
			}
			sched.Start()
			defer sched.Stop()

			go update()

			r := router.New()
			api.RegisterRoutes(r, handler.New(st, log))

			errCh := make(chan error, 1)
			go func() { errCh <- r.Start(cfg.HTTP.Addr) }()

			select {
			case <-ctx.Done():
				log.Info("shutting down")
				return nil
			case err := <-errCh:
				return err
			}
		},
	}
}

func newPipeline(cfg config.Config, st *store.Store, log *zap.Logger) *pipeline.Pipeline {
	client := sidra.New(cfg.Sidra, log)
	cleaner := clean.New(log)
	agg := aggregate.New(st, log)
	return pipeline.New(client, cleaner, st, agg, log)
}

// setup loads the config and builds the logger every subcommand shares.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Logging.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	if cfg.Logging.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
		if err != nil {
			return cfg, nil, fmt.Errorf("logging.level: %w", err)
		}
		zapCfg.Level = level
	}

	log, err := zapCfg.Build()
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}
