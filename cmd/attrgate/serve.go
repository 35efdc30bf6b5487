package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/artpar/attrgate/adapters/metrics"
	"github.com/artpar/attrgate/config"
	"github.com/artpar/attrgate/registry"
	"github.com/artpar/attrgate/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the validation service",
	Long: `Start the HTTP validation service. Schemas are loaded from the
configured directory and reloaded on file changes or SIGHUP when hot reload
is enabled.

Configuration is read from the --config file when it exists, with
ATTRGATE_* environment variables taking precedence.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("schemas") {
		cfg.Schemas.Dir = schemaDir
	}

	logger := setupLogger(cfg.Logging)
	logger.Info().
		Str("version", Version).
		Str("schemas", cfg.Schemas.Dir).
		Msg("starting attrgate")

	reg, err := registry.New(cfg.Schemas.Dir, logger)
	if err != nil {
		return err
	}
	defer reg.Stop()
	logger.Info().Int("schemas", reg.Len()).Msg("schemas loaded")

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.New()
		collector.SchemasLoaded.Set(float64(reg.Len()))
		reg.OnReload(func(names []string) {
			collector.SchemaReloads.Inc()
			collector.SchemasLoaded.Set(float64(len(names)))
			collector.SchemaLastReload.SetToCurrentTime()
		})
		reg.OnReloadError(func(error) {
			collector.SchemaReloadErrors.Inc()
		})
	}

	if cfg.Schemas.HotReload {
		if err := reg.WatchDir(); err != nil {
			return err
		}
		reg.WatchSignals()
	}

	handler := web.NewHandler(web.Deps{
		Registry: reg,
		Logger:   logger,
		Metrics:  collector,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      web.NewRouter(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info().Msg("stopped")
	return nil
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
