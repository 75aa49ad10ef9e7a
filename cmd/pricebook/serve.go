package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"llmprice-hq/pricebook/pkg/catalogue"
	"llmprice-hq/pricebook/pkg/cli"
	"llmprice-hq/pricebook/pkg/config"
	"llmprice-hq/pricebook/pkg/i18n"
	"llmprice-hq/pricebook/pkg/server"
	"llmprice-hq/pricebook/pkg/telemetry/logging"
	"llmprice-hq/pricebook/pkg/telemetry/metrics"
)

var serveFlags struct {
	listenAddress string
	logLevel      string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the price table over HTTP",
	Long: `Serve the price table as an HTML page and a JSON API.

The catalogue directory is loaded once at startup. With catalogue.watch
enabled it is reloaded whenever a provider file changes; a reload that
fails keeps the previous catalogue.

Examples:
  # Start with default config
  pricebook serve

  # Override listen address
  pricebook serve --listen 0.0.0.0:8080

  # Debug logging
  pricebook serve --log-level debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply flag overrides
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}
	switch {
	case serveFlags.logLevel != "":
		cfg.Telemetry.Logging.Level = serveFlags.logLevel
	case verbose:
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger.Slog())

	normalizer, err := newNormalizer(cfg)
	if err != nil {
		return err
	}

	bundle, err := i18n.LoadBundle()
	if err != nil {
		return cli.NewCommandError("serve", err)
	}

	store := catalogue.NewStore(cfg.Catalogue.Dir, logger.Slog())

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
		store.SetObserver(collector.CatalogueObserver(normalizer))
	}

	if err := store.Reload(); err != nil {
		if !cfg.Catalogue.Watch {
			return cli.NewCommandError("serve", err)
		}
		logger.Warn("initial catalogue load failed, waiting for a change", "dir", cfg.Catalogue.Dir, "error", err)
	}

	ctx, stop := cli.SignalContext(cmd.Context())
	defer stop()

	if cfg.Catalogue.Watch {
		watcher, err := catalogue.NewWatcher(cfg.Catalogue.Dir, store, cfg.Catalogue.DebounceInterval, logger.Slog())
		if err != nil {
			return cli.NewCommandError("serve", err)
		}
		defer watcher.Stop()

		go func() {
			if err := watcher.Watch(ctx); err != nil {
				logger.Error("catalogue watcher failed", "error", err)
			}
		}()
	}

	handler := server.NewRouter(server.Options{
		Config:     cfg,
		Catalogue:  store,
		Normalizer: normalizer,
		Bundle:     bundle,
		Metrics:    collector,
		Logger:     logger.Slog(),
		Build: server.BuildInfo{
			Version:   Version,
			Commit:    GitCommit,
			BuildTime: BuildDate,
		},
	})
	srv := server.NewServer(&cfg.Server, handler, logger.Slog())

	printBanner(cmd.OutOrStdout(), cfg, store)

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}
	return nil
}

func printBanner(w io.Writer, cfg *config.Config, store *catalogue.Store) {
	fmt.Fprintf(w, "pricebook v%s\n", Version)
	fmt.Fprintf(w, "Configuration: %s\n", cfgFile)

	if snap, err := store.Snapshot(); err == nil {
		fmt.Fprintf(w, "✓ Catalogue loaded (%d records from %d files)\n", len(snap.Records), len(snap.Files))
	}
	fmt.Fprintf(w, "✓ Listening on http://%s/\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Fprintf(w, "✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
}
