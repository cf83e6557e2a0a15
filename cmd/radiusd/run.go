package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/gigabytetmn/freeradius-server/pkg/cli"
	"github.com/gigabytetmn/freeradius-server/pkg/config"
	"github.com/gigabytetmn/freeradius-server/pkg/mapproc"
	"github.com/gigabytetmn/freeradius-server/pkg/modules/rest"
	sqlmod "github.com/gigabytetmn/freeradius-server/pkg/modules/sql"
	"github.com/gigabytetmn/freeradius-server/pkg/querylog"
	"github.com/gigabytetmn/freeradius-server/pkg/server"
	"github.com/gigabytetmn/freeradius-server/pkg/telemetry/logging"
	"github.com/gigabytetmn/freeradius-server/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the map-processor evaluation server",
	Long: `Start the server with the specified configuration.

Modules are registered, map blocks are compiled, and the admin HTTP
server is started. The process runs until SIGINT or SIGTERM.

Examples:
  # Start with default config
  radiusd run

  # Start with custom config
  radiusd run --config /etc/radiusd/config.yaml

  # Override listen address
  radiusd run --listen 0.0.0.0:18120`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	if _, err := logging.Setup(cfg.Logging, os.Stdout); err != nil {
		return cli.NewCommandError("run", err)
	}

	slog.Info("starting radiusd", "version", Version, "config", cfgFile)

	// Registry and modules.
	registry := mapproc.New()
	defer registry.Close()

	registrations, closers, err := registerModules(registry, cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer func() {
		for _, r := range registrations {
			r.Close()
		}
		for _, c := range closers {
			c()
		}
	}()

	// Metrics.
	var promReg *prometheus.Registry
	var evalMetrics *metrics.EvalMetrics
	if *cfg.Metrics.Enabled {
		promReg = prometheus.NewRegistry()
		evalMetrics = metrics.NewEvalMetrics(cfg.Metrics, promReg)
	}

	// Query log.
	var recorder *querylog.Recorder
	if cfg.QueryLog.Enabled {
		store, err := querylog.NewSQLiteStore(cfg.QueryLog.Path)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		defer store.Close()

		recorder = querylog.NewRecorder(store, cfg.QueryLog.BufferSize)
		defer recorder.Close()

		scheduler := querylog.NewScheduler(
			querylog.NewPruner(store, cfg.QueryLog.RetentionDays),
			cfg.QueryLog.PruneSchedule,
		)

		ctx := cmd.Context()
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewCommandError("run", err)
		}
		defer scheduler.Stop()
	}

	// Pipeline.
	pipeline := server.NewPipeline(registry, evalMetrics, recorder)
	if err := pipeline.LoadMaps(cfg.Maps); err != nil {
		return cli.NewCommandError("run", err)
	}

	ctx := cli.SetupSignalHandler()

	// Hot reload.
	if cfg.Server.WatchConfig {
		watcher, err := server.NewWatcher(cfgFile, 0)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		go watcher.Watch(func() error {
			newCfg, err := config.LoadWithEnvOverrides(cfgFile)
			if err != nil {
				return err
			}
			return pipeline.LoadMaps(newCfg.Maps)
		})
		defer watcher.Stop()
	}

	srv := server.NewServer(cfg.Server, pipeline, promReg)
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	slog.Info("radiusd stopped")
	return nil
}

// registerModules registers every enabled map processor module and returns
// the registration handles plus module close functions.
func registerModules(registry *mapproc.Registry, cfg *config.Config) ([]*mapproc.Registration, []func(), error) {
	var registrations []*mapproc.Registration
	var closers []func()

	if cfg.Modules.SQL.Enabled {
		mod, err := sqlmod.New(cfg.Modules.SQL)
		if err != nil {
			return nil, nil, err
		}
		reg, err := mod.Register(registry)
		if err != nil {
			mod.Close()
			return nil, nil, err
		}
		registrations = append(registrations, reg)
		closers = append(closers, func() { mod.Close() })
	}

	if cfg.Modules.REST.Enabled {
		mod := rest.New(cfg.Modules.REST)
		reg, err := mod.Register(registry)
		if err != nil {
			return nil, nil, err
		}
		registrations = append(registrations, reg)
	}

	slog.Info("map processors registered", "processors", registry.Names())

	// Guard against a configuration that references nothing.
	if registry.Len() == 0 && len(cfg.Maps) > 0 {
		return registrations, closers, fmt.Errorf("configuration defines map blocks but no modules are enabled")
	}

	return registrations, closers, nil
}
