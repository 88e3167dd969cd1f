// Command finderbridge imports wells from a Finder project database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/finderbridge/internal/adapters/driven/config/file"
	"github.com/custodia-labs/finderbridge/internal/adapters/driven/finder"
	"github.com/custodia-labs/finderbridge/internal/adapters/driven/metrics"
	"github.com/custodia-labs/finderbridge/internal/adapters/driven/process"
	"github.com/custodia-labs/finderbridge/internal/adapters/driven/remote"
	"github.com/custodia-labs/finderbridge/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/finderbridge/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/finderbridge/internal/adapters/driving/cli"
	hostmcp "github.com/custodia-labs/finderbridge/internal/adapters/driving/mcp"
	"github.com/custodia-labs/finderbridge/internal/core/domain"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driven"
	"github.com/custodia-labs/finderbridge/internal/core/services"
	"github.com/custodia-labs/finderbridge/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetServiceFactory(newServices)
	cli.SetConfigFactory(openConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// openConfig opens config.toml in configDir.
func openConfig(configDir string) (driven.ConfigStore, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// newServices wires the adapters for one command run.
func newServices(opts cli.Options) (*cli.Services, error) {
	config, err := openConfig(opts.ConfigDir)
	if err != nil {
		return nil, err
	}
	settings := services.LoadSettings(config)
	logger.Debug("config: %s", config.Path())

	sink, closeSink, err := openSink(settings, opts.DryRun)
	if err != nil {
		return nil, err
	}

	broker := services.NewBroker(
		func() driven.DataAccessService { return finder.NewService(settings.Client) },
		process.NewLauncher(hostmcp.ReadyPrefix, hostmcp.SocketPath),
		remote.NewDialer(),
		settings.Broker,
	)

	importer := services.NewImporter(
		broker,
		sink,
		services.NewResampler(settings.Resample.Step),
		metrics.NewRecorder(settings.Import.MetricsFile),
		settings.Import.MaxQueriesPerSecond,
	)

	return &cli.Services{
		Settings: settings,
		Importer: importer,
		Broker:   broker,
		Close:    closeSink,
	}, nil
}

// openSink opens the project store, or an in-memory sink for dry runs.
func openSink(settings domain.Settings, dryRun bool) (driven.ModelSink, func() error, error) {
	if dryRun {
		logger.Info("dry run: imported wells are discarded")
		return memory.NewModelSink(), nil, nil
	}

	store, err := sqlite.NewStore(settings.Sink.Dir)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("project store: %s", store.Path())

	closeStore := func() error {
		if err := store.Close(); err != nil {
			return fmt.Errorf("closing project store: %w", err)
		}
		return nil
	}
	return store.ModelSink(), closeStore, nil
}
