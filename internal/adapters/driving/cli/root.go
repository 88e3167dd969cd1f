// Package cli implements the finderbridge command line.
//
// Commands resolve their services lazily through the factory installed by
// main, so --config-dir is honoured and commands like version never touch
// the database.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driven"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driving"
	"github.com/custodia-labs/finderbridge/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
	dryRun    bool
)

// Services is everything the commands need, built from one config directory.
type Services struct {
	Settings domain.Settings
	Importer driving.WellImporter
	Broker   driving.ServiceBroker

	// Close releases adapters opened by the factory. May be nil.
	Close func() error
}

// Options are the global flags that shape how Services are built.
type Options struct {
	// ConfigDir is the configuration directory. Empty selects the default.
	ConfigDir string

	// DryRun imports into memory, leaving the project store untouched.
	DryRun bool
}

// ServiceFactory builds Services for one command run.
type ServiceFactory func(opts Options) (*Services, error)

// ConfigFactory opens the config store of a config directory.
// Empty selects the default directory.
type ConfigFactory func(configDir string) (driven.ConfigStore, error)

var (
	newServices ServiceFactory
	services    *Services
	newConfig   ConfigFactory
)

var rootCmd = &cobra.Command{
	Use:   "finderbridge",
	Short: "Import wells from a Finder project database",
	Long: `finderbridge imports well headers, directional surveys, resampled logs,
production states and formation tops from a Finder project database.

When the database client library does not match this binary's word size,
the queries run in a finderbridge-host process of the other word size.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress and diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.finderbridge)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "query and resample without writing the project store")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServiceFactory installs the factory commands use to build their services.
func SetServiceFactory(f ServiceFactory) {
	newServices = f
}

// SetConfigFactory installs the factory the settings command opens the config with.
func SetConfigFactory(f ConfigFactory) {
	newConfig = f
}

// Execute runs the root command and terminates the broker afterwards,
// whether or not the command succeeded.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if shutdownErr := shutdown(ctx); shutdownErr != nil {
		logger.Error("shutdown: %v", shutdownErr)
	}
	return err
}

// requireServices builds the services on first use.
func requireServices() (*Services, error) {
	if services != nil {
		return services, nil
	}
	if newServices == nil {
		return nil, errors.New("services not configured")
	}
	s, err := newServices(Options{ConfigDir: configDir, DryRun: dryRun})
	if err != nil {
		return nil, fmt.Errorf("initialising: %w", err)
	}
	services = s
	return s, nil
}

// requireConfig opens the config store without building the other services.
func requireConfig() (driven.ConfigStore, error) {
	if newConfig == nil {
		return nil, errors.New("config not configured")
	}
	store, err := newConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	return store, nil
}

// shutdown terminates the broker and closes the adapters.
func shutdown(ctx context.Context) error {
	if services == nil {
		return nil
	}
	s := services
	services = nil

	var errs []error
	if s.Broker != nil {
		if err := s.Broker.Terminate(context.WithoutCancel(ctx)); err != nil {
			errs = append(errs, fmt.Errorf("terminating broker: %w", err))
		}
	}
	if s.Close != nil {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
