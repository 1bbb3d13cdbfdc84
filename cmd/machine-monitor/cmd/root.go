package cmd

import (
	"fmt"
	"os"

	"github.com/prometheus/common/version"
	"github.com/spf13/cobra"

	"github.com/openshift-assisted/machine-monitor/internal/config"
	"github.com/openshift-assisted/machine-monitor/internal/log"
)

var (
	cfgFile string
	conf    *config.Config
)

var rootCmd = &cobra.Command{
	Use:          "machine-monitor",
	Short:        "Live status dashboard backend for a fleet of industrial machines",
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, environment variables prefixed with MACHINEMONITOR_ override it")
}

// setup parses the configuration and initializes the logger, shared by every command.
func setup(name string) error {
	var err error

	conf, err = config.Parse(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", cfgFile, err)
	}

	// Init logger
	err = log.Init(conf.Logs)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	logger := log.Logger()

	// Dump generic information
	logger.Info("Starting machine monitor "+name,
		"version", version.Info(),
		"buildContext", version.BuildContext(),
	)
	logger.Info("Using config", "config", fmt.Sprintf("%+v", *conf))

	return nil
}
