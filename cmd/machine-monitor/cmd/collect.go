package cmd

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/openshift-assisted/machine-monitor/internal/collector"
	"github.com/openshift-assisted/machine-monitor/internal/common"
	"github.com/openshift-assisted/machine-monitor/internal/log"
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Read this host and push its snapshot to a machine monitor server",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		err := setup("collector")
		if err != nil {
			return err
		}

		return conf.Collector.Validate()
	},
	Run: func(cmd *cobra.Command, args []string) {
		logger := log.Logger()

		// Listen to sigterm and interrupt signals
		ctx := common.SetupSignalHandler(context.Background())

		clock := clockwork.NewRealClock()

		agent := collector.NewAgent(
			collector.NewHostReader(conf.Collector.DiskPath),
			collector.NewReporter(conf.Collector, clock),
			clock,
			conf.Collector.Interval,
		)

		err := agent.Start(ctx)
		if err != nil {
			logger.Error(err, "collector failed")
		}
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
}
