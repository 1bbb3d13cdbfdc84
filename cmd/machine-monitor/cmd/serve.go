package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/openshift-assisted/machine-monitor/internal/api"
	"github.com/openshift-assisted/machine-monitor/internal/common"
	"github.com/openshift-assisted/machine-monitor/internal/config"
	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/domain/repo"
	"github.com/openshift-assisted/machine-monitor/internal/domain/repo/changeevent"
	"github.com/openshift-assisted/machine-monitor/internal/domain/repo/history"
	"github.com/openshift-assisted/machine-monitor/internal/domain/repo/processingerror"
	"github.com/openshift-assisted/machine-monitor/internal/factory"
	"github.com/openshift-assisted/machine-monitor/internal/hub"
	"github.com/openshift-assisted/machine-monitor/internal/ingestion"
	"github.com/openshift-assisted/machine-monitor/internal/log"
	"github.com/openshift-assisted/machine-monitor/internal/processing"
	"github.com/openshift-assisted/machine-monitor/internal/query"
	"github.com/openshift-assisted/machine-monitor/internal/registry"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

const metricsNamespace = "machine_monitor"

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Ingest machine snapshots, classify them and serve the dashboard API",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		err := setup("server")
		if err != nil {
			return err
		}

		return conf.Validate()
	},
	Run: func(cmd *cobra.Command, args []string) {
		logger := log.Logger()

		// Set max procs based on cpu limits
		err := common.SetMaxProcs()
		if err != nil {
			logger.Error(err, "failed to set max procs")

			return
		}

		// Set max memory
		err = common.SetMemLimit()
		if err != nil {
			logger.Error(err, "failed to set mem limit")

			return
		}

		// Listen to sigterm and interrupt signals
		ctx := common.SetupSignalHandler(context.Background())

		err = serve(ctx, *conf)
		if err != nil {
			logger.Error(err, "server failed")

			return
		}

		logger.V(2).Info("Server stopped")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, conf config.Config) error {
	logger := log.Logger()
	clock := clockwork.NewRealClock()

	closers := common.Closers{}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), conf.GracefulDuration)
		defer cancel()

		err := closers.Close(closeCtx)
		if err != nil {
			logger.Error(err, "failed to release resources")
		}
	}()

	// Observability
	metricsRegistry, err := factory.CreatePrometheusRegistry()
	if err != nil {
		return err
	}

	tracerProvider, closeTracer, err := factory.CreateTracerProvider(conf.Tracing)
	if err != nil {
		return err
	}
	closers.Add(closeTracer)

	// Classification and registry
	criteria, err := factory.CreateCriteria(conf.Thresholds)
	if err != nil {
		return err
	}

	machines, err := registry.New(criteria).WithMetrics(metricsRegistry, metricsNamespace)
	if err != nil {
		return fmt.Errorf("failed to create registry: %w", err)
	}

	now := clock.Now()
	inventory := factory.CreateInventory(conf.Inventory)
	ids := make([]string, 0, len(inventory))

	for _, info := range inventory {
		machines.Register(info, now)
		ids = append(ids, info.ID)
	}

	store, closeStore, err := factory.CreateMachineStore(ctx, conf.Store)
	if err != nil {
		return err
	}
	closers.Add(closeStore)

	if store != nil {
		states, err := store.GetMachineStates(ctx)
		if err != nil {
			logger.Error(err, "failed to restore machine states, starting empty")
		} else {
			machines.Restore(states, now)
			logger.V(1).Info("Machine states restored", "count", len(states))
		}
	}

	// Change sinks
	viewers, err := hub.New().WithMetrics(metricsRegistry, metricsNamespace)
	if err != nil {
		return fmt.Errorf("failed to create hub: %w", err)
	}

	sinks := factory.ChangeSinks{Viewers: viewers}

	if store != nil {
		sinks.Store = processing.NewStoreSink(machines, store)
	}

	if conf.Nats.URL != "" {
		nc, closeNats, err := factory.CreateNatsConnection(conf.Nats)
		if err != nil {
			return err
		}
		closers.Add(closeNats)

		sinks.Publisher = changeevent.NewNatsPublisher(nc, conf.Nats.Subject)
	}

	transitions := history.NewMemory(conf.History.Size)
	historyWriters := []repo.StatusHistoryWriter{transitions}

	if conf.History.Archive.Bucket != "" {
		s3client, err := factory.CreateS3Client(ctx, conf.History.Archive)
		if err != nil {
			return err
		}

		historyWriters = append(historyWriters, history.NewS3Writer(s3client, conf.History.Archive.Bucket, conf.History.Archive.KeyPrefix))
	}

	sinks.History = processing.NewHistorySink(transitions, historyWriters...)

	sink, err := factory.CreateChangeSink(sinks, metricsRegistry, clock)
	if err != nil {
		return err
	}

	// Processing
	normalizer, err := processing.NewNormalizer()
	if err != nil {
		return fmt.Errorf("failed to create normalizer: %w", err)
	}

	mainProcessing := processing.NewMain(normalizer, machines, sink, clock)

	ingest, err := factory.DecorateProcessing(mainProcessing, metricsRegistry, clock, tracerProvider.Tracer("machine-monitor"), criteria)
	if err != nil {
		return err
	}

	var deadLetters repo.ProcessingErrorWriter

	if conf.DeadLetterQueue.Bucket != "" {
		s3client, err := factory.CreateS3Client(ctx, conf.DeadLetterQueue)
		if err != nil {
			return err
		}

		deadLetters = processingerror.NewS3Writer(s3client, clock, conf.DeadLetterQueue.Bucket, conf.DeadLetterQueue.KeyPrefix)
	}

	errorProcessing, err := factory.DecorateErrorProcessing(processing.NewMainError(deadLetters), metricsRegistry, clock)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	// Ingestion
	source, transport, err := factory.CreateSource(conf.Ingestion, ids, clock)
	if err != nil {
		return err
	}

	if source != nil {
		poller := ingestion.NewPoller(source, transport, ingest, errorProcessing, mainProcessing, clock, conf.Ingestion.PollInterval)
		g.Go(func() error {
			return poller.Start(gctx)
		})
	} else {
		sweeper := ingestion.NewSweeper(mainProcessing, errorProcessing, clock, conf.Ingestion.SweepInterval)
		g.Go(func() error {
			return sweeper.Start(gctx)
		})
	}

	if conf.Ingestion.Kafka.Enabled {
		consumer, err := factory.CreateKafkaConsumer(conf.Ingestion.Kafka)
		if err != nil {
			return err
		}

		runner := pipeline.NewRunner[entity.InboundSnapshot](consumer, []string{conf.Ingestion.Kafka.Consumer.Topic}, ingest, errorProcessing).WithLogger(logger)
		g.Go(func() error {
			return runner.Start(gctx)
		})
	}

	// Servers
	gin.SetMode(gin.ReleaseMode)

	router := api.NewRouter(gctx, conf.Server, api.Dependencies{
		Facade:          query.NewFacade(machines),
		Criteria:        criteria,
		Refresher:       mainProcessing,
		History:         transitions,
		Ingest:          ingest,
		ErrorProcessing: errorProcessing,
		Hub:             viewers,
		Clock:           clock,
	})

	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", conf.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsServer := factory.CreatePrometheusServer(conf.Metrics, metricsRegistry)

	for _, server := range []*http.Server{apiServer, metricsServer} {
		g.Go(func() error {
			logger.V(1).Info("Listening", "addr", server.Addr)

			err := server.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}

			return err
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		logger.V(1).Info("Shutting down servers", "gracefulDuration", conf.GracefulDuration)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.GracefulDuration)
		defer cancel()

		viewers.Close()

		return errors.Join(apiServer.Shutdown(shutdownCtx), metricsServer.Shutdown(shutdownCtx))
	})

	return g.Wait()
}
