package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	apiserver "github.com/voicemed/report-service/internal/api_server"
	"github.com/voicemed/report-service/internal/config"
	"github.com/voicemed/report-service/internal/events"
	"github.com/voicemed/report-service/internal/export"
	"github.com/voicemed/report-service/internal/store"
	"github.com/voicemed/report-service/internal/worker"
	"github.com/voicemed/report-service/pkg/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the report service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		logLvl, err := zap.ParseAtomicLevel(cfg.Service.LogLevel)
		if err != nil {
			logLvl = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}

		logger := log.InitLog(logLvl)
		defer func() { _ = logger.Sync() }()

		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Info("Starting report service")
		defer zap.S().Info("Report service stopped")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := s.InitialMigration(); err != nil {
			zap.S().Fatalw("running initial migration", "error", err)
		}

		if cfg.Service.SeedOnStartup {
			if err := s.Seed(); err != nil {
				zap.S().Fatalw("seeding data store", "error", err)
			}
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		producer := events.NewEventProducer(&events.StdoutWriter{})
		defer producer.Close()

		bus := events.NewBus(events.WithForwarder(producer))

		exporter := export.NewExporter(s, cfg.Service.ReportsFolder)
		executor := worker.NewExecutor(s, exporter, bus, cfg.Worker.ProcessingDelay)

		poller := worker.NewPoller(s, executor, bus,
			cfg.Worker.PollInterval, cfg.Worker.RunTimeout,
			cfg.Worker.PoolSize, cfg.Worker.QueueDepth)
		go poller.Run(ctx)

		sweeper := worker.NewSweeper(s, bus, cfg.Worker.RetentionInterval, cfg.Worker.RetentionAge)
		go sweeper.Run(ctx)

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			server := apiserver.New(cfg, s, bus, listener)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalw("running server", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalw("creating metrics listener", "error", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalw("running metrics server", "error", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
