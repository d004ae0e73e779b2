package main

import (
	"github.com/spf13/cobra"
	"github.com/voicemed/report-service/internal/config"
	"github.com/voicemed/report-service/internal/store"
	"github.com/voicemed/report-service/pkg/log"
	"github.com/voicemed/report-service/pkg/migrations"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var seed bool

func init() {
	migrateCmd.Flags().BoolVar(&seed, "seed", false, "seed the store with sample data after migrating")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the report service database",
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

		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if cfg.Service.MigrationFolder != "" && cfg.Database.Type == "pgsql" {
			if err := migrations.MigrateStore(db, cfg.Service.MigrationFolder); err != nil {
				zap.S().Fatalw("running migrations", "error", err)
			}
		} else {
			if err := s.InitialMigration(); err != nil {
				zap.S().Fatalw("running initial migration", "error", err)
			}
		}

		if seed {
			if err := s.Seed(); err != nil {
				zap.S().Fatalw("seeding data store", "error", err)
			}
			zap.S().Info("store seeded")
		}

		zap.S().Info("migration completed")
		return nil
	},
}
