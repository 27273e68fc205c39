// Package main is the prepper command: it serves the API and manages the database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"preben-prepper/cmd/config"
	migration "preben-prepper/cmd/database/migrate"
	"preben-prepper/cmd/database/seed"
	"preben-prepper/internal/utils"
	"preben-prepper/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	configPath  string
	autoMigrate bool
	version     = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "prepper",
	Short:   "Preben Prepper household inventory API",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.LoadConfigFrom(configPath)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "run database migrations before serving")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New(utils.GetConfig("LOG_LEVEL"))
		db, err := config.ConnectDB()
		if err != nil {
			return err
		}
		if err := migration.Migrate(db); err != nil {
			return err
		}
		log.Info("migration completed")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default recommended items and the admin user",
	Long: `Insert the default recommended-items catalog. Entries are matched by name,
so running seed again only adds what is missing. When ADMIN_EMAIL is set an
admin account is created with ADMIN_PASSWORD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New(utils.GetConfig("LOG_LEVEL"))
		db, err := config.ConnectDB()
		if err != nil {
			return err
		}

		res, err := seed.Seed(cmd.Context(), db, utils.GetConfig("ADMIN_EMAIL"), utils.GetConfig("ADMIN_PASSWORD"))
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"catalog_created": res.CatalogCreated,
			"admin_created":   res.AdminCreated,
		}).Info("seed completed")
		return nil
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.New(utils.GetConfig("LOG_LEVEL"))

	db, err := config.ConnectDB()
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	if autoMigrate {
		if err := migration.Migrate(db); err != nil {
			return err
		}
	}

	app, err := config.NewApp(db, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%s", utils.GetConfig("APP_PORT"))
		log.WithField("addr", addr).Info("starting server")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}

func closeDB(db *gorm.DB, log *logrus.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Warn("closing database")
	}
}
