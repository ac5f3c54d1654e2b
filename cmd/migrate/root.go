package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redonshkr/gov-content-hub/internal/config"
	"github.com/redonshkr/gov-content-hub/internal/database"
	"github.com/redonshkr/gov-content-hub/internal/migration"
	pkglogger "github.com/redonshkr/gov-content-hub/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	configPath string
	verbose    bool
)

// rootCmd applies the schema; subcommands run after it
var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the content hub schema",
	Long: `Applies the schema to the configured MySQL database.
Subcommands seed the first administrator and rebuild the search index.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		pkglogger.InitStructured("local")
		if _, err := config.LoadDotEnv("."); err != nil {
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		_, closeDB, err := openSchema()
		if err != nil {
			return err
		}
		defer closeDB()
		pkglogger.Info("Schema up to date")
		return nil
	},
}

// Execute runs the command tree and exits non-zero on failure
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.local.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose SQL logging")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openSchema connects, migrates and returns the handle with its closer
func openSchema() (*gorm.DB, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	level := gormlogger.Warn
	if verbose {
		level = gormlogger.Info
	}
	db, err := database.Open(cfg.Database, level)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { _ = sqlDB.Close() }

	if err := migration.Run(db); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return db, closeDB, nil
}
