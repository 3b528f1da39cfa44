package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/pizza-delivery-api/config"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/logger"

	// Import migrations and seeders so their init() funcs register them.
	_ "github.com/shashiranjanraj/pizza-delivery-api/database/migrations"
	_ "github.com/shashiranjanraj/pizza-delivery-api/database/seeders"
)

var (
	configPath string
	envPath    string
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "pizza",
	Short:         "Pizza delivery API server and maintenance commands",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/app.json", "path to the JSON config file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", ".env", "path to the .env file")

	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tokensPruneCmd)
}

// bootstrap loads configuration and installs the process logger. The
// returned func flushes the Mongo log sink when one was configured.
func bootstrap(ctx context.Context) (*config.Config, func(), error) {
	cfg, err := config.LoadFrom(configPath, envPath)
	if err != nil {
		return nil, nil, err
	}

	if cfg.MongoLogURI == "" {
		logger.Setup(cfg.AppEnv)
		return cfg, func() {}, nil
	}

	mh, err := logger.NewMongoHandler(ctx, cfg.MongoLogURI, cfg.MongoLogDB, cfg.MongoLogCollection, "pizza-api", slog.LevelInfo)
	if err != nil {
		// Keep serving with stdout logging only.
		logger.Setup(cfg.AppEnv)
		logger.Warn("mongo log sink unavailable", "error", err)
		return cfg, func() {}, nil
	}
	logger.Setup(cfg.AppEnv, mh)
	return cfg, mh.Close, nil
}
