package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizza-delivery-api/app/repositories"
	"github.com/shashiranjanraj/pizza-delivery-api/config"
	"github.com/shashiranjanraj/pizza-delivery-api/database/seeders"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/database"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/logger"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/migration"
)

// withDB loads config and opens the database connection for the duration of fn.
func withDB(ctx context.Context, fn func(db *gorm.DB) error) error {
	return withConfigDB(ctx, func(_ *config.Config, db *gorm.DB) error { return fn(db) })
}

func withConfigDB(ctx context.Context, fn func(cfg *config.Config, db *gorm.DB) error) error {
	cfg, flush, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer flush()

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer database.Close(db)

	return fn(cfg, db)
}

// pizza migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(db *gorm.DB) error {
			ran, err := migration.New(db).Run(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("migrations complete", "ran", len(ran))
			return nil
		})
	},
}

// pizza migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(db *gorm.DB) error {
			rolled, err := migration.New(db).Rollback(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("rollback complete", "rolled_back", len(rolled))
			return nil
		})
	},
}

// pizza migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(db *gorm.DB) error {
			statuses, err := migration.New(db).Status(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "MIGRATION\tRAN\tBATCH")
			for _, s := range statuses {
				batch := "-"
				if s.Ran {
					batch = fmt.Sprint(s.Batch)
				}
				fmt.Fprintf(w, "%s\t%t\t%s\n", s.Name, s.Ran, batch)
			}
			return w.Flush()
		})
	},
}

// pizza seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(db *gorm.DB) error {
			return seeders.RunAll(cmd.Context(), db)
		})
	},
}

// pizza tokens:prune
var tokensPruneCmd = &cobra.Command{
	Use:   "tokens:prune",
	Short: "Delete revoked-token records whose tokens have already expired",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConfigDB(cmd.Context(), func(cfg *config.Config, db *gorm.DB) error {
			_, err := pruneRevokedTokens(cmd.Context(), cfg, db, time.Now())
			return err
		})
	},
}

// pruneRevokedTokens deletes expired blocklist rows. The redis blocklist
// stores each entry with a TTL, so there is nothing to delete and the
// database table is left alone.
func pruneRevokedTokens(ctx context.Context, cfg *config.Config, db *gorm.DB, now time.Time) (int64, error) {
	if cfg.BlocklistDriver == config.BlocklistRedis {
		logger.Info("redis revocation entries expire on their own; nothing to prune", "driver", cfg.BlocklistDriver)
		return 0, nil
	}

	n, err := repositories.NewBlocklistRepository(db).Prune(ctx, now)
	if err != nil {
		return 0, err
	}
	logger.Info("revoked tokens pruned", "deleted", n)
	return n, nil
}
