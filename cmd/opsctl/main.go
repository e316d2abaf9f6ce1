package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sitecrew/labortrack-backend-go/internal/config"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/cron"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
	"github.com/sitecrew/labortrack-backend-go/internal/repository/postgresql"
	"github.com/sitecrew/labortrack-backend-go/internal/service/master"
)

var rootCmd = &cobra.Command{
	Use:   "opsctl",
	Short: "One-off operational tasks for the labor tracking backend",
	Long: `opsctl runs maintenance tasks against the labor tracking database
outside the API server: seeding the default trade catalog, force-closing
stale clock sessions, and pruning old device logs.

Each command loads the same configuration as the API server, runs once,
and exits. Useful from a crontab or a deploy pipeline when the in-process
scheduler is not running.`,
}

// connect loads the server configuration and opens the database.
func connect() (*config.Config, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, db, nil
}

func sessionJobs(cfg *config.Config, db *database.DB) *cron.ClockSessionJobs {
	sessionRepo := postgresql.NewClockSessionRepository(db)
	entryRepo := postgresql.NewTimeEntryRepository(db)
	lockRepo := postgresql.NewApprovalLockRepository(db)
	deviceLogRepo := postgresql.NewDeviceLogRepository(db)
	return cron.NewClockSessionJobs(sessionRepo, entryRepo, lockRepo, deviceLogRepo, db, cfg.Sweep)
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Force-close clock sessions older than the maximum duration",
	Long: `sweep closes every active clock session whose clock-in is older than
the configured maximum session duration. Each closed session gets a derived
time entry, exactly as the in-process scheduler would produce.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, db, err := connect()
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		if err := sessionJobs(cfg, db).AutoCloseStaleSessions(context.Background()); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println("Stale session sweep complete")
	},
}

var pruneLogsCmd = &cobra.Command{
	Use:   "prune-logs",
	Short: "Delete device logs older than the retention window",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, db, err := connect()
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		if err := sessionJobs(cfg, db).PruneDeviceLogs(context.Background()); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println("Device log prune complete")
	},
}

var seedCatalogCmd = &cobra.Command{
	Use:   "seed-catalog",
	Short: "Seed the default trades and labor activities",
	Long: `seed-catalog inserts the starter trade and labor activity catalog.
Already-seeded rows are left alone, so the command is safe to re-run.`,
	Run: func(cmd *cobra.Command, args []string) {
		_, db, err := connect()
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		tradeRepo := postgresql.NewTradeRepository(db)
		activityRepo := postgresql.NewActivityRepository(db)
		masterSvc := master.NewMasterService(db, tradeRepo, activityRepo)
		if err := masterSvc.EnsureDefaultCatalog(context.Background()); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println("Default catalog seeded")
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(pruneLogsCmd)
	rootCmd.AddCommand(seedCatalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
