package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"jobdigest/internal/filter"
	"jobdigest/internal/pipeline"
	"jobdigest/internal/scheduler"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the polling daemon",
	Long:  "Runs a digest pass on the configured interval; blocks until SIGINT/SIGTERM. For hosts without cron or systemd timers.",
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"interval", cfg.PollingInterval.String(),
		"companies", len(cfg.Companies),
		"cache", cfg.Cache.Type,
	)

	seenStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open seen cache", "error", err)
		os.Exit(1)
	}
	defer seenStore.Close()

	httpClient := newHTTPClient()
	n, err := setupNotifier(cfg, httpClient, logger)
	if err != nil {
		logger.Error("failed to set up notifier", "error", err)
		os.Exit(1)
	}

	sources := buildSources(cfg, httpClient, logger)
	if len(sources) == 0 {
		logger.Error("no companies to poll")
		os.Exit(1)
	}

	jobFilter := filter.NewKeywordAndLocationFilter(cfg.Filters)
	p := pipeline.New(sources, jobFilter, seenStore, n, cfg.Cache.MaxAge, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(p, cfg.PollingInterval, logger)
	if err := sched.Run(ctx); err != nil {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
