package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"jobdigest/internal/filter"
	"jobdigest/internal/notifier"
	"jobdigest/internal/pipeline"
	"jobdigest/internal/store"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Poll once, print matches, exit",
	Long:  "One-shot dry run: fetches every enabled company, prints matched postings to the log, exits. Nothing is emailed or persisted.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("check mode: nothing will be emailed or persisted")

	httpClient := newHTTPClient()
	sources := buildSources(cfg, httpClient, logger)
	if len(sources) == 0 {
		logger.Error("no companies to poll")
		os.Exit(1)
	}

	jobFilter := filter.NewKeywordAndLocationFilter(cfg.Filters)
	p := pipeline.New(
		sources,
		jobFilter,
		store.NewMemoryStore(),
		notifier.NewLogNotifier(logger),
		cfg.Cache.MaxAge,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := p.Run(ctx); err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}

	logger.Info("check complete")
	return nil
}
