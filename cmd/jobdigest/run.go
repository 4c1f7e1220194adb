package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"jobdigest/internal/config"
	"jobdigest/internal/filter"
	"jobdigest/internal/model"
	"jobdigest/internal/pipeline"
	"jobdigest/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one digest pass and exit",
	Long:  "One pass: fetch, filter, dedup, email, persist cache. Intended to be invoked by cron or a systemd timer.",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"companies", len(cfg.Companies),
		"title_keywords", len(cfg.Filters.TitleKeywords),
		"cache", cfg.Cache.Type,
		"max_age", cfg.Cache.MaxAge.String(),
	)

	// Scheduler invocations are hourly with no overlap expected; the lock is
	// a guard against a slow run colliding with the next trigger.
	lock := flock.New(cfg.Cache.Path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		logger.Error("acquiring run lock", "error", err)
		os.Exit(1)
	}
	if !locked {
		logger.Warn("another invocation holds the run lock, exiting")
		return nil
	}
	defer lock.Unlock()

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

	if err := p.Run(ctx); err != nil {
		logger.Error("pass failed", "error", err)
		os.Exit(1)
	}
	return nil
}

// openStore picks the seen-cache backend from config. Both backends treat an
// unreadable cache as empty rather than failing the run.
func openStore(cfg *config.Config, logger *slog.Logger) (model.SeenStore, error) {
	switch cfg.Cache.Type {
	case "file":
		return store.NewFileStore(cfg.Cache.Path, logger), nil
	default:
		s, err := store.NewSQLiteStore(cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite cache at %s: %w", cfg.Cache.Path, err)
		}
		return s, nil
	}
}
