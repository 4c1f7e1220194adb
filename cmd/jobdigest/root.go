package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"jobdigest/internal/adapter"
	"jobdigest/internal/config"
	"jobdigest/internal/model"
	"jobdigest/internal/notifier"
	"jobdigest/internal/pipeline"
	"jobdigest/internal/ratelimit"
	"jobdigest/internal/secrets"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobdigest",
	Short: "ATS job posting digest",
	Long:  "jobdigest polls company job boards, filters new US postings, and emails a digest.",
	// Default to `run` so that `jobdigest` with no args does one pass.
	// This keeps cron and systemd timer entries a single word.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBDIGEST_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Secrets may live in a local .env next to the binary; missing file is fine.
	_ = godotenv.Load()
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBDIGEST_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBDIGEST_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (model.Notifier, error) {
	switch cfg.Notification.Type {
	case "email":
		apiKey, err := secrets.Resolve(cfg.Email.APIKey, secrets.AccountSendGrid)
		if err != nil {
			return nil, err
		}
		logger.Info("using email notifier", "to", cfg.Email.To)
		return notifier.NewEmailNotifier(apiKey, cfg.Email.From, cfg.Email.To, cfg.Email.Subject, httpClient, logger), nil
	case "telegram":
		token, err := secrets.Resolve(cfg.Notification.Telegram.Token, secrets.AccountTelegram)
		if err != nil {
			return nil, err
		}
		logger.Info("using telegram notifier", "chat_id", cfg.Notification.Telegram.ChatID)
		return notifier.NewTelegramNotifier(token, cfg.Notification.Telegram.ChatID, logger)
	default:
		return notifier.NewLogNotifier(logger), nil
	}
}

func createFetcher(company config.CompanyConfig, httpClient *http.Client) model.PostingFetcher {
	switch company.ATS {
	case config.ATSGreenhouse:
		return adapter.NewGreenhouseAdapter(company.Board, company.Name, httpClient)
	case config.ATSLever:
		return adapter.NewLeverAdapter(company.Board, company.Name, httpClient)
	case config.ATSSmartRecruiters:
		return adapter.NewSmartRecruitersAdapter(company.Board, company.Name, httpClient)
	default:
		// config.Load validates ATS types; unreachable for loaded configs.
		return nil
	}
}

func buildSources(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) []pipeline.Source {
	// All companies on the same ATS share one token bucket.
	limiter := ratelimit.NewATSRateLimiter(cfg.RateLimit.RequestsPerSec, cfg.RateLimit.Burst)

	var sources []pipeline.Source
	for _, company := range cfg.Companies {
		if !company.Enabled {
			continue
		}
		fetcher := createFetcher(company, httpClient)
		if fetcher == nil {
			continue
		}
		fetcher = ratelimit.NewLimitedFetcher(fetcher, limiter, company.ATS)
		sources = append(sources, pipeline.Source{Company: company.Name, Fetcher: fetcher})
		logger.Info("registered company", "name", company.Name, "ats", company.ATS)
	}
	return sources
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}
