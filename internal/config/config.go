package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Known ATS types. A company with any other type is rejected at load time.
const (
	ATSGreenhouse      = "greenhouse"
	ATSLever           = "lever"
	ATSSmartRecruiters = "smartrecruiters"
)

// Config is the root configuration for jobdigest.
type Config struct {
	PollingInterval time.Duration
	Companies       []CompanyConfig
	Filters         FilterConfig
	Cache           CacheConfig
	Email           EmailConfig
	Notification    NotificationConfig
	RateLimit       RateLimitConfig
}

// CompanyConfig describes a single company board to poll.
type CompanyConfig struct {
	Name    string `yaml:"name"`
	ATS     string `yaml:"ats"`
	Board   string `yaml:"board"`
	Enabled bool   `yaml:"enabled"`
}

// FilterConfig holds the immutable keyword and location filter settings.
// Loaded once per run and passed into the filter constructor.
type FilterConfig struct {
	TitleKeywords        []string
	TitleExcludeKeywords []string
	ExtraLocationMarkers []string // appended to the built-in US markers
}

// CacheConfig controls the seen-posting dedup store.
type CacheConfig struct {
	Type   string        // "sqlite" or "file"
	Path   string        // database or JSON file path
	MaxAge time.Duration // entries older than this are pruned each run
}

// EmailConfig holds SendGrid delivery settings. APIKey is expanded from an
// env var by Load; the keyring is consulted when it is left empty.
type EmailConfig struct {
	APIKey  string `yaml:"api_key"`
	From    string `yaml:"from"`
	To      string `yaml:"to"`
	Subject string `yaml:"subject"`
}

// NotificationConfig selects the delivery channel.
type NotificationConfig struct {
	Type     string         `yaml:"type"` // "email", "telegram", or "log"
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig holds bot credentials for the telegram channel.
type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

// RateLimitConfig controls the shared per-host request limiter.
type RateLimitConfig struct {
	RequestsPerSec float64
	Burst          int
}

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	PollingInterval string             `yaml:"polling_interval"`
	Companies       []CompanyConfig    `yaml:"companies"`
	Filters         rawFilterConfig    `yaml:"filters"`
	Cache           rawCacheConfig     `yaml:"cache"`
	Email           EmailConfig        `yaml:"email"`
	Notification    NotificationConfig `yaml:"notification"`
	RateLimit       rawRateLimitConfig `yaml:"rate_limit"`
}

type rawFilterConfig struct {
	TitleKeywords        []string `yaml:"title_keywords"`
	TitleExcludeKeywords []string `yaml:"title_exclude_keywords"`
	ExtraLocationMarkers []string `yaml:"extra_location_markers"`
}

type rawCacheConfig struct {
	Type   string `yaml:"type"`
	Path   string `yaml:"path"`
	MaxAge string `yaml:"max_age"`
}

type rawRateLimitConfig struct {
	RequestsPerSec float64 `yaml:"requests_per_sec"`
	Burst          int     `yaml:"burst"`
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables so secrets stay out of the file.
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	interval := 1 * time.Hour // default: hourly, matching the external scheduler cadence
	if raw.PollingInterval != "" {
		interval, err = time.ParseDuration(raw.PollingInterval)
		if err != nil {
			return nil, fmt.Errorf("parse polling_interval %q: %w", raw.PollingInterval, err)
		}
	}

	maxAge := 720 * time.Hour // default: 30 days
	if raw.Cache.MaxAge != "" {
		maxAge, err = time.ParseDuration(raw.Cache.MaxAge)
		if err != nil {
			return nil, fmt.Errorf("parse cache.max_age %q: %w", raw.Cache.MaxAge, err)
		}
	}

	cacheType := raw.Cache.Type
	if cacheType == "" {
		cacheType = "sqlite"
	}
	cachePath := raw.Cache.Path
	if cachePath == "" {
		cachePath = "seen.db"
	}

	rps := raw.RateLimit.RequestsPerSec
	if rps <= 0 {
		rps = 2
	}
	burst := raw.RateLimit.Burst
	if burst <= 0 {
		burst = 1
	}

	subject := raw.Email.Subject
	if subject == "" {
		subject = "New job postings"
	}

	notifType := raw.Notification.Type
	if notifType == "" {
		notifType = "email"
	}

	cfg := &Config{
		PollingInterval: interval,
		Companies:       raw.Companies,
		Filters: FilterConfig{
			TitleKeywords:        raw.Filters.TitleKeywords,
			TitleExcludeKeywords: raw.Filters.TitleExcludeKeywords,
			ExtraLocationMarkers: raw.Filters.ExtraLocationMarkers,
		},
		Cache: CacheConfig{
			Type:   cacheType,
			Path:   cachePath,
			MaxAge: maxAge,
		},
		Email: EmailConfig{
			APIKey:  raw.Email.APIKey,
			From:    raw.Email.From,
			To:      raw.Email.To,
			Subject: subject,
		},
		Notification: NotificationConfig{
			Type:     notifType,
			Telegram: raw.Notification.Telegram,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSec: rps,
			Burst:          burst,
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.PollingInterval <= 0 {
		return fmt.Errorf("polling_interval must be positive, got %v", cfg.PollingInterval)
	}

	enabled := 0
	for _, c := range cfg.Companies {
		switch c.ATS {
		case ATSGreenhouse, ATSLever, ATSSmartRecruiters:
		default:
			return fmt.Errorf("company %q: unknown ats %q", c.Name, c.ATS)
		}
		if c.Board == "" {
			return fmt.Errorf("company %q: board is required", c.Name)
		}
		if c.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("at least one company must be enabled")
	}

	switch cfg.Cache.Type {
	case "sqlite", "file":
	default:
		return fmt.Errorf("cache.type must be \"sqlite\" or \"file\", got %q", cfg.Cache.Type)
	}
	if cfg.Cache.MaxAge <= 0 {
		return fmt.Errorf("cache.max_age must be positive, got %v", cfg.Cache.MaxAge)
	}

	switch cfg.Notification.Type {
	case "email":
		if cfg.Email.From == "" || cfg.Email.To == "" {
			return fmt.Errorf("email.from and email.to are required when notification.type is \"email\"")
		}
	case "telegram":
		if cfg.Notification.Telegram.ChatID == 0 {
			return fmt.Errorf("notification.telegram.chat_id is required when type is \"telegram\"")
		}
	case "log":
	default:
		return fmt.Errorf("notification.type must be \"email\", \"telegram\" or \"log\", got %q", cfg.Notification.Type)
	}

	return nil
}
