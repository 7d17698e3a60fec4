package config

import (
	"time"

	"econ-mood-monitor/pkg/config"
)

// Region is the static reference data for one monitored region, loaded once
// at process start and never mutated.
type Region struct {
	ID          string `mapstructure:"id"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Icon        string `mapstructure:"icon"`
	Query       string `mapstructure:"query"`
	HL          string `mapstructure:"hl"`
	GL          string `mapstructure:"gl"`
	CEID        string `mapstructure:"ceid"`
}

// Collector holds collection cycle configuration.
type Collector struct {
	CronSchedule     string        `mapstructure:"cron_schedule"`
	MaxConcurrent    int           `mapstructure:"max_concurrent"`
	RegionTimeout    time.Duration `mapstructure:"region_timeout"`
	RetentionWindow  time.Duration `mapstructure:"retention_window"`
	TopHeadlineLimit int           `mapstructure:"top_headline_limit"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl"`
}

// Feed holds feed source configuration.
type Feed struct {
	BaseURL             string        `mapstructure:"base_url"`
	MaxRetries          int           `mapstructure:"max_retries"`
	InitialBackoff      time.Duration `mapstructure:"initial_backoff"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

// Telegram holds configuration for the Telegram alert notifier.
type Telegram struct {
	Enabled        bool    `mapstructure:"enabled"`
	BotToken       string  `mapstructure:"bot_token"`
	ChatID         int64   `mapstructure:"chat_id"`
	AlertThreshold float64 `mapstructure:"alert_threshold"`
}

// Config holds the full configuration for the monitor service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Collector Collector       `mapstructure:"collector"`
	Feed      Feed            `mapstructure:"feed"`
	Telegram  Telegram        `mapstructure:"telegram"`
	Regions   []Region        `mapstructure:"regions"`
}

// Load loads the monitor configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RegionByID returns the region config with the given ID, or false when the
// ID is not a configured region.
func (c *Config) RegionByID(id string) (Region, bool) {
	for _, r := range c.Regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}
